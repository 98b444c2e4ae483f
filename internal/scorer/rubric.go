package scorer

import (
	"context"
	"fmt"
	"time"

	"benchfuse/domain/artifact"
	"benchfuse/domain/benchmark"
	"benchfuse/internal/errors"
)

const rubricVersion = "1.0.0"

// ExternalRubricScorer adapts a rubric judgment pre-computed by the
// generation subsystem into the common benchmark shape. It performs no
// judging of its own; when the context carries no rubric it reports
// ScorerUnavailable and the orchestrator drops this benchmark.
type ExternalRubricScorer struct{}

// NewExternalRubricScorer creates the scorer.
func NewExternalRubricScorer() *ExternalRubricScorer {
	return &ExternalRubricScorer{}
}

// Kind implements Scorer.
func (s *ExternalRubricScorer) Kind() benchmark.Kind {
	return benchmark.KindExternalRubric
}

// Evaluate implements Scorer.
func (s *ExternalRubricScorer) Evaluate(ctx context.Context, d artifact.Discovery, vctx *artifact.Context) (benchmark.Result, error) {
	start := time.Now()
	if vctx == nil || vctx.ExternalRubric == nil {
		return benchmark.Result{}, errors.ScorerUnavailable(string(benchmark.KindExternalRubric),
			fmt.Errorf("no external rubric supplied in validation context"))
	}

	raw := vctx.ExternalRubric
	score, okScore := numberField(raw, "score")
	maxScore, okMax := numberField(raw, "max_score")
	if !okMax || maxScore <= 0 {
		maxScore = benchmark.MaxScore
	}
	if !okScore {
		return benchmark.Result{}, errors.ScorerUnavailable(string(benchmark.KindExternalRubric),
			fmt.Errorf("external rubric carries no score field"))
	}

	confidence := 0.75
	if c, ok := numberField(raw, "confidence"); ok && c >= 0 && c <= 1 {
		confidence = c
	}

	items := rubricItems(raw)
	scaled := benchmark.Rescale(score, maxScore)
	if len(items) == 0 {
		items = []benchmark.ItemResult{{
			ID:        "R1",
			Name:      "external_rubric",
			Score:     scaled,
			MaxScore:  benchmark.MaxScore,
			Passed:    scaled >= 7.0,
			Reasoning: stringField(raw, "reasoning", "rubric judgment supplied by the generation subsystem"),
		}}
	}

	meta := benchmark.Metadata{
		Duration:      time.Since(start),
		ChecksRun:     len(items),
		ChecksSkipped: 0,
		Version:       rubricVersion,
	}
	return benchmark.Result{
		Kind:       benchmark.KindExternalRubric,
		Score:      scaled,
		MaxScore:   benchmark.MaxScore,
		Passed:     scaled >= 7.0,
		Weight:     benchmark.DefaultBaseWeights()[benchmark.KindExternalRubric],
		Confidence: confidence,
		Items:      items,
		Metadata:   meta,
	}, nil
}

// rubricItems lifts an optional "items" array out of the raw rubric payload.
func rubricItems(raw map[string]interface{}) []benchmark.ItemResult {
	list, ok := raw["items"].([]interface{})
	if !ok {
		return nil
	}
	items := make([]benchmark.ItemResult, 0, len(list))
	for i, entry := range list {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		score, _ := numberField(m, "score")
		maxScore, okMax := numberField(m, "max_score")
		if !okMax || maxScore <= 0 {
			maxScore = itemMaxScore
		}
		items = append(items, benchmark.ItemResult{
			ID:        stringField(m, "id", fmt.Sprintf("R%d", i+1)),
			Name:      stringField(m, "name", "rubric_item"),
			Score:     score,
			MaxScore:  maxScore,
			Passed:    score >= maxScore*0.5,
			Reasoning: stringField(m, "reasoning", ""),
		})
	}
	return items
}

func numberField(m map[string]interface{}, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func stringField(m map[string]interface{}, key, fallback string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return fallback
}
