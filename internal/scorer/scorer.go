package scorer

import (
	"context"
	"fmt"
	"strings"

	"benchfuse/domain/artifact"
	"benchfuse/domain/benchmark"
)

// Scorer is the contract every benchmark implementation must satisfy.
// Evaluate must always return a well-formed Result for sparse or malformed
// artifacts (absence of relevant data is a neutral sub-check with reduced
// confidence, not an error). A non-nil error means the benchmark could not
// run at all and the orchestrator excludes it from fusion.
type Scorer interface {
	Kind() benchmark.Kind
	Evaluate(ctx context.Context, d artifact.Discovery, vctx *artifact.Context) (benchmark.Result, error)
}

// ByKind acts as the factory for the benchmark panel.
func ByKind(kind benchmark.Kind) (Scorer, error) {
	switch benchmark.Kind(strings.ToLower(strings.TrimSpace(string(kind)))) {
	case benchmark.KindPhysicalLimits:
		return NewPhysicalLimitsScorer(), nil
	case benchmark.KindPracticality:
		return NewPracticalityScorer(), nil
	case benchmark.KindLiterature:
		return NewLiteratureScorer(nil), nil
	case benchmark.KindConvergence:
		return NewConvergenceScorer(), nil
	case benchmark.KindExternalRubric:
		return NewExternalRubricScorer(), nil
	default:
		return nil, fmt.Errorf("unknown benchmark kind: %s", kind)
	}
}

// Panel resolves a list of kinds into scorers, preserving caller order.
// Unknown kinds are an error: the enabled set is caller configuration, not
// artifact data, so a bad entry is a programming mistake.
func Panel(kinds []benchmark.Kind) ([]Scorer, error) {
	seen := make(map[benchmark.Kind]bool, len(kinds))
	scorers := make([]Scorer, 0, len(kinds))
	for _, kind := range kinds {
		if seen[kind] {
			return nil, fmt.Errorf("duplicate benchmark kind: %s", kind)
		}
		seen[kind] = true
		s, err := ByKind(kind)
		if err != nil {
			return nil, err
		}
		scorers = append(scorers, s)
	}
	return scorers, nil
}

// neutralItem builds the sub-check returned when an artifact carries none of
// the fields a check needs. The check passes at full score with an
// explanatory reasoning string; the scorer lowers its confidence instead.
func neutralItem(id, name, reason string, maxScore float64) benchmark.ItemResult {
	return benchmark.ItemResult{
		ID:        id,
		Name:      name,
		Score:     maxScore,
		MaxScore:  maxScore,
		Passed:    true,
		Reasoning: reason,
	}
}

// finalize sums item scores, rescales to the fixed 0–10 range and stamps the
// shared result fields.
func finalize(kind benchmark.Kind, items []benchmark.ItemResult, confidence, passThreshold float64, meta benchmark.Metadata) benchmark.Result {
	var score, maxScore float64
	for _, item := range items {
		score += item.Score
		maxScore += item.MaxScore
	}
	scaled := benchmark.Rescale(score, maxScore)
	return benchmark.Result{
		Kind:       kind,
		Score:      scaled,
		MaxScore:   benchmark.MaxScore,
		Passed:     scaled >= passThreshold,
		Weight:     benchmark.DefaultBaseWeights()[kind],
		Confidence: confidence,
		Items:      items,
		Metadata:   meta,
	}
}
