package scorer

import (
	"context"
	"testing"

	"benchfuse/domain/artifact"
	"benchfuse/internal/errors"
)

func TestExternalRubric_MissingRubricIsUnavailable(t *testing.T) {
	s := NewExternalRubricScorer()

	_, err := s.Evaluate(context.Background(), artifact.Discovery{}, nil)
	if !errors.HasCode(err, errors.CodeScorerUnavailable) {
		t.Fatalf("expected SCORER_UNAVAILABLE, got %v", err)
	}

	_, err = s.Evaluate(context.Background(), artifact.Discovery{}, &artifact.Context{
		ExternalRubric: map[string]interface{}{"reasoning": "no score here"},
	})
	if !errors.HasCode(err, errors.CodeScorerUnavailable) {
		t.Fatalf("rubric without a score should be SCORER_UNAVAILABLE, got %v", err)
	}
}

func TestExternalRubric_RescalesToFixedRange(t *testing.T) {
	vctx := &artifact.Context{
		ExternalRubric: map[string]interface{}{
			"score":      42.0,
			"max_score":  50.0,
			"confidence": 0.9,
		},
	}
	result, err := NewExternalRubricScorer().Evaluate(context.Background(), artifact.Discovery{}, vctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Score != 8.4 {
		t.Errorf("42/50 should rescale to 8.4, got %v", result.Score)
	}
	if !result.Passed {
		t.Errorf("8.4 should pass the 7.0 threshold")
	}
	if result.Confidence != 0.9 {
		t.Errorf("confidence should pass through, got %v", result.Confidence)
	}
}

func TestExternalRubric_LiftsItems(t *testing.T) {
	vctx := &artifact.Context{
		ExternalRubric: map[string]interface{}{
			"score":     6.0,
			"max_score": 10.0,
			"items": []interface{}{
				map[string]interface{}{"id": "R1", "name": "novelty", "score": 8.0, "max_score": 10.0},
				map[string]interface{}{"name": "rigor", "score": 4.0, "max_score": 10.0},
			},
		},
	}
	result, err := NewExternalRubricScorer().Evaluate(context.Background(), artifact.Discovery{}, vctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 lifted items, got %d", len(result.Items))
	}
	if !result.Items[0].Passed || result.Items[1].Passed {
		t.Errorf("item pass states wrong: %+v", result.Items)
	}
	if result.Passed {
		t.Errorf("6.0 should not pass the 7.0 threshold")
	}
}
