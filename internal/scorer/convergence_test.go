package scorer

import (
	"context"
	"testing"

	"benchfuse/domain/artifact"
)

func TestConvergence_NoSimulationIsNeutralLowConfidence(t *testing.T) {
	result, err := NewConvergenceScorer().Evaluate(context.Background(), artifact.Discovery{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Passed {
		t.Errorf("no simulation should pass vacuously")
	}
	if result.Confidence != 0.35 {
		t.Errorf("confidence = %v, want 0.35", result.Confidence)
	}
}

func TestConvergence_ConvergedRunScoresFull(t *testing.T) {
	vctx := &artifact.Context{
		Simulation: &artifact.SimulationData{
			Tier:            "fine",
			Iterations:      500,
			Converged:       true,
			FinalResidual:   1e-9,
			ResidualHistory: []float64{1e-1, 1e-3, 1e-5, 1e-7, 1e-9},
		},
	}
	result, err := NewConvergenceScorer().Evaluate(context.Background(), artifact.Discovery{}, vctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range []string{"C1", "C2", "C3"} {
		item := itemByID(t, result, id)
		if item.Score != itemMaxScore {
			t.Errorf("%s score = %v, want full for a clean converged run", id, item.Score)
		}
	}
	if result.Confidence != 0.85 {
		t.Errorf("confidence = %v, want 0.85", result.Confidence)
	}
}

func TestConvergence_FlatResidualsFailTrend(t *testing.T) {
	vctx := &artifact.Context{
		Simulation: &artifact.SimulationData{
			Iterations:      200,
			Converged:       true,
			FinalResidual:   1e-2,
			ResidualHistory: []float64{1e-2, 1.1e-2, 0.9e-2, 1e-2, 1.05e-2},
		},
	}
	result, err := NewConvergenceScorer().Evaluate(context.Background(), artifact.Discovery{}, vctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c2 := itemByID(t, result, "C2")
	if c2.Passed {
		t.Errorf("flat residual history should fail the trend check")
	}
}

func TestConvergence_ShortRunPenalized(t *testing.T) {
	vctx := &artifact.Context{
		Simulation: &artifact.SimulationData{
			Iterations:    10,
			Converged:     true,
			FinalResidual: 1e-9,
		},
	}
	result, err := NewConvergenceScorer().Evaluate(context.Background(), artifact.Discovery{}, vctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c3 := itemByID(t, result, "C3")
	if c3.Score != itemMaxScore*0.25 || c3.Passed {
		t.Errorf("10 iterations should score 25%% and fail, got score=%v passed=%v", c3.Score, c3.Passed)
	}
}

func TestConvergence_DivergedRunFails(t *testing.T) {
	vctx := &artifact.Context{
		Simulation: &artifact.SimulationData{
			Iterations:    500,
			Converged:     false,
			FinalResidual: 0.5,
		},
	}
	result, err := NewConvergenceScorer().Evaluate(context.Background(), artifact.Discovery{}, vctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c1 := itemByID(t, result, "C1")
	if c1.Score != 0 || c1.Passed {
		t.Errorf("diverged run must zero C1, got score=%v passed=%v", c1.Score, c1.Passed)
	}
	if len(c1.Suggestions) == 0 {
		t.Errorf("diverged run should suggest a rerun")
	}
}
