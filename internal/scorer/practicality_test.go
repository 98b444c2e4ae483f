package scorer

import (
	"context"
	"testing"

	"benchfuse/domain/artifact"
)

func TestPracticality_CriticalMaterialsCapScore(t *testing.T) {
	d := artifact.Discovery{
		"title":     "PEM electrolyzer stack",
		"materials": []interface{}{"Iridium oxide catalyst", "titanium plates"},
	}

	result, err := NewPracticalityScorer().Evaluate(context.Background(), d, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p2 := itemByID(t, result, "P2")
	if p2.Score != itemMaxScore*0.5 {
		t.Errorf("constrained material should halve P2, got %v", p2.Score)
	}
	if len(p2.Evidence) != 1 || p2.Evidence[0] != "iridium" {
		t.Errorf("expected iridium in evidence, got %v", p2.Evidence)
	}
}

func TestPracticality_CostRealism(t *testing.T) {
	tests := []struct {
		name      string
		cost      float64
		wantScore float64
		wantPass  bool
	}{
		{"plausible cost", 85.0, itemMaxScore, true},
		{"implausibly cheap", 2.0, itemMaxScore * 0.25, false},
		{"non-positive", -1.0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := artifact.Discovery{"cost_per_kwh": tt.cost}
			result, err := NewPracticalityScorer().Evaluate(context.Background(), d, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			p1 := itemByID(t, result, "P1")
			if p1.Score != tt.wantScore {
				t.Errorf("P1 score = %v, want %v", p1.Score, tt.wantScore)
			}
			if p1.Passed != tt.wantPass {
				t.Errorf("P1 passed = %v, want %v", p1.Passed, tt.wantPass)
			}
		})
	}
}

func TestPracticality_TechnologyReadiness(t *testing.T) {
	tests := []struct {
		name      string
		trl       float64
		wantScore float64
	}{
		{"validated", 6, itemMaxScore},
		{"early stage", 2, itemMaxScore * 0.75},
		{"off scale", 12, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := artifact.Discovery{"trl": tt.trl}
			result, err := NewPracticalityScorer().Evaluate(context.Background(), d, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			p3 := itemByID(t, result, "P3")
			if p3.Score != tt.wantScore {
				t.Errorf("P3 score = %v, want %v", p3.Score, tt.wantScore)
			}
		})
	}
}

func TestPracticality_ConfidenceScalesWithExtraction(t *testing.T) {
	tests := []struct {
		name           string
		discovery      artifact.Discovery
		wantConfidence float64
	}{
		{"nothing extracted", artifact.Discovery{}, 0.4},
		{"one field", artifact.Discovery{"trl": 5.0}, 0.55},
		{
			"several fields",
			artifact.Discovery{
				"trl":          5.0,
				"cost_per_kwh": 100.0,
				"materials":    []interface{}{"silicon"},
			},
			0.7,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewPracticalityScorer().Evaluate(context.Background(), tt.discovery, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", result.Confidence, tt.wantConfidence)
			}
		})
	}
}
