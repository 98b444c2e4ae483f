package scorer

import (
	"context"
	"strings"
	"testing"

	"benchfuse/domain/artifact"
	"benchfuse/domain/benchmark"
)

func itemByID(t *testing.T, result benchmark.Result, id string) benchmark.ItemResult {
	t.Helper()
	for _, item := range result.Items {
		if item.ID == id {
			return item
		}
	}
	t.Fatalf("no item %s in result", id)
	return benchmark.ItemResult{}
}

func TestPhysicalLimits_SolarMinorViolation(t *testing.T) {
	// 50% efficiency with no tandem/concentrator keyword: exceeds the
	// Shockley-Queisser default but only as an undeclared-architecture minor.
	d := artifact.Discovery{
		"title":      "High efficiency perovskite cell",
		"domain":     "solar",
		"efficiency": 0.50,
	}

	result, err := NewPhysicalLimitsScorer().Evaluate(context.Background(), d, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d1 := itemByID(t, result, "D1")
	if d1.Score != 7.5 {
		t.Errorf("expected 75%% credit for one minor violation, got %v", d1.Score)
	}
	if !d1.Passed {
		t.Errorf("a single minor violation should still pass the sub-check")
	}
	if len(d1.Suggestions) == 0 {
		t.Errorf("minor violation should suggest declaring the architecture")
	}
}

func TestPhysicalLimits_SolarCriticalViolation(t *testing.T) {
	// 90% exceeds the ultimate concentrated limit: critical, zero score.
	d := artifact.Discovery{
		"title":      "Revolutionary solar device",
		"domain":     "solar",
		"efficiency": 0.90,
	}

	result, err := NewPhysicalLimitsScorer().Evaluate(context.Background(), d, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d1 := itemByID(t, result, "D1")
	if d1.Score != 0 {
		t.Errorf("critical violation must zero the sub-check, got %v", d1.Score)
	}
	if d1.Passed {
		t.Errorf("critical violation must fail the sub-check")
	}
	if !strings.Contains(d1.Reasoning, "critical") {
		t.Errorf("reasoning should name the severity, got %q", d1.Reasoning)
	}
}

func TestPhysicalLimits_TandemDeclaredPasses(t *testing.T) {
	d := artifact.Discovery{
		"title":      "Tandem perovskite-silicon module",
		"domain":     "solar",
		"technology": "tandem",
		"efficiency": 0.40,
	}

	result, err := NewPhysicalLimitsScorer().Evaluate(context.Background(), d, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d1 := itemByID(t, result, "D1")
	if d1.Score != itemMaxScore {
		t.Errorf("40%% under a declared tandem limit of 46%% should get full credit, got %v", d1.Score)
	}
	if len(d1.Evidence) == 0 {
		t.Errorf("exceeding the single-junction record should be recorded as evidence")
	}
}

func TestPhysicalLimits_EfficiencyScenarios(t *testing.T) {
	tests := []struct {
		name      string
		discovery artifact.Discovery
		wantScore float64
		wantPass  bool
	}{
		{
			name: "wind above Betz is major",
			discovery: artifact.Discovery{
				"domain":     "wind",
				"efficiency": 0.70,
			},
			wantScore: 0,
			wantPass:  false,
		},
		{
			name: "wind within Betz passes",
			discovery: artifact.Discovery{
				"domain":     "wind",
				"efficiency": 0.45,
			},
			wantScore: itemMaxScore,
			wantPass:  true,
		},
		{
			name: "above unity is critical in any domain",
			discovery: artifact.Discovery{
				"domain":     "battery",
				"efficiency": 120.0, // percent form, normalizes to 1.2
			},
			wantScore: 0,
			wantPass:  false,
		},
		{
			name: "thermal claim above Carnot is critical",
			discovery: artifact.Discovery{
				"domain":            "thermal",
				"efficiency":        0.80,
				"hot_temperature_k": 600.0,
				"t_cold":            300.0,
			},
			wantScore: 0,
			wantPass:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewPhysicalLimitsScorer().Evaluate(context.Background(), tt.discovery, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			d1 := itemByID(t, result, "D1")
			if d1.Score != tt.wantScore {
				t.Errorf("D1 score = %v, want %v", d1.Score, tt.wantScore)
			}
			if d1.Passed != tt.wantPass {
				t.Errorf("D1 passed = %v, want %v", d1.Passed, tt.wantPass)
			}
		})
	}
}

func TestPhysicalLimits_MaterialsCeilings(t *testing.T) {
	tests := []struct {
		name      string
		discovery artifact.Discovery
		wantScore float64
	}{
		{
			name: "above metal-air theoretical is critical",
			discovery: artifact.Discovery{
				"domain":         "battery",
				"energy_density": 15000.0,
			},
			wantScore: 0,
		},
		{
			name: "above li-ion ceiling without chemistry is minor",
			discovery: artifact.Discovery{
				"domain":         "battery",
				"energy_density": 500.0,
			},
			wantScore: itemMaxScore * 0.75,
		},
		{
			name: "above li-ion ceiling with solid-state declared passes",
			discovery: artifact.Discovery{
				"domain":         "battery",
				"technology":     "solid-state",
				"energy_density": 500.0,
			},
			wantScore: itemMaxScore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewPhysicalLimitsScorer().Evaluate(context.Background(), tt.discovery, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			d2 := itemByID(t, result, "D2")
			if d2.Score != tt.wantScore {
				t.Errorf("D2 score = %v, want %v", d2.Score, tt.wantScore)
			}
		})
	}
}

func TestPhysicalLimits_EmptyArtifactIsNeutral(t *testing.T) {
	result, err := NewPhysicalLimitsScorer().Evaluate(context.Background(), artifact.Discovery{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Score != benchmark.MaxScore {
		t.Errorf("sparse artifact should pass vacuously at full score, got %v", result.Score)
	}
	if result.Confidence != 0.5 {
		t.Errorf("confidence should drop to 0.5 with nothing extracted, got %v", result.Confidence)
	}
	if result.Metadata.ChecksRun != 0 {
		t.Errorf("no checks should count as run, got %d", result.Metadata.ChecksRun)
	}
	if result.Metadata.ChecksSkipped != 7 {
		t.Errorf("all seven checks should count as skipped, got %d", result.Metadata.ChecksSkipped)
	}
}

func TestPhysicalLimits_ConservationRoundTrip(t *testing.T) {
	d := artifact.Discovery{
		"domain":                "battery",
		"round_trip_efficiency": 1.05,
	}
	result, err := NewPhysicalLimitsScorer().Evaluate(context.Background(), d, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d4 := itemByID(t, result, "D4")
	if d4.Score != 0 || d4.Passed {
		t.Errorf("round-trip above unity must zero D4, got score=%v passed=%v", d4.Score, d4.Passed)
	}
}

func TestPhysicalLimits_ResultNormalization(t *testing.T) {
	d := artifact.Discovery{
		"domain":     "solar",
		"efficiency": 0.50,
	}
	result, err := NewPhysicalLimitsScorer().Evaluate(context.Background(), d, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MaxScore != benchmark.MaxScore {
		t.Errorf("result must normalize to max %v, got %v", benchmark.MaxScore, result.MaxScore)
	}
	if result.Score < 0 || result.Score > result.MaxScore {
		t.Errorf("score %v outside [0, %v]", result.Score, result.MaxScore)
	}
	if err := result.Validate(); err != nil {
		t.Errorf("result failed its own invariants: %v", err)
	}
	// One minor violation among seven items: (7.5 + 6*10) / 70 * 10
	want := 67.5 / 70.0 * 10.0
	if diff := result.Score - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected fused score %.4f, got %.4f", want, result.Score)
	}
}
