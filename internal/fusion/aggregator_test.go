package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchfuse/domain/benchmark"
	"benchfuse/domain/core"
	"benchfuse/domain/verdict"
)

func mkResult(kind benchmark.Kind, normalized, confidence float64) benchmark.Result {
	return benchmark.Result{
		Kind:       kind,
		Score:      normalized * benchmark.MaxScore,
		MaxScore:   benchmark.MaxScore,
		Passed:     normalized >= 0.7,
		Weight:     benchmark.DefaultBaseWeights()[kind],
		Confidence: confidence,
		Metadata:   benchmark.Metadata{Version: "test"},
	}
}

func TestAggregate_WeightedAverage(t *testing.T) {
	// physical-limits 0.9 at weight 0.25, practicality 0.5 at weight 0.20,
	// both fully confident: (0.9*0.25 + 0.5*0.20) / 0.45 * 10.
	agg := NewAggregator(DefaultOptions())
	results := []benchmark.Result{
		mkResult(benchmark.KindPhysicalLimits, 0.9, 1.0),
		mkResult(benchmark.KindPracticality, 0.5, 1.0),
	}

	v := agg.Aggregate(core.NewValidationID(), results)

	assert.InDelta(t, 7.2222, v.OverallScore, 0.001)
	assert.True(t, v.OverallPassed)
	assert.Len(t, v.Benchmarks, 2)
}

func TestAggregate_ConfidenceFiltering(t *testing.T) {
	agg := NewAggregator(DefaultOptions())
	results := []benchmark.Result{
		mkResult(benchmark.KindPhysicalLimits, 0.9, 1.0),
		mkResult(benchmark.KindConvergence, 0.1, 0.1), // below minimum 0.3
	}

	v := agg.Aggregate(core.NewValidationID(), results)

	require.Len(t, v.Benchmarks, 1)
	assert.Equal(t, benchmark.KindPhysicalLimits, v.Benchmarks[0].Kind)
	// The filtered result must not drag the score down.
	assert.InDelta(t, 9.0, v.OverallScore, 0.001)
}

func TestAggregate_EffectiveWeights(t *testing.T) {
	agg := NewAggregator(DefaultOptions())
	results := []benchmark.Result{
		mkResult(benchmark.KindPhysicalLimits, 0.8, 0.95),
	}

	v := agg.Aggregate(core.NewValidationID(), results)

	require.Len(t, v.ConfidenceBreakdown, 1)
	cb := v.ConfidenceBreakdown[0]
	assert.Equal(t, 0.25, cb.BaseWeight)
	assert.Equal(t, 0.95, cb.Confidence)
	assert.InDelta(t, 0.2375, cb.EffectiveWeight, 1e-9)
}

func TestAggregate_AgreementLevels(t *testing.T) {
	tests := []struct {
		name       string
		normalized []float64
		want       verdict.AgreementLevel
	}{
		{"close scores agree", []float64{0.8, 0.82}, verdict.AgreementHigh},
		{"wide spread disagrees", []float64{0.9, 0.5}, verdict.AgreementLow},
		{"middling spread is moderate", []float64{0.8, 0.6}, verdict.AgreementModerate},
		{"single benchmark vacuously agrees", []float64{0.2}, verdict.AgreementHigh},
	}

	kinds := []benchmark.Kind{
		benchmark.KindPhysicalLimits,
		benchmark.KindPracticality,
		benchmark.KindLiterature,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewAggregator(DefaultOptions())
			results := make([]benchmark.Result, 0, len(tt.normalized))
			for i, n := range tt.normalized {
				results = append(results, mkResult(kinds[i], n, 1.0))
			}
			v := agg.Aggregate(core.NewValidationID(), results)
			assert.Equal(t, tt.want, v.AgreementLevel)
		})
	}
}

func TestAggregate_StrictModeRequiresAllPassed(t *testing.T) {
	opts := DefaultOptions()
	opts.Strict = true
	agg := NewAggregator(opts)

	// High weighted average, but practicality itself failed.
	results := []benchmark.Result{
		mkResult(benchmark.KindExternalRubric, 0.95, 1.0),
		mkResult(benchmark.KindPhysicalLimits, 0.95, 1.0),
		mkResult(benchmark.KindPracticality, 0.55, 1.0),
	}

	v := agg.Aggregate(core.NewValidationID(), results)
	assert.GreaterOrEqual(t, v.OverallScore, 7.0)
	assert.False(t, v.OverallPassed, "strict mode must fail when any benchmark failed")
}

func TestAggregate_WeightOverrides(t *testing.T) {
	opts := DefaultOptions()
	opts.BaseWeights = map[benchmark.Kind]float64{
		benchmark.KindPhysicalLimits: 1.0,
		benchmark.KindPracticality:   0.0,
	}
	agg := NewAggregator(opts)
	results := []benchmark.Result{
		mkResult(benchmark.KindPhysicalLimits, 0.9, 1.0),
		mkResult(benchmark.KindPracticality, 0.1, 1.0),
	}

	v := agg.Aggregate(core.NewValidationID(), results)
	assert.InDelta(t, 9.0, v.OverallScore, 0.001, "zero-weight benchmark should not contribute")
}

func TestAggregate_ZeroSurvivorsIsDegenerate(t *testing.T) {
	agg := NewAggregator(DefaultOptions())

	v := agg.Aggregate(core.NewValidationID(), nil)

	assert.Zero(t, v.OverallScore)
	assert.False(t, v.OverallPassed)
	assert.Empty(t, v.Benchmarks)
	assert.Empty(t, v.Discrepancies)
	assert.NotEmpty(t, v.ValidationID)
}

func TestDetectDiscrepancies_Threshold(t *testing.T) {
	wide := []benchmark.Result{
		mkResult(benchmark.KindPhysicalLimits, 0.9, 1.0),
		mkResult(benchmark.KindPracticality, 0.5, 1.0),
	}
	ds := DetectDiscrepancies(wide)
	require.Len(t, ds, 1)
	assert.InDelta(t, 0.4, ds[0].Difference, 1e-9)
	assert.Contains(t, ds[0].PossibleCause, "practically challenging")

	narrow := []benchmark.Result{
		mkResult(benchmark.KindPhysicalLimits, 0.7, 1.0),
		mkResult(benchmark.KindPracticality, 0.65, 1.0),
	}
	assert.Empty(t, DetectDiscrepancies(narrow))
}

func TestDetectDiscrepancies_GenericCauseForUnlistedPair(t *testing.T) {
	results := []benchmark.Result{
		mkResult(benchmark.KindLiterature, 0.9, 1.0),
		mkResult(benchmark.KindConvergence, 0.4, 1.0),
	}
	ds := DetectDiscrepancies(results)
	require.Len(t, ds, 1)
	assert.Equal(t, genericCause, ds[0].PossibleCause)
}
