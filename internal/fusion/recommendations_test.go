package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchfuse/domain/benchmark"
	"benchfuse/domain/verdict"
)

func failedResult(kind benchmark.Kind, items ...benchmark.ItemResult) benchmark.Result {
	return benchmark.Result{
		Kind:       kind,
		Score:      3.0,
		MaxScore:   benchmark.MaxScore,
		Passed:     false,
		Confidence: 0.8,
		Items:      items,
	}
}

func failedItem(name string, score float64, suggestions ...string) benchmark.ItemResult {
	return benchmark.ItemResult{
		ID:          name,
		Name:        name,
		Score:       score,
		MaxScore:    10,
		Passed:      false,
		Reasoning:   name + " fell short",
		Suggestions: suggestions,
	}
}

func TestBuild_SurfacesFailedItems(t *testing.T) {
	b := NewRecommendationBuilder()
	results := []benchmark.Result{
		failedResult(benchmark.KindPhysicalLimits,
			failedItem("efficiency_ceiling", 0, "re-measure efficiency under standard conditions"),
			failedItem("temperature_bounds", 4.0),
			failedItem("density_sanity", 2.0),
		),
	}

	recs := b.Build(results, nil, verdict.AgreementHigh)

	require.Len(t, recs, 2, "at most two failed items per benchmark")
	assert.Equal(t, verdict.PriorityHigh, recs[0].Priority, "zero-scored item is high priority")
	assert.Equal(t, "re-measure efficiency under standard conditions", recs[0].Action)
	assert.Equal(t, verdict.PriorityMedium, recs[1].Priority)
	assert.Equal(t, "temperature_bounds fell short", recs[1].Action, "no suggestion falls back to reasoning")
}

func TestBuild_PassedBenchmarksContributeNothing(t *testing.T) {
	b := NewRecommendationBuilder()
	results := []benchmark.Result{{
		Kind:   benchmark.KindPracticality,
		Score:  9.0,
		Passed: true,
		Items:  []benchmark.ItemResult{failedItem("minor_check", 4.0)},
	}}

	assert.Empty(t, b.Build(results, nil, verdict.AgreementHigh))
}

func TestBuild_DiscrepancyPriorities(t *testing.T) {
	b := NewRecommendationBuilder()
	discrepancies := []verdict.Discrepancy{
		{KindA: benchmark.KindPhysicalLimits, KindB: benchmark.KindPracticality, ScoreA: 0.9, ScoreB: 0.55, Difference: 0.35, PossibleCause: genericCause},
		{KindA: benchmark.KindPhysicalLimits, KindB: benchmark.KindLiterature, ScoreA: 0.95, ScoreB: 0.4, Difference: 0.55, PossibleCause: genericCause},
	}

	recs := b.Build(nil, discrepancies, verdict.AgreementHigh)

	require.Len(t, recs, 2)
	// Stable sort puts the wide (high-priority) gap first.
	assert.Equal(t, verdict.PriorityHigh, recs[0].Priority)
	assert.Contains(t, recs[0].Summary, "literature")
	assert.Equal(t, verdict.PriorityMedium, recs[1].Priority)
}

func TestBuild_LowAgreementAddsCautionNamingAllBenchmarks(t *testing.T) {
	b := NewRecommendationBuilder()
	results := []benchmark.Result{
		{Kind: benchmark.KindPhysicalLimits, Passed: true},
		{Kind: benchmark.KindConvergence, Passed: true},
	}

	recs := b.Build(results, nil, verdict.AgreementLow)

	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Action, "physical-limits")
	assert.Contains(t, recs[0].Action, "convergence")
}

func TestBuild_TruncatesAtCap(t *testing.T) {
	b := NewRecommendationBuilder()
	results := make([]benchmark.Result, 0, len(benchmark.AllKinds()))
	for _, kind := range benchmark.AllKinds() {
		results = append(results, failedResult(kind,
			failedItem("first", 0),
			failedItem("second", 0),
		))
	}
	discrepancies := []verdict.Discrepancy{
		{KindA: benchmark.KindPhysicalLimits, KindB: benchmark.KindPracticality, Difference: 0.5},
		{KindA: benchmark.KindLiterature, KindB: benchmark.KindConvergence, Difference: 0.5},
	}

	recs := b.Build(results, discrepancies, verdict.AgreementLow)

	assert.Len(t, recs, MaxRecommendations)
	for _, r := range recs {
		assert.Equal(t, verdict.PriorityHigh, r.Priority, "truncation keeps the highest priorities")
	}
}

func TestBuild_IsDeterministic(t *testing.T) {
	b := NewRecommendationBuilder()
	results := []benchmark.Result{
		failedResult(benchmark.KindPhysicalLimits, failedItem("a", 0), failedItem("b", 0)),
		failedResult(benchmark.KindPracticality, failedItem("c", 0)),
	}

	first := b.Build(results, nil, verdict.AgreementModerate)
	second := b.Build(results, nil, verdict.AgreementModerate)
	assert.Equal(t, first, second)
}

func TestCompletenessRecommendation(t *testing.T) {
	rec := CompletenessRecommendation()
	assert.Equal(t, verdict.PriorityHigh, rec.Priority)
	assert.NotEmpty(t, rec.Action)
}
