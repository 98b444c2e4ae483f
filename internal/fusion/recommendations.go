package fusion

import (
	"fmt"
	"sort"
	"strings"

	"benchfuse/domain/benchmark"
	"benchfuse/domain/verdict"
)

// recommendations.go
//
// Pure derivation of prioritized follow-ups from an aggregation pass.
// Iteration order is the order the benchmarks arrived in (the caller's
// enabled order), so truncation is reproducible across runs.

const (
	// MaxRecommendations caps the returned list.
	MaxRecommendations = 10
	// failedItemsPerBenchmark bounds how many failed sub-checks one
	// benchmark may surface.
	failedItemsPerBenchmark = 2
	// highPriorityGap: a discrepancy wider than this is urgent.
	highPriorityGap = 0.4
)

// RecommendationBuilder turns fused results into actionable follow-ups.
type RecommendationBuilder struct{}

// NewRecommendationBuilder creates the builder.
func NewRecommendationBuilder() *RecommendationBuilder {
	return &RecommendationBuilder{}
}

// Build derives recommendations from the included benchmarks, detected
// discrepancies and agreement level, sorted by priority (stable within a
// priority) and truncated to MaxRecommendations.
func (b *RecommendationBuilder) Build(
	benchmarks []benchmark.Result,
	discrepancies []verdict.Discrepancy,
	agreement verdict.AgreementLevel,
) []verdict.Recommendation {
	recs := []verdict.Recommendation{}

	for _, bm := range benchmarks {
		if bm.Passed {
			continue
		}
		surfaced := 0
		for _, item := range bm.Items {
			if item.Passed || surfaced >= failedItemsPerBenchmark {
				continue
			}
			priority := verdict.PriorityMedium
			if item.Score == 0 {
				priority = verdict.PriorityHigh
			}
			rec := verdict.Recommendation{
				Priority: priority,
				Source:   bm.Kind,
				Summary:  fmt.Sprintf("%s: %s failed (%.1f/%.1f)", bm.Kind, item.Name, item.Score, item.MaxScore),
				Action:   itemAction(item),
			}
			recs = append(recs, rec)
			surfaced++
		}
	}

	for _, d := range discrepancies {
		priority := verdict.PriorityMedium
		if d.Difference > highPriorityGap {
			priority = verdict.PriorityHigh
		}
		recs = append(recs, verdict.Recommendation{
			Priority: priority,
			Summary: fmt.Sprintf("%s and %s disagree (%.2f vs %.2f)",
				d.KindA, d.KindB, d.ScoreA, d.ScoreB),
			Action: d.PossibleCause,
		})
	}

	if agreement == verdict.AgreementLow && len(benchmarks) > 0 {
		names := make([]string, 0, len(benchmarks))
		for _, bm := range benchmarks {
			names = append(names, string(bm.Kind))
		}
		recs = append(recs, verdict.Recommendation{
			Priority: verdict.PriorityMedium,
			Summary:  "benchmark agreement is low; treat the fused score with caution",
			Action:   fmt.Sprintf("manually review the spread across: %s", strings.Join(names, ", ")),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})
	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}

// CompletenessRecommendation is the single follow-up attached when no
// benchmark completed at all.
func CompletenessRecommendation() verdict.Recommendation {
	return verdict.Recommendation{
		Priority: verdict.PriorityHigh,
		Summary:  "no benchmarks completed; the discovery could not be validated",
		Action:   "supply the missing context (literature, simulation output, rubric) and revalidate",
	}
}

// itemAction picks the action text for a failed sub-check: its first
// suggestion when present, otherwise its reasoning.
func itemAction(item benchmark.ItemResult) string {
	if len(item.Suggestions) > 0 {
		return item.Suggestions[0]
	}
	return item.Reasoning
}
