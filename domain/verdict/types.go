package verdict

import (
	"benchfuse/domain/benchmark"
	"benchfuse/domain/core"
)

// AgreementLevel buckets the variance of normalized scores across benchmarks.
type AgreementLevel string

const (
	AgreementHigh     AgreementLevel = "high"
	AgreementModerate AgreementLevel = "moderate"
	AgreementLow      AgreementLevel = "low"
)

// Priority orders recommendations for display and truncation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank gives the sort order for a priority (high sorts first).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Discrepancy records a pairwise disagreement between two benchmarks whose
// normalized scores differ by more than the discrepancy threshold.
type Discrepancy struct {
	KindA         benchmark.Kind `json:"kind_a"`
	KindB         benchmark.Kind `json:"kind_b"`
	ScoreA        float64        `json:"score_a"`
	ScoreB        float64        `json:"score_b"`
	Difference    float64        `json:"difference"`
	PossibleCause string         `json:"possible_cause"`
}

// Recommendation is one prioritized, human-actionable follow-up.
type Recommendation struct {
	Priority Priority       `json:"priority"`
	Source   benchmark.Kind `json:"source,omitempty"`
	Summary  string         `json:"summary"`
	Action   string         `json:"action,omitempty"`
}

// ConfidenceBreakdown records how one benchmark's weight entered the fusion.
type ConfidenceBreakdown struct {
	Kind            benchmark.Kind `json:"kind"`
	BaseWeight      float64        `json:"base_weight"`
	Confidence      float64        `json:"confidence"`
	EffectiveWeight float64        `json:"effective_weight"`
}

// AggregatedValidation is the final fused artifact of one validation call.
// It is created fresh per call and never mutated after return.
type AggregatedValidation struct {
	ValidationID        core.ValidationID     `json:"validation_id"`
	OverallScore        float64               `json:"overall_score"`
	OverallPassed       bool                  `json:"overall_passed"`
	Benchmarks          []benchmark.Result    `json:"benchmarks"`
	AgreementLevel      AgreementLevel        `json:"agreement_level"`
	Discrepancies       []Discrepancy         `json:"discrepancies"`
	Recommendations     []Recommendation      `json:"recommendations"`
	ConfidenceBreakdown []ConfidenceBreakdown `json:"confidence_breakdown"`
	CreatedAt           core.Timestamp        `json:"created_at"`
}

// BenchmarkByKind returns the contributing result for a kind, if included.
func (v *AggregatedValidation) BenchmarkByKind(kind benchmark.Kind) (benchmark.Result, bool) {
	for _, b := range v.Benchmarks {
		if b.Kind == kind {
			return b, true
		}
	}
	return benchmark.Result{}, false
}
