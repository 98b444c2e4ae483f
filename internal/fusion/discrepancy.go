package fusion

import (
	"math"

	"benchfuse/domain/benchmark"
	"benchfuse/domain/verdict"
)

// DiscrepancyThreshold is the normalized-score gap beyond which two
// benchmarks are considered to disagree.
const DiscrepancyThreshold = 0.3

// kindPair is an unordered benchmark pair; normalize orders the two kinds
// lexicographically so lookups are symmetric.
type kindPair struct {
	a, b benchmark.Kind
}

func normalizePair(a, b benchmark.Kind) kindPair {
	if a > b {
		a, b = b, a
	}
	return kindPair{a: a, b: b}
}

// discrepancyCauses maps unordered benchmark pairs to a likely explanation
// of the disagreement. Unlisted pairs fall back to the generic message.
var discrepancyCauses = map[kindPair]string{
	normalizePair(benchmark.KindPhysicalLimits, benchmark.KindPracticality): "discovery may be physically valid but practically challenging, or vice versa",
	normalizePair(benchmark.KindPhysicalLimits, benchmark.KindLiterature):   "claims may push past what published work supports while staying inside physical limits",
	normalizePair(benchmark.KindPhysicalLimits, benchmark.KindConvergence):  "simulation may not have converged on the regime where the physical claims hold",
	normalizePair(benchmark.KindPracticality, benchmark.KindLiterature):     "literature support and deployment feasibility can diverge for early-stage work",
	normalizePair(benchmark.KindPracticality, benchmark.KindConvergence):    "numerical quality and economic viability measure unrelated failure modes",
	normalizePair(benchmark.KindExternalRubric, benchmark.KindPhysicalLimits): "the external rubric weighs novelty and rigor differently from hard physical ceilings",
	normalizePair(benchmark.KindExternalRubric, benchmark.KindPracticality):   "the external rubric may reward ambition that the practicality check penalizes",
}

const genericCause = "benchmarks assess different aspects of the discovery"

// DetectDiscrepancies compares every unordered pair of included benchmarks
// and records those whose normalized scores differ by more than the
// threshold. Quadratic over a panel of at most five kinds.
func DetectDiscrepancies(included []benchmark.Result) []verdict.Discrepancy {
	discrepancies := []verdict.Discrepancy{}
	for i := 0; i < len(included); i++ {
		for j := i + 1; j < len(included); j++ {
			a, b := included[i], included[j]
			diff := math.Abs(a.Normalized() - b.Normalized())
			if diff <= DiscrepancyThreshold {
				continue
			}
			discrepancies = append(discrepancies, verdict.Discrepancy{
				KindA:         a.Kind,
				KindB:         b.Kind,
				ScoreA:        a.Normalized(),
				ScoreB:        b.Normalized(),
				Difference:    diff,
				PossibleCause: causeFor(a.Kind, b.Kind),
			})
		}
	}
	return discrepancies
}

func causeFor(a, b benchmark.Kind) string {
	if cause, ok := discrepancyCauses[normalizePair(a, b)]; ok {
		return cause
	}
	return genericCause
}
