package fusion

import (
	"github.com/montanaflynn/stats"

	"benchfuse/domain/benchmark"
	"benchfuse/domain/core"
	"benchfuse/domain/verdict"
	"benchfuse/internal/logging"
)

// aggregator.go
//
// Confidence-weighted fusion of independent benchmark results into one
// verdict. Pure computation: no I/O, no clock reads beyond the CreatedAt
// stamp, no mutation of inputs.

const (
	// DefaultMinConfidence excludes benchmarks whose self-reported
	// confidence is too low to contribute signal.
	DefaultMinConfidence = 0.3
	// DefaultPassThreshold on the fused 0-10 score.
	DefaultPassThreshold = 7.0

	// Dispersion buckets over the spread (population standard deviation)
	// of normalized scores.
	highAgreementSpread     = 0.05
	moderateAgreementSpread = 0.15
)

// Options tunes one aggregation pass. The zero value is not usable; build
// with DefaultOptions and override.
type Options struct {
	// BaseWeights maps benchmark kind to relative importance. Weights are
	// relative, not probabilities; they need not sum to 1.
	BaseWeights map[benchmark.Kind]float64
	// MinConfidence below which a result is dropped from fusion.
	MinConfidence float64
	// PassThreshold on the fused score.
	PassThreshold float64
	// Strict additionally requires every included benchmark to have passed.
	Strict bool
}

// DefaultOptions returns the calibrated defaults.
func DefaultOptions() Options {
	return Options{
		BaseWeights:   benchmark.DefaultBaseWeights(),
		MinConfidence: DefaultMinConfidence,
		PassThreshold: DefaultPassThreshold,
	}
}

// Aggregator fuses benchmark results. Stateless; safe for concurrent use.
type Aggregator struct {
	opts Options
	log  *logging.Logger
}

// NewAggregator creates an aggregator with the given options. Missing weight
// entries fall back to the defaults; zero thresholds fall back likewise.
func NewAggregator(opts Options) *Aggregator {
	if opts.BaseWeights == nil {
		opts.BaseWeights = benchmark.DefaultBaseWeights()
	}
	if opts.MinConfidence <= 0 {
		opts.MinConfidence = DefaultMinConfidence
	}
	if opts.PassThreshold <= 0 {
		opts.PassThreshold = DefaultPassThreshold
	}
	return &Aggregator{opts: opts, log: logging.NewDefaultLogger("Aggregator")}
}

// Aggregate fuses results into one verdict. Recommendations are left empty;
// the recommendation builder fills them in a separate pass. The input order
// is preserved in the output so downstream iteration stays deterministic.
func (a *Aggregator) Aggregate(id core.ValidationID, results []benchmark.Result) verdict.AggregatedValidation {
	included := make([]benchmark.Result, 0, len(results))
	for _, r := range results {
		if r.Confidence < a.opts.MinConfidence {
			a.log.Debug("excluding %s: confidence %.2f below minimum %.2f", r.Kind, r.Confidence, a.opts.MinConfidence)
			continue
		}
		included = append(included, r)
	}

	if len(included) == 0 {
		return verdict.AggregatedValidation{
			ValidationID:        id,
			OverallScore:        0,
			OverallPassed:       false,
			Benchmarks:          []benchmark.Result{},
			AgreementLevel:      verdict.AgreementHigh,
			Discrepancies:       []verdict.Discrepancy{},
			Recommendations:     []verdict.Recommendation{},
			ConfidenceBreakdown: []verdict.ConfidenceBreakdown{},
			CreatedAt:           core.Now(),
		}
	}

	var weightedSum, weightSum float64
	breakdown := make([]verdict.ConfidenceBreakdown, 0, len(included))
	allPassed := true
	for _, r := range included {
		base := a.baseWeight(r.Kind)
		effective := base * r.Confidence
		weightedSum += r.Normalized() * effective
		weightSum += effective
		if !r.Passed {
			allPassed = false
		}
		breakdown = append(breakdown, verdict.ConfidenceBreakdown{
			Kind:            r.Kind,
			BaseWeight:      base,
			Confidence:      r.Confidence,
			EffectiveWeight: effective,
		})
	}

	overall := 0.0
	if weightSum > 0 {
		overall = weightedSum / weightSum * benchmark.MaxScore
	}
	passed := overall >= a.opts.PassThreshold
	if a.opts.Strict {
		passed = passed && allPassed
	}

	return verdict.AggregatedValidation{
		ValidationID:        id,
		OverallScore:        overall,
		OverallPassed:       passed,
		Benchmarks:          included,
		AgreementLevel:      agreementLevel(included),
		Discrepancies:       DetectDiscrepancies(included),
		Recommendations:     []verdict.Recommendation{},
		ConfidenceBreakdown: breakdown,
		CreatedAt:           core.Now(),
	}
}

// baseWeight resolves a kind's weight, falling back to the calibrated
// default table for kinds the caller's override omits.
func (a *Aggregator) baseWeight(kind benchmark.Kind) float64 {
	if w, ok := a.opts.BaseWeights[kind]; ok {
		return w
	}
	return benchmark.DefaultBaseWeights()[kind]
}

// agreementLevel classifies how closely the included benchmarks agree, using
// the spread (population standard deviation) of their normalized scores.
// Fewer than two benchmarks agree vacuously.
func agreementLevel(included []benchmark.Result) verdict.AgreementLevel {
	if len(included) < 2 {
		return verdict.AgreementHigh
	}
	scores := make([]float64, 0, len(included))
	for _, r := range included {
		scores = append(scores, r.Normalized())
	}
	spread, err := stats.StdDevP(scores)
	if err != nil {
		return verdict.AgreementLow
	}
	switch {
	case spread < highAgreementSpread:
		return verdict.AgreementHigh
	case spread < moderateAgreementSpread:
		return verdict.AgreementModerate
	default:
		return verdict.AgreementLow
	}
}
