package scorer

import (
	"context"
	"fmt"
	"math"
	"time"

	"benchfuse/domain/artifact"
	"benchfuse/domain/benchmark"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

const (
	convergenceVersion = "1.1.0"
	convergencePass    = 6.0

	// residualTolerance: a simulation whose final residual sits below this
	// is treated as numerically converged regardless of the reported flag.
	residualTolerance = 1e-6

	// minIterations: runs shorter than this cannot support a convergence
	// claim for the solver tiers this system sees.
	minIterations = 50
)

// ConvergenceScorer judges the numerical soundness of the attached
// simulation output: did the solver converge, is the residual trend actually
// decreasing, and did it run long enough to mean anything.
type ConvergenceScorer struct{}

// NewConvergenceScorer creates the scorer.
func NewConvergenceScorer() *ConvergenceScorer {
	return &ConvergenceScorer{}
}

// Kind implements Scorer.
func (s *ConvergenceScorer) Kind() benchmark.Kind {
	return benchmark.KindConvergence
}

// Evaluate implements Scorer.
func (s *ConvergenceScorer) Evaluate(ctx context.Context, d artifact.Discovery, vctx *artifact.Context) (benchmark.Result, error) {
	start := time.Now()

	if vctx == nil || vctx.Simulation == nil {
		// No simulation attached: neutral pass at low confidence.
		items := []benchmark.ItemResult{
			neutralItem("C1", "convergence_state", "no simulation output attached; check vacuously passes", itemMaxScore),
		}
		meta := benchmark.Metadata{Duration: time.Since(start), ChecksRun: 0, ChecksSkipped: 3, Version: convergenceVersion}
		return finalize(benchmark.KindConvergence, items, 0.35, convergencePass, meta), nil
	}

	sim := vctx.Simulation
	var items []benchmark.ItemResult
	extracted := 0
	skipped := 0

	// C1: convergence state
	c1 := benchmark.ItemResult{ID: "C1", Name: "convergence_state", MaxScore: itemMaxScore}
	extracted++
	switch {
	case sim.Converged || (sim.FinalResidual > 0 && sim.FinalResidual < residualTolerance):
		c1.Score = itemMaxScore
		c1.Passed = true
		c1.Reasoning = fmt.Sprintf("solver converged (final residual %.2e)", sim.FinalResidual)
	case sim.FinalResidual > 0 && sim.FinalResidual < residualTolerance*100:
		c1.Score = itemMaxScore * 0.5
		c1.Passed = true
		c1.Reasoning = fmt.Sprintf("residual %.2e is near but not below tolerance %.0e", sim.FinalResidual, residualTolerance)
	default:
		c1.Score = 0
		c1.Passed = false
		c1.Reasoning = "solver did not converge"
		c1.Suggestions = []string{"rerun at a higher solver tier or tighter tolerance before trusting the result"}
	}
	items = append(items, c1)

	// C2: residual trend. A linear fit over the log-residual history must
	// slope downward; a flat or rising tail means the converged flag is
	// cosmetic.
	if len(sim.ResidualHistory) >= 3 {
		extracted++
		c2 := benchmark.ItemResult{ID: "C2", Name: "residual_trend", MaxScore: itemMaxScore}
		xs := make([]float64, 0, len(sim.ResidualHistory))
		ys := make([]float64, 0, len(sim.ResidualHistory))
		for i, r := range sim.ResidualHistory {
			if r <= 0 {
				continue
			}
			xs = append(xs, float64(i))
			ys = append(ys, math.Log10(r))
		}
		if len(xs) >= 3 {
			_, slope := stat.LinearRegression(xs, ys, nil, false)
			spread, _ := stats.StandardDeviation(ys)
			switch {
			case slope < -0.01:
				c2.Score = itemMaxScore
				c2.Passed = true
				c2.Reasoning = fmt.Sprintf("residuals decay at %.3f decades/iteration", -slope)
			case slope < 0:
				c2.Score = itemMaxScore * 0.5
				c2.Passed = true
				c2.Reasoning = fmt.Sprintf("residual decay is marginal (slope %.4f, spread %.2f decades)", slope, spread)
			default:
				c2.Score = 0
				c2.Passed = false
				c2.Reasoning = fmt.Sprintf("residuals are not decreasing (slope %.4f)", slope)
			}
		} else {
			c2 = neutralItem("C2", "residual_trend", "residual history contains no positive values; check vacuously passes", itemMaxScore)
		}
		items = append(items, c2)
	} else {
		skipped++
		items = append(items, neutralItem("C2", "residual_trend", "residual history too short to fit a trend; check vacuously passes", itemMaxScore))
	}

	// C3: iteration sufficiency
	if sim.Iterations > 0 {
		extracted++
		c3 := benchmark.ItemResult{ID: "C3", Name: "iteration_sufficiency", MaxScore: itemMaxScore}
		if sim.Iterations >= minIterations {
			c3.Score = itemMaxScore
			c3.Passed = true
			c3.Reasoning = fmt.Sprintf("%d iterations at tier %q", sim.Iterations, sim.Tier)
		} else {
			c3.Score = itemMaxScore * 0.25
			c3.Passed = false
			c3.Reasoning = fmt.Sprintf("only %d iterations; below the %d needed to support a convergence claim", sim.Iterations, minIterations)
		}
		items = append(items, c3)
	} else {
		skipped++
		items = append(items, neutralItem("C3", "iteration_sufficiency", "iteration count not reported; check vacuously passes", itemMaxScore))
	}

	confidence := 0.85
	if extracted <= 1 {
		confidence = 0.5
	}
	meta := benchmark.Metadata{
		Duration:      time.Since(start),
		ChecksRun:     extracted,
		ChecksSkipped: skipped,
		Version:       convergenceVersion,
	}
	return finalize(benchmark.KindConvergence, items, confidence, convergencePass, meta), nil
}
