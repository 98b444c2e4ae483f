package scorer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"benchfuse/domain/artifact"
	"benchfuse/domain/benchmark"
)

const (
	practicalityVersion = "1.0.2"
	practicalityPass    = 6.0
)

// criticalMaterials are supply-constrained elements whose presence in the
// bill of materials caps the feasibility sub-score.
var criticalMaterials = []string{
	"iridium", "platinum", "palladium", "rhodium",
	"scandium", "tellurium", "gallium", "indium",
}

// PracticalityScorer estimates engineering and economic feasibility from the
// declared costs, materials and readiness hints. It is heuristic, so its
// confidence scales with how much of the artifact it could actually read.
type PracticalityScorer struct{}

// NewPracticalityScorer creates the scorer.
func NewPracticalityScorer() *PracticalityScorer {
	return &PracticalityScorer{}
}

// Kind implements Scorer.
func (s *PracticalityScorer) Kind() benchmark.Kind {
	return benchmark.KindPracticality
}

// Evaluate implements Scorer.
func (s *PracticalityScorer) Evaluate(ctx context.Context, d artifact.Discovery, vctx *artifact.Context) (benchmark.Result, error) {
	start := time.Now()
	var items []benchmark.ItemResult
	extracted := 0
	skipped := 0

	// P1: cost realism
	if cost, ok := d.NumberAt("cost_per_kwh", "economics.cost_per_kwh", "metrics.cost_per_kwh"); ok {
		extracted++
		item := benchmark.ItemResult{ID: "P1", Name: "cost_realism", MaxScore: itemMaxScore}
		switch {
		case cost <= 0:
			item.Score = 0
			item.Reasoning = fmt.Sprintf("non-positive cost claim (%.2f $/kWh)", cost)
		case cost < 10:
			item.Score = itemMaxScore * 0.25
			item.Reasoning = fmt.Sprintf("%.2f $/kWh is an order of magnitude below any demonstrated system", cost)
			item.Suggestions = []string{"justify the cost basis against current best-in-class systems"}
		default:
			item.Score = itemMaxScore
			item.Reasoning = "declared cost within plausible range"
		}
		item.Passed = item.Score >= itemMaxScore*0.5
		items = append(items, item)
	} else {
		skipped++
		items = append(items, neutralItem("P1", "cost_realism", "no cost claim present; check vacuously passes", itemMaxScore))
	}

	// P2: material availability
	if materials := d.Materials(); len(materials) > 0 {
		extracted++
		item := benchmark.ItemResult{ID: "P2", Name: "material_availability", MaxScore: itemMaxScore}
		var constrained []string
		for _, m := range materials {
			for _, crit := range criticalMaterials {
				if containsFold(m, crit) {
					constrained = append(constrained, crit)
				}
			}
		}
		if len(constrained) == 0 {
			item.Score = itemMaxScore
			item.Passed = true
			item.Reasoning = "no supply-constrained elements in the bill of materials"
		} else {
			item.Score = itemMaxScore * 0.5
			item.Passed = true
			item.Reasoning = fmt.Sprintf("depends on supply-constrained elements: %v", constrained)
			item.Suggestions = []string{"evaluate substitution or loading reduction for constrained elements"}
			item.Evidence = constrained
		}
		items = append(items, item)
	} else {
		skipped++
		items = append(items, neutralItem("P2", "material_availability", "no materials declared; check vacuously passes", itemMaxScore))
	}

	// P3: technology readiness
	if trl, ok := d.NumberAt("trl", "readiness.trl", "technology_readiness_level"); ok {
		extracted++
		item := benchmark.ItemResult{ID: "P3", Name: "technology_readiness", MaxScore: itemMaxScore}
		switch {
		case trl < 1 || trl > 9:
			item.Score = 0
			item.Reasoning = fmt.Sprintf("TRL %.0f outside the 1–9 scale", trl)
		case trl >= 4:
			item.Score = itemMaxScore
			item.Reasoning = fmt.Sprintf("TRL %.0f: validated beyond the lab bench", trl)
		default:
			item.Score = itemMaxScore * 0.75
			item.Reasoning = fmt.Sprintf("TRL %.0f: early-stage concept, scale-up risk remains", trl)
		}
		item.Passed = item.Score >= itemMaxScore*0.5
		items = append(items, item)
	} else {
		skipped++
		items = append(items, neutralItem("P3", "technology_readiness", "no readiness level declared; check vacuously passes", itemMaxScore))
	}

	// P4: implementation path
	item := benchmark.ItemResult{ID: "P4", Name: "implementation_path", MaxScore: itemMaxScore}
	if path, ok := d.StringAt("implementation", "process", "manufacturing.process"); ok && len(path) >= 40 {
		extracted++
		item.Score = itemMaxScore
		item.Passed = true
		item.Reasoning = "a concrete implementation path is described"
	} else if ok {
		extracted++
		item.Score = itemMaxScore * 0.5
		item.Passed = true
		item.Reasoning = "implementation path described only in passing"
		item.Suggestions = []string{"describe the fabrication or deployment route in enough detail to assess"}
	} else {
		skipped++
		item = neutralItem("P4", "implementation_path", "no implementation description; check vacuously passes", itemMaxScore)
	}
	items = append(items, item)

	confidence := 0.7
	if extracted == 0 {
		confidence = 0.4
	} else if extracted == 1 {
		confidence = 0.55
	}

	meta := benchmark.Metadata{
		Duration:      time.Since(start),
		ChecksRun:     extracted,
		ChecksSkipped: skipped,
		Version:       practicalityVersion,
	}
	return finalize(benchmark.KindPracticality, items, confidence, practicalityPass, meta), nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
