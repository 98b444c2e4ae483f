package scorer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"benchfuse/domain/artifact"
	"benchfuse/domain/benchmark"
)

// physical_limits.go
//
// Deterministic rule engine that checks quantitative claims in a discovery
// against the static limit tables in limits.go. Limits marked thermodynamic
// are inviolable; industry-achieved values are benchmarks whose exceedance is
// recorded as evidence, not as a violation.

const (
	physicalLimitsVersion    = "1.2.0"
	physicalLimitsConfidence = 0.95
	physicalLimitsPass       = 7.0
	itemMaxScore             = 10.0
)

// violation is one exceedance found by a sub-check.
type violation struct {
	Severity Severity
	Limit    PhysicalLimit
	Claimed  float64
	Detail   string
}

// PhysicalLimitsScorer validates claims against physical and thermodynamic
// limits. It is a pure rule check, so its confidence is a high static value.
type PhysicalLimitsScorer struct{}

// NewPhysicalLimitsScorer creates the scorer.
func NewPhysicalLimitsScorer() *PhysicalLimitsScorer {
	return &PhysicalLimitsScorer{}
}

// Kind implements Scorer.
func (s *PhysicalLimitsScorer) Kind() benchmark.Kind {
	return benchmark.KindPhysicalLimits
}

// Evaluate implements Scorer. It never returns an error: a discovery with no
// extractable quantitative claims yields neutral sub-checks and a reduced
// confidence instead.
func (s *PhysicalLimitsScorer) Evaluate(ctx context.Context, d artifact.Discovery, vctx *artifact.Context) (benchmark.Result, error) {
	start := time.Now()

	checks := []struct {
		id   string
		name string
		run  func(artifact.Discovery) (benchmark.ItemResult, bool)
	}{
		{"D1", "thermodynamic_efficiency", s.checkEfficiency},
		{"D2", "materials_feasibility", s.checkMaterials},
		{"D3", "reaction_kinetics", s.checkKinetics},
		{"D4", "conservation_laws", s.checkConservation},
		{"D5", "storage_ceilings", s.checkStorage},
		{"D6", "electrolysis_ceilings", s.checkElectrolysis},
		{"D7", "scale_up_feasibility", s.checkScaleUp},
	}

	items := make([]benchmark.ItemResult, 0, len(checks))
	extracted := 0
	skipped := 0
	for _, check := range checks {
		item, hadData := check.run(d)
		item.ID = check.id
		item.Name = check.name
		items = append(items, item)
		if hadData {
			extracted++
		} else {
			skipped++
		}
	}

	confidence := physicalLimitsConfidence
	if extracted == 0 {
		// No quantitative claim anywhere: the pass is vacuous.
		confidence = 0.5
	}

	meta := benchmark.Metadata{
		Duration:      time.Since(start),
		ChecksRun:     extracted,
		ChecksSkipped: skipped,
		Version:       physicalLimitsVersion,
	}
	return finalize(benchmark.KindPhysicalLimits, items, confidence, physicalLimitsPass, meta), nil
}

// scoreViolations applies the severity score policy: any major or critical
// violation zeroes the sub-check; 1–2 minors keep 75% credit; more than 2
// minors keep 25%.
func scoreViolations(violations []violation, evidence []string) benchmark.ItemResult {
	minors := 0
	var worst *violation
	for i := range violations {
		v := &violations[i]
		switch v.Severity {
		case SeverityCritical, SeverityMajor:
			if worst == nil || v.Severity == SeverityCritical {
				worst = v
			}
		case SeverityMinor:
			minors++
		}
	}

	item := benchmark.ItemResult{MaxScore: itemMaxScore, Evidence: evidence}
	switch {
	case worst != nil:
		item.Score = 0
		item.Passed = false
		item.Reasoning = fmt.Sprintf("%s violation: claimed %.3g exceeds %s (%.3g %s); %s",
			worst.Severity, worst.Claimed, worst.Limit.Name, worst.Limit.Value, worst.Limit.Unit, worst.Detail)
		for _, v := range violations {
			item.Suggestions = append(item.Suggestions,
				fmt.Sprintf("revise claim to stay below the %s limit of %.3g %s", v.Limit.Name, v.Limit.Value, v.Limit.Unit))
		}
	case minors > 2:
		item.Score = itemMaxScore * 0.25
		item.Passed = false
		item.Reasoning = fmt.Sprintf("%d minor limit exceedances against undeclared architecture assumptions", minors)
	case minors > 0:
		item.Score = itemMaxScore * 0.75
		item.Passed = true
		item.Reasoning = fmt.Sprintf("%d minor exceedance(s); claim may be valid under an architecture not stated", minors)
	default:
		item.Score = itemMaxScore
		item.Passed = true
		item.Reasoning = "all extracted claims within applicable physical limits"
	}
	for _, v := range violations {
		if v.Severity == SeverityMinor {
			item.Suggestions = append(item.Suggestions,
				fmt.Sprintf("declare the device architecture that justifies exceeding %s (%.3g)", v.Limit.Name, v.Limit.Value))
		}
	}
	return item
}

// selectSolarLimit picks the tightest applicable ceiling for the detected
// sub-architecture, walking the table's fixed priority order. The ultimate
// limit applies unconditionally; architecture-gated limits require their
// keyword. The single-junction entry is the default.
func selectSolarLimit(d artifact.Discovery) (PhysicalLimit, bool) {
	limits := SolarLimits()
	if d.ContainsKeyword("concentrator", "concentrated", "cpv") {
		return limits[1], true
	}
	if d.ContainsKeyword("tandem", "multi-junction", "multijunction") {
		return limits[2], true
	}
	// false: the architecture was assumed, not declared
	return limits[3], false
}

func (s *PhysicalLimitsScorer) checkEfficiency(d artifact.Discovery) (benchmark.ItemResult, bool) {
	claim, ok := d.NumberAt("efficiency", "performance.efficiency", "metrics.efficiency", "claimed_efficiency")
	if !ok {
		return neutralItem("", "", "no efficiency claim present; check vacuously passes", itemMaxScore), false
	}
	claim = artifact.NormalizeFraction(claim)

	var violations []violation
	var evidence []string

	if claim > 1.0 {
		violations = append(violations, violation{
			Severity: SeverityCritical,
			Limit:    PhysicalLimit{Name: "unity_conversion", Value: 1.0, Unit: "fraction", Kind: LimitThermodynamic},
			Claimed:  claim,
			Detail:   "conversion efficiency above 100% violates energy conservation",
		})
		return scoreViolations(violations, evidence), true
	}

	domain := strings.ToLower(d.Domain()) + " " + d.ContextText()
	switch {
	case strings.Contains(domain, "solar") || strings.Contains(domain, "photovoltaic") || strings.Contains(domain, "perovskite"):
		if claim > SolarUltimateLimit {
			violations = append(violations, violation{
				Severity: SeverityCritical,
				Limit:    SolarLimits()[0],
				Claimed:  claim,
				Detail:   "exceeds the thermodynamic ceiling for any solar converter",
			})
			break
		}
		limit, declared := selectSolarLimit(d)
		if claim > limit.Value {
			severity := SeverityMinor
			detail := "architecture permitting this efficiency was not declared"
			if declared {
				severity = SeverityMajor
				detail = "exceeds the detailed-balance limit for the declared architecture"
			}
			violations = append(violations, violation{Severity: severity, Limit: limit, Claimed: claim, Detail: detail})
		} else if claim > SolarSingleJunctionRecord {
			evidence = append(evidence, fmt.Sprintf("claimed %.1f%% exceeds the demonstrated single-junction record of %.1f%%",
				claim*100, SolarSingleJunctionRecord*100))
		}
	case strings.Contains(domain, "wind") || strings.Contains(domain, "turbine"):
		if claim > WindBetzLimit {
			violations = append(violations, violation{
				Severity: SeverityMajor,
				Limit:    PhysicalLimit{Name: "betz_limit", Value: WindBetzLimit, Unit: "fraction", Kind: LimitPhysics},
				Claimed:  claim,
				Detail:   "no turbine extracts more than the Betz fraction of free-stream energy",
			})
		} else if claim > WindIndustryCp {
			evidence = append(evidence, fmt.Sprintf("claimed Cp %.2f exceeds the best modern turbines (%.2f)", claim, WindIndustryCp))
		}
	case strings.Contains(domain, "carnot") || strings.Contains(domain, "heat engine") || strings.Contains(domain, "thermal"):
		if carnot, ok := carnotCeiling(d); ok {
			if carnot >= 1.0 {
				violations = append(violations, violation{
					Severity: SeverityCritical,
					Limit:    PhysicalLimit{Name: "carnot", Value: 1.0, Unit: "fraction", Kind: LimitThermodynamic},
					Claimed:  carnot,
					Detail:   "stated temperatures give a Carnot factor of at least one",
				})
			} else if claim > carnot {
				violations = append(violations, violation{
					Severity: SeverityCritical,
					Limit:    PhysicalLimit{Name: "carnot", Value: carnot, Unit: "fraction", Formula: "1 - Tc/Th", Kind: LimitThermodynamic},
					Claimed:  claim,
					Detail:   "exceeds the Carnot limit for the stated temperatures",
				})
			}
		}
	}

	return scoreViolations(violations, evidence), true
}

// carnotCeiling computes 1 − Tc/Th from stated temperatures (kelvin).
func carnotCeiling(d artifact.Discovery) (float64, bool) {
	hot, okH := d.NumberAt("hot_temperature_k", "conditions.hot_temperature_k", "t_hot")
	cold, okC := d.NumberAt("cold_temperature_k", "conditions.cold_temperature_k", "t_cold")
	if !okH || !okC || hot <= 0 || cold <= 0 {
		return 0, false
	}
	if cold >= hot {
		return 1.0, true
	}
	return 1.0 - cold/hot, true
}

func (s *PhysicalLimitsScorer) checkMaterials(d artifact.Discovery) (benchmark.ItemResult, bool) {
	density, ok := d.NumberAt("energy_density", "performance.energy_density", "metrics.energy_density_wh_kg", "specific_energy")
	if !ok {
		return neutralItem("", "", "no specific-energy claim present; check vacuously passes", itemMaxScore), false
	}

	var violations []violation
	var evidence []string
	switch {
	case density > LithiumAirTheoretical:
		violations = append(violations, violation{
			Severity: SeverityCritical,
			Limit:    PhysicalLimit{Name: "lithium_air_theoretical", Value: LithiumAirTheoretical, Unit: "Wh/kg", Kind: LimitThermodynamic},
			Claimed:  density,
			Detail:   "exceeds the theoretical ceiling of any battery couple",
		})
	case density > LithiumSulfurTheoretical:
		if !d.ContainsKeyword("lithium-air", "li-air", "metal-air") {
			violations = append(violations, violation{
				Severity: SeverityMajor,
				Limit:    PhysicalLimit{Name: "lithium_sulfur_theoretical", Value: LithiumSulfurTheoretical, Unit: "Wh/kg", Kind: LimitPhysics},
				Claimed:  density,
				Detail:   "only metal-air chemistries have a higher theoretical couple",
			})
		}
	case density > LithiumIonPracticalCeiling:
		if !d.ContainsKeyword("lithium-sulfur", "li-s", "solid-state", "lithium-air", "li-air", "metal-air") {
			violations = append(violations, violation{
				Severity: SeverityMinor,
				Limit:    PhysicalLimit{Name: "lithium_ion_practical", Value: LithiumIonPracticalCeiling, Unit: "Wh/kg", Kind: LimitIndustryAchieved},
				Claimed:  density,
				Detail:   "above the intercalation lithium-ion ceiling without a beyond-li-ion chemistry declared",
			})
		} else {
			evidence = append(evidence, fmt.Sprintf("%.0f Wh/kg exceeds the lithium-ion ceiling; plausible for the declared chemistry", density))
		}
	}
	return scoreViolations(violations, evidence), true
}

func (s *PhysicalLimitsScorer) checkKinetics(d artifact.Discovery) (benchmark.ItemResult, bool) {
	cycles, okCycles := d.NumberAt("cycle_life", "performance.cycle_life", "metrics.cycles")
	chargeMin, okCharge := d.NumberAt("charge_time_minutes", "performance.charge_time_minutes")
	if !okCycles && !okCharge {
		return neutralItem("", "", "no kinetics claims present; check vacuously passes", itemMaxScore), false
	}

	var violations []violation
	if okCycles && cycles > CycleLifePlausibleCeiling {
		violations = append(violations, violation{
			Severity: SeverityMinor,
			Limit:    PhysicalLimit{Name: "cycle_life_plausible", Value: CycleLifePlausibleCeiling, Unit: "cycles", Kind: LimitIndustryAchieved},
			Claimed:  cycles,
			Detail:   "beyond demonstrated full-depth cycling without a degradation mechanism stated",
		})
	}
	if okCharge && chargeMin > 0 && chargeMin < ChargeTimeFloorMinutes {
		violations = append(violations, violation{
			Severity: SeverityMinor,
			Limit:    PhysicalLimit{Name: "charge_time_floor", Value: ChargeTimeFloorMinutes, Unit: "minutes", Kind: LimitIndustryAchieved},
			Claimed:  chargeMin,
			Detail:   "implies C-rates beyond demonstrated thermal limits of packaged cells",
		})
	}
	return scoreViolations(violations, nil), true
}

func (s *PhysicalLimitsScorer) checkConservation(d artifact.Discovery) (benchmark.ItemResult, bool) {
	roundTrip, okRT := d.NumberAt("round_trip_efficiency", "performance.round_trip_efficiency", "metrics.round_trip_efficiency")
	energyIn, okIn := d.NumberAt("energy_in", "balance.energy_in")
	energyOut, okOut := d.NumberAt("energy_out", "balance.energy_out")
	if !okRT && !(okIn && okOut) {
		return neutralItem("", "", "no energy-balance claims present; check vacuously passes", itemMaxScore), false
	}

	var violations []violation
	var evidence []string
	if okRT {
		roundTrip = artifact.NormalizeFraction(roundTrip)
		if roundTrip > 1.0 {
			violations = append(violations, violation{
				Severity: SeverityCritical,
				Limit:    PhysicalLimit{Name: "round_trip_unity", Value: 1.0, Unit: "fraction", Kind: LimitThermodynamic},
				Claimed:  roundTrip,
				Detail:   "round-trip efficiency above 100% violates the first law",
			})
		} else if roundTrip > RoundTripIndustryBest {
			evidence = append(evidence, fmt.Sprintf("round-trip %.1f%% exceeds the demonstrated best of %.0f%%",
				roundTrip*100, RoundTripIndustryBest*100))
		}
	}
	if okIn && okOut && energyIn > 0 && energyOut > energyIn {
		violations = append(violations, violation{
			Severity: SeverityCritical,
			Limit:    PhysicalLimit{Name: "energy_balance", Value: energyIn, Unit: "same as claim", Kind: LimitThermodynamic},
			Claimed:  energyOut,
			Detail:   "energy out exceeds energy in",
		})
	}
	return scoreViolations(violations, evidence), true
}

func (s *PhysicalLimitsScorer) checkStorage(d artifact.Discovery) (benchmark.ItemResult, bool) {
	wtPct, ok := d.NumberAt("hydrogen_storage_wt", "performance.hydrogen_storage_wt", "metrics.h2_wt_fraction")
	if !ok {
		return neutralItem("", "", "no chemistry-specific storage claims present; check vacuously passes", itemMaxScore), false
	}
	wtPct = artifact.NormalizeFraction(wtPct)

	var violations []violation
	if wtPct > HydrogenStorageWtPctCeiling {
		violations = append(violations, violation{
			Severity: SeverityMajor,
			Limit:    PhysicalLimit{Name: "hydrogen_storage_ceiling", Value: HydrogenStorageWtPctCeiling, Unit: "fraction", Kind: LimitPhysics},
			Claimed:  wtPct,
			Detail:   "above the reversible solid-state storage ceiling",
		})
	}
	return scoreViolations(violations, nil), true
}

func (s *PhysicalLimitsScorer) checkElectrolysis(d artifact.Discovery) (benchmark.ItemResult, bool) {
	eff, ok := d.NumberAt("electrolysis_efficiency", "performance.electrolysis_efficiency", "metrics.electrolyzer_efficiency")
	if !ok {
		return neutralItem("", "", "no electrolysis claims present; check vacuously passes", itemMaxScore), false
	}
	eff = artifact.NormalizeFraction(eff)

	var violations []violation
	var evidence []string
	switch {
	case eff > 1.0:
		violations = append(violations, violation{
			Severity: SeverityCritical,
			Limit:    PhysicalLimit{Name: "electrolysis_unity", Value: 1.0, Unit: "fraction", Kind: LimitThermodynamic},
			Claimed:  eff,
			Detail:   "electrolysis efficiency above 100% violates energy conservation",
		})
	case eff > ElectrolysisThermoneutralLimit:
		violations = append(violations, violation{
			Severity: SeverityMajor,
			Limit:    PhysicalLimit{Name: "thermoneutral_limit", Value: ElectrolysisThermoneutralLimit, Unit: "fraction", Formula: "HHV basis, no external heat", Kind: LimitPhysics},
			Claimed:  eff,
			Detail:   "above the thermoneutral ceiling without external heat input",
		})
	case eff > ElectrolysisIndustryBest:
		evidence = append(evidence, fmt.Sprintf("%.0f%% exceeds the best demonstrated electrolyzer systems (%.0f%%)",
			eff*100, ElectrolysisIndustryBest*100))
	}
	return scoreViolations(violations, evidence), true
}

func (s *PhysicalLimitsScorer) checkScaleUp(d artifact.Discovery) (benchmark.ItemResult, bool) {
	cf, ok := d.NumberAt("capacity_factor", "deployment.capacity_factor", "metrics.capacity_factor")
	if !ok {
		return neutralItem("", "", "no deployment claims present; check vacuously passes", itemMaxScore), false
	}
	cf = artifact.NormalizeFraction(cf)

	var violations []violation
	if cf > 1.0 {
		violations = append(violations, violation{
			Severity: SeverityCritical,
			Limit:    PhysicalLimit{Name: "capacity_factor_unity", Value: 1.0, Unit: "fraction", Kind: LimitThermodynamic},
			Claimed:  cf,
			Detail:   "capacity factor above one is more output than continuous rated operation",
		})
	} else if cf > SolarCapacityFactorCeiling && d.ContainsKeyword("solar", "photovoltaic", "pv") &&
		!d.ContainsKeyword("tracking", "concentrator", "concentrated") {
		violations = append(violations, violation{
			Severity: SeverityMinor,
			Limit:    PhysicalLimit{Name: "solar_capacity_factor", Value: SolarCapacityFactorCeiling, Unit: "fraction", Kind: LimitIndustryAchieved},
			Claimed:  cf,
			Detail:   "above the irradiance budget of fixed unconcentrated solar without tracking declared",
		})
	}
	return scoreViolations(violations, nil), true
}
