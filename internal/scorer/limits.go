package scorer

// limits.go
//
// Static reference tables of physical limits the PhysicalLimitsScorer checks
// quantitative claims against. True physical/thermodynamic limits are
// inviolable; industry-achieved benchmarks are notable when exceeded but not
// violations. These tables are never mutated at runtime.

// LimitKind distinguishes what breaking a limit means.
type LimitKind string

const (
	// LimitThermodynamic limits follow from the laws of thermodynamics.
	// Exceeding one is a critical violation.
	LimitThermodynamic LimitKind = "thermodynamic"
	// LimitPhysics limits follow from device physics under stated
	// assumptions. Exceeding one is major when the assumption is declared,
	// minor when it is not.
	LimitPhysics LimitKind = "physics"
	// LimitIndustryAchieved is the best demonstrated value to date.
	// Exceeding it is notable, never a violation.
	LimitIndustryAchieved LimitKind = "industry-achieved"
)

// PhysicalLimit is one static reference value.
type PhysicalLimit struct {
	Name    string
	Value   float64
	Unit    string
	Formula string
	Context string
	Kind    LimitKind
}

// Severity classifies an exceedance.
type Severity string

const (
	// SeverityCritical violates an absolute physical law.
	SeverityCritical Severity = "critical"
	// SeverityMajor exceeds a hard domain limit.
	SeverityMajor Severity = "major"
	// SeverityMinor exceeds a limit whose architecture assumption was not
	// explicitly stated in the claim.
	SeverityMinor Severity = "minor"
)

// Solar photovoltaic conversion-efficiency ceilings. Selection walks the
// fixed priority order ultimate → concentrator → tandem → single-junction,
// taking the first whose architecture keywords match the claim context.
const (
	// SolarUltimateLimit: Thermodynamic ceiling for fully concentrated
	// sunlight with infinite junctions. No solar converter of any
	// architecture exceeds this.
	SolarUltimateLimit = 0.868

	// SolarConcentratorLimit: Multi-junction limit under unconcentrated
	// terrestrial spectra with concentrator optics.
	SolarConcentratorLimit = 0.684

	// SolarTandemLimit: Detailed-balance limit for a two-junction tandem
	// under one-sun illumination.
	SolarTandemLimit = 0.46

	// SolarSingleJunctionLimit: Shockley–Queisser limit for a single
	// junction under one-sun AM1.5.
	SolarSingleJunctionLimit = 0.337

	// SolarSingleJunctionRecord: Best demonstrated single-junction cell.
	SolarSingleJunctionRecord = 0.272
)

// Wind and thermal machine ceilings.
const (
	// WindBetzLimit: Maximum fraction of kinetic energy extractable from
	// free-stream wind by any turbine.
	WindBetzLimit = 0.593

	// WindIndustryCp: Power coefficient of the best modern turbines.
	WindIndustryCp = 0.50
)

// Electrochemical storage ceilings, specific energy in Wh/kg.
const (
	// LithiumIonPracticalCeiling: Cell-level ceiling for conventional
	// intercalation lithium-ion chemistry.
	LithiumIonPracticalCeiling = 400.0

	// LithiumSulfurTheoretical: Theoretical specific energy of the Li-S
	// couple. No packaged Li-S cell approaches it.
	LithiumSulfurTheoretical = 2600.0

	// LithiumAirTheoretical: Theoretical ceiling of metal-air chemistry,
	// the highest of any battery couple.
	LithiumAirTheoretical = 11400.0

	// RoundTripIndustryBest: Best demonstrated round-trip efficiency for
	// grid-scale lithium-ion storage.
	RoundTripIndustryBest = 0.92
)

// Electrolysis and hydrogen ceilings.
const (
	// ElectrolysisThermoneutralLimit: HHV-basis efficiency ceiling for
	// water electrolysis without external heat input.
	ElectrolysisThermoneutralLimit = 0.83

	// ElectrolysisIndustryBest: Best demonstrated system efficiency for
	// commercial PEM/alkaline electrolyzers.
	ElectrolysisIndustryBest = 0.74

	// HydrogenStorageWtPctCeiling: Material-basis hydrogen storage
	// fraction ceiling for reversible solid-state storage.
	HydrogenStorageWtPctCeiling = 0.085
)

// Kinetics and deployment sanity bounds.
const (
	// CycleLifePlausibleCeiling: Cycle counts above this have never been
	// demonstrated for full-depth cycling of any commercial chemistry.
	CycleLifePlausibleCeiling = 50000.0

	// ChargeTimeFloorMinutes: Full charge below this implies C-rates
	// beyond demonstrated thermal limits of packaged cells.
	ChargeTimeFloorMinutes = 5.0

	// SolarCapacityFactorCeiling: Annual capacity factors above this for
	// unconcentrated fixed solar exceed the available irradiance budget.
	SolarCapacityFactorCeiling = 0.35
)

// SolarLimits returns the efficiency limit table in selection priority order.
func SolarLimits() []PhysicalLimit {
	return []PhysicalLimit{
		{
			Name:    "ultimate_concentrated",
			Value:   SolarUltimateLimit,
			Unit:    "fraction",
			Formula: "detailed balance, full concentration, infinite junctions",
			Context: "any solar converter",
			Kind:    LimitThermodynamic,
		},
		{
			Name:    "concentrator_multi_junction",
			Value:   SolarConcentratorLimit,
			Unit:    "fraction",
			Formula: "detailed balance, concentrator optics",
			Context: "concentrator concentrated cpv",
			Kind:    LimitPhysics,
		},
		{
			Name:    "tandem_two_junction",
			Value:   SolarTandemLimit,
			Unit:    "fraction",
			Formula: "detailed balance, two junctions, one sun",
			Context: "tandem multi-junction multijunction perovskite-silicon",
			Kind:    LimitPhysics,
		},
		{
			Name:    "single_junction_shockley_queisser",
			Value:   SolarSingleJunctionLimit,
			Unit:    "fraction",
			Formula: "Shockley–Queisser, 1.34 eV gap, AM1.5",
			Context: "single junction default",
			Kind:    LimitPhysics,
		},
	}
}
