package cache

import (
	"testing"

	"benchfuse/domain/artifact"
	"benchfuse/domain/benchmark"
)

func sampleDiscovery() artifact.Discovery {
	return artifact.Discovery{
		"title":       "Tandem perovskite cell",
		"description": "Two-junction cell with 0.31 efficiency",
		"domain":      "solar",
		"claims":      []interface{}{"efficiency 0.31"},
	}
}

func TestComputeKey_Deterministic(t *testing.T) {
	kinds := benchmark.AllKinds()
	a := ComputeKey(sampleDiscovery(), nil, kinds)
	b := ComputeKey(sampleDiscovery(), nil, kinds)
	if a != b {
		t.Errorf("identical requests must produce identical keys")
	}
}

func TestComputeKey_KindOrderInsensitive(t *testing.T) {
	a := ComputeKey(sampleDiscovery(), nil, []benchmark.Kind{benchmark.KindPhysicalLimits, benchmark.KindPracticality})
	b := ComputeKey(sampleDiscovery(), nil, []benchmark.Kind{benchmark.KindPracticality, benchmark.KindPhysicalLimits})
	if a != b {
		t.Errorf("enabled-kind order must not change the key")
	}
}

func TestComputeKey_SensitiveToInputs(t *testing.T) {
	base := ComputeKey(sampleDiscovery(), nil, benchmark.AllKinds())

	changed := sampleDiscovery()
	changed["title"] = "Different cell"
	if ComputeKey(changed, nil, benchmark.AllKinds()) == base {
		t.Errorf("changing the discovery must change the key")
	}

	subset := ComputeKey(sampleDiscovery(), nil, []benchmark.Kind{benchmark.KindPhysicalLimits})
	if subset == base {
		t.Errorf("changing the enabled benchmarks must change the key")
	}

	withLit := ComputeKey(sampleDiscovery(), &artifact.Context{
		Literature: []artifact.LiteratureSource{{DOI: "10.1000/a", Title: "paper"}},
	}, benchmark.AllKinds())
	if withLit == base {
		t.Errorf("attaching literature must change the key")
	}
}

func TestComputeKey_SimulationFingerprint(t *testing.T) {
	sim := &artifact.SimulationData{Tier: "fine", Iterations: 500, Converged: true, FinalResidual: 1e-9}
	a := ComputeKey(sampleDiscovery(), &artifact.Context{Simulation: sim}, benchmark.AllKinds())

	changed := &artifact.SimulationData{Tier: "fine", Iterations: 500, Converged: true, FinalResidual: 1e-3}
	b := ComputeKey(sampleDiscovery(), &artifact.Context{Simulation: changed}, benchmark.AllKinds())
	if a == b {
		t.Errorf("simulation residual must participate in the key")
	}
}
