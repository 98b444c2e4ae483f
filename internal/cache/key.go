package cache

import (
	"fmt"
	"sort"
	"strings"

	"benchfuse/domain/artifact"
	"benchfuse/domain/benchmark"
	"benchfuse/domain/core"
)

// key.go
//
// Cache-key derivation. Only the validation-relevant subset of the request
// participates: the discovery's identity fields, the enabled benchmark kinds
// and the literature identities, plus a secondary hash over the simulation
// fields when simulation output is attached. Volatile metadata (timestamps,
// free text the scorers never read) deliberately stays out so that logically
// identical requests collapse to one entry.

// ComputeKey derives the content-addressed cache key for one validation
// request.
func ComputeKey(d artifact.Discovery, vctx *artifact.Context, kinds []benchmark.Kind) core.CacheKey {
	kindNames := make([]string, 0, len(kinds))
	for _, k := range kinds {
		kindNames = append(kindNames, string(k))
	}
	sort.Strings(kindNames)

	var litIDs []string
	if vctx != nil {
		litIDs = vctx.LiteratureIdentities()
		sort.Strings(litIDs)
	}

	fields := map[string]interface{}{
		"title":       d.Title(),
		"description": d.Description(),
		"domain":      d.Domain(),
		"technology":  d.Technology(),
		"claims":      d.Claims(),
		"materials":   d.Materials(),
		"benchmarks":  strings.Join(kindNames, ","),
		"literature":  strings.Join(litIDs, ","),
	}
	if vctx != nil && vctx.Simulation != nil {
		fields["simulation"] = simulationFingerprint(vctx.Simulation)
	}

	return core.CacheKey(core.ComputeCanonicalHash(fields))
}

// simulationFingerprint hashes the simulation fields that influence the
// convergence benchmark.
func simulationFingerprint(sim *artifact.SimulationData) string {
	fields := map[string]interface{}{
		"tier":           sim.Tier,
		"iterations":     sim.Iterations,
		"converged":      sim.Converged,
		"final_residual": fmt.Sprintf("%.6e", sim.FinalResidual),
		"summary":        sim.Summary,
	}
	return core.ComputeCanonicalHash(fields).String()
}
