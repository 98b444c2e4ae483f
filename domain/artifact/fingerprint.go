package artifact

import (
	"benchfuse/domain/core"
)

// Fingerprint hashes the identity fields of the discovery. Unlike the cache
// key, it ignores the validation configuration, so repeated runs of the same
// artifact under different panels share one fingerprint in run history.
func (d Discovery) Fingerprint() core.ArtifactHash {
	return core.ArtifactHash(core.ComputeCanonicalHash(map[string]interface{}{
		"title":       d.Title(),
		"description": d.Description(),
		"domain":      d.Domain(),
		"technology":  d.Technology(),
		"claims":      d.Claims(),
		"materials":   d.Materials(),
	}))
}
