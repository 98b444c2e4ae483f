package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Domain-specific hash types
type (
	// CacheKey identifies one logical validation request in the result cache.
	CacheKey Hash
	// ArtifactHash fingerprints the validation-relevant subset of a discovery artifact.
	ArtifactHash Hash
)

// Constructors
func NewCacheKey(data []byte) CacheKey         { return CacheKey(NewHash(data)) }
func NewArtifactHash(data []byte) ArtifactHash { return ArtifactHash(NewHash(data)) }

// String conversions
func (h CacheKey) String() string     { return Hash(h).String() }
func (h ArtifactHash) String() string { return Hash(h).String() }

// ComputeCanonicalHash hashes a flat map in key-sorted order so that logically
// identical inputs collapse to the same digest regardless of insertion order.
func ComputeCanonicalHash(fields map[string]interface{}) Hash {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var data strings.Builder
	for _, key := range keys {
		data.WriteString(key)
		data.WriteString("=")
		data.WriteString(canonicalValue(fields[key]))
		data.WriteString(";")
	}

	return NewHash([]byte(data.String()))
}

// canonicalValue renders a value deterministically. String slices are sorted
// first; nested maps recurse through ComputeCanonicalHash.
func canonicalValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []string:
		sorted := make([]string, len(val))
		copy(sorted, val)
		sort.Strings(sorted)
		return strings.Join(sorted, ",")
	case map[string]interface{}:
		return ComputeCanonicalHash(val).String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
