package cache

import (
	"sort"
	"sync"
	"time"

	"benchfuse/domain/core"
	"benchfuse/internal/logging"
)

// alignment.go
//
// Smaller memoization layer for claim-level alignment judgments produced
// during literature cross-referencing. Judgments are cheap to store and
// expensive to recompute, so this cache runs with a longer TTL and a larger
// capacity than the top-level result cache, and reclaims space by dropping
// the oldest tenth in one sweep instead of evicting per insert.

const (
	// DefaultAlignmentCapacity bounds the judgment cache.
	DefaultAlignmentCapacity = 500
	// DefaultAlignmentTTL keeps judgments reusable across validation runs.
	DefaultAlignmentTTL = 4 * time.Hour
	// alignmentEvictionFraction of the population removed per sweep.
	alignmentEvictionFraction = 0.10
)

// AlignmentJudgment is one memoized claim-vs-source comparison.
type AlignmentJudgment struct {
	Aligned   bool    `json:"aligned"`
	Score     float64 `json:"score"`
	Rationale string  `json:"rationale"`
}

type alignmentEntry struct {
	key       core.Hash
	judgment  AlignmentJudgment
	createdAt time.Time
}

// AlignmentCache memoizes alignment judgments keyed by claim/source hash.
type AlignmentCache struct {
	mu        sync.Mutex
	entries   map[core.Hash]*alignmentEntry
	capacity  int
	ttl       time.Duration
	hits      int64
	misses    int64
	evictions int64
	log       *logging.Logger
	now       func() time.Time
}

// NewAlignmentCache creates the judgment cache. Non-positive arguments fall
// back to the defaults.
func NewAlignmentCache(capacity int, ttl time.Duration) *AlignmentCache {
	if capacity <= 0 {
		capacity = DefaultAlignmentCapacity
	}
	if ttl <= 0 {
		ttl = DefaultAlignmentTTL
	}
	return &AlignmentCache{
		entries:  make(map[core.Hash]*alignmentEntry, capacity),
		capacity: capacity,
		ttl:      ttl,
		log:      logging.NewDefaultLogger("AlignmentCache"),
		now:      time.Now,
	}
}

// Key builds the cache key for one claim/source pair.
func (c *AlignmentCache) Key(claim, sourceIdentity string) core.Hash {
	return core.ComputeCanonicalHash(map[string]interface{}{
		"claim":  claim,
		"source": sourceIdentity,
	})
}

// Get returns the memoized judgment, if present and fresh.
func (c *AlignmentCache) Get(key core.Hash) (AlignmentJudgment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return AlignmentJudgment{}, false
	}
	if c.now().Sub(e.createdAt) > c.ttl {
		delete(c.entries, key)
		c.misses++
		return AlignmentJudgment{}, false
	}
	c.hits++
	return e.judgment, true
}

// Set stores a judgment, sweeping the oldest tenth when at capacity.
func (c *AlignmentCache) Set(key core.Hash, judgment AlignmentJudgment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.sweepOldest()
	}
	c.entries[key] = &alignmentEntry{key: key, judgment: judgment, createdAt: c.now()}
}

// sweepOldest removes the oldest 10% of entries (at least one).
// Caller holds the lock.
func (c *AlignmentCache) sweepOldest() {
	all := make([]*alignmentEntry, 0, len(c.entries))
	for _, e := range c.entries {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].createdAt.Before(all[j].createdAt)
	})
	n := int(float64(len(all)) * alignmentEvictionFraction)
	if n < 1 {
		n = 1
	}
	for _, e := range all[:n] {
		delete(c.entries, e.key)
		c.evictions++
	}
	c.log.Debug("swept %d oldest alignment judgments", n)
}

// Stats returns the observability snapshot.
func (c *AlignmentCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.hits + c.misses
	rate := 0.0
	if total > 0 {
		rate = float64(c.hits) / float64(total)
	}
	return Stats{
		Size:      len(c.entries),
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		HitRate:   rate,
	}
}
