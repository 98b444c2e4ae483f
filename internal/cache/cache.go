package cache

import (
	"sync"
	"time"

	"benchfuse/domain/core"
	"benchfuse/domain/verdict"
	"benchfuse/internal/logging"
)

// cache.go
//
// In-process, content-addressed memoization of full validation runs. One
// mutex guards the whole map; expected sizes are a few hundred entries, so
// finer-grained locking buys nothing. Concurrently in-flight identical
// requests may both miss and both run the scorer panel; the second write
// wins. That is a documented limitation, not a defect.

const (
	// DefaultCapacity bounds the top-level result cache.
	DefaultCapacity = 200
	// DefaultTTL is how long a fused result stays reusable.
	DefaultTTL = time.Hour
	// hitProtectionMs: each recorded hit protects an entry from eviction
	// as if it were created this many milliseconds later.
	hitProtectionMs = 60000
)

// entry is one cached validation result.
type entry struct {
	key       core.CacheKey
	result    *verdict.AggregatedValidation
	createdAt time.Time
	ttl       time.Duration
	hitCount  int
}

// evictionScore ranks entries for eviction; the smallest score goes first.
// Age and reuse fold into one monotonic ranking: every hit counts as sixty
// seconds of extra youth, so reused entries outrank older unused ones.
func (e *entry) evictionScore() int64 {
	return e.createdAt.UnixMilli() + int64(e.hitCount)*hitProtectionMs
}

// Stats is the observability snapshot of a cache.
type Stats struct {
	Size      int     `json:"size"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	HitRate   float64 `json:"hit_rate"`
}

// ValidationCache memoizes AggregatedValidation results by content hash.
type ValidationCache struct {
	mu        sync.Mutex
	entries   map[core.CacheKey]*entry
	capacity  int
	ttl       time.Duration
	hits      int64
	misses    int64
	evictions int64
	log       *logging.Logger
	now       func() time.Time
}

// NewValidationCache creates a cache with the given bounds. Non-positive
// arguments fall back to the defaults.
func NewValidationCache(capacity int, ttl time.Duration) *ValidationCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ValidationCache{
		entries:  make(map[core.CacheKey]*entry, capacity),
		capacity: capacity,
		ttl:      ttl,
		log:      logging.NewDefaultLogger("ValidationCache"),
		now:      time.Now,
	}
}

// Get returns the cached result for key. Expired or corrupt entries are
// deleted and reported as misses.
func (c *ValidationCache) Get(key core.CacheKey) (*verdict.AggregatedValidation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if c.now().Sub(e.createdAt) > e.ttl {
		delete(c.entries, key)
		c.misses++
		c.log.Debug("entry %s expired", key)
		return nil, false
	}
	if err := validateEntry(e); err != nil {
		// Corrupt entry: drop it and treat as absent.
		delete(c.entries, key)
		c.misses++
		c.log.Warn("dropping corrupt entry %s: %v", key, err)
		return nil, false
	}
	e.hitCount++
	c.hits++
	return e.result, true
}

// Set stores a result under key, evicting the single lowest-scoring entry
// when at capacity. A fresh insert always starts with zero hits.
func (c *ValidationCache) Set(key core.CacheKey, result *verdict.AggregatedValidation) {
	if result == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictLowest()
	}
	c.entries[key] = &entry{
		key:       key,
		result:    result,
		createdAt: c.now(),
		ttl:       c.ttl,
	}
}

// evictLowest removes the entry with the smallest eviction score.
// Caller holds the lock.
func (c *ValidationCache) evictLowest() {
	var victim *entry
	for _, e := range c.entries {
		if victim == nil || e.evictionScore() < victim.evictionScore() {
			victim = e
		}
	}
	if victim != nil {
		delete(c.entries, victim.key)
		c.evictions++
		c.log.Debug("evicted %s (hits=%d)", victim.key, victim.hitCount)
	}
}

// Clear drops every entry. Counters survive; they describe the process
// lifetime, not the current population.
func (c *ValidationCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[core.CacheKey]*entry, c.capacity)
}

// Stats returns the observability snapshot.
func (c *ValidationCache) Stats() Stats {
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

// validateEntry guards against corrupt stored state surfacing to callers.
func validateEntry(e *entry) error {
	if e.result == nil {
		return errNilResult
	}
	if e.result.OverallScore < 0 || e.result.OverallScore > 10 {
		return errScoreRange
	}
	return nil
}

var (
	errNilResult  = cacheError("cached result is nil")
	errScoreRange = cacheError("cached overall score outside [0,10]")
)

type cacheError string

func (e cacheError) Error() string { return string(e) }
