// Package cache provides a small in-process lookup cache used to memoize
// expensive lookups (resolved user records, verified Google ID tokens).
//
// The policy is intentionally crude: entries accumulate without expiry until
// a hard size ceiling is crossed, at which point the whole cache is wiped.
// There is no TTL and no LRU; callers that need time-based invalidation must
// layer it themselves. Instances are constructed explicitly and injected so
// tests can use isolated caches while the running service shares one
// instance per concern.
package cache

import "sync"

// DefaultCeiling is the entry count past which a Put wipes the cache.
const DefaultCeiling = 100

// Cache is a concurrency-safe string-keyed lookup cache. The zero value is
// not usable; construct instances with New.
//
// A value may be stored under several keys (e.g. a user keyed by both email
// and Google ID); writing all applicable keys is the caller's job, and a
// wipe drops all of them together.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]V
	ceiling int
}

// New creates an empty Cache with the given size ceiling.
// A ceiling of zero or less falls back to DefaultCeiling.
func New[V any](ceiling int) *Cache[V] {
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	return &Cache[V]{
		entries: make(map[string]V),
		ceiling: ceiling,
	}
}

// Get returns the value stored under key. The second return value reports
// whether the key was present; a miss is not an error.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.entries[key]
	return value, ok
}

// Put stores value under key, replacing any prior value. When the write
// leaves the cache above its ceiling the entire cache is cleared inline,
// including the entry just written; the next lookups repopulate it.
func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = value
	if len(c.entries) > c.ceiling {
		c.entries = make(map[string]V)
	}
}

// Clear removes all entries. Exposed for the admin cache-clear endpoint and
// for tests.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]V)
}

// Len returns the current number of entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Ceiling returns the entry count past which a Put wipes the cache.
func (c *Cache[V]) Ceiling() int {
	return c.ceiling
}
