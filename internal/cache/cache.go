// Package cache provides a small in-process TTL cache for computed query
// results. Entries are evicted lazily on read; there is no background sweep.
package cache

import (
	"net/url"
	"sync"
	"time"
)

// DefaultTTL is the freshness window for query results.
const DefaultTTL = 5 * time.Minute

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache memoizes values under canonical string keys for a fixed TTL. It is
// safe for concurrent use; a miss is always safe, just slower.
type Cache struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time

	entries map[string]entry
}

// New creates a cache with the given TTL. A non-positive ttl falls back to
// DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Get returns the cached value for key, or false if the key is absent or
// expired. Expired entries are deleted on the spot.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}

	return e.value, true
}

// Set stores value under key, resetting its freshness window.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Len reports the number of live and expired entries currently held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Key builds the canonical cache key for an operation and its effective
// parameters. url.Values.Encode sorts parameter names, so two queries with
// the same parameters hash identically regardless of insertion order.
func Key(op string, params url.Values) string {
	return op + "?" + params.Encode()
}

// Lookup fetches a typed value from the cache, skipping entries of the wrong
// type (which can only happen on a key collision across result shapes).
func Lookup[T any](c *Cache, key string) (T, bool) {
	var zero T

	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}

	typed, ok := v.(T)
	if !ok {
		return zero, false
	}

	return typed, true
}
