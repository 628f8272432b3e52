// Package cache provides a best-effort in-memory TTL cache for
// expensive answer pipeline results.
package cache

import (
	"sync"
	"time"

	"github.com/arcadia-labs/bizkb/internal/core/ports/driven"
)

// Default cache parameters.
const (
	DefaultTTL        = 5 * time.Minute
	DefaultMaxEntries = 1024
)

// Ensure TTL implements the interface.
var _ driven.ResponseCache = (*TTL)(nil)

// TTL is a fixed-expiry in-memory cache. Expired entries are evicted
// lazily on read and swept when the cache grows past its entry limit.
type TTL struct {
	mu         sync.RWMutex
	ttl        time.Duration
	maxEntries int
	entries    map[string]entry
	now        func() time.Time
}

type entry struct {
	value     string
	expiresAt time.Time
}

// Option configures a TTL cache.
type Option func(*TTL)

// WithTTL overrides the entry lifetime.
func WithTTL(d time.Duration) Option {
	return func(c *TTL) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithMaxEntries overrides the sweep threshold.
func WithMaxEntries(n int) Option {
	return func(c *TTL) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// NewTTL creates a TTL cache with the default lifetime.
func NewTTL(opts ...Option) *TTL {
	c := &TTL{
		ttl:        DefaultTTL,
		maxEntries: DefaultMaxEntries,
		entries:    make(map[string]entry),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value and true on a fresh hit.
func (c *TTL) Get(key string) (string, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", false
	}
	return e.value, true
}

// Set stores a value under the key with the cache's fixed expiry.
func (c *TTL) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.sweep()
	}
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// sweep drops expired entries (caller must hold the write lock).
// If nothing has expired the cache is cleared outright to bound memory.
func (c *TTL) sweep() {
	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	if removed == 0 {
		c.entries = make(map[string]entry)
	}
}

// Len returns the number of stored entries, including expired ones
// not yet evicted.
func (c *TTL) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
