package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

type entry[V any] struct {
	hash      string
	value     V
	updatedAt time.Time
}

// Cache is a thread-safe in-memory map of per-file results with TTL eviction.
// An entry is only returned while the caller's content hash still matches.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]*entry[V]
	ttl     time.Duration
}

func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]*entry[V]),
		ttl:     ttl,
	}
}

// Get returns the value stored for name if it was computed from content with hash.
func (c *Cache[V]) Get(name, hash string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[name]
	if !ok || e.hash != hash || time.Since(e.updatedAt) > c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[V]) Put(name, hash string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = &entry[V]{hash: hash, value: v, updatedAt: time.Now()}
}

// Invalidate drops any entry for name.
func (c *Cache[V]) Invalidate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, name)
}

// Len returns the number of entries, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Cleanup removes expired entries and returns how many were removed.
func (c *Cache[V]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	removed := 0
	for name, e := range c.entries {
		if now.Sub(e.updatedAt) > c.ttl {
			delete(c.entries, name)
			removed++
		}
	}
	return removed
}

// Run calls Cleanup every interval until ctx is done.
func (c *Cache[V]) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Cleanup()
		}
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
