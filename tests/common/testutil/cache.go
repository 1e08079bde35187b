//go:build unit || e2e

package testutil

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MapCache is an in-process availability cache that records invalidations.
// TTLs are ignored.
type MapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deleted []string
	prefix  []string
}

func NewMapCache() *MapCache {
	return &MapCache{entries: make(map[string][]byte)}
}

func (c *MapCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *MapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *MapCache) Delete(_ context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
		c.deleted = append(c.deleted, k)
	}
}

func (c *MapCache) DeleteByPrefix(_ context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	c.prefix = append(c.prefix, prefix)
}

func (c *MapCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// Deleted returns the keys passed to Delete, in call order.
func (c *MapCache) Deleted() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.deleted...)
}

// DroppedPrefixes returns the prefixes passed to DeleteByPrefix.
func (c *MapCache) DroppedPrefixes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.prefix...)
}

func (c *MapCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = nil
	c.prefix = nil
}
