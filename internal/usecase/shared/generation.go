package shared

import (
	"context"
	"sync"
	"time"
)

// FillGuard lets a cache-aside reader detect that an invalidation landed
// while it was loading from the store.
type FillGuard interface {
	// Generation returns the invalidation count of the key's scope.
	Generation(key string) uint64
	// SetIfCurrent stores value only while the scope is still at gen.
	SetIfCurrent(ctx context.Context, key string, gen uint64, value []byte, ttl time.Duration) bool
}

// GenerationCache counts invalidations per scope. Delete and DeleteByPrefix
// bump the counter before touching the backend, so a guarded fill either
// completes before the bump and is removed by the delete, or sees the bump
// and is skipped.
type GenerationCache struct {
	Cache

	mu   sync.RWMutex
	gens map[string]uint64
}

var _ FillGuard = (*GenerationCache)(nil)

func NewGenerationCache(c Cache) *GenerationCache {
	return &GenerationCache{Cache: c, gens: make(map[string]uint64)}
}

func (c *GenerationCache) Generation(key string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gens[ScopeOf(key)]
}

func (c *GenerationCache) SetIfCurrent(ctx context.Context, key string, gen uint64, value []byte, ttl time.Duration) bool {
	// Held for the backend write: a concurrent bump waits for it.
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.gens[ScopeOf(key)] != gen {
		return false
	}
	c.Cache.Set(ctx, key, value, ttl)
	return true
}

func (c *GenerationCache) Delete(ctx context.Context, keys ...string) {
	c.mu.Lock()
	for _, k := range keys {
		c.gens[ScopeOf(k)]++
	}
	c.mu.Unlock()
	c.Cache.Delete(ctx, keys...)
}

func (c *GenerationCache) DeleteByPrefix(ctx context.Context, prefix string) {
	c.mu.Lock()
	c.gens[ScopeOf(prefix)]++
	c.mu.Unlock()
	c.Cache.DeleteByPrefix(ctx, prefix)
}
