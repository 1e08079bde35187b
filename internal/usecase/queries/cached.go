package queries

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"slot-swapper/internal/pkg/metrics"
	"slot-swapper/internal/usecase/shared"

	"golang.org/x/sync/singleflight"
)

// loadTimeout bounds a shared load; it no longer follows any single caller.
const loadTimeout = 5 * time.Second

// cacheAside serves reads from the availability cache and fills it on miss.
// Concurrent misses for the same key and generation share one load.
type cacheAside struct {
	cache   shared.Cache
	guard   shared.FillGuard // nil when the cache does not track invalidations
	metrics metrics.Recorder
	group   singleflight.Group
}

func newCacheAside(cache shared.Cache, rec metrics.Recorder) *cacheAside {
	c := &cacheAside{cache: cache, metrics: rec}
	if g, ok := cache.(shared.FillGuard); ok {
		c.guard = g
	}
	return c
}

func loadThrough[T any](ctx context.Context, c *cacheAside, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	scope := shared.ScopeOf(key)

	if raw, ok := c.cache.Get(ctx, key); ok {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			c.metrics.RecordCacheHit(scope)
			return cached, nil
		}
		slog.Warn("discarding undecodable cache entry", "key", key)
	}
	c.metrics.RecordCacheMiss(scope)

	// A caller arriving after an invalidation never joins a load that
	// started before it.
	var gen uint64
	flight := key
	if c.guard != nil {
		gen = c.guard.Generation(key)
		flight = key + "@" + strconv.FormatUint(gen, 10)
	}

	v, err, _ := c.group.Do(flight, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		fresh, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(fresh)
		if err != nil {
			return fresh, nil
		}
		if c.guard == nil {
			c.cache.Set(loadCtx, key, raw, ttl)
		} else if !c.guard.SetIfCurrent(loadCtx, key, gen, raw, ttl) {
			slog.Debug("skipping cache fill invalidated during load", "key", key)
		}
		return fresh, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
