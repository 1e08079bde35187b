package components

import (
	"context"
	"log/slog"
	"time"

	"slot-swapper/internal/infra/cache"
	"slot-swapper/internal/pkg/config"
	"slot-swapper/internal/pkg/metrics"
	"slot-swapper/internal/usecase/shared"

	"go.uber.org/fx"
)

const startupTimeout = 10 * time.Second

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewCache,
	),
)

// NewCache never fails startup: an unreachable Redis only costs cache hits.
// The returned cache tracks invalidation generations; commands and queries
// must share it for guarded fills to work.
func NewCache(lc fx.Lifecycle, cfg config.Config, rec metrics.Recorder, logger *slog.Logger) shared.Cache {
	if !cfg.Redis.Enabled {
		logger.Info("availability cache disabled")
		return shared.NewGenerationCache(cache.Noop{})
	}

	c := cache.NewRedisCache(cache.NewRedisClient(cfg.Redis), rec)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := c.Ping(ctx); err != nil {
				logger.Warn("redis unreachable at startup; serving from the store", "addr", cfg.Redis.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return c.Close()
		},
	})
	return shared.NewGenerationCache(c)
}
