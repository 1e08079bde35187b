package bootstrap

import (
	"log/slog"

	"slot-swapper/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(logEffectiveConfig),
)

// secrets stay out of the log
func logEffectiveConfig(cfg config.Config, logger *slog.Logger) {
	logger.Info("configuration loaded",
		"store_driver", cfg.Store.Driver,
		"migrate_on_start", cfg.Store.MigrateOnStart,
		"redis_enabled", cfg.Redis.Enabled,
		"slot_cache_ttl", cfg.Cache.SlotTTL,
		"swap_cache_ttl", cfg.Cache.SwapTTL,
		"swap_rate_per_min", cfg.RateLimit.SwapPerMinute,
		"jwt_issuer", cfg.JWT.Issuer,
	)
}
