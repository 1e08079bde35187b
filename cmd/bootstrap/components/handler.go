package components

import (
	"context"

	"slot-swapper/internal/handler"
	"slot-swapper/internal/handler/api"
	"slot-swapper/internal/handler/middleware"
	"slot-swapper/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSlotHandler,
		api.NewSwapHandler,
		api.NewUserHandler,
		middleware.NewAuthMiddleware,
		NewRateLimiter,
		func(slot *api.SlotHandler, swap *api.SwapHandler, user *api.UserHandler) handler.Handlers {
			return handler.Handlers{Slot: slot, Swap: swap, User: user}
		},
	),
	fx.Invoke(handler.NewRouter),
)

func NewRateLimiter(lc fx.Lifecycle, cfg config.Config) *middleware.RateLimiter {
	rl := middleware.NewRateLimiter(cfg.RateLimit)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			rl.Stop()
			return nil
		},
	})
	return rl
}
