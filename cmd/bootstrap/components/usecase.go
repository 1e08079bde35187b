package components

import (
	"slot-swapper/internal/pkg/config"
	"slot-swapper/internal/usecase"
	"slot-swapper/internal/usecase/commands"
	"slot-swapper/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	func(cfg config.Config) queries.CacheTTLs {
		return queries.CacheTTLs{
			Slot: cfg.Cache.SlotTTL,
			Swap: cfg.Cache.SwapTTL,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewSlotUseCase,
		commands.NewSwapUseCase,
		commands.NewUserUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSlotQueries,
		queries.NewSwapQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
