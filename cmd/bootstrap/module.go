package bootstrap

import (
	"slot-swapper/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	components.MetricsModule,
	components.PersistenceModule,
	components.CacheModule,
	components.UseCaseModule,
	components.HandlerModule,
)
