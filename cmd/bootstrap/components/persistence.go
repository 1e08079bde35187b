package components

import (
	"context"
	"log/slog"

	"slot-swapper/internal/infra/db"
	"slot-swapper/internal/infra/memstore"
	"slot-swapper/internal/infra/readstore"
	sqlc "slot-swapper/internal/infra/sqlc/generated"
	"slot-swapper/internal/infra/uow"
	"slot-swapper/internal/pkg/clock"
	"slot-swapper/internal/pkg/config"
	"slot-swapper/internal/usecase/queries"
	"slot-swapper/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		clock.NewSystem,
		NewStores,
	),
)

// Stores is everything the use cases need from persistence, whichever driver
// backs it.
type Stores struct {
	fx.Out

	UoW       shared.UnitOfWork
	Slots     queries.SlotReadStore
	Proposals queries.ProposalReadStore
	Users     queries.UserReadStore
}

func NewStores(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (Stores, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		logger.Warn("using the in-memory store; data does not survive a restart")
		return memoryStores(clk), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if cfg.Store.MigrateOnStart {
		if err := db.RunMigrations(cfg.DB.BuildDSN()); err != nil {
			return Stores{}, err
		}
		logger.Info("database migrations applied")
	}

	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return Stores{}, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return postgresStores(pool), nil
}

func memoryStores(clk clock.Clock) Stores {
	store := memstore.New(clk)
	return Stores{
		UoW:       store,
		Slots:     store.SlotReads(),
		Proposals: store.ProposalReads(),
		Users:     store.UserReads(),
	}
}

func postgresStores(pool *pgxpool.Pool) Stores {
	q := sqlc.New()
	return Stores{
		UoW:       uow.NewPostgresUoW(pool, q),
		Slots:     readstore.NewSlotReadStore(q, pool),
		Proposals: readstore.NewProposalReadStore(q, pool),
		Users:     readstore.NewUserReadStore(q, pool),
	}
}
