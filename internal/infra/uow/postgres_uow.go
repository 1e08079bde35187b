package uow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"slot-swapper/internal/infra/repository"
	sqlc "slot-swapper/internal/infra/sqlc/generated"
	"slot-swapper/internal/pkg/errs"
	"slot-swapper/internal/usecase/shared"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"

	maxRetries = 3
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// TxBeginner is the part of pgxpool.Pool the unit of work needs.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type PostgresUoW struct {
	pool TxBeginner
	q    *sqlc.Queries
	base time.Duration
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries) shared.UnitOfWork {
	return newPostgresUoW(pool, q, 100*time.Millisecond)
}

func newPostgresUoW(pool TxBeginner, q *sqlc.Queries, base time.Duration) *PostgresUoW {
	return &PostgresUoW{
		pool: pool,
		q:    q,
		base: base,
	}
}

// ReadCommitted is enough: slot transitions are conditional updates and
// proposals are locked with FOR UPDATE.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	err := u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
	if err != nil && pgconn.Timeout(err) {
		return errs.Mark(err, errs.ErrUnavailable)
	}
	return err
}

// runInTx opens a fresh transaction per attempt. Only serialization failures
// and deadlocks are retried; everything else surfaces on the first attempt.
func (u *PostgresUoW) runInTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	attempt := 0
	op := func() error {
		attempt++
		err := u.attempt(ctx, options, fn)
		if err != nil && !isRetryableError(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(u.newBackOff(), maxRetries), ctx)
	err := backoff.RetryNotify(op, policy, notify)
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		return errs.Mark(err, errs.ErrUnavailable)
	case isRetryableError(err):
		slog.Error("transaction failed after max retries",
			"attempts", attempt,
			"error", err.Error())
		return errs.Mark(errs.Mark(err, errMaxRetriesExceeded), errs.ErrUnavailable)
	default:
		return err
	}
}

// attempt owns exactly one pgx transaction so nothing leaks across retries.
func (u *PostgresUoW) attempt(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(errs.Mark(err, errTransactionBegin), errs.ErrUnavailable)
	}

	if err := fn(ctx, &pgTx{dbtx: pgxTx, uow: u}); err != nil {
		rollback(ctx, pgxTx)
		return err
	}

	if err := pgxTx.Commit(ctx); err != nil {
		rollback(ctx, pgxTx)
		err = errs.Mark(err, errTransactionCommit)
		if isRetryableError(err) {
			return err
		}
		return errs.Mark(err, errs.ErrUnavailable)
	}
	return nil
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.Warn("rollback failed", "error", err.Error())
	}
}

// newBackOff doubles from base with 20% jitter either way.
func (u *PostgresUoW) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = u.base
	b.Multiplier = 2
	b.RandomizationFactor = 0.2
	b.MaxInterval = u.base << maxRetries
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx sqlc.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	slotRepo   shared.SlotRepository
	ledgerRepo shared.SwapLedger
	userRepo   shared.UserRepository
}

func (t *pgTx) Slots() shared.SlotRepository {
	if t.slotRepo == nil {
		t.slotRepo = repository.NewSlotRepository(t.uow.q, t.dbtx)
	}
	return t.slotRepo
}

func (t *pgTx) Proposals() shared.SwapLedger {
	if t.ledgerRepo == nil {
		t.ledgerRepo = repository.NewSwapLedgerRepository(t.uow.q, t.dbtx)
	}
	return t.ledgerRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository(t.uow.q, t.dbtx)
	}
	return t.userRepo
}
