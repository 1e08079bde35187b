//go:build unit

package uow

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlc "slot-swapper/internal/infra/sqlc/generated"
	"slot-swapper/internal/pkg/errs"
	"slot-swapper/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx only implements the calls the unit of work makes itself.
type fakeTx struct {
	pgx.Tx
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

type fakePool struct {
	beginErr error
	txs      []*fakeTx
	next     func() *fakeTx
}

func (p *fakePool) BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error) {
	if p.beginErr != nil {
		return nil, p.beginErr
	}
	tx := &fakeTx{}
	if p.next != nil {
		tx = p.next()
	}
	p.txs = append(p.txs, tx)
	return tx, nil
}

func newTestUoW(pool *fakePool) *PostgresUoW {
	return newPostgresUoW(pool, sqlc.New(), time.Millisecond)
}

func TestWithin_CommitsOnSuccess(t *testing.T) {
	pool := &fakePool{}
	u := newTestUoW(pool)

	err := u.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		assert.NotNil(t, tx.Slots())
		assert.NotNil(t, tx.Proposals())
		return nil
	})

	require.NoError(t, err)
	require.Len(t, pool.txs, 1)
	assert.True(t, pool.txs[0].committed)
}

func TestWithin_DomainErrorRollsBackWithoutRetry(t *testing.T) {
	pool := &fakePool{}
	u := newTestUoW(pool)

	calls := 0
	err := u.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		calls++
		return errs.ErrNotEligible
	})

	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrNotEligible))
	assert.False(t, errs.Is(err, errs.ErrUnavailable))
	assert.Equal(t, 1, calls)
	assert.True(t, pool.txs[0].rolledBack)
}

func TestWithin_RetriesSerializationFailure(t *testing.T) {
	pool := &fakePool{}
	u := newTestUoW(pool)

	calls := 0
	err := u.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		calls++
		if calls < 3 {
			return &pgconn.PgError{Code: pgErrCodeSerializationFailure}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	require.Len(t, pool.txs, 3)
	assert.True(t, pool.txs[0].rolledBack)
	assert.True(t, pool.txs[2].committed)
}

func TestWithin_ExhaustedRetriesAreUnavailable(t *testing.T) {
	pool := &fakePool{}
	u := newTestUoW(pool)

	calls := 0
	err := u.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		calls++
		return &pgconn.PgError{Code: pgErrCodeDeadlockDetected}
	})

	require.Error(t, err)
	assert.Equal(t, maxRetries+1, calls)
	assert.True(t, errs.Is(err, errs.ErrUnavailable))
	assert.True(t, errs.Is(err, errMaxRetriesExceeded))
}

func TestWithin_BeginFailureIsUnavailable(t *testing.T) {
	pool := &fakePool{beginErr: errors.New("connection refused")}
	u := newTestUoW(pool)

	err := u.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		t.Fatal("fn must not run without a transaction")
		return nil
	})

	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrUnavailable))
	assert.True(t, errs.Is(err, errTransactionBegin))
}

func TestWithin_CommitFailureIsUnavailable(t *testing.T) {
	pool := &fakePool{next: func() *fakeTx {
		return &fakeTx{commitErr: errors.New("connection reset")}
	}}
	u := newTestUoW(pool)

	err := u.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return nil
	})

	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrUnavailable))
	assert.True(t, errs.Is(err, errTransactionCommit))
}

func TestWithin_CancelledContextStopsRetrying(t *testing.T) {
	pool := &fakePool{}
	u := newPostgresUoW(pool, sqlc.New(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := u.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		calls++
		cancel()
		return &pgconn.PgError{Code: pgErrCodeSerializationFailure}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, errs.Is(err, errs.ErrUnavailable))
}

func TestNewBackOff(t *testing.T) {
	base := 100 * time.Millisecond
	b := newPostgresUoW(&fakePool{}, sqlc.New(), base).newBackOff()

	floor := base
	for attempt := 0; attempt < maxRetries; attempt++ {
		wait := b.NextBackOff()
		assert.GreaterOrEqual(t, wait, floor-floor/5, "attempt %d", attempt)
		assert.LessOrEqual(t, wait, floor+floor/5, "attempt %d", attempt)
		floor *= 2
	}
}
