//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"slot-swapper/internal/domain/user"
	sqlc "slot-swapper/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestUser stands in for the identity service, which owns user rows.
func CreateTestUser(t *testing.T, db sqlc.DBTX, name, email string, role user.Role) uuid.UUID {
	t.Helper()

	row, err := sqlc.New().CreateUser(context.Background(), db, sqlc.CreateUserParams{
		ID:    uuid.New(),
		Name:  name,
		Email: email,
		Role:  string(role),
	})
	require.NoError(t, err)
	return row.ID
}

// DeleteSlotBehindAPI removes a slot row directly, the way an operator
// cleanup job would, bypassing the lock check of the API.
func DeleteSlotBehindAPI(t *testing.T, db sqlc.DBTX, slotID uuid.UUID) {
	t.Helper()

	tag, err := db.Exec(context.Background(), "DELETE FROM slots WHERE id = $1", slotID)
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected())
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every application table, leaving migration state alone.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
