package readstore

import (
	"context"

	"slot-swapper/internal/infra"
	sqlc "slot-swapper/internal/infra/sqlc/generated"
	"slot-swapper/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadQueries interface {
	ListUsersByIDs(ctx context.Context, db sqlc.DBTX, ids []uuid.UUID) ([]sqlc.Users, error)
}

// UserReadStore resolves slot owners and proposal parties for projections.
type UserReadStore struct {
	queries UserReadQueries
	db      sqlc.DBTX
}

func NewUserReadStore(queries UserReadQueries, db sqlc.DBTX) *UserReadStore {
	return &UserReadStore{queries: queries, db: db}
}

// ListByIDs skips unknown ids. Callers pass owners straight from slot lists,
// so duplicates and nil ids are dropped before hitting the database.
func (r *UserReadStore) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*queries.UserSummary, error) {
	wanted := distinctIDs(ids)
	if len(wanted) == 0 {
		return []*queries.UserSummary{}, nil
	}

	rows, err := r.queries.ListUsersByIDs(ctx, r.db, wanted)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slot owners", err)
	}

	users := make([]*queries.UserSummary, len(rows))
	for i, row := range rows {
		users[i] = &queries.UserSummary{ID: row.ID, Name: row.Name, Email: row.Email}
	}
	return users, nil
}

func distinctIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
