package readstore

import (
	"context"

	"slot-swapper/internal/infra"
	sqlc "slot-swapper/internal/infra/sqlc/generated"
	"slot-swapper/internal/pkg/pgconv"
	"slot-swapper/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotReadQueries interface {
	GetSlot(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Slots, error)
	ListSlotsByOwner(ctx context.Context, db sqlc.DBTX, ownerID uuid.UUID) ([]sqlc.Slots, error)
	ListOfferedSlots(ctx context.Context, db sqlc.DBTX, ownerID uuid.UUID) ([]sqlc.Slots, error)
	ListSlotsByIDs(ctx context.Context, db sqlc.DBTX, ids []uuid.UUID) ([]sqlc.Slots, error)
}

type SlotReadStore struct {
	queries SlotReadQueries
	db      sqlc.DBTX
}

func NewSlotReadStore(queries SlotReadQueries, db sqlc.DBTX) *SlotReadStore {
	return &SlotReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *SlotReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SlotView, error) {
	row, err := r.queries.GetSlot(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get slot view by id", err)
	}
	return toSlotView(row), nil
}

func (r *SlotReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.SlotView, error) {
	rows, err := r.queries.ListSlotsByOwner(ctx, r.db, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slots by owner", err)
	}
	return toSlotViews(rows), nil
}

func (r *SlotReadStore) ListOffered(ctx context.Context, excludingOwner uuid.UUID) ([]*queries.SlotView, error) {
	rows, err := r.queries.ListOfferedSlots(ctx, r.db, excludingOwner)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list offered slots", err)
	}
	return toSlotViews(rows), nil
}

func (r *SlotReadStore) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*queries.SlotView, error) {
	if len(ids) == 0 {
		return []*queries.SlotView{}, nil
	}
	rows, err := r.queries.ListSlotsByIDs(ctx, r.db, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slots by ids", err)
	}
	return toSlotViews(rows), nil
}

func toSlotView(row sqlc.Slots) *queries.SlotView {
	return &queries.SlotView{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Title:     row.Title,
		StartTime: pgconv.TimeFromPgtype(row.StartTime),
		EndTime:   pgconv.TimeFromPgtype(row.EndTime),
		Status:    row.Status,
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt: pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func toSlotViews(rows []sqlc.Slots) []*queries.SlotView {
	views := make([]*queries.SlotView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toSlotView(row))
	}
	return views
}
