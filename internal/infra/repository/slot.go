package repository

import (
	"context"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/infra"
	"slot-swapper/internal/infra/repository/converter"
	sqlc "slot-swapper/internal/infra/sqlc/generated"
	"slot-swapper/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type SlotWriteQueries interface {
	CreateSlot(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateSlotParams) (sqlc.Slots, error)
	GetSlot(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Slots, error)
	GetSlotForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Slots, error)
	CompareAndSetSlotStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.CompareAndSetSlotStatusParams) (sqlc.Slots, error)
	TransferSlotOwnership(ctx context.Context, db sqlc.DBTX, arg sqlc.TransferSlotOwnershipParams) (sqlc.Slots, error)
	UpdateSlot(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateSlotParams) (sqlc.Slots, error)
	DeleteSlot(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
}

// SlotRepository is bound to one transaction by the unit of work.
type SlotRepository struct {
	queries SlotWriteQueries
	db      sqlc.DBTX
}

func NewSlotRepository(queries SlotWriteQueries, db sqlc.DBTX) *SlotRepository {
	return &SlotRepository{
		queries: queries,
		db:      db,
	}
}

func (r *SlotRepository) Create(ctx context.Context, s *slot.Slot) error {
	if _, err := r.queries.CreateSlot(ctx, r.db, converter.SlotToCreateParams(s)); err != nil {
		if pgconv.IsForeignKeyViolation(err) {
			return infra.WrapRepoErr("slot owner does not exist", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to create slot", err)
	}
	return nil
}

func (r *SlotRepository) Get(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	row, err := r.queries.GetSlot(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get slot", err)
	}
	return converter.SlotFromRow(row), nil
}

func (r *SlotRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	row, err := r.queries.GetSlotForUpdate(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock slot", err)
	}
	return converter.SlotFromRow(row), nil
}

// UpdateState returns KindConflict when the row is gone or its status is no
// longer expected; the caller loaded it earlier in the same transaction.
func (r *SlotRepository) UpdateState(ctx context.Context, id uuid.UUID, expected, next slot.Status) (*slot.Slot, error) {
	row, err := r.queries.CompareAndSetSlotStatus(ctx, r.db, sqlc.CompareAndSetSlotStatusParams{
		ID:             id,
		ExpectedStatus: expected.String(),
		NextStatus:     next.String(),
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot status changed concurrently", err, infra.KindConflict)
		}
		return nil, infra.WrapRepoErr("failed to update slot status", err)
	}
	return converter.SlotFromRow(row), nil
}

func (r *SlotRepository) TransferOwnership(ctx context.Context, id, newOwner uuid.UUID, next slot.Status) (*slot.Slot, error) {
	row, err := r.queries.TransferSlotOwnership(ctx, r.db, sqlc.TransferSlotOwnershipParams{
		ID:      id,
		OwnerID: newOwner,
		Status:  next.String(),
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to transfer slot", err)
	}
	return converter.SlotFromRow(row), nil
}

func (r *SlotRepository) Update(ctx context.Context, s *slot.Slot) error {
	if _, err := r.queries.UpdateSlot(ctx, r.db, converter.SlotToUpdateParams(s)); err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("slot changed concurrently", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to update slot", err)
	}
	return nil
}

func (r *SlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.queries.DeleteSlot(ctx, r.db, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete slot", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("slot changed concurrently", nil, infra.KindConflict)
	}
	return nil
}
