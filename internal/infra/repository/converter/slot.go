package converter

import (
	"slot-swapper/internal/domain/slot"
	sqlc "slot-swapper/internal/infra/sqlc/generated"
	"slot-swapper/internal/pkg/pgconv"
)

func SlotToCreateParams(s *slot.Slot) sqlc.CreateSlotParams {
	return sqlc.CreateSlotParams{
		ID:        s.ID(),
		OwnerID:   s.OwnerID(),
		Title:     s.Title().String(),
		StartTime: pgconv.TimeToPgtype(s.TimeRange().Start()),
		EndTime:   pgconv.TimeToPgtype(s.TimeRange().End()),
		Status:    s.Status().String(),
		CreatedAt: pgconv.TimeToPgtype(s.CreatedAt()),
	}
}

func SlotToUpdateParams(s *slot.Slot) sqlc.UpdateSlotParams {
	return sqlc.UpdateSlotParams{
		ID:        s.ID(),
		Title:     s.Title().String(),
		StartTime: pgconv.TimeToPgtype(s.TimeRange().Start()),
		EndTime:   pgconv.TimeToPgtype(s.TimeRange().End()),
		Status:    s.Status().String(),
		UpdatedAt: pgconv.TimeToPgtype(s.UpdatedAt()),
	}
}

func SlotFromRow(row sqlc.Slots) *slot.Slot {
	return slot.Reconstruct(
		row.ID,
		row.OwnerID,
		row.Title,
		pgconv.TimeFromPgtype(row.StartTime),
		pgconv.TimeFromPgtype(row.EndTime),
		slot.Status(row.Status),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}
