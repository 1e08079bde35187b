package commands

import (
	"context"
	"time"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/pkg/clock"
	"slot-swapper/internal/pkg/errs"
	"slot-swapper/internal/pkg/metrics"
	"slot-swapper/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateSlotInput struct {
	OwnerID   uuid.UUID `validate:"required"`
	Title     string    `validate:"required,max=200"`
	StartTime time.Time `validate:"required"`
	EndTime   time.Time `validate:"required"`
	Status    string    `validate:"omitempty,oneof=BUSY OFFERED"`
}

// UpdateSlotInput applies only the fields that are set.
type UpdateSlotInput struct {
	ActorID   uuid.UUID  `validate:"required"`
	SlotID    uuid.UUID  `validate:"required"`
	Title     *string    `validate:"omitempty,max=200"`
	StartTime *time.Time `validate:"omitempty"`
	EndTime   *time.Time `validate:"omitempty"`
	Status    *string    `validate:"omitempty,oneof=BUSY OFFERED"`
}

type SlotResult struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SlotCommands interface {
	Create(ctx context.Context, in CreateSlotInput) (*SlotResult, error)
	// Update and Delete refuse LOCKED slots with ErrSlotLocked. Slots of
	// other owners are reported as missing.
	Update(ctx context.Context, in UpdateSlotInput) (*SlotResult, error)
	Delete(ctx context.Context, actorID, slotID uuid.UUID) error
}

type slotUseCaseImpl struct {
	uow         shared.UnitOfWork
	clock       clock.Clock
	invalidator invalidator
}

func NewSlotUseCase(uow shared.UnitOfWork, cache shared.Cache, clk clock.Clock, rec metrics.Recorder) SlotCommands {
	return &slotUseCaseImpl{
		uow:         uow,
		clock:       clk,
		invalidator: invalidator{cache: cache, metrics: rec},
	}
}

func (uc *slotUseCaseImpl) Create(ctx context.Context, in CreateSlotInput) (*SlotResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	title, err := slot.NewTitle(in.Title)
	if err != nil {
		return nil, err
	}
	tr, err := slot.NewTimeRange(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}
	status, err := slot.NewOwnerStatus(in.Status)
	if err != nil {
		return nil, err
	}
	s, err := slot.NewSlot(in.OwnerID, title, tr, status, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return translate(tx.Slots().Create(ctx, s), errs.ErrSlotNotFound)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidator.drop(ctx, scopes{
		offered: s.IsOffered(),
		owners:  []uuid.UUID{s.OwnerID()},
	})
	return toSlotResult(s), nil
}

func (uc *slotUseCaseImpl) Update(ctx context.Context, in UpdateSlotInput) (*SlotResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var (
		updated    *slot.Slot
		wasOffered bool
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := uc.loadOwned(ctx, tx, in.ActorID, in.SlotID)
		if err != nil {
			return err
		}
		wasOffered = s.IsOffered()

		title, tr, status, err := mergeEdit(s, in)
		if err != nil {
			return err
		}
		if err := s.Edit(title, tr, status, uc.clock.Now()); err != nil {
			return err
		}
		if err := tx.Slots().Update(ctx, s); err != nil {
			return translate(err, errs.ErrSlotNotFound)
		}
		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidator.drop(ctx, scopes{
		offered: wasOffered || updated.IsOffered(),
		owners:  []uuid.UUID{updated.OwnerID()},
		slots:   []uuid.UUID{updated.ID()},
		parties: []uuid.UUID{updated.OwnerID()},
	})
	return toSlotResult(updated), nil
}

func mergeEdit(s *slot.Slot, in UpdateSlotInput) (slot.Title, slot.TimeRange, slot.Status, error) {
	title := s.Title()
	if in.Title != nil {
		t, err := slot.NewTitle(*in.Title)
		if err != nil {
			return slot.Title{}, slot.TimeRange{}, "", err
		}
		title = t
	}

	start, end := s.TimeRange().Start(), s.TimeRange().End()
	if in.StartTime != nil {
		start = *in.StartTime
	}
	if in.EndTime != nil {
		end = *in.EndTime
	}
	tr, err := slot.NewTimeRange(start, end)
	if err != nil {
		return slot.Title{}, slot.TimeRange{}, "", err
	}

	status := s.Status()
	if in.Status != nil {
		st, err := slot.NewOwnerStatus(*in.Status)
		if err != nil {
			return slot.Title{}, slot.TimeRange{}, "", err
		}
		status = st
	}
	return title, tr, status, nil
}

func (uc *slotUseCaseImpl) Delete(ctx context.Context, actorID, slotID uuid.UUID) error {
	if actorID == uuid.Nil || slotID == uuid.Nil {
		return errs.Wrap(errs.ErrInvalidInput, "actor and slot are required")
	}

	var deleted *slot.Slot
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := uc.loadOwned(ctx, tx, actorID, slotID)
		if err != nil {
			return err
		}
		if err := s.EnsureDeletable(); err != nil {
			return err
		}
		if err := tx.Slots().Delete(ctx, slotID); err != nil {
			return translate(err, errs.ErrSlotNotFound)
		}
		deleted = s
		return nil
	})
	if err != nil {
		return err
	}

	uc.invalidator.drop(ctx, scopes{
		offered: deleted.IsOffered(),
		owners:  []uuid.UUID{deleted.OwnerID()},
		slots:   []uuid.UUID{deleted.ID()},
		parties: []uuid.UUID{deleted.OwnerID()},
	})
	return nil
}

// loadOwned row-locks the slot so a concurrent Propose cannot lock it
// between the check and the write.
func (uc *slotUseCaseImpl) loadOwned(ctx context.Context, tx shared.Tx, actorID, slotID uuid.UUID) (*slot.Slot, error) {
	s, err := tx.Slots().GetForUpdate(ctx, slotID)
	if err != nil {
		return nil, translate(err, errs.ErrSlotNotFound)
	}
	if !s.OwnedBy(actorID) {
		return nil, errs.ErrSlotNotFound
	}
	return s, nil
}

func toSlotResult(s *slot.Slot) *SlotResult {
	return &SlotResult{
		ID:        s.ID(),
		OwnerID:   s.OwnerID(),
		Title:     s.Title().String(),
		StartTime: s.TimeRange().Start(),
		EndTime:   s.TimeRange().End(),
		Status:    s.Status().String(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}
