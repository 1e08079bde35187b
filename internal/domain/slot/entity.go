package slot

import (
	"time"

	"slot-swapper/internal/pkg/errs"

	"github.com/google/uuid"
)

// Slot is a time-bounded resource owned by exactly one user.
type Slot struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	title     Title
	timeRange TimeRange
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewSlot(ownerID uuid.UUID, title Title, tr TimeRange, status Status, now time.Time) (*Slot, error) {
	if ownerID == uuid.Nil {
		return nil, errs.Wrap(errs.ErrInvalidInput, "owner is required")
	}
	if status == StatusLocked || !status.IsValid() {
		return nil, errs.Wrap(errs.ErrInvalidInput, "invalid initial status")
	}
	return &Slot{
		id:        uuid.New(),
		ownerID:   ownerID,
		title:     title,
		timeRange: tr,
		status:    status,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a slot from persisted state without validation.
func Reconstruct(id, ownerID uuid.UUID, title string, start, end time.Time, status Status, createdAt, updatedAt time.Time) *Slot {
	return &Slot{
		id:        id,
		ownerID:   ownerID,
		title:     Title{value: title},
		timeRange: TimeRange{start: start, end: end},
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *Slot) ID() uuid.UUID        { return s.id }
func (s *Slot) OwnerID() uuid.UUID   { return s.ownerID }
func (s *Slot) Title() Title         { return s.title }
func (s *Slot) TimeRange() TimeRange { return s.timeRange }
func (s *Slot) Status() Status       { return s.status }
func (s *Slot) CreatedAt() time.Time { return s.createdAt }
func (s *Slot) UpdatedAt() time.Time { return s.updatedAt }

func (s *Slot) IsOffered() bool { return s.status == StatusOffered }
func (s *Slot) IsLocked() bool  { return s.status == StatusLocked }

func (s *Slot) OwnedBy(userID uuid.UUID) bool {
	return s.ownerID == userID
}

// Edit applies an owner edit. Locked slots belong to a pending swap and cannot change.
func (s *Slot) Edit(title Title, tr TimeRange, status Status, now time.Time) error {
	if s.IsLocked() {
		return errs.ErrSlotLocked
	}
	if status == StatusLocked || !status.IsValid() {
		return errs.Wrap(errs.ErrInvalidInput, "invalid status")
	}
	s.title = title
	s.timeRange = tr
	s.status = status
	s.updatedAt = now
	return nil
}

func (s *Slot) EnsureDeletable() error {
	if s.IsLocked() {
		return errs.ErrSlotLocked
	}
	return nil
}
