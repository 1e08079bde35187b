package swap

import (
	"time"

	"slot-swapper/internal/pkg/errs"

	"github.com/google/uuid"
)

// Proposal is an append-only record of intent to exchange two slots.
// It leaves PENDING exactly once.
type Proposal struct {
	id                uuid.UUID
	proposerID        uuid.UUID
	counterpartID     uuid.UUID
	proposerSlotID    uuid.UUID
	counterpartSlotID uuid.UUID
	status            Status
	createdAt         time.Time
	updatedAt         time.Time
}

func NewProposal(proposerID, counterpartID, proposerSlotID, counterpartSlotID uuid.UUID, now time.Time) (*Proposal, error) {
	if proposerID == uuid.Nil || counterpartID == uuid.Nil {
		return nil, errs.Wrap(errs.ErrInvalidInput, "both parties are required")
	}
	if proposerSlotID == uuid.Nil || counterpartSlotID == uuid.Nil {
		return nil, errs.Wrap(errs.ErrInvalidInput, "both slots are required")
	}
	if proposerSlotID == counterpartSlotID {
		return nil, errs.Wrap(errs.ErrInvalidInput, "a slot cannot be swapped with itself")
	}
	if proposerID == counterpartID {
		return nil, errs.ErrSelfSwapRejected
	}
	return &Proposal{
		id:                uuid.New(),
		proposerID:        proposerID,
		counterpartID:     counterpartID,
		proposerSlotID:    proposerSlotID,
		counterpartSlotID: counterpartSlotID,
		status:            StatusPending,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

func Reconstruct(id, proposerID, counterpartID, proposerSlotID, counterpartSlotID uuid.UUID, status Status, createdAt, updatedAt time.Time) *Proposal {
	return &Proposal{
		id:                id,
		proposerID:        proposerID,
		counterpartID:     counterpartID,
		proposerSlotID:    proposerSlotID,
		counterpartSlotID: counterpartSlotID,
		status:            status,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (p *Proposal) ID() uuid.UUID                { return p.id }
func (p *Proposal) ProposerID() uuid.UUID        { return p.proposerID }
func (p *Proposal) CounterpartID() uuid.UUID     { return p.counterpartID }
func (p *Proposal) ProposerSlotID() uuid.UUID    { return p.proposerSlotID }
func (p *Proposal) CounterpartSlotID() uuid.UUID { return p.counterpartSlotID }
func (p *Proposal) Status() Status               { return p.status }
func (p *Proposal) CreatedAt() time.Time         { return p.createdAt }
func (p *Proposal) UpdatedAt() time.Time         { return p.updatedAt }

func (p *Proposal) IsPending() bool { return p.status == StatusPending }

func (p *Proposal) References(slotID uuid.UUID) bool {
	return p.proposerSlotID == slotID || p.counterpartSlotID == slotID
}

func (p *Proposal) Involves(userID uuid.UUID) bool {
	return p.proposerID == userID || p.counterpartID == userID
}

// Resolve performs the single PENDING -> terminal transition.
func (p *Proposal) Resolve(outcome Status, now time.Time) error {
	if !outcome.IsTerminal() {
		return errs.Wrap(errs.ErrInvalidInput, "outcome must be ACCEPTED or REJECTED")
	}
	if !p.IsPending() {
		return errs.ErrAlreadyResolved
	}
	p.status = outcome
	p.updatedAt = now
	return nil
}
