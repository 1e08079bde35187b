package queries

import (
	"time"

	"github.com/google/uuid"
)

// SlotView is the read-side shape of a slot. It is also what the cache stores.
type SlotView struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// ProposalRecord is a ledger row before projection.
type ProposalRecord struct {
	ID                uuid.UUID `json:"id"`
	ProposerID        uuid.UUID `json:"proposer_id"`
	CounterpartID     uuid.UUID `json:"counterpart_id"`
	ProposerSlotID    uuid.UUID `json:"proposer_slot_id"`
	CounterpartSlotID uuid.UUID `json:"counterpart_slot_id"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// OfferedSlotView decorates an offered slot with its owner's contact data.
type OfferedSlotView struct {
	SlotView
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
}

// SlotSummary is the slot part of a projected proposal. Zero when the slot
// no longer exists.
type SlotSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

type PartySummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type ProposalView struct {
	ID              uuid.UUID    `json:"id"`
	Status          string       `json:"status"`
	Proposer        PartySummary `json:"proposer"`
	Counterpart     PartySummary `json:"counterpart"`
	ProposerSlot    SlotSummary  `json:"proposer_slot"`
	CounterpartSlot SlotSummary  `json:"counterpart_slot"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

type ProposalLists struct {
	Incoming []*ProposalView `json:"incoming"`
	Outgoing []*ProposalView `json:"outgoing"`
}
