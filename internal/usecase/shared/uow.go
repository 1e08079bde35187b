package shared

import (
	"context"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/domain/swap"
	"slot-swapper/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in one all-or-nothing transaction. Retryable store
	// failures are retried from scratch; fn must therefore be side-effect
	// free outside tx.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes repositories bound to the running transaction.
type Tx interface {
	Slots() SlotRepository
	Proposals() SwapLedger
	Users() UserRepository
}

// UserRepository mirrors identity-service accounts. Create reports an id or
// email that is already taken as DUPLICATE_KEY.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
}

// SlotRepository is the write side of the Slot Store. Errors carry
// infra.RepositoryError kinds: NOT_FOUND for a missing row and CONFLICT for a
// failed compare-and-swap.
type SlotRepository interface {
	Create(ctx context.Context, s *slot.Slot) error
	Get(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
	// GetForUpdate row-locks the slot until the transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
	// UpdateState is a compare-and-swap on the status column.
	UpdateState(ctx context.Context, id uuid.UUID, expected, next slot.Status) (*slot.Slot, error)
	TransferOwnership(ctx context.Context, id, newOwner uuid.UUID, next slot.Status) (*slot.Slot, error)
	Update(ctx context.Context, s *slot.Slot) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SwapLedger is the append-only record of proposals.
type SwapLedger interface {
	CreateProposal(ctx context.Context, p *swap.Proposal) error
	// FindPendingFor returns the pending proposal referencing any of slotIDs,
	// or nil when there is none.
	FindPendingFor(ctx context.Context, slotIDs ...uuid.UUID) (*swap.Proposal, error)
	Get(ctx context.Context, id uuid.UUID) (*swap.Proposal, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*swap.Proposal, error)
	// Resolve fails with CONFLICT when the proposal is no longer pending.
	Resolve(ctx context.Context, id uuid.UUID, outcome swap.Status) (*swap.Proposal, error)
}
