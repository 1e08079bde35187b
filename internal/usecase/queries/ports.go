package queries

import (
	"context"

	"github.com/google/uuid"
)

// Read stores report a missing row with infra.KindNotFound.

type SlotReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SlotView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*SlotView, error)
	ListOffered(ctx context.Context, excludingOwner uuid.UUID) ([]*SlotView, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*SlotView, error)
}

type ProposalReadStore interface {
	// ListForUser partitions by role; both sides are ordered newest first.
	ListForUser(ctx context.Context, userID uuid.UUID) (incoming, outgoing []*ProposalRecord, err error)
}

type UserReadStore interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*UserSummary, error)
}
