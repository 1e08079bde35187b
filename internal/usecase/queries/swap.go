package queries

import (
	"context"

	"slot-swapper/internal/pkg/errs"
	"slot-swapper/internal/pkg/metrics"
	"slot-swapper/internal/usecase/shared"

	"github.com/google/uuid"
)

type SwapQueries interface {
	// ListMine returns proposals where userID is the counterpart (incoming)
	// or the proposer (outgoing), each newest first.
	ListMine(ctx context.Context, userID uuid.UUID) (*ProposalLists, error)
}

type swapQueriesImpl struct {
	proposals ProposalReadStore
	slots     SlotReadStore
	users     UserReadStore
	cache     *cacheAside
	ttl       CacheTTLs
}

func NewSwapQueries(proposals ProposalReadStore, slots SlotReadStore, users UserReadStore, cache shared.Cache, rec metrics.Recorder, ttl CacheTTLs) SwapQueries {
	return &swapQueriesImpl{
		proposals: proposals,
		slots:     slots,
		users:     users,
		cache:     newCacheAside(cache, rec),
		ttl:       ttl,
	}
}

func (q *swapQueriesImpl) ListMine(ctx context.Context, userID uuid.UUID) (*ProposalLists, error) {
	lists, err := loadThrough(ctx, q.cache, shared.ProposalsKey(userID), q.ttl.Swap, func(ctx context.Context) (*ProposalLists, error) {
		incoming, outgoing, err := q.proposals.ListForUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return q.project(ctx, incoming, outgoing)
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to list proposals")
	}
	return lists, nil
}

func (q *swapQueriesImpl) project(ctx context.Context, incoming, outgoing []*ProposalRecord) (*ProposalLists, error) {
	all := make([]*ProposalRecord, 0, len(incoming)+len(outgoing))
	all = append(all, incoming...)
	all = append(all, outgoing...)

	var slotIDs, userIDs []uuid.UUID
	for _, p := range all {
		slotIDs = append(slotIDs, p.ProposerSlotID, p.CounterpartSlotID)
		userIDs = append(userIDs, p.ProposerID, p.CounterpartID)
	}

	slots, err := q.slots.ListByIDs(ctx, uniqueIDs(slotIDs...))
	if err != nil {
		return nil, err
	}
	users, err := q.users.ListByIDs(ctx, uniqueIDs(userIDs...))
	if err != nil {
		return nil, err
	}
	slotByID := indexSlots(slots)
	userByID := indexUsers(users)

	projectAll := func(records []*ProposalRecord) []*ProposalView {
		out := make([]*ProposalView, 0, len(records))
		for _, p := range records {
			out = append(out, ProjectProposal(p,
				slotByID[p.ProposerSlotID], slotByID[p.CounterpartSlotID],
				userByID[p.ProposerID], userByID[p.CounterpartID]))
		}
		return out
	}

	return &ProposalLists{
		Incoming: projectAll(incoming),
		Outgoing: projectAll(outgoing),
	}, nil
}
