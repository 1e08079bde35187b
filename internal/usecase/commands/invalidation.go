package commands

import (
	"context"
	"time"

	"slot-swapper/internal/pkg/metrics"
	"slot-swapper/internal/usecase/shared"

	"github.com/google/uuid"
)

const invalidationTimeout = 2 * time.Second

// invalidator drops cache scopes after a commit. It outlives the request
// context so a client disconnect cannot leave stale availability behind.
type invalidator struct {
	cache   shared.Cache
	metrics metrics.Recorder
}

type scopes struct {
	offered bool
	owners  []uuid.UUID
	slots   []uuid.UUID
	// proposals lists of these users
	parties []uuid.UUID
}

func (i invalidator) drop(ctx context.Context, s scopes) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidationTimeout)
	defer cancel()

	if s.offered {
		i.cache.DeleteByPrefix(ctx, shared.OfferedPrefix)
		i.metrics.RecordInvalidation(shared.ScopeOffered)
	}

	keys := make([]string, 0, len(s.owners)+len(s.slots)+len(s.parties))
	for _, id := range uniq(s.owners) {
		keys = append(keys, shared.OwnerSlotsKey(id))
		i.metrics.RecordInvalidation(shared.ScopeOwnerSlots)
	}
	for _, id := range uniq(s.slots) {
		keys = append(keys, shared.SlotKey(id))
		i.metrics.RecordInvalidation(shared.ScopeSlot)
	}
	for _, id := range uniq(s.parties) {
		keys = append(keys, shared.ProposalsKey(id))
		i.metrics.RecordInvalidation(shared.ScopeProposals)
	}
	i.cache.Delete(ctx, keys...)
}

func uniq(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
