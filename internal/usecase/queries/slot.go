package queries

import (
	"context"
	"time"

	"slot-swapper/internal/infra"
	"slot-swapper/internal/pkg/errs"
	"slot-swapper/internal/pkg/metrics"
	"slot-swapper/internal/usecase/shared"

	"github.com/google/uuid"
)

type SlotQueries interface {
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]*SlotView, error)
	GetMine(ctx context.Context, ownerID, slotID uuid.UUID) (*SlotView, error)
	// ListOffered returns every OFFERED slot not owned by viewerID, start ascending.
	ListOffered(ctx context.Context, viewerID uuid.UUID) ([]*OfferedSlotView, error)
}

type CacheTTLs struct {
	Slot time.Duration
	Swap time.Duration
}

type slotQueriesImpl struct {
	slots SlotReadStore
	users UserReadStore
	cache *cacheAside
	ttl   CacheTTLs
}

func NewSlotQueries(slots SlotReadStore, users UserReadStore, cache shared.Cache, rec metrics.Recorder, ttl CacheTTLs) SlotQueries {
	return &slotQueriesImpl{
		slots: slots,
		users: users,
		cache: newCacheAside(cache, rec),
		ttl:   ttl,
	}
}

func (q *slotQueriesImpl) ListMine(ctx context.Context, ownerID uuid.UUID) ([]*SlotView, error) {
	views, err := loadThrough(ctx, q.cache, shared.OwnerSlotsKey(ownerID), q.ttl.Slot, func(ctx context.Context) ([]*SlotView, error) {
		return q.slots.ListByOwner(ctx, ownerID)
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to list slots")
	}
	return nonNil(views), nil
}

func (q *slotQueriesImpl) GetMine(ctx context.Context, ownerID, slotID uuid.UUID) (*SlotView, error) {
	view, err := loadThrough(ctx, q.cache, shared.SlotKey(slotID), q.ttl.Slot, func(ctx context.Context) (*SlotView, error) {
		return q.slots.FindByID(ctx, slotID)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrSlotNotFound
		}
		return nil, errs.Wrap(err, "failed to get slot")
	}
	// Someone else's slot is reported as missing.
	if view.OwnerID != ownerID {
		return nil, errs.ErrSlotNotFound
	}
	return view, nil
}

func (q *slotQueriesImpl) ListOffered(ctx context.Context, viewerID uuid.UUID) ([]*OfferedSlotView, error) {
	views, err := loadThrough(ctx, q.cache, shared.OfferedKey(viewerID), q.ttl.Swap, func(ctx context.Context) ([]*OfferedSlotView, error) {
		slots, err := q.slots.ListOffered(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		ownerIDs := make([]uuid.UUID, 0, len(slots))
		for _, s := range slots {
			ownerIDs = append(ownerIDs, s.OwnerID)
		}
		owners, err := q.users.ListByIDs(ctx, uniqueIDs(ownerIDs...))
		if err != nil {
			return nil, err
		}
		byID := indexUsers(owners)

		out := make([]*OfferedSlotView, 0, len(slots))
		for _, s := range slots {
			out = append(out, ProjectSlot(s, byID[s.OwnerID]))
		}
		return out, nil
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to list offered slots")
	}
	return nonNil(views), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
