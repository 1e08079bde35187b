package memstore

import (
	"cmp"
	"context"
	"slices"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/infra"
	"slot-swapper/internal/usecase/queries"

	"github.com/google/uuid"
)

// Read stores see only committed state.

func (s *Store) SlotReads() queries.SlotReadStore         { return slotReads{s} }
func (s *Store) ProposalReads() queries.ProposalReadStore { return proposalReads{s} }
func (s *Store) UserReads() queries.UserReadStore         { return userReads{s} }

type slotReads struct{ s *Store }

func slotView(r slotRow) *queries.SlotView {
	return &queries.SlotView{
		ID:        r.id,
		OwnerID:   r.ownerID,
		Title:     r.title,
		StartTime: r.start,
		EndTime:   r.end,
		Status:    r.status.String(),
		CreatedAt: r.createdAt,
		UpdatedAt: r.updatedAt,
	}
}

func byStart(a, b *queries.SlotView) int {
	if c := a.StartTime.Compare(b.StartTime); c != 0 {
		return c
	}
	return cmp.Compare(a.ID.String(), b.ID.String())
}

func (r slotReads) collect(keep func(slotRow) bool) []*queries.SlotView {
	st := r.s.snapshot()
	views := make([]*queries.SlotView, 0)
	for _, row := range st.slots {
		if keep(row) {
			views = append(views, slotView(row))
		}
	}
	slices.SortFunc(views, byStart)
	return views
}

func (r slotReads) FindByID(_ context.Context, id uuid.UUID) (*queries.SlotView, error) {
	row, ok := r.s.snapshot().slots[id]
	if !ok {
		return nil, infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return slotView(row), nil
}

func (r slotReads) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*queries.SlotView, error) {
	return r.collect(func(row slotRow) bool { return row.ownerID == ownerID }), nil
}

func (r slotReads) ListOffered(_ context.Context, excludingOwner uuid.UUID) ([]*queries.SlotView, error) {
	return r.collect(func(row slotRow) bool {
		return row.status == slot.StatusOffered && row.ownerID != excludingOwner
	}), nil
}

func (r slotReads) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*queries.SlotView, error) {
	st := r.s.snapshot()
	views := make([]*queries.SlotView, 0, len(ids))
	for _, id := range ids {
		if row, ok := st.slots[id]; ok {
			views = append(views, slotView(row))
		}
	}
	return views, nil
}

type proposalReads struct{ s *Store }

func (r proposalReads) ListForUser(_ context.Context, userID uuid.UUID) ([]*queries.ProposalRecord, []*queries.ProposalRecord, error) {
	st := r.s.snapshot()
	var rows []proposalRow
	for _, p := range st.proposals {
		if p.proposerID == userID || p.counterpartID == userID {
			rows = append(rows, p)
		}
	}
	slices.SortFunc(rows, func(a, b proposalRow) int {
		if c := b.createdAt.Compare(a.createdAt); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})

	incoming := make([]*queries.ProposalRecord, 0)
	outgoing := make([]*queries.ProposalRecord, 0)
	for _, p := range rows {
		rec := &queries.ProposalRecord{
			ID:                p.id,
			ProposerID:        p.proposerID,
			CounterpartID:     p.counterpartID,
			ProposerSlotID:    p.proposerSlotID,
			CounterpartSlotID: p.counterpartSlotID,
			Status:            p.status.String(),
			CreatedAt:         p.createdAt,
			UpdatedAt:         p.updatedAt,
		}
		if p.counterpartID == userID {
			incoming = append(incoming, rec)
		} else {
			outgoing = append(outgoing, rec)
		}
	}
	return incoming, outgoing, nil
}

type userReads struct{ s *Store }

func (r userReads) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*queries.UserSummary, error) {
	st := r.s.snapshot()
	users := make([]*queries.UserSummary, 0, len(ids))
	for _, id := range ids {
		if u, ok := st.users[id]; ok {
			users = append(users, &queries.UserSummary{ID: u.id, Name: u.name, Email: u.email})
		}
	}
	return users, nil
}
