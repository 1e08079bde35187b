package memstore

import (
	"context"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/domain/swap"
	"slot-swapper/internal/domain/user"
	"slot-swapper/internal/infra"

	"github.com/google/uuid"
)

type slotRepo struct {
	tx *memTx
}

func toSlot(r slotRow) *slot.Slot {
	return slot.Reconstruct(r.id, r.ownerID, r.title, r.start, r.end, r.status, r.createdAt, r.updatedAt)
}

func fromSlot(s *slot.Slot) slotRow {
	return slotRow{
		id:        s.ID(),
		ownerID:   s.OwnerID(),
		title:     s.Title().String(),
		start:     s.TimeRange().Start(),
		end:       s.TimeRange().End(),
		status:    s.Status(),
		createdAt: s.CreatedAt(),
		updatedAt: s.UpdatedAt(),
	}
}

func (r *slotRepo) write(op string) error {
	if err := r.tx.beforeWrite(op); err != nil {
		return infra.WrapRepoErr("write aborted: "+op, err)
	}
	return nil
}

// Create does not check the owner; see Store.
func (r *slotRepo) Create(_ context.Context, s *slot.Slot) error {
	if err := r.write("slot.create"); err != nil {
		return err
	}
	if _, ok := r.tx.staged.slots[s.ID()]; ok {
		return infra.WrapRepoErr("slot already exists", nil, infra.KindDuplicateKey)
	}
	r.tx.staged.slots[s.ID()] = fromSlot(s)
	return nil
}

func (r *slotRepo) Get(_ context.Context, id uuid.UUID) (*slot.Slot, error) {
	row, ok := r.tx.staged.slots[id]
	if !ok {
		return nil, infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return toSlot(row), nil
}

// GetForUpdate needs no row lock; write transactions are already serialised.
func (r *slotRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	return r.Get(ctx, id)
}

func (r *slotRepo) UpdateState(_ context.Context, id uuid.UUID, expected, next slot.Status) (*slot.Slot, error) {
	if err := r.write("slot.update_state"); err != nil {
		return nil, err
	}
	row, ok := r.tx.staged.slots[id]
	if !ok || row.status != expected {
		return nil, infra.WrapRepoErr("slot status changed concurrently", nil, infra.KindConflict)
	}
	row.status = next
	row.updatedAt = r.tx.clock.Now()
	r.tx.staged.slots[id] = row
	return toSlot(row), nil
}

func (r *slotRepo) TransferOwnership(_ context.Context, id, newOwner uuid.UUID, next slot.Status) (*slot.Slot, error) {
	if err := r.write("slot.transfer"); err != nil {
		return nil, err
	}
	row, ok := r.tx.staged.slots[id]
	if !ok {
		return nil, infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	row.ownerID = newOwner
	row.status = next
	row.updatedAt = r.tx.clock.Now()
	r.tx.staged.slots[id] = row
	return toSlot(row), nil
}

func (r *slotRepo) Update(_ context.Context, s *slot.Slot) error {
	if err := r.write("slot.update"); err != nil {
		return err
	}
	row, ok := r.tx.staged.slots[s.ID()]
	if !ok || row.status == slot.StatusLocked {
		return infra.WrapRepoErr("slot changed concurrently", nil, infra.KindConflict)
	}
	next := fromSlot(s)
	next.ownerID = row.ownerID
	next.createdAt = row.createdAt
	r.tx.staged.slots[s.ID()] = next
	return nil
}

func (r *slotRepo) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.write("slot.delete"); err != nil {
		return err
	}
	row, ok := r.tx.staged.slots[id]
	if !ok || row.status == slot.StatusLocked {
		return infra.WrapRepoErr("slot changed concurrently", nil, infra.KindConflict)
	}
	delete(r.tx.staged.slots, id)
	return nil
}

type ledgerRepo struct {
	tx *memTx
}

func toProposal(r proposalRow) *swap.Proposal {
	return swap.Reconstruct(r.id, r.proposerID, r.counterpartID, r.proposerSlotID, r.counterpartSlotID, r.status, r.createdAt, r.updatedAt)
}

func (r *ledgerRepo) CreateProposal(_ context.Context, p *swap.Proposal) error {
	if err := r.tx.beforeWrite("proposal.create"); err != nil {
		return infra.WrapRepoErr("write aborted: proposal.create", err)
	}
	if _, ok := r.tx.staged.proposals[p.ID()]; ok {
		return infra.WrapRepoErr("proposal already exists", nil, infra.KindDuplicateKey)
	}
	// Mirrors the partial unique indexes on pending slot references.
	if pendingFor(r.tx.staged, p.ProposerSlotID(), p.CounterpartSlotID()) != nil {
		return infra.WrapRepoErr("slot already has a pending proposal", nil, infra.KindDuplicateKey)
	}
	r.tx.staged.seq++
	r.tx.staged.proposals[p.ID()] = proposalRow{
		id:                p.ID(),
		proposerID:        p.ProposerID(),
		counterpartID:     p.CounterpartID(),
		proposerSlotID:    p.ProposerSlotID(),
		counterpartSlotID: p.CounterpartSlotID(),
		status:            p.Status(),
		createdAt:         p.CreatedAt(),
		updatedAt:         p.UpdatedAt(),
		seq:               r.tx.staged.seq,
	}
	return nil
}

func (r *ledgerRepo) FindPendingFor(_ context.Context, slotIDs ...uuid.UUID) (*swap.Proposal, error) {
	row := pendingFor(r.tx.staged, slotIDs...)
	if row == nil {
		return nil, nil
	}
	return toProposal(*row), nil
}

func pendingFor(st *state, slotIDs ...uuid.UUID) *proposalRow {
	for _, p := range st.proposals {
		if p.status != swap.StatusPending {
			continue
		}
		for _, id := range slotIDs {
			if p.proposerSlotID == id || p.counterpartSlotID == id {
				return &p
			}
		}
	}
	return nil
}

func (r *ledgerRepo) Get(_ context.Context, id uuid.UUID) (*swap.Proposal, error) {
	row, ok := r.tx.staged.proposals[id]
	if !ok {
		return nil, infra.WrapRepoErr("proposal not found", nil, infra.KindNotFound)
	}
	return toProposal(row), nil
}

func (r *ledgerRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*swap.Proposal, error) {
	return r.Get(ctx, id)
}

func (r *ledgerRepo) Resolve(_ context.Context, id uuid.UUID, outcome swap.Status) (*swap.Proposal, error) {
	if err := r.tx.beforeWrite("proposal.resolve"); err != nil {
		return nil, infra.WrapRepoErr("write aborted: proposal.resolve", err)
	}
	row, ok := r.tx.staged.proposals[id]
	if !ok || row.status != swap.StatusPending {
		return nil, infra.WrapRepoErr("proposal is no longer pending", nil, infra.KindConflict)
	}
	row.status = outcome
	row.updatedAt = r.tx.clock.Now()
	r.tx.staged.proposals[id] = row
	return toProposal(row), nil
}

type userRepo struct {
	tx *memTx
}

// Create enforces the same uniqueness as the users table: id and email.
func (r *userRepo) Create(_ context.Context, u *user.User) error {
	if err := r.tx.beforeWrite("user.create"); err != nil {
		return infra.WrapRepoErr("write aborted: user.create", err)
	}
	if _, ok := r.tx.staged.users[u.ID()]; ok {
		return infra.WrapRepoErr("user already exists", nil, infra.KindDuplicateKey)
	}
	for _, row := range r.tx.staged.users {
		if row.email == u.Email().Value() {
			return infra.WrapRepoErr("email already taken", nil, infra.KindDuplicateKey)
		}
	}
	r.tx.staged.users[u.ID()] = userRow{
		id:        u.ID(),
		name:      u.Name().Value(),
		email:     u.Email().Value(),
		role:      u.Role().String(),
		createdAt: u.CreatedAt(),
	}
	return nil
}
