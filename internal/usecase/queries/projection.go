package queries

import "github.com/google/uuid"

// ProjectSlot joins a slot with its owner. A missing owner projects as empty
// contact fields.
func ProjectSlot(s *SlotView, owner *UserSummary) *OfferedSlotView {
	v := &OfferedSlotView{SlotView: *s}
	if owner != nil {
		v.OwnerName = owner.Name
		v.OwnerEmail = owner.Email
	}
	return v
}

// ProjectProposal joins a ledger row with both slots and both parties as they
// are at read time. Any nil reference projects as a zero summary.
func ProjectProposal(p *ProposalRecord, proposerSlot, counterpartSlot *SlotView, proposer, counterpart *UserSummary) *ProposalView {
	return &ProposalView{
		ID:              p.ID,
		Status:          p.Status,
		Proposer:        partyOf(p.ProposerID, proposer),
		Counterpart:     partyOf(p.CounterpartID, counterpart),
		ProposerSlot:    slotSummaryOf(p.ProposerSlotID, proposerSlot),
		CounterpartSlot: slotSummaryOf(p.CounterpartSlotID, counterpartSlot),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func partyOf(id uuid.UUID, u *UserSummary) PartySummary {
	if u == nil {
		return PartySummary{ID: id}
	}
	return PartySummary{ID: id, Name: u.Name, Email: u.Email}
}

func slotSummaryOf(id uuid.UUID, s *SlotView) SlotSummary {
	if s == nil {
		return SlotSummary{ID: id}
	}
	return SlotSummary{
		ID:        id,
		Title:     s.Title,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Status:    s.Status,
	}
}

func indexSlots(slots []*SlotView) map[uuid.UUID]*SlotView {
	m := make(map[uuid.UUID]*SlotView, len(slots))
	for _, s := range slots {
		m[s.ID] = s
	}
	return m
}

func indexUsers(users []*UserSummary) map[uuid.UUID]*UserSummary {
	m := make(map[uuid.UUID]*UserSummary, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return m
}

// uniqueIDs keeps first-seen order.
func uniqueIDs(ids ...uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
