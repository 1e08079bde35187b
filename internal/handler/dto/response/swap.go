package response

import (
	"time"

	"slot-swapper/internal/usecase/commands"
	"slot-swapper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ProposalResponse struct {
	ID                uuid.UUID `json:"id"`
	ProposerID        uuid.UUID `json:"proposer_id"`
	CounterpartID     uuid.UUID `json:"counterpart_id"`
	ProposerSlotID    uuid.UUID `json:"proposer_slot_id"`
	CounterpartSlotID uuid.UUID `json:"counterpart_slot_id"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type PartyResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// SlotSummaryResponse is zero apart from the id when the slot is gone.
type SlotSummaryResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

type ProposalViewResponse struct {
	ID              uuid.UUID           `json:"id"`
	Status          string              `json:"status"`
	Proposer        PartyResponse       `json:"proposer"`
	Counterpart     PartyResponse       `json:"counterpart"`
	ProposerSlot    SlotSummaryResponse `json:"proposer_slot"`
	CounterpartSlot SlotSummaryResponse `json:"counterpart_slot"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type ProposalListsResponse struct {
	Incoming []*ProposalViewResponse `json:"incoming"`
	Outgoing []*ProposalViewResponse `json:"outgoing"`
}

func FromProposalResult(r *commands.ProposalResult) *ProposalResponse {
	var res ProposalResponse
	_ = copier.Copy(&res, r)
	return &res
}

func FromProposalLists(l *queries.ProposalLists) *ProposalListsResponse {
	return &ProposalListsResponse{
		Incoming: fromProposalViews(l.Incoming),
		Outgoing: fromProposalViews(l.Outgoing),
	}
}

func fromProposalViews(vs []*queries.ProposalView) []*ProposalViewResponse {
	res := make([]*ProposalViewResponse, len(vs))
	for i, v := range vs {
		res[i] = &ProposalViewResponse{
			ID:              v.ID,
			Status:          v.Status,
			Proposer:        PartyResponse(v.Proposer),
			Counterpart:     PartyResponse(v.Counterpart),
			ProposerSlot:    SlotSummaryResponse(v.ProposerSlot),
			CounterpartSlot: SlotSummaryResponse(v.CounterpartSlot),
			CreatedAt:       v.CreatedAt,
			UpdatedAt:       v.UpdatedAt,
		}
	}
	return res
}
