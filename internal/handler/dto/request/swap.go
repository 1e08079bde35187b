package request

import (
	"slot-swapper/internal/usecase/commands"

	"github.com/google/uuid"
)

type ProposeSwapRequest struct {
	MySlotID    uuid.UUID `json:"my_slot_id" binding:"required"`
	TheirSlotID uuid.UUID `json:"their_slot_id" binding:"required"`
}

type RespondSwapRequest struct {
	// pointer so that an explicit false passes the required check
	Accepted *bool `json:"accepted" binding:"required"`
}

func (r *ProposeSwapRequest) ToInput(actorID uuid.UUID) commands.ProposeInput {
	return commands.ProposeInput{
		ActorID:     actorID,
		MySlotID:    r.MySlotID,
		TheirSlotID: r.TheirSlotID,
	}
}

func (r *RespondSwapRequest) ToInput(actorID, proposalID uuid.UUID) commands.RespondInput {
	return commands.RespondInput{
		ActorID:    actorID,
		ProposalID: proposalID,
		Accept:     *r.Accepted,
	}
}
