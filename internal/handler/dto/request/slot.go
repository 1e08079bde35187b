package request

import (
	"time"

	"slot-swapper/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateSlotRequest struct {
	Title     string    `json:"title" binding:"required,max=200"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Status    string    `json:"status" binding:"omitempty,oneof=BUSY OFFERED"`
}

// UpdateSlotRequest is a partial update; absent fields keep their value.
type UpdateSlotRequest struct {
	Title     *string    `json:"title" binding:"omitempty,max=200"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Status    *string    `json:"status" binding:"omitempty,oneof=BUSY OFFERED"`
}

func (r *CreateSlotRequest) ToInput(ownerID uuid.UUID) commands.CreateSlotInput {
	return commands.CreateSlotInput{
		OwnerID:   ownerID,
		Title:     r.Title,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Status:    r.Status,
	}
}

func (r *UpdateSlotRequest) ToInput(actorID, slotID uuid.UUID) commands.UpdateSlotInput {
	return commands.UpdateSlotInput{
		ActorID:   actorID,
		SlotID:    slotID,
		Title:     r.Title,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Status:    r.Status,
	}
}
