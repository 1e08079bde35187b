package response

import (
	"time"

	"slot-swapper/internal/usecase/commands"
	"slot-swapper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SlotResponse struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OfferedSlotResponse struct {
	SlotResponse
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
}

// field names line up with the use case structs, so copier can do the work
func FromSlotResult(r *commands.SlotResult) *SlotResponse {
	var res SlotResponse
	_ = copier.Copy(&res, r)
	return &res
}

func FromSlotView(v *queries.SlotView) *SlotResponse {
	var res SlotResponse
	_ = copier.Copy(&res, v)
	return &res
}

func FromSlotViews(vs []*queries.SlotView) []*SlotResponse {
	res := make([]*SlotResponse, len(vs))
	for i, v := range vs {
		res[i] = FromSlotView(v)
	}
	return res
}

func FromOfferedSlotViews(vs []*queries.OfferedSlotView) []*OfferedSlotResponse {
	res := make([]*OfferedSlotResponse, len(vs))
	for i, v := range vs {
		res[i] = &OfferedSlotResponse{
			SlotResponse: *FromSlotView(&v.SlotView),
			OwnerName:    v.OwnerName,
			OwnerEmail:   v.OwnerEmail,
		}
	}
	return res
}
