//go:build unit || e2e

package builder

import (
	"time"

	"slot-swapper/internal/domain/slot"
	reqdto "slot-swapper/internal/handler/dto/request"
	"slot-swapper/internal/usecase/commands"
	"slot-swapper/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotBuilder struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Status    string
	CreatedAt time.Time
}

func NewSlotBuilder() *SlotBuilder {
	start := time.Date(2030, 1, 15, 9, 0, 0, 0, time.UTC)
	return &SlotBuilder{
		ID:        uuid.New(),
		OwnerID:   uuid.New(),
		Title:     "Team standup",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    "OFFERED",
		CreatedAt: start.Add(-24 * time.Hour),
	}
}

func (b *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *SlotBuilder) BuildDomain() (*slot.Slot, error) {
	title, err := slot.NewTitle(b.Title)
	if err != nil {
		return nil, err
	}
	if _, err = slot.NewTimeRange(b.StartTime, b.EndTime); err != nil {
		return nil, err
	}
	return slot.Reconstruct(b.ID, b.OwnerID, title.String(), b.StartTime, b.EndTime, slot.Status(b.Status), b.CreatedAt, b.CreatedAt), nil
}

func (b *SlotBuilder) BuildCreateRequestDTO() reqdto.CreateSlotRequest {
	return reqdto.CreateSlotRequest{
		Title:     b.Title,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    b.Status,
	}
}

func (b *SlotBuilder) BuildView() *queries.SlotView {
	return &queries.SlotView{
		ID:        b.ID,
		OwnerID:   b.OwnerID,
		Title:     b.Title,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.CreatedAt,
	}
}

func (b *SlotBuilder) BuildResult() *commands.SlotResult {
	return &commands.SlotResult{
		ID:        b.ID,
		OwnerID:   b.OwnerID,
		Title:     b.Title,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.CreatedAt,
	}
}

// Fluent builder methods
func (b *SlotBuilder) WithOwner(ownerID uuid.UUID) *SlotBuilder {
	b.OwnerID = ownerID
	return b
}

func (b *SlotBuilder) WithTitle(title string) *SlotBuilder {
	b.Title = title
	return b
}

func (b *SlotBuilder) WithStatus(status string) *SlotBuilder {
	b.Status = status
	return b
}

func (b *SlotBuilder) StartingAt(start time.Time, d time.Duration) *SlotBuilder {
	b.StartTime = start
	b.EndTime = start.Add(d)
	return b
}
