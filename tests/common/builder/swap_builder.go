//go:build unit || e2e

package builder

import (
	"time"

	"slot-swapper/internal/usecase/commands"
	"slot-swapper/internal/usecase/queries"

	"github.com/google/uuid"
)

type ProposalBuilder struct {
	ID                uuid.UUID
	ProposerID        uuid.UUID
	CounterpartID     uuid.UUID
	ProposerSlotID    uuid.UUID
	CounterpartSlotID uuid.UUID
	Status            string
	CreatedAt         time.Time
}

func NewProposalBuilder() *ProposalBuilder {
	return &ProposalBuilder{
		ID:                uuid.New(),
		ProposerID:        uuid.New(),
		CounterpartID:     uuid.New(),
		ProposerSlotID:    uuid.New(),
		CounterpartSlotID: uuid.New(),
		Status:            "PENDING",
		CreatedAt:         time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC),
	}
}

func (b *ProposalBuilder) With(mutate func(*ProposalBuilder)) *ProposalBuilder {
	mutate(b)
	return b
}

func (b *ProposalBuilder) BuildResult() *commands.ProposalResult {
	return &commands.ProposalResult{
		ID:                b.ID,
		ProposerID:        b.ProposerID,
		CounterpartID:     b.CounterpartID,
		ProposerSlotID:    b.ProposerSlotID,
		CounterpartSlotID: b.CounterpartSlotID,
		Status:            b.Status,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.CreatedAt,
	}
}

func (b *ProposalBuilder) BuildRecord() *queries.ProposalRecord {
	return &queries.ProposalRecord{
		ID:                b.ID,
		ProposerID:        b.ProposerID,
		CounterpartID:     b.CounterpartID,
		ProposerSlotID:    b.ProposerSlotID,
		CounterpartSlotID: b.CounterpartSlotID,
		Status:            b.Status,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.CreatedAt,
	}
}

// BuildView projects with placeholder party data; slot summaries carry only ids.
func (b *ProposalBuilder) BuildView() *queries.ProposalView {
	return &queries.ProposalView{
		ID:              b.ID,
		Status:          b.Status,
		Proposer:        queries.PartySummary{ID: b.ProposerID, Name: "Proposer", Email: "proposer@example.com"},
		Counterpart:     queries.PartySummary{ID: b.CounterpartID, Name: "Counterpart", Email: "counterpart@example.com"},
		ProposerSlot:    queries.SlotSummary{ID: b.ProposerSlotID},
		CounterpartSlot: queries.SlotSummary{ID: b.CounterpartSlotID},
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.CreatedAt,
	}
}

func (b *ProposalBuilder) WithStatus(status string) *ProposalBuilder {
	b.Status = status
	return b
}

func (b *ProposalBuilder) Between(proposerID, counterpartID uuid.UUID) *ProposalBuilder {
	b.ProposerID = proposerID
	b.CounterpartID = counterpartID
	return b
}
