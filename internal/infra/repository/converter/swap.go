package converter

import (
	"slot-swapper/internal/domain/swap"
	sqlc "slot-swapper/internal/infra/sqlc/generated"
	"slot-swapper/internal/pkg/pgconv"
)

func ProposalToCreateParams(p *swap.Proposal) sqlc.CreateProposalParams {
	return sqlc.CreateProposalParams{
		ID:                p.ID(),
		ProposerID:        p.ProposerID(),
		CounterpartID:     p.CounterpartID(),
		ProposerSlotID:    p.ProposerSlotID(),
		CounterpartSlotID: p.CounterpartSlotID(),
		CreatedAt:         pgconv.TimeToPgtype(p.CreatedAt()),
	}
}

func ProposalFromRow(row sqlc.SwapProposals) *swap.Proposal {
	return swap.Reconstruct(
		row.ID,
		row.ProposerID,
		row.CounterpartID,
		row.ProposerSlotID,
		row.CounterpartSlotID,
		swap.Status(row.Status),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}
