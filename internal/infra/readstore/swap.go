package readstore

import (
	"context"

	"slot-swapper/internal/infra"
	sqlc "slot-swapper/internal/infra/sqlc/generated"
	"slot-swapper/internal/pkg/pgconv"
	"slot-swapper/internal/usecase/queries"

	"github.com/google/uuid"
)

type ProposalReadQueries interface {
	ListProposalsForUser(ctx context.Context, db sqlc.DBTX, proposerID uuid.UUID) ([]sqlc.SwapProposals, error)
}

type ProposalReadStore struct {
	queries ProposalReadQueries
	db      sqlc.DBTX
}

func NewProposalReadStore(queries ProposalReadQueries, db sqlc.DBTX) *ProposalReadStore {
	return &ProposalReadStore{
		queries: queries,
		db:      db,
	}
}

// ListForUser reads both roles in one query; the rows are already newest
// first so partitioning keeps the order.
func (r *ProposalReadStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*queries.ProposalRecord, []*queries.ProposalRecord, error) {
	rows, err := r.queries.ListProposalsForUser(ctx, r.db, userID)
	if err != nil {
		return nil, nil, infra.WrapRepoErr("failed to list proposals for user", err)
	}

	incoming := make([]*queries.ProposalRecord, 0)
	outgoing := make([]*queries.ProposalRecord, 0)
	for _, row := range rows {
		rec := toProposalRecord(row)
		if row.CounterpartID == userID {
			incoming = append(incoming, rec)
		} else {
			outgoing = append(outgoing, rec)
		}
	}
	return incoming, outgoing, nil
}

func toProposalRecord(row sqlc.SwapProposals) *queries.ProposalRecord {
	return &queries.ProposalRecord{
		ID:                row.ID,
		ProposerID:        row.ProposerID,
		CounterpartID:     row.CounterpartID,
		ProposerSlotID:    row.ProposerSlotID,
		CounterpartSlotID: row.CounterpartSlotID,
		Status:            row.Status,
		CreatedAt:         pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:         pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
