package repository

import (
	"context"

	"slot-swapper/internal/domain/swap"
	"slot-swapper/internal/infra"
	"slot-swapper/internal/infra/repository/converter"
	sqlc "slot-swapper/internal/infra/sqlc/generated"
	"slot-swapper/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type SwapWriteQueries interface {
	CreateProposal(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateProposalParams) (sqlc.SwapProposals, error)
	GetProposal(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.SwapProposals, error)
	GetProposalForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.SwapProposals, error)
	FindPendingProposalForSlots(ctx context.Context, db sqlc.DBTX, slotIds []uuid.UUID) (sqlc.SwapProposals, error)
	ResolveProposal(ctx context.Context, db sqlc.DBTX, arg sqlc.ResolveProposalParams) (sqlc.SwapProposals, error)
}

// SwapLedgerRepository never deletes; the only mutation is Resolve.
type SwapLedgerRepository struct {
	queries SwapWriteQueries
	db      sqlc.DBTX
}

func NewSwapLedgerRepository(queries SwapWriteQueries, db sqlc.DBTX) *SwapLedgerRepository {
	return &SwapLedgerRepository{
		queries: queries,
		db:      db,
	}
}

// CreateProposal reports KindDuplicateKey when a pending-slot unique index fires.
func (r *SwapLedgerRepository) CreateProposal(ctx context.Context, p *swap.Proposal) error {
	if _, err := r.queries.CreateProposal(ctx, r.db, converter.ProposalToCreateParams(p)); err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("slot already has a pending proposal", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create proposal", err)
	}
	return nil
}

func (r *SwapLedgerRepository) FindPendingFor(ctx context.Context, slotIDs ...uuid.UUID) (*swap.Proposal, error) {
	if len(slotIDs) == 0 {
		return nil, nil
	}
	row, err := r.queries.FindPendingProposalForSlots(ctx, r.db, slotIDs)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find pending proposal", err)
	}
	return converter.ProposalFromRow(row), nil
}

func (r *SwapLedgerRepository) Get(ctx context.Context, id uuid.UUID) (*swap.Proposal, error) {
	row, err := r.queries.GetProposal(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("proposal not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get proposal", err)
	}
	return converter.ProposalFromRow(row), nil
}

func (r *SwapLedgerRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*swap.Proposal, error) {
	row, err := r.queries.GetProposalForUpdate(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("proposal not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock proposal", err)
	}
	return converter.ProposalFromRow(row), nil
}

func (r *SwapLedgerRepository) Resolve(ctx context.Context, id uuid.UUID, outcome swap.Status) (*swap.Proposal, error) {
	row, err := r.queries.ResolveProposal(ctx, r.db, sqlc.ResolveProposalParams{
		ID:     id,
		Status: outcome.String(),
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("proposal is no longer pending", err, infra.KindConflict)
		}
		return nil, infra.WrapRepoErr("failed to resolve proposal", err)
	}
	return converter.ProposalFromRow(row), nil
}
