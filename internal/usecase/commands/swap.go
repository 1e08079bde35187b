package commands

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"time"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/domain/swap"
	"slot-swapper/internal/infra"
	"slot-swapper/internal/pkg/clock"
	"slot-swapper/internal/pkg/errs"
	"slot-swapper/internal/pkg/metrics"
	"slot-swapper/internal/usecase/shared"

	"github.com/google/uuid"
)

type ProposeInput struct {
	ActorID     uuid.UUID `validate:"required"`
	MySlotID    uuid.UUID `validate:"required"`
	TheirSlotID uuid.UUID `validate:"required"`
}

type RespondInput struct {
	ActorID    uuid.UUID `validate:"required"`
	ProposalID uuid.UUID `validate:"required"`
	Accept     bool
}

type ForceRejectInput struct {
	ActorID    uuid.UUID `validate:"required"`
	ProposalID uuid.UUID `validate:"required"`
}

type ProposalResult struct {
	ID                uuid.UUID
	ProposerID        uuid.UUID
	CounterpartID     uuid.UUID
	ProposerSlotID    uuid.UUID
	CounterpartSlotID uuid.UUID
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SwapCommands is the swap coordinator. Every call is one transaction; cache
// scopes are dropped only after it commits.
type SwapCommands interface {
	Propose(ctx context.Context, in ProposeInput) (*ProposalResult, error)
	Respond(ctx context.Context, in RespondInput) (*ProposalResult, error)
	// ForceReject is the administrative way out of a proposal whose slots
	// vanished. Callers must have checked the actor's role.
	ForceReject(ctx context.Context, in ForceRejectInput) (*ProposalResult, error)
}

type swapUseCaseImpl struct {
	uow         shared.UnitOfWork
	clock       clock.Clock
	metrics     metrics.Recorder
	invalidator invalidator
}

func NewSwapUseCase(uow shared.UnitOfWork, cache shared.Cache, clk clock.Clock, rec metrics.Recorder) SwapCommands {
	return &swapUseCaseImpl{
		uow:         uow,
		clock:       clk,
		metrics:     rec,
		invalidator: invalidator{cache: cache, metrics: rec},
	}
}

func (uc *swapUseCaseImpl) Propose(ctx context.Context, in ProposeInput) (*ProposalResult, error) {
	res, err := uc.propose(ctx, in)
	uc.metrics.RecordProposal(outcome(err, "created"))
	return res, err
}

func (uc *swapUseCaseImpl) propose(ctx context.Context, in ProposeInput) (*ProposalResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.MySlotID == in.TheirSlotID {
		return nil, errs.Wrap(errs.ErrInvalidInput, "cannot swap a slot with itself")
	}

	var created *swap.Proposal
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created = nil

		mine, err := tx.Slots().Get(ctx, in.MySlotID)
		if err != nil {
			return translate(err, errs.ErrSlotNotFound)
		}
		theirs, err := tx.Slots().Get(ctx, in.TheirSlotID)
		if err != nil {
			return translate(err, errs.ErrSlotNotFound)
		}

		if !mine.OwnedBy(in.ActorID) {
			return errs.Wrap(errs.ErrNotEligible, "offered slot is not owned by the caller")
		}
		if err := ensureSwappable(mine, "your slot"); err != nil {
			return err
		}
		if err := ensureSwappable(theirs, "requested slot"); err != nil {
			return err
		}
		if theirs.OwnedBy(in.ActorID) {
			return errs.ErrSelfSwapRejected
		}

		pending, err := tx.Proposals().FindPendingFor(ctx, mine.ID(), theirs.ID())
		if err != nil {
			return err
		}
		if pending != nil {
			return errs.ErrSlotLocked
		}

		p, err := swap.NewProposal(in.ActorID, theirs.OwnerID(), mine.ID(), theirs.ID(), uc.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Proposals().CreateProposal(ctx, p); err != nil {
			return translate(err, errs.ErrProposalNotFound)
		}
		for _, id := range lockOrder(mine.ID(), theirs.ID()) {
			if _, err := tx.Slots().UpdateState(ctx, id, slot.StatusOffered, slot.StatusLocked); err != nil {
				return translate(err, errs.ErrSlotNotFound)
			}
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidator.drop(ctx, scopes{
		offered: true,
		owners:  []uuid.UUID{created.ProposerID(), created.CounterpartID()},
		slots:   []uuid.UUID{created.ProposerSlotID(), created.CounterpartSlotID()},
		parties: []uuid.UUID{created.ProposerID(), created.CounterpartID()},
	})
	slog.Info("swap proposed",
		"proposal_id", created.ID(),
		"proposer_id", created.ProposerID(),
		"counterpart_id", created.CounterpartID())
	return toProposalResult(created), nil
}

// A locked slot already belongs to a pending proposal; anything else that is
// not offered is simply not up for swap.
func ensureSwappable(s *slot.Slot, which string) error {
	switch {
	case s.IsLocked():
		return errs.Wrap(errs.ErrSlotLocked, which+" is locked by a pending swap")
	case !s.IsOffered():
		return errs.Wrap(errs.ErrNotEligible, which+" is not offered for swap")
	}
	return nil
}

// lockOrder sorts ids so concurrent transactions take row locks in the same
// order.
func lockOrder(a, b uuid.UUID) []uuid.UUID {
	if bytes.Compare(a[:], b[:]) > 0 {
		return []uuid.UUID{b, a}
	}
	return []uuid.UUID{a, b}
}

func (uc *swapUseCaseImpl) Respond(ctx context.Context, in RespondInput) (*ProposalResult, error) {
	res, err := uc.respond(ctx, in)
	uc.metrics.RecordResponse(outcome(err, strings.ToLower(swap.OutcomeOf(in.Accept).String())))
	return res, err
}

func (uc *swapUseCaseImpl) respond(ctx context.Context, in RespondInput) (*ProposalResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var resolved *swap.Proposal
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		resolved = nil

		p, err := tx.Proposals().GetForUpdate(ctx, in.ProposalID)
		if err != nil {
			return translate(err, errs.ErrProposalNotFound)
		}
		if p.CounterpartID() != in.ActorID {
			return errs.ErrUnauthorized
		}
		if !p.IsPending() {
			return errs.ErrAlreadyResolved
		}

		slots, err := lockBoth(ctx, tx, p)
		if err != nil {
			return err
		}
		// Deletion refuses locked slots, so a missing one is an integrity
		// problem that only an administrator may clear.
		if slots[p.ProposerSlotID()] == nil || slots[p.CounterpartSlotID()] == nil {
			return errs.ErrSlotVanished
		}

		outcomeStatus := swap.OutcomeOf(in.Accept)
		if err := p.Resolve(outcomeStatus, uc.clock.Now()); err != nil {
			return err
		}

		if in.Accept {
			if _, err := tx.Slots().TransferOwnership(ctx, p.ProposerSlotID(), p.CounterpartID(), slot.StatusBusy); err != nil {
				return translate(err, errs.ErrSlotVanished)
			}
			if _, err := tx.Slots().TransferOwnership(ctx, p.CounterpartSlotID(), p.ProposerID(), slot.StatusBusy); err != nil {
				return translate(err, errs.ErrSlotVanished)
			}
		} else {
			if err := reoffer(ctx, tx, slots); err != nil {
				return err
			}
		}

		stored, err := tx.Proposals().Resolve(ctx, p.ID(), outcomeStatus)
		if err != nil {
			return translate(err, errs.ErrProposalNotFound)
		}
		resolved = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.afterResolve(ctx, resolved)
	slog.Info("swap resolved",
		"proposal_id", resolved.ID(),
		"status", resolved.Status().String(),
		"actor_id", in.ActorID)
	return toProposalResult(resolved), nil
}

func (uc *swapUseCaseImpl) ForceReject(ctx context.Context, in ForceRejectInput) (*ProposalResult, error) {
	res, err := uc.forceReject(ctx, in)
	uc.metrics.RecordResponse(outcome(err, "force_rejected"))
	return res, err
}

func (uc *swapUseCaseImpl) forceReject(ctx context.Context, in ForceRejectInput) (*ProposalResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var resolved *swap.Proposal
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		resolved = nil

		p, err := tx.Proposals().GetForUpdate(ctx, in.ProposalID)
		if err != nil {
			return translate(err, errs.ErrProposalNotFound)
		}
		if !p.IsPending() {
			return errs.ErrAlreadyResolved
		}

		slots, err := lockBoth(ctx, tx, p)
		if err != nil {
			return err
		}
		// Only the slots that still exist go back on offer.
		if err := reoffer(ctx, tx, slots); err != nil {
			return err
		}

		stored, err := tx.Proposals().Resolve(ctx, p.ID(), swap.StatusRejected)
		if err != nil {
			return translate(err, errs.ErrProposalNotFound)
		}
		resolved = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.afterResolve(ctx, resolved)
	slog.Warn("swap force-rejected",
		"proposal_id", resolved.ID(),
		"actor_id", in.ActorID)
	return toProposalResult(resolved), nil
}

// lockBoth row-locks both referenced slots in a stable order. Missing slots
// map to nil.
func lockBoth(ctx context.Context, tx shared.Tx, p *swap.Proposal) (map[uuid.UUID]*slot.Slot, error) {
	out := make(map[uuid.UUID]*slot.Slot, 2)
	for _, id := range lockOrder(p.ProposerSlotID(), p.CounterpartSlotID()) {
		s, err := tx.Slots().GetForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				out[id] = nil
				continue
			}
			return nil, err
		}
		out[id] = s
	}
	return out, nil
}

func reoffer(ctx context.Context, tx shared.Tx, slots map[uuid.UUID]*slot.Slot) error {
	for _, id := range sortedKeys(slots) {
		s := slots[id]
		if s == nil {
			continue
		}
		if _, err := tx.Slots().UpdateState(ctx, id, s.Status(), slot.StatusOffered); err != nil {
			return translate(err, errs.ErrSlotVanished)
		}
	}
	return nil
}

func sortedKeys(m map[uuid.UUID]*slot.Slot) []uuid.UUID {
	keys := make([]uuid.UUID, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	if len(keys) == 2 {
		return lockOrder(keys[0], keys[1])
	}
	return keys
}

func (uc *swapUseCaseImpl) afterResolve(ctx context.Context, p *swap.Proposal) {
	uc.invalidator.drop(ctx, scopes{
		offered: true,
		owners:  []uuid.UUID{p.ProposerID(), p.CounterpartID()},
		slots:   []uuid.UUID{p.ProposerSlotID(), p.CounterpartSlotID()},
		parties: []uuid.UUID{p.ProposerID(), p.CounterpartID()},
	})
}

func toProposalResult(p *swap.Proposal) *ProposalResult {
	return &ProposalResult{
		ID:                p.ID(),
		ProposerID:        p.ProposerID(),
		CounterpartID:     p.CounterpartID(),
		ProposerSlotID:    p.ProposerSlotID(),
		CounterpartSlotID: p.CounterpartSlotID(),
		Status:            p.Status().String(),
		CreatedAt:         p.CreatedAt(),
		UpdatedAt:         p.UpdatedAt(),
	}
}
