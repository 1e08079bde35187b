package commands

import (
	"slot-swapper/internal/infra"
	"slot-swapper/internal/pkg/errs"
)

// translate maps repository error kinds onto the sentinels callers classify.
// notFound is the sentinel a missing row means at this call site.
func translate(err, notFound error) error {
	if err == nil {
		return nil
	}
	switch infra.KindOf(err) {
	case infra.KindNotFound:
		return errs.Mark(err, notFound)
	case infra.KindConflict, infra.KindDuplicateKey:
		return errs.Mark(err, errs.ErrConflict)
	case infra.KindForeignKeyViolated:
		return errs.Mark(err, errs.ErrInvalidInput)
	default:
		return err
	}
}

// outcome is the metrics label for a finished command.
func outcome(err error, success string) string {
	switch {
	case err == nil:
		return success
	case errs.Is(err, errs.ErrInvalidInput), errs.Is(err, errs.ErrInvalidTimeRange):
		return "invalid"
	case errs.Is(err, errs.ErrSlotNotFound), errs.Is(err, errs.ErrProposalNotFound):
		return "not_found"
	case errs.Is(err, errs.ErrNotEligible):
		return "not_eligible"
	case errs.Is(err, errs.ErrSelfSwapRejected):
		return "self_swap"
	case errs.Is(err, errs.ErrSlotLocked):
		return "slot_locked"
	case errs.Is(err, errs.ErrUnauthorized):
		return "unauthorized"
	case errs.Is(err, errs.ErrAlreadyResolved):
		return "already_resolved"
	case errs.Is(err, errs.ErrSlotVanished):
		return "slot_vanished"
	case errs.Is(err, errs.ErrConflict):
		return "conflict"
	case errs.Is(err, errs.ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
