package errs

// Sentinel outcomes of the swap engine. The use case layer marks lower-level
// errors with these so the HTTP boundary can classify them with Is.
var (
	// Validation errors: rejected before any state change
	ErrInvalidInput     = New("invalid input")
	ErrInvalidTimeRange = New("end time must be after start time")

	// Slot errors
	ErrSlotNotFound = New("slot not found")
	ErrSlotLocked   = New("slot is locked by a pending swap")

	// Eligibility errors: retrying will not change the outcome
	ErrNotEligible      = New("slot not eligible for swap")
	ErrSelfSwapRejected = New("cannot swap with your own slot")
	ErrUnauthorized     = New("not authorized to respond to this proposal")
	ErrAlreadyResolved  = New("proposal has already been resolved")

	// Proposal errors
	ErrProposalNotFound = New("swap proposal not found")

	// Concurrency errors: safe to retry the whole call
	ErrConflict    = New("concurrent modification conflict")
	ErrUnavailable = New("store unavailable")

	// Data integrity errors
	ErrSlotVanished = New("one or both slots no longer exist")

	// Identity mirror errors
	ErrUserExists = New("user already provisioned")
)

// Retryable reports whether the caller may retry the whole operation from scratch.
func Retryable(err error) bool {
	return IsAny(err, ErrConflict, ErrUnavailable)
}
