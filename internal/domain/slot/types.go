package slot

import "slot-swapper/internal/pkg/errs"

type Status string

const (
	StatusBusy    Status = "BUSY"
	StatusOffered Status = "OFFERED"
	StatusLocked  Status = "LOCKED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusBusy, StatusOffered, StatusLocked:
		return true
	default:
		return false
	}
}

// NewOwnerStatus parses a status an owner may set directly. LOCKED is reserved
// for the swap coordinator. An empty string defaults to BUSY.
func NewOwnerStatus(s string) (Status, error) {
	if s == "" {
		return StatusBusy, nil
	}
	status := Status(s)
	switch status {
	case StatusBusy, StatusOffered:
		return status, nil
	case StatusLocked:
		return "", errs.Wrap(errs.ErrInvalidInput, "status LOCKED cannot be set directly")
	default:
		return "", errs.Wrap(errs.ErrInvalidInput, "unknown status "+s)
	}
}
