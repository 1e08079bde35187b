package slot

import (
	"strings"
	"time"

	"slot-swapper/internal/pkg/errs"
)

const MaxTitleLength = 200

type TimeRange struct {
	start time.Time
	end   time.Time
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.IsZero() || end.IsZero() {
		return TimeRange{}, errs.Wrap(errs.ErrInvalidInput, "start and end are required")
	}
	if !end.After(start) {
		return TimeRange{}, errs.ErrInvalidTimeRange
	}
	return TimeRange{start: start.UTC(), end: end.UTC()}, nil
}

func (tr TimeRange) Start() time.Time { return tr.start }
func (tr TimeRange) End() time.Time   { return tr.end }

func (tr TimeRange) Duration() time.Duration {
	return tr.end.Sub(tr.start)
}

type Title struct {
	value string
}

func NewTitle(s string) (Title, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Title{}, errs.Wrap(errs.ErrInvalidInput, "title is required")
	}
	if len(t) > MaxTitleLength {
		return Title{}, errs.Wrap(errs.ErrInvalidInput, "title is too long")
	}
	return Title{value: t}, nil
}

func (t Title) String() string { return t.value }
