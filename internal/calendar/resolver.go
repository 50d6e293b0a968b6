package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange is returned when an explicit range supplies only one of
// the two dates.
var ErrInvalidRange = errors.New("explicit range requires both start and end dates")

// Window is a half-open UTC interval [Start, End) scoping an upstream
// listing query. A zero End means the window is open-ended and extends to
// "now".
type Window struct {
	Start time.Time
	End   time.Time
}

// OpenEnded reports whether the window has no upper bound.
func (w Window) OpenEnded() bool {
	return w.End.IsZero()
}

// ResolveRelative resolves a "daysBack business days before now" window.
// daysBack 0 yields the current business day so far, open-ended. Any other
// value yields a closed window capped at the start of the current business
// day, so a historical window never includes data created after its own day
// ended.
func (c Calendar) ResolveRelative(now time.Time, daysBack int) Window {
	current := c.ToBusinessDay(now)
	w := Window{Start: c.DayStartUTC(current.AddDays(-daysBack))}
	if daysBack > 0 {
		w.End = c.DayStartUTC(current)
	}
	return w
}

// ResolveExplicit resolves an inclusive local date range. The end date's
// whole business day is included: the window ends where the following day
// begins.
func (c Calendar) ResolveExplicit(startDate, endDate string) (Window, error) {
	if startDate == "" || endDate == "" {
		return Window{}, ErrInvalidRange
	}
	start, err := ParseDay(startDate)
	if err != nil {
		return Window{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	end, err := ParseDay(endDate)
	if err != nil {
		return Window{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	return Window{
		Start: c.DayStartUTC(start),
		End:   c.DayStartUTC(end.AddDays(1)),
	}, nil
}
