// README: TimeRange value type; half-open window of time.
package domain

import (
	"fmt"
	"time"
)

// TimeRange is an immutable window of time that includes its start and
// excludes its end, except when the duration is zero, in which case it
// includes exactly the start instant. Compare with Equal, not ==.
type TimeRange struct {
	start    time.Time
	duration time.Duration
}

// Never is an unsatisfiable TimeRange: no instant is included in it, and
// it is included in no range, itself included. It is the zero value, so an
// uninitialized TimeRange is Never; its start is the minimum
// representable time.
var Never = TimeRange{}

// Representable bounds for range endpoints. The zero time.Time (year 1)
// is the floor; year 9999 is the ceiling.
var (
	minTime = time.Time{}
	maxTime = time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC)
)

// NewTimeRange builds a range from an anchor and a signed duration. A
// positive duration extends forward from the anchor, a negative one
// backward, so the range always includes the earliest time and excludes
// the latest. Fails with ErrRangeOverflow when the computed endpoint
// lands outside the representable time bounds.
func NewTimeRange(anchor time.Time, duration time.Duration) (TimeRange, error) {
	start, end := anchor, anchor.Add(duration)
	if duration < 0 {
		start, end = end, start
		duration = -duration
	}
	if start.Before(minTime) {
		return Never, fmt.Errorf("%w: start is before the minimum representable time", ErrRangeOverflow)
	}
	if end.After(maxTime) {
		return Never, fmt.Errorf("%w: end is after the maximum representable time", ErrRangeOverflow)
	}
	return TimeRange{start: start, duration: duration}, nil
}

// Start is the earliest time included in the range.
func (r TimeRange) Start() time.Time { return r.start }

// End is the earliest time NOT included in the range.
func (r TimeRange) End() time.Time { return r.start.Add(r.duration) }

// Duration is always non-negative: End minus Start.
func (r TimeRange) Duration() time.Duration { return r.duration }

// IsNever reports whether the range is the unsatisfiable Never range.
func (r TimeRange) IsNever() bool { return r.duration == 0 && r.start.IsZero() }

// Includes reports whether the instant lies within the range:
// start <= t < end, or t == start for a zero-duration range.
func (r TimeRange) Includes(t time.Time) bool {
	if r.IsNever() {
		return false
	}
	if r.duration == 0 {
		// a single instant
		return r.start.Equal(t)
	}
	return !t.Before(r.start) && t.Before(r.End())
}

// IncludesRange reports whether other lies entirely within the range.
// Always false when either range is Never. A zero-duration other anchored
// exactly at this range's end is excluded.
func (r TimeRange) IncludesRange(other TimeRange) bool {
	if r.IsNever() || other.IsNever() {
		return false
	}
	return r.Includes(other.start) && !other.End().After(r.End())
}

// Equal compares by (start, duration).
func (r TimeRange) Equal(other TimeRange) bool {
	return r.start.Equal(other.start) && r.duration == other.duration
}

// RestoreTimeRange rebuilds a range from persisted start/end columns,
// which are already known to satisfy start <= end. FOR STORE USE ONLY.
func RestoreTimeRange(start, end time.Time) TimeRange {
	return TimeRange{start: start, duration: end.Sub(start)}
}

func (r TimeRange) String() string {
	if r.IsNever() {
		return "<never>"
	}
	if r.duration == 0 {
		return fmt.Sprintf("[%s]", r.start.Format(time.RFC3339))
	}
	return fmt.Sprintf("[%s, %s)", r.start.Format(time.RFC3339), r.End().Format(time.RFC3339))
}
