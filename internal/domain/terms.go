// README: Terms value type; the buyer's pickup/dropoff terms.
package domain

import (
	"fmt"
	"time"
)

// Terms are the buyer's side of an auction: a pickup waypoint, a dropoff
// waypoint, and free-text terms (never empty-by-nil; defaults to "").
type Terms struct {
	pickup     Waypoint
	dropoff    Waypoint
	otherTerms string
}

func (t Terms) Pickup() Waypoint   { return t.pickup }
func (t Terms) Dropoff() Waypoint  { return t.dropoff }
func (t Terms) OtherTerms() string { return t.otherTerms }

func (t Terms) Equal(other Terms) bool {
	return t.pickup.Equal(other.pickup) &&
		t.dropoff.Equal(other.dropoff) &&
		t.otherTerms == other.otherTerms
}

// withPickupLocation returns a copy with the pickup place replaced and
// the pickup time preserved. Only the alter-pickup command may change a
// pickup; the time window is immutable through that path.
func (t Terms) withPickupLocation(place Location) Terms {
	return Terms{
		pickup:     NewWaypoint(place, t.pickup.time),
		dropoff:    t.dropoff,
		otherTerms: t.otherTerms,
	}
}

// TermsFactory validates and creates Terms against the Clock port.
type TermsFactory struct {
	clock Clock
}

func NewTermsFactory(clock Clock) *TermsFactory {
	return &TermsFactory{clock: clock}
}

// New validates that both windows end strictly after now and that the
// pickup window ends no later than the dropoff window.
func (f *TermsFactory) New(pickup, dropoff Waypoint, otherTerms string) (Terms, error) {
	return newTermsAt(f.clock.Now(), pickup, dropoff, otherTerms)
}

// newTermsAt performs the validation against a single captured "now" so
// an enclosing operation never queries the clock twice.
func newTermsAt(now time.Time, pickup, dropoff Waypoint, otherTerms string) (Terms, error) {
	if pickup.time.IsNever() {
		return Terms{}, fmt.Errorf("%w: pickup time", ErrValueRequired)
	}
	if dropoff.time.IsNever() {
		return Terms{}, fmt.Errorf("%w: dropoff time", ErrValueRequired)
	}
	if !pickup.time.End().After(now) {
		return Terms{}, fmt.Errorf("%w: pickup", ErrWindowEndsInPast)
	}
	if !dropoff.time.End().After(now) {
		return Terms{}, fmt.Errorf("%w: dropoff", ErrWindowEndsInPast)
	}
	if pickup.time.End().After(dropoff.time.End()) {
		return Terms{}, ErrPickupAfterDropoff
	}
	return Terms{pickup: pickup, dropoff: dropoff, otherTerms: otherTerms}, nil
}

// RestoreTerms rebuilds Terms from persisted columns without re-running
// the future-dated validation. FOR STORE USE ONLY.
func RestoreTerms(pickup, dropoff Waypoint, otherTerms string) Terms {
	return Terms{pickup: pickup, dropoff: dropoff, otherTerms: otherTerms}
}
