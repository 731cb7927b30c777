// README: Ports the domain consumes; implemented by adapters elsewhere.
package domain

import (
	"context"
	"time"
)

// Clock supplies the current time. Operations capture it once per logical
// validation step; no check within one operation ever re-queries it.
type Clock interface {
	Now() time.Time
}

// Geocoder resolves a street address to coordinates. Implementations fail
// with (an error wrapping) ErrGeocodingFailed.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Point, error)
}

// EventBus carries committed domain events to in-process consumers.
// Publish is synchronous; delivery guarantees are the bus's concern, but
// the domain publishes at most once per actual state change.
type EventBus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(name string, handler func(Event))
}

// Deps bundles the collaborators an aggregate operation needs. Each
// mutating operation builds its single-purpose command from these, so the
// command's dependencies stay visible and separately testable while the
// operation signature stays small.
type Deps struct {
	Clock    Clock
	Geocoder Geocoder
	Bus      EventBus
}
