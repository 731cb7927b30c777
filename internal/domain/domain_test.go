// README: Shared test doubles for the domain package.
package domain

import (
	"context"
	"sync"
	"time"
)

// fakeClock returns a settable fixed instant.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2018, 2, 3, 4, 13, 59, 0, time.FixedZone("", 3600))}
}

func (c *fakeClock) Now() time.Time { return c.now }

// stubGeocoder resolves every address to the same point, or fails.
type stubGeocoder struct {
	point Point
	err   error
}

func newStubGeocoder() *stubGeocoder {
	return &stubGeocoder{point: Point{Lat: 30, Lng: -97}}
}

func (g *stubGeocoder) Geocode(_ context.Context, _ string) (Point, error) {
	if g.err != nil {
		return UnknownPoint, g.err
	}
	return g.point, nil
}

// recordingBus appends every published event to an in-order log.
type recordingBus struct {
	mu     sync.Mutex
	Events []Event
}

func (b *recordingBus) Publish(_ context.Context, event Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Events = append(b.Events, event)
	return nil
}

func (b *recordingBus) Subscribe(string, func(Event)) {}

func (b *recordingBus) last() Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.Events) == 0 {
		return nil
	}
	return b.Events[len(b.Events)-1]
}

// testWorld bundles the fakes behind a Deps value.
type testWorld struct {
	clock    *fakeClock
	geocoder *stubGeocoder
	bus      *recordingBus
}

func newTestWorld() *testWorld {
	return &testWorld{
		clock:    newFakeClock(),
		geocoder: newStubGeocoder(),
		bus:      &recordingBus{},
	}
}

func (w *testWorld) deps() Deps {
	return Deps{Clock: w.clock, Geocoder: w.geocoder, Bus: w.bus}
}

// mustRange builds a TimeRange or panics; for test fixtures only.
func mustRange(anchor time.Time, d time.Duration) TimeRange {
	r, err := NewTimeRange(anchor, d)
	if err != nil {
		panic(err)
	}
	return r
}
