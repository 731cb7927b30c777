// README: Waypoint value type; a place with the window it must be reached in.
package domain

// Waypoint is one point of a trip: where, and the range of time during
// which the place must be reached.
type Waypoint struct {
	place Location
	time  TimeRange
}

func NewWaypoint(place Location, time TimeRange) Waypoint {
	return Waypoint{place: place, time: time}
}

func (w Waypoint) Place() Location { return w.place }
func (w Waypoint) Time() TimeRange { return w.time }

// Equal compares place and time structurally.
func (w Waypoint) Equal(other Waypoint) bool {
	return w.place.Equal(other.place) && w.time.Equal(other.time)
}
