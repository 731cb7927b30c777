// README: Location value type; address plus geocoded coordinates.
package domain

import (
	"context"
	"math"
	"strings"
)

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// UnknownPoint marks coordinates that have never been resolved. Compare
// with Equal, not ==, because the unknown coordinates are NaN.
var UnknownPoint = Point{Lat: math.NaN(), Lng: math.NaN()}

// IsUnknown reports whether either coordinate is unresolved.
func (p Point) IsUnknown() bool {
	return math.IsNaN(p.Lat) || math.IsNaN(p.Lng)
}

// Equal treats any two unknown points as equal.
func (p Point) Equal(other Point) bool {
	if p.IsUnknown() && other.IsUnknown() {
		return true
	}
	return p.Lat == other.Lat && p.Lng == other.Lng
}

// Location is a place on Earth: a human-readable address together with
// the coordinates it resolved to. The only path to a Location other than
// Nowhere is LocationFactory.New, so all coordinate resolution stays in
// one place.
type Location struct {
	address string
	point   Point
}

// Nowhere is a Location that does not exist. Prefer it to a zero Location
// in uninitialized states.
var Nowhere = Location{address: "nowhere", point: UnknownPoint}

// Address is the text a human would use to identify this location.
func (l Location) Address() string { return l.address }

// Point is the resolved latitude/longitude.
func (l Location) Point() Point { return l.point }

// Equal compares address and coordinates.
func (l Location) Equal(other Location) bool {
	return l.address == other.address && l.point.Equal(other.point)
}

// LocationFactory resolves addresses into Locations through the Geocoder
// port.
type LocationFactory struct {
	geocoder Geocoder
}

func NewLocationFactory(geocoder Geocoder) *LocationFactory {
	return &LocationFactory{geocoder: geocoder}
}

// New fails with ErrInvalidAddress when the address is empty or
// whitespace; geocoder failures are propagated as-is.
func (f *LocationFactory) New(ctx context.Context, address string) (Location, error) {
	if strings.TrimSpace(address) == "" {
		return Nowhere, ErrInvalidAddress
	}
	point, err := f.geocoder.Geocode(ctx, address)
	if err != nil {
		return Nowhere, err
	}
	return Location{address: address, point: point}, nil
}

// RestoreLocation rebuilds a Location from persisted columns.
// FOR STORE USE ONLY.
func RestoreLocation(address string, point Point) Location {
	return Location{address: address, point: point}
}
