// README: Google Maps geocoding adapter behind the Geocoder port.
package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"haulbid/internal/domain"
)

// GeocodingService resolves free-text addresses through the Google
// Geocoding API. It implements domain.Geocoder.
type GeocodingService struct {
	client *maps.Client
}

// NewGeocodingService creates a new GeocodingService with the given API key.
func NewGeocodingService(apiKey string) (*GeocodingService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodingService{client: client}, nil
}

// Geocode returns the first match for the address. API failures and
// empty result sets both surface as domain.ErrGeocodingFailed so the
// caller does not depend on provider details.
func (s *GeocodingService) Geocode(ctx context.Context, address string) (domain.Point, error) {
	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return domain.UnknownPoint, fmt.Errorf("%w: %v", domain.ErrGeocodingFailed, err)
	}
	if len(results) == 0 {
		// The caller-supplied address stays out of the message so it
		// never leaks through error responses.
		return domain.UnknownPoint, fmt.Errorf("%w: no matching location", domain.ErrGeocodingFailed)
	}
	loc := results[0].Geometry.Location
	return domain.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}
