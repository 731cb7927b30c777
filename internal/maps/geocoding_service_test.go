package maps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"

	"haulbid/internal/domain"
)

func newStubService(t *testing.T, body string) *GeocodingService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client, err := maps.NewClient(maps.WithAPIKey("test-key"), maps.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return &GeocodingService{client: client}
}

func TestGeocode_ReturnsFirstMatch(t *testing.T) {
	svc := newStubService(t, `{"results":[{"geometry":{"location":{"lat":30.0,"lng":-97.0}}}],"status":"OK"}`)

	point, err := svc.Geocode(context.Background(), "301 Congress Ave, Austin")
	require.NoError(t, err)
	assert.Equal(t, 30.0, point.Lat)
	assert.Equal(t, -97.0, point.Lng)
}

func TestGeocode_NoMatch(t *testing.T) {
	svc := newStubService(t, `{"results":[],"status":"ZERO_RESULTS"}`)

	address := "nowhere in particular 42"
	_, err := svc.Geocode(context.Background(), address)
	require.ErrorIs(t, err, domain.ErrGeocodingFailed)
	assert.NotContains(t, err.Error(), address, "the submitted address must not be echoed back")
}
