// Package geocode wraps the address-confirmation collaborator. The core
// only ever consumes a confirmed {address, lat, lon} triple; partial text
// that fails to resolve is "not yet confirmed", never an error state for
// the booking flow.
package geocode

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"github.com/example/agent-assist/internal/models"
)

// ErrNoResult means the text did not resolve to any address.
var ErrNoResult = errors.New("no matching address")

// Place is a confirmed geocoding result.
type Place struct {
	FormattedAddress string       `json:"formattedAddress"`
	Coord            models.Coord `json:"coord"`
}

// Geocoder resolves free-text address fragments into confirmed places.
type Geocoder interface {
	Resolve(ctx context.Context, query string) (Place, error)
}

// GoogleGeocoder is the production implementation backed by the Google
// Geocoding API, restricted to US addresses like the booking form.
type GoogleGeocoder struct {
	client *maps.Client
}

func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("maps client: %w", err)
	}
	return &GoogleGeocoder{client: c}, nil
}

func (g *GoogleGeocoder) Resolve(ctx context.Context, query string) (Place, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:    query,
		Components: map[maps.Component]string{maps.ComponentCountry: "US"},
	})
	if err != nil {
		return Place{}, fmt.Errorf("geocode: %w", err)
	}
	if len(results) == 0 {
		return Place{}, ErrNoResult
	}
	best := results[0]
	return Place{
		FormattedAddress: best.FormattedAddress,
		Coord:            models.Coord{Lat: best.Geometry.Location.Lat, Lon: best.Geometry.Location.Lng},
	}, nil
}
