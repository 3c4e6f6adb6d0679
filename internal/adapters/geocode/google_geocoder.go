package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sparcel-journey-service/internal/domain"
	"sparcel-journey-service/internal/platform/obs"
	"strings"
	"time"

	"googlemaps.github.io/maps"
)

// GoogleGeocoder implements ports.Geocoder on the Google Maps client,
// biased to South African results.
type GoogleGeocoder struct {
	maps   *maps.Client
	region string
}

func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	return newGoogleGeocoder(apiKey, newClient())
}

// NewGoogleGeocoderWithBaseURL points the geocoder at another server, used by tests.
func NewGoogleGeocoderWithBaseURL(apiKey, baseURL string, backoff time.Duration) (*GoogleGeocoder, error) {
	c := newClient()
	c.backoff = backoff
	return newGoogleGeocoder(apiKey, c, maps.WithBaseURL(strings.TrimRight(baseURL, "/")))
}

func newGoogleGeocoder(apiKey string, c client, opts ...maps.ClientOption) (*GoogleGeocoder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google maps api key is empty")
	}

	opts = append([]maps.ClientOption{
		maps.WithAPIKey(apiKey),
		maps.WithHTTPClient(&http.Client{Transport: retryTransport{c}}),
	}, opts...)
	mc, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("google maps client: %w", err)
	}

	return &GoogleGeocoder{maps: mc, region: "za"}, nil
}

// Geocode resolves query to its best match.
func (g *GoogleGeocoder) Geocode(ctx context.Context, query string) (_ domain.Location, err error) {
	defer obs.Time(ctx, "google.Geocode")(&err)

	query = normalize(query)
	if query == "" {
		return domain.Location{}, fmt.Errorf("geocode: empty query: %w", domain.ErrInvalidInput)
	}

	results, err := g.maps.Geocode(ctx, &maps.GeocodingRequest{Address: query, Region: g.region})
	if err != nil {
		return domain.Location{}, fmt.Errorf("geocode %q: %w", query, err)
	}
	if len(results) == 0 {
		return domain.Location{}, fmt.Errorf("geocode %q: %w", query, domain.ErrLocationNotFound)
	}

	r := results[0]
	loc := domain.Location{
		Lat:     r.Geometry.Location.Lat,
		Lng:     r.Geometry.Location.Lng,
		Name:    query,
		Address: r.FormattedAddress,
	}
	for _, c := range r.AddressComponents {
		switch {
		case hasType(c.Types, "postal_code"):
			loc.PostalCode = c.LongName
		case hasType(c.Types, "administrative_area_level_1"):
			loc.Province = domain.ProvinceCode(c.LongName)
		case hasType(c.Types, "sublocality"), hasType(c.Types, "sublocality_level_1"):
			loc.Suburb = c.LongName
		case hasType(c.Types, "locality"):
			if loc.Suburb == "" {
				loc.Suburb = c.LongName
			}
		}
	}

	return loc.Normalized(), nil
}

func hasType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
