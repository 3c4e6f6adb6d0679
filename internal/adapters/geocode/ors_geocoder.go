package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sparcel-journey-service/internal/domain"
	"sparcel-journey-service/internal/platform/obs"
	"strings"
	"time"
)

const defaultORSBaseURL = "https://api.openrouteservice.org"

// ORSGeocoder implements ports.Geocoder using OpenRouteService
// (/geocode/search), restricted to South Africa.
type ORSGeocoder struct {
	client
	apiKey  string
	baseURL string
	country string
}

func NewORSGeocoder(apiKey string) (*ORSGeocoder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSGeocoder{
		client:  newClient(),
		apiKey:  apiKey,
		baseURL: defaultORSBaseURL,
		country: "ZA",
	}, nil
}

// WithBaseURL points the geocoder at another server, used by tests.
func (o *ORSGeocoder) WithBaseURL(baseURL string, backoff time.Duration) *ORSGeocoder {
	o.baseURL = strings.TrimRight(baseURL, "/")
	o.backoff = backoff
	return o
}

type orsGeocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label         string `json:"label"`
			Name          string `json:"name"`
			Region        string `json:"region"`
			Locality      string `json:"locality"`
			Neighbourhood string `json:"neighbourhood"`
			PostalCode    string `json:"postalcode"`
		} `json:"properties"`
	} `json:"features"`
}

func (o *ORSGeocoder) Geocode(ctx context.Context, query string) (_ domain.Location, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	query = normalize(query)
	if query == "" {
		return domain.Location{}, fmt.Errorf("geocode: empty query: %w", domain.ErrInvalidInput)
	}

	params := url.Values{}
	params.Set("text", query)
	params.Set("boundary.country", o.country)
	params.Set("size", "1")
	endpoint := o.baseURL + "/geocode/search?" + params.Encode()
	header := http.Header{"Authorization": []string{o.apiKey}}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return newGetRequest(ctx, endpoint, header)
	})
	if err != nil {
		return domain.Location{}, fmt.Errorf("geocode %q: %w", query, err)
	}
	defer resp.Body.Close()

	var decoded orsGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Location{}, fmt.Errorf("geocode %q: decode response: %w", query, err)
	}
	if len(decoded.Features) == 0 {
		return domain.Location{}, fmt.Errorf("geocode %q: %w", query, domain.ErrLocationNotFound)
	}

	f := decoded.Features[0]
	coords := f.Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Location{}, fmt.Errorf("geocode %q: invalid coordinate format", query)
	}

	loc := domain.Location{
		Lng:        coords[0],
		Lat:        coords[1],
		Name:       query,
		Address:    f.Properties.Label,
		PostalCode: f.Properties.PostalCode,
		Suburb:     f.Properties.Neighbourhood,
	}
	if loc.Suburb == "" {
		loc.Suburb = f.Properties.Locality
	}
	if f.Properties.Region != "" {
		loc.Province = domain.ProvinceCode(f.Properties.Region)
	}

	return loc.Normalized(), nil
}
