package services

import (
	"context"
	"fmt"
	"sort"
	"sparcel-journey-service/internal/domain"
	"sparcel-journey-service/internal/platform/obs"
	"sparcel-journey-service/internal/ports"
	"strings"
)

const DefaultNearbyRadiusKm = 50.0

type LocationSearchResult struct {
	Location domain.Location   `json:"location"`
	Nearby   []domain.Location `json:"nearby_points"`
}

// LocationResolver turns free text into a location and lists partner points
// around it. geocoder and cache may be nil.
type LocationResolver struct {
	geocoder ports.Geocoder
	cache    ports.GeocodeCache
	catalog  ports.PointCatalog
}

func NewLocationResolver(geocoder ports.Geocoder, cache ports.GeocodeCache, catalog ports.PointCatalog) *LocationResolver {
	return &LocationResolver{geocoder: geocoder, cache: cache, catalog: catalog}
}

// Search resolves query against the catalog first (exact point name), then
// the cache, then the geocoder.
func (r *LocationResolver) Search(ctx context.Context, query string) (_ LocationSearchResult, err error) {
	defer obs.Time(ctx, "locations.Search")(&err)

	query = strings.TrimSpace(query)
	if query == "" {
		return LocationSearchResult{}, fmt.Errorf("search location: empty query: %w", domain.ErrInvalidInput)
	}

	loc, err := r.resolve(ctx, query)
	if err != nil {
		return LocationSearchResult{}, fmt.Errorf("search location %q: %w", query, err)
	}

	return LocationSearchResult{
		Location: loc,
		Nearby:   r.Nearby(loc.Lat, loc.Lng, DefaultNearbyRadiusKm),
	}, nil
}

func (r *LocationResolver) resolve(ctx context.Context, query string) (domain.Location, error) {
	if p, ok := r.Point(query); ok {
		return p, nil
	}

	if r.cache != nil {
		loc, ok, err := r.cache.Get(ctx, query)
		if err != nil {
			obs.Logf(ctx, "geocode cache get query=%q err=%v", query, err)
		} else if ok {
			return loc, nil
		}
	}

	if r.geocoder == nil {
		return domain.Location{}, domain.ErrLocationNotFound
	}

	loc, err := r.geocoder.Geocode(ctx, query)
	if err != nil {
		return domain.Location{}, err
	}
	loc = loc.Normalized()

	if r.cache != nil {
		if err := r.cache.Put(ctx, query, loc); err != nil {
			obs.Logf(ctx, "geocode cache put query=%q err=%v", query, err)
		}
	}
	return loc, nil
}

// Nearby returns catalog points within radiusKm of (lat, lng), closest
// first, with DistanceKm filled in. A non-positive radius uses the default.
func (r *LocationResolver) Nearby(lat, lng, radiusKm float64) []domain.Location {
	if radiusKm <= 0 {
		radiusKm = DefaultNearbyRadiusKm
	}
	origin := domain.Coordinates{Lat: lat, Lon: lng}

	out := []domain.Location{}
	for _, p := range r.catalog.Points() {
		d := origin.DistanceKm(p.Coordinates())
		if d > radiusKm {
			continue
		}
		p.DistanceKm = d
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out
}

// Point looks a partner point up by name, ignoring case.
func (r *LocationResolver) Point(name string) (domain.Location, bool) {
	name = strings.TrimSpace(name)
	for _, p := range r.catalog.Points() {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return domain.Location{}, false
}
