package services

import (
	"context"
	"errors"
	"sparcel-journey-service/internal/adapters/catalog"
	"sparcel-journey-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGeocoder struct {
	results map[string]domain.Location
	calls   int
}

func (f *fakeGeocoder) Geocode(ctx context.Context, query string) (domain.Location, error) {
	f.calls++
	loc, ok := f.results[query]
	if !ok {
		return domain.Location{}, domain.ErrLocationNotFound
	}
	return loc, nil
}

type mapCache struct {
	items  map[string]domain.Location
	getErr error
}

func (m *mapCache) Get(ctx context.Context, query string) (domain.Location, bool, error) {
	if m.getErr != nil {
		return domain.Location{}, false, m.getErr
	}
	loc, ok := m.items[query]
	return loc, ok, nil
}

func (m *mapCache) Put(ctx context.Context, query string, loc domain.Location) error {
	m.items[query] = loc
	return nil
}

func TestLocationResolverSearchCachesGeocode(t *testing.T) {
	geo := &fakeGeocoder{results: map[string]domain.Location{
		"Greenmarket Square": {Lat: -33.9205, Lng: 18.4196, Name: "Greenmarket Square", Address: "Burg Street, Cape Town City Centre, Western Cape, 8001"},
	}}
	cache := &mapCache{items: map[string]domain.Location{}}
	r := NewLocationResolver(geo, cache, catalog.Default())

	res, err := r.Search(context.Background(), "  Greenmarket Square ")
	require.NoError(t, err)
	assert.Equal(t, "8001", res.Location.PostalCode)
	assert.Equal(t, "WESTERN_CAPE", res.Location.Province)
	require.NotEmpty(t, res.Nearby)
	for i := 1; i < len(res.Nearby); i++ {
		assert.LessOrEqual(t, res.Nearby[i-1].DistanceKm, res.Nearby[i].DistanceKm)
	}
	assert.Contains(t, cache.items, "Greenmarket Square")

	_, err = r.Search(context.Background(), "Greenmarket Square")
	require.NoError(t, err)
	assert.Equal(t, 1, geo.calls)
}

func TestLocationResolverSearchCatalogPoint(t *testing.T) {
	geo := &fakeGeocoder{}
	r := NewLocationResolver(geo, nil, catalog.Default())

	res, err := r.Search(context.Background(), "sea point center")
	require.NoError(t, err)
	assert.Equal(t, "Sea Point Center", res.Location.Name)
	assert.Equal(t, "Sea Point Center", res.Nearby[0].Name)
	assert.Equal(t, 0, geo.calls)
}

func TestLocationResolverSearchErrors(t *testing.T) {
	cache := &mapCache{items: map[string]domain.Location{}, getErr: errors.New("redis down")}
	r := NewLocationResolver(&fakeGeocoder{}, cache, catalog.Default())

	_, err := r.Search(context.Background(), "nowhere at all")
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)

	_, err = r.Search(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	noGeo := NewLocationResolver(nil, nil, catalog.Default())
	_, err = noGeo.Search(context.Background(), "Durban")
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestLocationResolverNearby(t *testing.T) {
	r := NewLocationResolver(nil, nil, catalog.Default())

	// Table View points are roughly 12 km north of the city centre.
	near := r.Nearby(-33.9249, 18.4241, 5)
	for _, p := range near {
		assert.LessOrEqual(t, p.DistanceKm, 5.0)
		assert.NotEqual(t, "Table View Center", p.Name)
	}
	assert.Equal(t, "Long Street Hub", near[0].Name)

	all := r.Nearby(-33.9249, 18.4241, 0)
	assert.Len(t, all, len(catalog.Default().Points()))

	johannesburg := r.Nearby(-26.2041, 28.0473, 50)
	assert.Empty(t, johannesburg)
}
