package cache

import (
	"context"
	"path/filepath"
	"sparcel-journey-service/internal/adapters/repositories"
	"sparcel-journey-service/internal/domain"
	"sparcel-journey-service/internal/platform/db"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestSqliteCache(t *testing.T) *SqliteGeocodeCache {
	t.Helper()

	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, repositories.InitSqliteSchema(context.Background(), conn))

	return NewSqliteGeocodeCache(conn)
}

func TestSqliteGeocodeCacheRoundTrip(t *testing.T) {
	c := newTestSqliteCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "Sea Point")
	require.NoError(t, err)
	assert.False(t, ok)

	loc := domain.Location{Lat: -33.915, Lng: 18.388, Name: "Sea Point", Address: "Main Rd, Sea Point, Western Cape, 8005", PostalCode: "8005"}
	require.NoError(t, c.Put(ctx, "Sea Point", loc))

	got, ok, err := c.Get(ctx, "SEA   point")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, loc, got)

	loc.Lat = -33.916
	require.NoError(t, c.Put(ctx, "sea point", loc))
	got, _, err = c.Get(ctx, "Sea Point")
	require.NoError(t, err)
	assert.Equal(t, -33.916, got.Lat)
}

func TestSqliteGeocodeCacheRejectsEmptyKey(t *testing.T) {
	c := newTestSqliteCache(t)

	assert.Error(t, c.Put(context.Background(), "   ", domain.Location{}))

	_, ok, err := c.Get(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSqliteGeocodeCacheNilDB(t *testing.T) {
	c := NewSqliteGeocodeCache(nil)
	_, _, err := c.Get(context.Background(), "x")
	assert.Error(t, err)
}
