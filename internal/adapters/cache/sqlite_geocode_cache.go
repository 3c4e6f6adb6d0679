package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sparcel-journey-service/internal/domain"
)

// SQLite backed geocode cache used when no Redis is configured. It shares
// the local fallback database and never expires entries.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch the cached location for query. The bool is false on a miss.
func (s *SqliteGeocodeCache) Get(ctx context.Context, query string) (domain.Location, bool, error) {
	if s.DB == nil {
		return domain.Location{}, false, errors.New("geocode cache: db is nil")
	}

	key := cacheKey(query)
	if key == "" {
		return domain.Location{}, false, nil
	}

	var payload string
	err := s.DB.QueryRowContext(ctx, `
	SELECT payload
	FROM geocode_cache
	WHERE query = ?;
	`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Location{}, false, nil
	}
	if err != nil {
		return domain.Location{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	var loc domain.Location
	if err := json.Unmarshal([]byte(payload), &loc); err != nil {
		return domain.Location{}, false, fmt.Errorf("get geocode cache: decode payload: %w", err)
	}
	return loc, true, nil
}

// Store the location for query.
func (s *SqliteGeocodeCache) Put(ctx context.Context, query string, loc domain.Location) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	key := cacheKey(query)
	if key == "" {
		return fmt.Errorf("insert geocode cache: empty query key")
	}

	payload, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("insert geocode cache: encode: %w", err)
	}

	if _, err := s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO geocode_cache (
		query,
		payload
	)
	VALUES (?, ?);
	`, key, string(payload)); err != nil {
		return fmt.Errorf("insert geocode cache query=%q: %w", key, err)
	}

	return nil
}
