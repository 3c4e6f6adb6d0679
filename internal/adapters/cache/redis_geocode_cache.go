package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sparcel-journey-service/internal/domain"
	"sparcel-journey-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

const geocodeKeyPrefix = "geocode:"

// RedisGeocodeCache is a Redis-backed cache mapping search queries to
// resolved locations. Entries expire after ttl.
type RedisGeocodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{client: client, ttl: ttl}
}

// Fetch the cached location for query. The bool is false on a miss.
func (c *RedisGeocodeCache) Get(ctx context.Context, query string) (_ domain.Location, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if c.client == nil {
		return domain.Location{}, false, errors.New("geocode cache: redis client is nil")
	}

	key := cacheKey(query)
	if key == "" {
		return domain.Location{}, false, nil
	}

	raw, err := c.client.Get(ctx, geocodeKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Location{}, false, nil
	}
	if err != nil {
		return domain.Location{}, false, fmt.Errorf("get geocode cache key=%q: %w", key, err)
	}

	var loc domain.Location
	if err := json.Unmarshal(raw, &loc); err != nil {
		return domain.Location{}, false, fmt.Errorf("get geocode cache key=%q: decode: %w", key, err)
	}
	return loc, true, nil
}

// Store the location for query.
func (c *RedisGeocodeCache) Put(ctx context.Context, query string, loc domain.Location) error {
	if c.client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	key := cacheKey(query)
	if key == "" {
		return fmt.Errorf("insert geocode cache: empty query key")
	}

	raw, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("insert geocode cache key=%q: encode: %w", key, err)
	}

	if err := c.client.Set(ctx, geocodeKeyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert geocode cache key=%q: %w", key, err)
	}
	return nil
}
