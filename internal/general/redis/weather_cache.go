package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"travel-po/internal/domain/weather"
	"travel-po/internal/ports"

	"github.com/redis/go-redis/v9"
)

// WeatherCache stores weather snapshots in Redis, keyed by coordinate.
type WeatherCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWeatherCache constructs a WeatherCache with the given entry TTL.
func NewWeatherCache(client *redis.Client, ttl time.Duration) ports.WeatherCache {
	return &WeatherCache{client: client, ttl: ttl}
}

// Get returns the cached snapshot for the coordinate, or (nil, nil) on a
// cache miss.
func (c *WeatherCache) Get(ctx context.Context, lat, lon float64) (*weather.Snapshot, error) {
	raw, err := c.client.Get(ctx, weatherKey(lat, lon)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get weather: %w", err)
	}

	var snap weather.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// a corrupt entry behaves like a miss; the next Set overwrites it
		return nil, nil
	}
	return &snap, nil
}

// Set stores the snapshot under its own coordinate with the cache TTL.
func (c *WeatherCache) Set(ctx context.Context, snap *weather.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode weather snapshot: %w", err)
	}
	if err := c.client.Set(ctx, weatherKey(snap.Latitude, snap.Longitude), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set weather: %w", err)
	}
	return nil
}

// weatherKey rounds to 4 decimals (~11 m) so nearby lookups share an entry.
func weatherKey(lat, lon float64) string {
	return fmt.Sprintf("weather:%.4f:%.4f", lat, lon)
}
