package cache

import (
	"context"
	"delivery-emissions-service/internal/domain"
	"delivery-emissions-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultGeocodeKeyPrefix = "geocode:"

// RedisGeocodeCache stores place -> coordinates as JSON strings with a TTL.
type RedisGeocodeCache struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

func NewRedisGeocodeCache(client redis.UniversalClient, keyPrefix string, ttl time.Duration) *RedisGeocodeCache {
	if keyPrefix == "" {
		keyPrefix = defaultGeocodeKeyPrefix
	}
	return &RedisGeocodeCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

type cachedCoordinates struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

func (c *RedisGeocodeCache) Get(ctx context.Context, place string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.redis.Get")(&err)

	val, err := c.client.Get(ctx, c.keyPrefix+place).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("redis geocode get %q: %w", place, err)
	}

	var cc cachedCoordinates
	if err := json.Unmarshal(val, &cc); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("redis geocode decode %q: %w", place, err)
	}

	return domain.Coordinates{Lon: cc.Lon, Lat: cc.Lat}, true, nil
}

func (c *RedisGeocodeCache) Put(ctx context.Context, place string, coords domain.Coordinates) error {
	b, err := json.Marshal(cachedCoordinates{Lon: coords.Lon, Lat: coords.Lat})
	if err != nil {
		return fmt.Errorf("redis geocode encode %q: %w", place, err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+place, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis geocode set %q: %w", place, err)
	}
	return nil
}
