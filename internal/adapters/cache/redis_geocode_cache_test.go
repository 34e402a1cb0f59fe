package cache

import (
	"context"
	"delivery-emissions-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisGeocodeCacheRoundTrip(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisGeocodeCache(client, "", time.Hour)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "hyderabad")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "hyderabad", hyd))
	assert.True(t, mr.Exists("geocode:hyderabad"))

	got, ok, err := c.Get(ctx, "hyderabad")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, hyd, got)
}

func TestRedisGeocodeCacheExpires(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisGeocodeCache(client, "geo:", time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "warangal", domain.Coordinates{Lon: 79.5941, Lat: 17.9689}))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "warangal")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisGeocodeCacheErrors(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisGeocodeCache(client, "", 0)
	ctx := context.Background()

	require.NoError(t, mr.Set("geocode:broken", "not json"))
	_, _, err := c.Get(ctx, "broken")
	assert.Error(t, err)

	mr.Close()
	_, _, err = c.Get(ctx, "hyderabad")
	assert.Error(t, err)
}
