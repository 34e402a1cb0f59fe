package cache

import (
	"context"
	"delivery-emissions-service/internal/domain"
	"delivery-emissions-service/internal/ports"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memGeocodeCache struct {
	m       map[string]domain.Coordinates
	getErr  error
	putErr  error
	putKeys []string
}

func (c *memGeocodeCache) Get(ctx context.Context, place string) (domain.Coordinates, bool, error) {
	if c.getErr != nil {
		return domain.Coordinates{}, false, c.getErr
	}
	v, ok := c.m[place]
	return v, ok, nil
}

func (c *memGeocodeCache) Put(ctx context.Context, place string, v domain.Coordinates) error {
	c.putKeys = append(c.putKeys, place)
	if c.putErr != nil {
		return c.putErr
	}
	c.m[place] = v
	return nil
}

type countingGeocoder struct {
	c     domain.Coordinates
	err   error
	calls int
}

func (g *countingGeocoder) Geocode(ctx context.Context, place string) (domain.Coordinates, error) {
	g.calls++
	return g.c, g.err
}

var hyd = domain.Coordinates{Lon: 78.4867, Lat: 17.385}

func TestNormalizePlace(t *testing.T) {
	assert.Equal(t, "new delhi", NormalizePlace("  New   Delhi "))
	assert.Equal(t, "", NormalizePlace(" \t "))
}

func TestCachedGeocoderMissThenHit(t *testing.T) {
	next := &countingGeocoder{c: hyd}
	mem := &memGeocodeCache{m: map[string]domain.Coordinates{}}
	g := NewCachedGeocoder(next, mem)

	c, err := g.Geocode(context.Background(), "Hyderabad")
	require.NoError(t, err)
	assert.Equal(t, hyd, c)

	c, err = g.Geocode(context.Background(), "  hyderabad ")
	require.NoError(t, err)
	assert.Equal(t, hyd, c)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, []string{"hyderabad"}, mem.putKeys)
}

func TestCachedGeocoderReadFailureIsExternal(t *testing.T) {
	next := &countingGeocoder{c: hyd}
	g := NewCachedGeocoder(next, &memGeocodeCache{getErr: errors.New("conn refused")})

	_, err := g.Geocode(context.Background(), "Hyderabad")
	assert.ErrorIs(t, err, domain.ErrExternalService)
	assert.Zero(t, next.calls)
}

func TestCachedGeocoderWriteFailureIgnored(t *testing.T) {
	next := &countingGeocoder{c: hyd}
	g := NewCachedGeocoder(next, &memGeocodeCache{m: map[string]domain.Coordinates{}, putErr: errors.New("read only")})

	c, err := g.Geocode(context.Background(), "Hyderabad")
	require.NoError(t, err)
	assert.Equal(t, hyd, c)
}

func TestCachedGeocoderDoesNotCacheFailures(t *testing.T) {
	next := &countingGeocoder{err: domain.ErrNotFound}
	mem := &memGeocodeCache{m: map[string]domain.Coordinates{}}
	g := NewCachedGeocoder(next, mem)

	_, err := g.Geocode(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, mem.putKeys)
}

type memRouteCache struct {
	m      map[string]ports.Route
	getErr error
}

func (c *memRouteCache) Get(ctx context.Context, o, d domain.Coordinates) (ports.Route, bool, error) {
	if c.getErr != nil {
		return ports.Route{}, false, c.getErr
	}
	r, ok := c.m[o.Key()+"|"+d.Key()]
	return r, ok, nil
}

func (c *memRouteCache) Put(ctx context.Context, o, d domain.Coordinates, r ports.Route) error {
	c.m[o.Key()+"|"+d.Key()] = r
	return nil
}

type countingRouter struct {
	r     ports.Route
	calls int
}

func (r *countingRouter) Route(ctx context.Context, o, d domain.Coordinates) (ports.Route, error) {
	r.calls++
	return r.r, nil
}

func TestCachedRouter(t *testing.T) {
	wgl := domain.Coordinates{Lon: 79.5941, Lat: 17.9689}
	want := ports.Route{DistanceMeters: 148_000, DurationSeconds: 9_000, Path: []domain.Coordinates{hyd, wgl}}
	next := &countingRouter{r: want}
	r := NewCachedRouter(next, &memRouteCache{m: map[string]ports.Route{}})

	for range 3 {
		got, err := r.Route(context.Background(), hyd, wgl)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 1, next.calls)

	_, err := NewCachedRouter(next, &memRouteCache{getErr: errors.New("down")}).Route(context.Background(), hyd, wgl)
	assert.ErrorIs(t, err, domain.ErrExternalService)
}

func TestPathRoundTrip(t *testing.T) {
	path := []domain.Coordinates{hyd, {Lon: 79.1, Lat: 17.6}}
	raw, err := encodePath(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[[78.4867,17.385],[79.1,17.6]]`, string(raw))

	got, err := decodePath(raw)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}
