// Package cache holds persistent geocode and route caches plus decorators
// that put them in front of the live providers.
package cache

import (
	"context"
	"delivery-emissions-service/internal/domain"
	"delivery-emissions-service/internal/platform/obs"
	"delivery-emissions-service/internal/ports"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// NormalizePlace lowercases and collapses whitespace so equivalent place
// names share one cache key.
func NormalizePlace(place string) string {
	return strings.ToLower(strings.Join(strings.Fields(place), " "))
}

// CachedGeocoder consults Cache before Next and stores fresh results.
// A failed read aborts the lookup; a failed write is logged and ignored.
type CachedGeocoder struct {
	Next  ports.Geocoder
	Cache ports.GeocodeCache
}

func NewCachedGeocoder(next ports.Geocoder, c ports.GeocodeCache) *CachedGeocoder {
	return &CachedGeocoder{Next: next, Cache: c}
}

func (g *CachedGeocoder) Geocode(ctx context.Context, place string) (domain.Coordinates, error) {
	key := NormalizePlace(place)
	if key == "" || g.Cache == nil {
		return g.Next.Geocode(ctx, place)
	}

	c, ok, err := g.Cache.Get(ctx, key)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: get geocode cache: %w", domain.ErrExternalService, err)
	}
	if ok {
		return c, nil
	}

	c, err = g.Next.Geocode(ctx, place)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if err := g.Cache.Put(ctx, key, c); err != nil {
		log.Warn().Str("req_id", obs.RequestID(ctx)).Err(err).Str("place", key).Msg("geocode cache write failed")
	}
	return c, nil
}

// CachedRouter is the route equivalent of CachedGeocoder.
type CachedRouter struct {
	Next  ports.Router
	Cache ports.RouteCache
}

func NewCachedRouter(next ports.Router, c ports.RouteCache) *CachedRouter {
	return &CachedRouter{Next: next, Cache: c}
}

func (r *CachedRouter) Route(ctx context.Context, origin, destination domain.Coordinates) (ports.Route, error) {
	if r.Cache == nil {
		return r.Next.Route(ctx, origin, destination)
	}

	rt, ok, err := r.Cache.Get(ctx, origin, destination)
	if err != nil {
		return ports.Route{}, fmt.Errorf("%w: get route cache: %w", domain.ErrExternalService, err)
	}
	if ok {
		return rt, nil
	}

	rt, err = r.Next.Route(ctx, origin, destination)
	if err != nil {
		return ports.Route{}, err
	}

	if err := r.Cache.Put(ctx, origin, destination, rt); err != nil {
		log.Warn().
			Str("req_id", obs.RequestID(ctx)).
			Err(err).
			Str("origin", origin.Key()).
			Str("destination", destination.Key()).
			Msg("route cache write failed")
	}
	return rt, nil
}
