package ports

import (
	"context"
	"delivery-emissions-service/internal/domain"
)

// Contract for resolving a free-text place name to coordinates.
type Geocoder interface {
	// Return coordinates for place, or an error wrapping domain.ErrNotFound
	// when the place cannot be resolved.
	Geocode(ctx context.Context, place string) (domain.Coordinates, error)
}

// Persistent place name -> coordinates lookups. Keys are normalized by the caller.
type GeocodeCache interface {
	// Return the cached coordinates and whether the place was present.
	Get(ctx context.Context, place string) (domain.Coordinates, bool, error)
	Put(ctx context.Context, place string, c domain.Coordinates) error
}
