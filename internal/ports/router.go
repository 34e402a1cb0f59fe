package ports

import (
	"context"
	"delivery-emissions-service/internal/domain"
)

// Driving route between two points.
type Route struct {
	DistanceMeters  float64
	DurationSeconds float64
	// Ordered (lon, lat) points from origin to destination.
	Path []domain.Coordinates
}

// Contract for retrieving a driving route between coordinates.
type Router interface {
	Route(ctx context.Context, origin, destination domain.Coordinates) (Route, error)
}

// Persistent origin/destination -> route lookups.
type RouteCache interface {
	Get(ctx context.Context, origin, destination domain.Coordinates) (Route, bool, error)
	Put(ctx context.Context, origin, destination domain.Coordinates, r Route) error
}
