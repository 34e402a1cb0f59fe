package cache

import (
	"context"
	"database/sql"
	"delivery-emissions-service/internal/domain"
	"delivery-emissions-service/internal/platform/obs"
	"delivery-emissions-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
)

// SQLRouteCache is a SQL-backed cache for origin->destination routes, keyed
// by the 6-decimal coordinate keys. The path is stored as a jsonb array of
// [lon, lat] pairs.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

func (s *SQLRouteCache) Get(
	ctx context.Context,
	origin, destination domain.Coordinates,
) (_ ports.Route, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return ports.Route{}, false, errors.New("route cache: db is nil")
	}

	q := `
	SELECT distance_meters, duration_seconds, path
	FROM route_cache
	WHERE origin_key = $1
		AND destination_key = $2;
	`

	var (
		r   ports.Route
		raw []byte
	)
	err = s.DB.QueryRowContext(ctx, q, origin.Key(), destination.Key()).
		Scan(&r.DistanceMeters, &r.DurationSeconds, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.Route{}, false, nil
	}
	if err != nil {
		return ports.Route{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	path, err := decodePath(raw)
	if err != nil {
		return ports.Route{}, false, fmt.Errorf("get route cache: %w", err)
	}
	r.Path = path

	return r, true, nil
}

// Store one route, replacing any previous entry for the same pair.
func (s *SQLRouteCache) Put(
	ctx context.Context,
	origin, destination domain.Coordinates,
	r ports.Route,
) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	raw, err := encodePath(r.Path)
	if err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO route_cache (origin_key, destination_key, distance_meters, duration_seconds, path, cached_at)
	VALUES ($1, $2, $3, $4, $5::jsonb, now())
	ON CONFLICT (origin_key, destination_key) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds,
		path = EXCLUDED.path,
		cached_at = EXCLUDED.cached_at;
	`, origin.Key(), destination.Key(), r.DistanceMeters, r.DurationSeconds, string(raw))
	if err != nil {
		return fmt.Errorf("insert route cache origin=%q dest=%q: %w", origin.Key(), destination.Key(), err)
	}

	return nil
}

func encodePath(path []domain.Coordinates) ([]byte, error) {
	pairs := make([][2]float64, len(path))
	for i, c := range path {
		pairs[i] = [2]float64{c.Lon, c.Lat}
	}
	b, err := json.Marshal(pairs)
	if err != nil {
		return nil, fmt.Errorf("encode path: %w", err)
	}
	return b, nil
}

func decodePath(raw []byte) ([]domain.Coordinates, error) {
	var pairs [][2]float64
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil, fmt.Errorf("decode path: %w", err)
	}
	path := make([]domain.Coordinates, len(pairs))
	for i, p := range pairs {
		path[i] = domain.Coordinates{Lon: p[0], Lat: p[1]}
	}
	return path, nil
}
