package cache

import (
	"context"
	"database/sql"
	"delivery-emissions-service/internal/domain"
	"delivery-emissions-service/internal/platform/obs"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLGeocodeCache is a SQL-backed cache mapping place names to coordinates.
// Entries older than TTL are treated as misses; zero TTL never expires.
type SQLGeocodeCache struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSQLGeocodeCache(db *sql.DB, ttl time.Duration) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db, TTL: ttl}
}

// Fetch cached coordinates for one normalized place name.
func (s *SQLGeocodeCache) Get(ctx context.Context, place string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	var cutoff time.Time
	if s.TTL > 0 {
		cutoff = time.Now().Add(-s.TTL)
	}

	q := `
	SELECT lon, lat
	FROM geocode_cache
	WHERE place = $1
		AND cached_at > $2;
	`

	var c domain.Coordinates
	err = s.DB.QueryRowContext(ctx, q, place, cutoff).Scan(&c.Lon, &c.Lat)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return c, true, nil
}

func (s *SQLGeocodeCache) Put(ctx context.Context, place string, c domain.Coordinates) error {
	return s.PutMany(ctx, map[string]domain.Coordinates{place: c})
}

// Store place -> coordinate mappings in the cache, refreshing cached_at.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO geocode_cache (place, lon, lat, cached_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (place) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		cached_at = EXCLUDED.cached_at;
	`)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for place, c := range results {
		if strings.TrimSpace(place) == "" {
			return fmt.Errorf("insert geocode cache: empty place key")
		}
		if !c.Valid() {
			return fmt.Errorf("insert geocode cache place=%q: coordinates out of range", place)
		}

		if _, err := stmt.ExecContext(ctx, place, c.Lon, c.Lat); err != nil {
			return fmt.Errorf("insert geocode cache place=%q: %w", place, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}

	return nil
}
