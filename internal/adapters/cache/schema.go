package cache

import (
	"context"
	"database/sql"
	"delivery-emissions-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Create the Postgres cache tables if they do not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		place TEXT PRIMARY KEY,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		cached_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
		origin_key TEXT NOT NULL,
		destination_key TEXT NOT NULL,
		distance_meters DOUBLE PRECISION NOT NULL,
		duration_seconds DOUBLE PRECISION NOT NULL,
		path JSONB NOT NULL DEFAULT '[]'::jsonb,
		cached_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (origin_key, destination_key)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_route_cache_cached_at
	ON route_cache(cached_at);
	`

	statements := []string{
		createGeocodeCacheQuery,
		createRouteCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type PlaceSeed struct {
	Place string  `json:"place"`
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
}

// LoadPlaceSeeds reads and validates a JSON array of known place coordinates.
func LoadPlaceSeeds(jsonPath string) (map[string]domain.Coordinates, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed places: read %q: %w", jsonPath, err)
	}

	var data []PlaceSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed places: parse json: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(data))
	for i, item := range data {
		place := NormalizePlace(item.Place)
		if place == "" {
			return nil, fmt.Errorf("seed places: item at index %d: place cannot be empty", i+1)
		}

		c := domain.Coordinates{Lon: item.Lon, Lat: item.Lat}
		if !c.Valid() {
			return nil, fmt.Errorf("seed places: item %q at index %d: coordinates out of range", strings.TrimSpace(item.Place), i+1)
		}
		out[place] = c
	}

	return out, nil
}

// Populate the geocode cache from a JSON seed file. Returns the row count.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) (int, error) {
	places, err := LoadPlaceSeeds(jsonPath)
	if err != nil {
		return 0, err
	}

	if err := NewSQLGeocodeCache(db, 0).PutMany(ctx, places); err != nil {
		return 0, fmt.Errorf("seed places: %w", err)
	}

	return len(places), nil
}

// Purge deletes cache rows last written before now-olderThan and returns how
// many were removed from each table.
func Purge(ctx context.Context, db *sql.DB, olderThan time.Duration) (geocodes, routes int64, err error) {
	if db == nil {
		return 0, 0, errors.New("purge cache: DB is nil")
	}

	cutoff := time.Now().Add(-olderThan)

	res, err := db.ExecContext(ctx, `DELETE FROM geocode_cache WHERE cached_at < $1;`, cutoff)
	if err != nil {
		return 0, 0, fmt.Errorf("purge cache: geocode_cache: %w", err)
	}
	geocodes, _ = res.RowsAffected()

	res, err = db.ExecContext(ctx, `DELETE FROM route_cache WHERE cached_at < $1;`, cutoff)
	if err != nil {
		return geocodes, 0, fmt.Errorf("purge cache: route_cache: %w", err)
	}
	routes, _ = res.RowsAffected()

	return geocodes, routes, nil
}
