// Package bootstrap builds the external collaborators shared by the server
// and the estimate CLI from configuration.
package bootstrap

import (
	"context"
	"database/sql"
	"delivery-emissions-service/internal/adapters/cache"
	"delivery-emissions-service/internal/adapters/model"
	"delivery-emissions-service/internal/adapters/nominatim"
	"delivery-emissions-service/internal/adapters/ors"
	"delivery-emissions-service/internal/adapters/weather"
	"delivery-emissions-service/internal/config"
	"delivery-emissions-service/internal/platform/db"
	"delivery-emissions-service/internal/ports"
	"delivery-emissions-service/internal/services"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Wired collaborators plus the handles that must be closed on shutdown.
type Stack struct {
	Deps  services.Collaborators
	Model *model.HTTPPredictor

	db    *sql.DB
	redis *redis.Client
}

// Close releases the optional cache backends.
func (s *Stack) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	return errors.Join(errs...)
}

// Build wires ORS routing, the configured geocoder, weather, and the model
// bridge. When DATABASE_URL or REDIS_URL are set the geocoder and router are
// fronted by persistent caches.
func Build(ctx context.Context, cfg *config.Config) (*Stack, error) {
	orsClient, err := ors.NewClient(cfg.ORSAPIKey, ors.Options{
		BaseURL: cfg.ORSBaseURL,
		Profile: cfg.ORSProfile,
		Timeout: cfg.ExternalTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	var geocoder ports.Geocoder = orsClient
	if cfg.Geocoder == config.GeocoderNominatim {
		geocoder = nominatim.NewGeocoder(cfg.NominatimBaseURL, cfg.NominatimUserAgent, cfg.ExternalTimeout)
	}
	var router ports.Router = orsClient

	s := &Stack{}

	if cfg.DatabaseURL != "" {
		s.db, err = db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		if err := cache.InitSchema(ctx, s.db); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		router = cache.NewCachedRouter(router, cache.NewSQLRouteCache(s.db))
		log.Info().Msg("postgres route cache enabled")
	}

	var geocodeCache ports.GeocodeCache
	switch {
	case cfg.RedisURL != "":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("bootstrap: parse REDIS_URL: %w", err)
		}
		s.redis = redis.NewClient(opts)
		if err := s.redis.Ping(ctx).Err(); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("bootstrap: connect to redis: %w", err)
		}
		geocodeCache = cache.NewRedisGeocodeCache(s.redis, "", cfg.GeocodeCacheTTL)
		log.Info().Msg("redis geocode cache enabled")
	case s.db != nil:
		geocodeCache = cache.NewSQLGeocodeCache(s.db, cfg.GeocodeCacheTTL)
		log.Info().Msg("postgres geocode cache enabled")
	}
	if geocodeCache != nil {
		geocoder = cache.NewCachedGeocoder(geocoder, geocodeCache)
	}

	var lookup ports.WeatherLookup
	if cfg.OpenWeatherAPIKey != "" {
		lookup = weather.NewOpenWeather(cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, cfg.ExternalTimeout)
	} else {
		log.Warn().Msg("OPENWEATHER_API_KEY not set; weather summaries will be placeholders")
	}

	s.Model = model.NewHTTPPredictor(cfg.ModelServiceURL, cfg.ExternalTimeout)
	s.Deps = services.Collaborators{
		Geocoder:  geocoder,
		Router:    router,
		Weather:   lookup,
		Predictor: s.Model,
	}

	log.Info().
		Str("geocoder", cfg.Geocoder).
		Str("ors_profile", cfg.ORSProfile).
		Bool("weather", lookup != nil).
		Msg("collaborators ready")

	return s, nil
}
