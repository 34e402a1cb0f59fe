package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	GeocoderNominatim = "nominatim"
	GeocoderORS       = "ors"
)

// Runtime configuration read from the environment (optionally seeded from .env).
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	ORSAPIKey  string
	ORSBaseURL string
	ORSProfile string

	Geocoder           string
	NominatimBaseURL   string
	NominatimUserAgent string

	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string

	ModelServiceURL string

	// Per-call timeout applied to every external HTTP client.
	ExternalTimeout time.Duration

	// Optional; enables the Postgres geocode and route caches.
	DatabaseURL string
	// Optional; enables the Redis geocode cache (preferred over Postgres for geocodes).
	RedisURL        string
	GeocodeCacheTTL time.Duration

	// Server sessions unused for this long are dropped with their ledgers.
	SessionIdleTimeout time.Duration
}

// Get returns the env value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetDuration parses key as a time.Duration, returning fallback when unset.
func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive, got %s", key, d)
	}
	return d, nil
}

// Load reads configuration from the environment and applies defaults.
// It does not check required keys; call Validate for that.
func Load() (*Config, error) {
	timeout, err := GetDuration("EXTERNAL_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	ttl, err := GetDuration("GEOCODE_CACHE_TTL", 30*24*time.Hour)
	if err != nil {
		return nil, err
	}

	idle, err := GetDuration("SESSION_IDLE_TIMEOUT", 2*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:      Get("PORT", "8080"),
		LogLevel:  Get("LOG_LEVEL", "info"),
		LogFormat: Get("LOG_FORMAT", "console"),

		ORSAPIKey:  Get("ORS_API_KEY", ""),
		ORSBaseURL: Get("ORS_BASE_URL", "https://api.openrouteservice.org"),
		ORSProfile: Get("ORS_PROFILE", "driving-car"),

		Geocoder:           strings.ToLower(Get("GEOCODER", GeocoderNominatim)),
		NominatimBaseURL:   Get("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent: Get("NOMINATIM_USER_AGENT", "delivery-emissions-service"),

		OpenWeatherAPIKey:  Get("OPENWEATHER_API_KEY", ""),
		OpenWeatherBaseURL: Get("OPENWEATHER_BASE_URL", "https://api.openweathermap.org"),

		ModelServiceURL: Get("MODEL_SERVICE_URL", ""),

		ExternalTimeout: timeout,

		DatabaseURL:     Get("DATABASE_URL", ""),
		RedisURL:        Get("REDIS_URL", ""),
		GeocodeCacheTTL: ttl,

		SessionIdleTimeout: idle,
	}

	return cfg, nil
}

// Validate reports every missing or malformed required setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.ORSAPIKey == "" {
		errs = append(errs, errors.New("ORS_API_KEY is required"))
	}
	if c.ModelServiceURL == "" {
		errs = append(errs, errors.New("MODEL_SERVICE_URL is required"))
	}
	switch c.Geocoder {
	case GeocoderNominatim, GeocoderORS:
	default:
		errs = append(errs, fmt.Errorf("GEOCODER must be %q or %q, got %q", GeocoderNominatim, GeocoderORS, c.Geocoder))
	}

	return errors.Join(errs...)
}
