package ports

import "context"

// Contract for a human-readable current-weather summary at a named place.
type WeatherLookup interface {
	Weather(ctx context.Context, place string) (string, error)
}
