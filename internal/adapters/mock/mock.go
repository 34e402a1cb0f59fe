// Package mock provides in-memory collaborators for tests and offline runs.
package mock

import (
	"context"
	"delivery-emissions-service/internal/domain"
	"delivery-emissions-service/internal/ports"
	"fmt"
	"sync"
)

// Geocoder resolves only the places it was built with.
type Geocoder struct {
	places map[string]domain.Coordinates

	mu    sync.Mutex
	calls []string
}

func NewGeocoder(places map[string]domain.Coordinates) *Geocoder {
	return &Geocoder{places: places}
}

func (g *Geocoder) Geocode(ctx context.Context, place string) (domain.Coordinates, error) {
	g.mu.Lock()
	g.calls = append(g.calls, place)
	g.mu.Unlock()

	c, ok := g.places[place]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("mock geocode %q: %w", place, domain.ErrNotFound)
	}
	return c, nil
}

// Calls returns every place passed to Geocode, in order.
func (g *Geocoder) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

type RoutePair struct {
	From, To domain.Coordinates
	Meters   float64
	Seconds  float64
}

// Router returns fixed routes keyed by origin|destination.
type Router struct {
	m map[string]ports.Route
}

func NewRouter(pairs []RoutePair) *Router {
	m := make(map[string]ports.Route, len(pairs))
	for _, p := range pairs {
		m[p.From.Key()+"|"+p.To.Key()] = ports.Route{
			DistanceMeters:  p.Meters,
			DurationSeconds: p.Seconds,
			Path:            []domain.Coordinates{p.From, p.To},
		}
	}
	return &Router{m: m}
}

func (r *Router) Route(ctx context.Context, origin, destination domain.Coordinates) (ports.Route, error) {
	route, ok := r.m[origin.Key()+"|"+destination.Key()]
	if !ok {
		return ports.Route{}, fmt.Errorf("mock route %s -> %s: %w", origin.Key(), destination.Key(), domain.ErrExternalService)
	}
	return route, nil
}

// Weather returns canned summaries; unknown places are unavailable.
type Weather struct {
	summaries map[string]string
}

func NewWeather(summaries map[string]string) *Weather {
	return &Weather{summaries: summaries}
}

func (w *Weather) Weather(ctx context.Context, place string) (string, error) {
	s, ok := w.summaries[place]
	if !ok {
		return "", &domain.WeatherUnavailableError{Reason: domain.WeatherReasonAPI, Err: domain.ErrExternalService}
	}
	return s, nil
}

// Predictor returns a fixed value and remembers the feature vectors it saw.
type Predictor struct {
	Value float64
	Err   error

	mu   sync.Mutex
	seen []domain.FeatureVector
}

func (p *Predictor) Predict(ctx context.Context, features domain.FeatureVector) (float64, error) {
	p.mu.Lock()
	p.seen = append(p.seen, features)
	p.mu.Unlock()

	if p.Err != nil {
		return 0, p.Err
	}
	return p.Value, nil
}

func (p *Predictor) Seen() []domain.FeatureVector {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.FeatureVector(nil), p.seen...)
}
