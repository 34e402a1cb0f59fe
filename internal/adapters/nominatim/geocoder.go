// Package nominatim geocodes place names with OpenStreetMap Nominatim.
package nominatim

import (
	"context"
	"delivery-emissions-service/internal/domain"
	"delivery-emissions-service/internal/platform/obs"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Geocoder implements ports.Geocoder against the Nominatim /search endpoint.
// Nominatim's usage policy requires an identifying User-Agent.
type Geocoder struct {
	session   *http.Client
	baseURL   string
	userAgent string
}

func NewGeocoder(baseURL, userAgent string, timeout time.Duration) *Geocoder {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if userAgent == "" {
		userAgent = "delivery-emissions-service"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Geocoder{
		session:   &http.Client{Timeout: timeout},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (g *Geocoder) Geocode(ctx context.Context, place string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	norm := strings.Join(strings.Fields(place), " ")
	if norm == "" {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode: %w: place must be non-empty", domain.ErrInvalidInput)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search", nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode: create request: %w", err)
	}
	q := req.URL.Query()
	q.Set("q", norm)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.session.Do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: %w: %w", norm, domain.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return domain.Coordinates{}, fmt.Errorf(
			"nominatim geocode %q: %w: unexpected status %d: %s",
			norm, domain.ErrExternalService, resp.StatusCode, strings.TrimSpace(string(b)),
		)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: %w: decode response: %w", norm, domain.ErrExternalService, err)
	}
	if len(results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode: %w: no results for %q", domain.ErrNotFound, norm)
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	c := domain.Coordinates{Lon: lon, Lat: lat}
	if latErr != nil || lonErr != nil || !c.Valid() {
		return domain.Coordinates{}, fmt.Errorf(
			"nominatim geocode %q: %w: invalid coordinates lat=%q lon=%q",
			norm, domain.ErrExternalService, results[0].Lat, results[0].Lon,
		)
	}

	return c, nil
}
