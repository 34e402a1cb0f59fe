// Package weather looks up current conditions from OpenWeatherMap.
package weather

import (
	"context"
	"delivery-emissions-service/internal/domain"
	"delivery-emissions-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const defaultBaseURL = "https://api.openweathermap.org"

// OpenWeather implements ports.WeatherLookup by city name, metric units.
type OpenWeather struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	title      cases.Caser
}

func NewOpenWeather(apiKey, baseURL string, timeout time.Duration) *OpenWeather {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &OpenWeather{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		title:      cases.Title(language.English),
	}
}

// Subset of the /data/2.5/weather response used for the summary.
// Pointers distinguish a missing block from zero values.
type currentWeatherResponse struct {
	Main *struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// Weather returns "{Description}, {temp}°C, Humidity: {h}%" for place.
// Failures are *domain.WeatherUnavailableError wrapping domain.ErrExternalService.
func (s *OpenWeather) Weather(ctx context.Context, place string) (_ string, err error) {
	defer obs.Time(ctx, "openweather.Weather")(&err)

	if s.apiKey == "" {
		return "", unavailable(domain.WeatherReasonNotConfigured, errors.New("no API key"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/data/2.5/weather", nil)
	if err != nil {
		return "", unavailable(domain.WeatherReasonError, fmt.Errorf("create request: %w", err))
	}
	q := req.URL.Query()
	q.Set("q", strings.TrimSpace(place))
	q.Set("appid", s.apiKey)
	q.Set("units", "metric")
	req.URL.RawQuery = q.Encode()

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", unavailable(domain.WeatherReasonTimeout, err)
		}
		return "", unavailable(domain.WeatherReasonError, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", unavailable(domain.WeatherReasonAPIKey, fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return "", unavailable(domain.WeatherReasonAPI, fmt.Errorf("status %d", resp.StatusCode))
	}

	var cw currentWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&cw); err != nil {
		if isTimeout(err) {
			return "", unavailable(domain.WeatherReasonTimeout, err)
		}
		return "", unavailable(domain.WeatherReasonFormat, fmt.Errorf("decode response: %w", err))
	}
	if cw.Main == nil || len(cw.Weather) == 0 {
		return "", unavailable(domain.WeatherReasonFormat, errors.New("response lacks main or weather block"))
	}

	return fmt.Sprintf("%s, %s°C, Humidity: %d%%",
		s.title.String(cw.Weather[0].Description),
		strconv.FormatFloat(cw.Main.Temp, 'f', -1, 64),
		cw.Main.Humidity,
	), nil
}

func unavailable(reason string, err error) error {
	return &domain.WeatherUnavailableError{
		Reason: reason,
		Err:    fmt.Errorf("%w: %w", domain.ErrExternalService, err),
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
