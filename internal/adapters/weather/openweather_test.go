package weather

import (
	"context"
	"delivery-emissions-service/internal/domain"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeatherSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		assert.Equal(t, "Hyderabad", r.URL.Query().Get("q"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "k", r.URL.Query().Get("appid"))
		_, _ = io.WriteString(w, `{"weather":[{"description":"scattered clouds"}],"main":{"temp":29.4,"humidity":58}}`)
	}))
	defer srv.Close()

	got, err := NewOpenWeather("k", srv.URL, time.Second).Weather(context.Background(), "Hyderabad")
	require.NoError(t, err)
	assert.Equal(t, "Scattered Clouds, 29.4°C, Humidity: 58%", got)
}

func TestWeatherUnavailableReasons(t *testing.T) {
	tests := []struct {
		name   string
		h      http.HandlerFunc
		reason string
	}{
		{"bad key", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusUnauthorized) }, domain.WeatherReasonAPIKey},
		{"city unknown", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) }, domain.WeatherReasonAPI},
		{"missing blocks", func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, `{"cod":200}`) }, domain.WeatherReasonFormat},
		{"not json", func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, `nope`) }, domain.WeatherReasonFormat},
		{"slow", func(w http.ResponseWriter, r *http.Request) { time.Sleep(300 * time.Millisecond) }, domain.WeatherReasonTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.h)
			defer srv.Close()

			_, err := NewOpenWeather("k", srv.URL, 100*time.Millisecond).Weather(context.Background(), "X")

			var u *domain.WeatherUnavailableError
			require.True(t, errors.As(err, &u), "got %v", err)
			assert.Equal(t, tt.reason, u.Reason)
			assert.ErrorIs(t, err, domain.ErrExternalService)
		})
	}
}

func TestWeatherWithoutKey(t *testing.T) {
	_, err := NewOpenWeather("", "http://unused", time.Second).Weather(context.Background(), "X")

	var u *domain.WeatherUnavailableError
	require.ErrorAs(t, err, &u)
	assert.Equal(t, domain.WeatherReasonNotConfigured, u.Reason)
}
