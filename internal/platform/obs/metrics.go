package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	externalCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "delivery_emissions",
		Name:      "op_duration_seconds",
		Help:      "Duration of timed operations (external calls, cache lookups).",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op", "outcome"})

	predictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "delivery_emissions",
		Name:      "predictions_total",
		Help:      "Delivery predictions by outcome (ok or error kind).",
	}, []string{"outcome"})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "delivery_emissions",
		Name:      "sessions_active",
		Help:      "Sessions currently held in memory.",
	})
)

// CountPrediction records one prediction attempt.
func CountPrediction(outcome string) {
	predictions.WithLabelValues(outcome).Inc()
}

// SetActiveSessions publishes the current session count.
func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}

// MetricsHandler exposes the default registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
