package services

import (
	"context"
	"delivery-emissions-service/internal/domain"
	"delivery-emissions-service/internal/ports"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// External collaborators used by PredictDelivery. Weather may be nil, in
// which case both weather summaries are the "not configured" placeholder.
type Collaborators struct {
	Geocoder  ports.Geocoder
	Router    ports.Router
	Weather   ports.WeatherLookup
	Predictor ports.Predictor
}

type PredictDeliveryRequest struct {
	Start             string
	End               string
	Traffic           domain.TrafficLevel
	Weather           domain.WeatherChoice
	Vehicle           domain.Vehicle
	CargoWeightKg     float64
	FuelPricePerLiter float64
}

type PredictionResult struct {
	Record       domain.DeliveryRecord
	Estimate     domain.EmissionEstimate
	StartCoords  domain.Coordinates
	EndCoords    domain.Coordinates
	StartWeather string
	EndWeather   string
	// Route geometry from start to destination.
	Path []domain.Coordinates
	// Ledger size after the record was appended.
	LedgerSize int
}

// PredictDelivery runs one prediction: geocode both places, look up weather,
// fetch a driving route, estimate emissions, and append the resulting record
// to ledger.
//
// Every external call is made once. Any failure other than weather aborts the
// attempt and leaves the ledger untouched; weather failures are replaced by a
// placeholder summary since the emission estimate does not depend on them.
func PredictDelivery(
	ctx context.Context,
	req PredictDeliveryRequest,
	deps Collaborators,
	ledger *domain.SessionLedger,
) (*PredictionResult, error) {
	if ledger == nil {
		return nil, errors.New("predict delivery: ledger must be non-nil")
	}
	if deps.Geocoder == nil || deps.Router == nil {
		return nil, errors.New("predict delivery: geocoder and router are required")
	}

	start := strings.TrimSpace(req.Start)
	end := strings.TrimSpace(req.End)
	if start == "" || end == "" {
		return nil, fmt.Errorf("predict delivery: %w: start and destination must be non-empty", domain.ErrInvalidInput)
	}

	startCoords, err := deps.Geocoder.Geocode(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("predict delivery: geocode start %q: %w", start, err)
	}

	endCoords, err := deps.Geocoder.Geocode(ctx, end)
	if err != nil {
		return nil, fmt.Errorf("predict delivery: geocode destination %q: %w", end, err)
	}

	startWeather := lookupWeather(ctx, deps.Weather, start)
	endWeather := lookupWeather(ctx, deps.Weather, end)

	route, err := deps.Router.Route(ctx, startCoords, endCoords)
	if err != nil {
		return nil, fmt.Errorf("predict delivery: route %q -> %q: %w", start, end, err)
	}

	features := domain.TripFeatures{
		DistanceKm:        route.DistanceMeters / 1000,
		DurationMin:       route.DurationSeconds / 60,
		Traffic:           req.Traffic,
		Weather:           req.Weather,
		Vehicle:           req.Vehicle,
		CargoWeightKg:     req.CargoWeightKg,
		FuelPricePerLiter: req.FuelPricePerLiter,
	}

	est, err := Estimate(ctx, features, deps.Predictor)
	if err != nil {
		return nil, fmt.Errorf("predict delivery: %w", err)
	}

	record := domain.NewDeliveryRecord(domain.Locations{Start: start, End: end}, features, est)
	ledger.Append(record)

	return &PredictionResult{
		Record:       record,
		Estimate:     est,
		StartCoords:  startCoords,
		EndCoords:    endCoords,
		StartWeather: startWeather,
		EndWeather:   endWeather,
		Path:         route.Path,
		LedgerSize:   ledger.Len(),
	}, nil
}

// lookupWeather never fails: any error becomes a placeholder summary.
func lookupWeather(ctx context.Context, w ports.WeatherLookup, place string) string {
	if w == nil {
		return domain.WeatherPlaceholderFor(domain.WeatherReasonNotConfigured)
	}

	summary, err := w.Weather(ctx, place)
	if err == nil {
		return summary
	}

	reason := domain.WeatherReasonError
	var unavailable *domain.WeatherUnavailableError
	if errors.As(err, &unavailable) {
		reason = unavailable.Reason
	}

	log.Warn().Str("place", place).Str("reason", reason).Err(err).Msg("weather lookup failed; using placeholder")
	return domain.WeatherPlaceholderFor(reason)
}
