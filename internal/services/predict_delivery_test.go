package services

import (
	"context"
	"delivery-emissions-service/internal/adapters/mock"
	"delivery-emissions-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	hyderabad = domain.Coordinates{Lon: 78.4867, Lat: 17.3850}
	warangal  = domain.Coordinates{Lon: 79.5941, Lat: 17.9689}
	secunder  = domain.Coordinates{Lon: 78.4983, Lat: 17.4399}
)

func testCollaborators(model *mock.Predictor) Collaborators {
	return Collaborators{
		Geocoder: mock.NewGeocoder(map[string]domain.Coordinates{
			"Hyderabad":     hyderabad,
			"Warangal":      warangal,
			"Secunderabad":  secunder,
			"Hyderabad Hub": hyderabad,
		}),
		Router: mock.NewRouter([]mock.RoutePair{
			{From: hyderabad, To: warangal, Meters: 150000, Seconds: 10800},
			{From: warangal, To: hyderabad, Meters: 150000, Seconds: 10800},
			{From: hyderabad, To: secunder, Meters: 9000, Seconds: 1200},
			{From: hyderabad, To: hyderabad, Meters: 0, Seconds: 0},
		}),
		Weather: mock.NewWeather(map[string]string{
			"Hyderabad": "Clear Sky, 31.2°C, Humidity: 40%",
		}),
		Predictor: model,
	}
}

func vanRequest(start, end string) PredictDeliveryRequest {
	return PredictDeliveryRequest{
		Start:             start,
		End:               end,
		Traffic:           domain.TrafficLow,
		Weather:           domain.WeatherClear,
		Vehicle:           domain.Van,
		CargoWeightKg:     0,
		FuelPricePerLiter: 100,
	}
}

func TestPredictDeliveryVanScenario(t *testing.T) {
	// build test data
	model := &mock.Predictor{Value: 29.8}
	deps := testCollaborators(model)
	ledger := domain.NewSessionLedger()

	// call the method under test
	res, err := PredictDelivery(context.Background(), vanRequest(" Hyderabad ", "Warangal"), deps, ledger)
	require.NoError(t, err)

	// verify behavior
	assert.InDelta(t, 12.5, res.Estimate.FuelUsedLiters, 1e-9)
	assert.InDelta(t, 1250.0, res.Estimate.FuelCost, 1e-9)
	assert.InDelta(t, 32.5, res.Estimate.FormulaCO2Kg, 1e-9)
	assert.Equal(t, 29.8, res.Estimate.ModelCO2Kg)

	assert.Equal(t, "Hyderabad", res.Record.StartLocation)
	assert.Equal(t, "Warangal", res.Record.EndLocation)
	assert.InDelta(t, 150.0, res.Record.DistanceKm, 1e-9)
	assert.InDelta(t, 180.0, res.Record.TimeMin, 1e-9)
	assert.Equal(t, domain.Van, res.Record.Vehicle)

	assert.Equal(t, "Clear Sky, 31.2°C, Humidity: 40%", res.StartWeather)
	assert.Equal(t, "Weather data not available (API error)", res.EndWeather)

	assert.Equal(t, hyderabad, res.StartCoords)
	assert.Equal(t, warangal, res.EndCoords)
	require.Len(t, res.Path, 2)
	assert.Equal(t, 1, res.LedgerSize)
	assert.Equal(t, []domain.DeliveryRecord{res.Record}, ledger.All())
}

func TestPredictDeliveryZeroDistanceAppendsNothing(t *testing.T) {
	model := &mock.Predictor{Value: 1}
	ledger := domain.NewSessionLedger()

	_, err := PredictDelivery(context.Background(), vanRequest("Hyderabad", "Hyderabad Hub"), testCollaborators(model), ledger)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, ledger.Empty())
	assert.Empty(t, model.Seen())
}

func TestPredictDeliveryFailuresLeaveLedgerUntouched(t *testing.T) {
	tests := []struct {
		name    string
		req     PredictDeliveryRequest
		model   *mock.Predictor
		wantErr error
	}{
		{"unknown start", vanRequest("Atlantis", "Warangal"), &mock.Predictor{Value: 1}, domain.ErrNotFound},
		{"unknown destination", vanRequest("Hyderabad", "Atlantis"), &mock.Predictor{Value: 1}, domain.ErrNotFound},
		{"no route", vanRequest("Warangal", "Secunderabad"), &mock.Predictor{Value: 1}, domain.ErrExternalService},
		{"model failure", vanRequest("Hyderabad", "Warangal"), &mock.Predictor{Err: assert.AnError}, domain.ErrModelPrediction},
		{"blank start", vanRequest("  ", "Warangal"), &mock.Predictor{Value: 1}, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := domain.NewSessionLedger()
			ledger.Append(domain.DeliveryRecord{StartLocation: "existing"})

			_, err := PredictDelivery(context.Background(), tt.req, testCollaborators(tt.model), ledger)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 1, ledger.Len())
		})
	}
}

func TestPredictDeliverySequenceAndClear(t *testing.T) {
	model := &mock.Predictor{Value: 5}
	deps := testCollaborators(model)
	ledger := domain.NewSessionLedger()
	ctx := context.Background()

	_, err := PredictDelivery(ctx, vanRequest("Hyderabad", "Warangal"), deps, ledger)
	require.NoError(t, err)
	_, err = PredictDelivery(ctx, vanRequest("Hyderabad", "Secunderabad"), deps, ledger)
	require.NoError(t, err)

	all := ledger.All()
	require.Len(t, all, 2)
	assert.Equal(t, "Warangal", all[0].EndLocation)
	assert.Equal(t, "Secunderabad", all[1].EndLocation)

	ledger.Clear()
	assert.Empty(t, ledger.All())

	res, err := PredictDelivery(ctx, vanRequest("Warangal", "Hyderabad"), deps, ledger)
	require.NoError(t, err)
	assert.Equal(t, 1, res.LedgerSize)
	assert.Equal(t, 1, ledger.Len())
}

func TestPredictDeliveryWithoutWeather(t *testing.T) {
	deps := testCollaborators(&mock.Predictor{Value: 1})
	deps.Weather = nil

	res, err := PredictDelivery(context.Background(), vanRequest("Hyderabad", "Warangal"), deps, domain.NewSessionLedger())
	require.NoError(t, err)
	assert.Equal(t, "Weather data not available (not configured)", res.StartWeather)
	assert.Equal(t, "Weather data not available (not configured)", res.EndWeather)
}
