package services

import (
	"delivery-emissions-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		traffic domain.TrafficLevel
		weather domain.WeatherChoice
		vehicle domain.Vehicle
		want    domain.Ordinals
	}{
		{domain.TrafficLow, domain.WeatherClear, domain.Bike, domain.Ordinals{Traffic: 0, Weather: 0, Vehicle: 0}},
		{domain.TrafficMedium, domain.WeatherClear, domain.Car, domain.Ordinals{Traffic: 1, Weather: 0, Vehicle: 1}},
		{domain.TrafficLow, domain.WeatherRainy, domain.Van, domain.Ordinals{Traffic: 0, Weather: 1, Vehicle: 2}},
		{domain.TrafficHigh, domain.WeatherRainy, domain.Truck, domain.Ordinals{Traffic: 2, Weather: 1, Vehicle: 3}},
	}

	for _, tt := range tests {
		got, err := Encode(tt.traffic, tt.weather, tt.vehicle)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)

		// Deterministic: a second call yields the same triple.
		again, err := Encode(tt.traffic, tt.weather, tt.vehicle)
		require.NoError(t, err)
		assert.Equal(t, got, again)
	}
}

func TestEncodeFromLabels(t *testing.T) {
	tr, err := domain.ParseTrafficLevel("High")
	require.NoError(t, err)
	w, err := domain.ParseWeatherChoice("Rainy")
	require.NoError(t, err)
	v, err := domain.ParseVehicle("Truck")
	require.NoError(t, err)

	got, err := Encode(tr, w, v)
	require.NoError(t, err)
	assert.Equal(t, domain.Ordinals{Traffic: 2, Weather: 1, Vehicle: 3}, got)
}

func TestEncodeRejectsOutOfRange(t *testing.T) {
	_, err := Encode(domain.TrafficLevel(3), domain.WeatherClear, domain.Bike)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = Encode(domain.TrafficLow, domain.WeatherChoice(2), domain.Bike)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = Encode(domain.TrafficLow, domain.WeatherClear, domain.Vehicle(4))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildFeatureVectorOrder(t *testing.T) {
	got, err := BuildFeatureVector(domain.TripFeatures{
		DistanceKm:        150,
		DurationMin:       175,
		Traffic:           domain.TrafficMedium,
		Weather:           domain.WeatherRainy,
		Vehicle:           domain.Van,
		CargoWeightKg:     40,
		FuelPricePerLiter: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.FeatureVector{150, 1, 40, 1, 2, 175}, got)
}
