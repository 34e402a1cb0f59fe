package services

import (
	"delivery-emissions-service/internal/domain"
	"fmt"
)

// Encode maps the categorical trip inputs to the ordinals the regression model
// was trained on: traffic Low/Medium/High -> 0/1/2, weather Clear/Rainy -> 0/1,
// vehicle -> index in [Bike, Car, Van, Truck].
func Encode(traffic domain.TrafficLevel, weather domain.WeatherChoice, vehicle domain.Vehicle) (domain.Ordinals, error) {
	if !traffic.Valid() {
		return domain.Ordinals{}, fmt.Errorf("encode: %w: traffic level %d", domain.ErrInvalidInput, int(traffic))
	}
	if !weather.Valid() {
		return domain.Ordinals{}, fmt.Errorf("encode: %w: weather choice %d", domain.ErrInvalidInput, int(weather))
	}
	if !vehicle.Valid() {
		return domain.Ordinals{}, fmt.Errorf("encode: %w: vehicle %d", domain.ErrInvalidInput, int(vehicle))
	}

	return domain.Ordinals{
		Traffic: int(traffic),
		Weather: int(weather),
		Vehicle: vehicle.Ordinal(),
	}, nil
}

// BuildFeatureVector lays the trip features out in model input order:
// [distance_km, traffic, cargo_weight_kg, weather, vehicle, duration_min].
func BuildFeatureVector(f domain.TripFeatures) (domain.FeatureVector, error) {
	ord, err := Encode(f.Traffic, f.Weather, f.Vehicle)
	if err != nil {
		return domain.FeatureVector{}, err
	}

	return domain.FeatureVector{
		f.DistanceKm,
		float64(ord.Traffic),
		f.CargoWeightKg,
		float64(ord.Weather),
		float64(ord.Vehicle),
		f.DurationMin,
	}, nil
}
