package services

import (
	"context"
	"delivery-emissions-service/internal/domain"
	"delivery-emissions-service/internal/platform/obs"
	"delivery-emissions-service/internal/ports"
	"errors"
	"fmt"
	"math"
)

// Estimate computes fuel use, fuel cost, and two independent CO2 figures for a trip.
//
// The formula estimate (fuel burned x vehicle CO2 factor) is deterministic and
// always computed first; the model estimate is delegated to the injected
// Predictor. Both are returned together and neither replaces the other. A
// prediction failure aborts the whole estimate.
func Estimate(
	ctx context.Context,
	f domain.TripFeatures,
	model ports.Predictor,
) (_ domain.EmissionEstimate, err error) {
	if err := validateTrip(f); err != nil {
		return domain.EmissionEstimate{}, fmt.Errorf("estimate: %w", err)
	}

	profile, err := f.Vehicle.Profile()
	if err != nil {
		return domain.EmissionEstimate{}, fmt.Errorf("estimate: %w", err)
	}
	if profile.MileageKmPerLiter <= 0 {
		return domain.EmissionEstimate{}, fmt.Errorf(
			"estimate: %w: mileage for %s must be positive, got %v",
			domain.ErrInvalidInput, f.Vehicle, profile.MileageKmPerLiter,
		)
	}

	fuelUsed := f.DistanceKm / profile.MileageKmPerLiter
	fuelCost := fuelUsed * f.FuelPricePerLiter
	formulaCO2 := fuelUsed * profile.CO2KgPerLiter

	features, err := BuildFeatureVector(f)
	if err != nil {
		return domain.EmissionEstimate{}, fmt.Errorf("estimate: %w", err)
	}

	modelCO2, err := predict(ctx, model, features)
	if err != nil {
		return domain.EmissionEstimate{}, fmt.Errorf("estimate: %w", err)
	}

	return domain.EmissionEstimate{
		FuelUsedLiters: fuelUsed,
		FuelCost:       fuelCost,
		ModelCO2Kg:     modelCO2,
		FormulaCO2Kg:   formulaCO2,
	}, nil
}

func predict(ctx context.Context, model ports.Predictor, features domain.FeatureVector) (_ float64, err error) {
	defer obs.Time(ctx, "model.Predict")(&err)

	if model == nil {
		return 0, fmt.Errorf("%w: no predictor configured", domain.ErrModelPrediction)
	}

	v, err := model.Predict(ctx, features)
	if err != nil {
		if errors.Is(err, domain.ErrModelPrediction) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", domain.ErrModelPrediction, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: non-numeric prediction %v", domain.ErrModelPrediction, v)
	}

	return v, nil
}

func validateTrip(f domain.TripFeatures) error {
	if !(f.DistanceKm > 0) || math.IsInf(f.DistanceKm, 0) {
		return fmt.Errorf("%w: distance must be positive, got %v km", domain.ErrInvalidInput, f.DistanceKm)
	}
	// Zero is allowed: identical endpoints give a zero-length route, which the
	// distance check above already rejects.
	if !(f.DurationMin >= 0) || math.IsInf(f.DurationMin, 0) {
		return fmt.Errorf("%w: duration must be non-negative, got %v min", domain.ErrInvalidInput, f.DurationMin)
	}
	if !(f.CargoWeightKg >= 0) || math.IsInf(f.CargoWeightKg, 0) {
		return fmt.Errorf("%w: cargo weight must be non-negative, got %v kg", domain.ErrInvalidInput, f.CargoWeightKg)
	}
	if !(f.FuelPricePerLiter > 0) || math.IsInf(f.FuelPricePerLiter, 0) {
		return fmt.Errorf("%w: fuel price must be positive, got %v", domain.ErrInvalidInput, f.FuelPricePerLiter)
	}
	return nil
}
