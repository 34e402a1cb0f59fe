package dto

import "delivery-emissions-service/internal/domain"

// Enum fields are matched case-insensitively against their labels.
type PredictionRequest struct {
	Start       string `json:"start" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	Traffic     string `json:"traffic" validate:"required"`
	Weather     string `json:"weather" validate:"required"`
	Vehicle     string `json:"vehicle" validate:"required"`
	// Pointers distinguish an explicit 0 from a missing field.
	CargoWeightKg     *float64 `json:"cargo_weight_kg" validate:"required,gte=0"`
	FuelPricePerLiter *float64 `json:"fuel_price_per_liter" validate:"omitempty,gt=0"`
}

type PlaceResponse struct {
	Place   string  `json:"place"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Weather string  `json:"weather"`
}

type PredictionResponse struct {
	Record      domain.DeliveryRecord   `json:"record"`
	Estimate    domain.EmissionEstimate `json:"estimate"`
	Start       PlaceResponse           `json:"start"`
	Destination PlaceResponse           `json:"destination"`
	// [lat, lon] pairs from start to destination.
	Path       [][2]float64 `json:"path"`
	LedgerSize int          `json:"ledger_size"`
}
