package domain

// Outputs derived from one TripFeatures. Both CO2 figures are always reported;
// neither substitutes for the other.
type EmissionEstimate struct {
	FuelUsedLiters float64 `json:"fuel_used_liters"`
	FuelCost       float64 `json:"fuel_cost"`
	// Opaque model output; no sign or range guarantee.
	ModelCO2Kg   float64 `json:"model_co2_kg"`
	FormulaCO2Kg float64 `json:"formula_co2_kg"`
}
