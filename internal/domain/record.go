package domain

import (
	"fmt"
	"strconv"
)

// Start and destination place names as the user entered them.
type Locations struct {
	Start string
	End   string
}

// Immutable snapshot of one delivery: inputs plus computed outputs.
// Field order is the export column order. Records are held and handed out by
// value, so no holder can mutate another's copy.
type DeliveryRecord struct {
	StartLocation       string        `json:"Start_Location"`
	EndLocation         string        `json:"End_Location"`
	DistanceKm          float64       `json:"Distance_km"`
	TimeMin             float64       `json:"Time_min"`
	TrafficLevel        TrafficLevel  `json:"Traffic_Level"`
	UserSelectedWeather WeatherChoice `json:"User_Selected_Weather"`
	Vehicle             Vehicle       `json:"Vehicle"`
	CargoWeightKg       float64       `json:"Cargo_Weight_kg"`
	FuelUsedL           float64       `json:"Fuel_Used_L"`
	FuelCostRs          float64       `json:"Fuel_Cost_Rs"`
	PredictedCO2Kg      float64       `json:"Predicted_CO2_kg"`
	FormulaCO2Kg        float64       `json:"Formula_CO2_kg"`
}

// Column names in field declaration order.
var RecordColumns = []string{
	"Start_Location",
	"End_Location",
	"Distance_km",
	"Time_min",
	"Traffic_Level",
	"User_Selected_Weather",
	"Vehicle",
	"Cargo_Weight_kg",
	"Fuel_Used_L",
	"Fuel_Cost_Rs",
	"Predicted_CO2_kg",
	"Formula_CO2_kg",
}

// Numeric columns available to ledger aggregation.
var numericFields = map[string]func(DeliveryRecord) float64{
	"Distance_km":      func(r DeliveryRecord) float64 { return r.DistanceKm },
	"Time_min":         func(r DeliveryRecord) float64 { return r.TimeMin },
	"Cargo_Weight_kg":  func(r DeliveryRecord) float64 { return r.CargoWeightKg },
	"Fuel_Used_L":      func(r DeliveryRecord) float64 { return r.FuelUsedL },
	"Fuel_Cost_Rs":     func(r DeliveryRecord) float64 { return r.FuelCostRs },
	"Predicted_CO2_kg": func(r DeliveryRecord) float64 { return r.PredictedCO2Kg },
	"Formula_CO2_kg":   func(r DeliveryRecord) float64 { return r.FormulaCO2Kg },
}

// NewDeliveryRecord assembles a record. It performs no validation beyond what
// the estimator already guaranteed.
func NewDeliveryRecord(loc Locations, f TripFeatures, est EmissionEstimate) DeliveryRecord {
	return DeliveryRecord{
		StartLocation:       loc.Start,
		EndLocation:         loc.End,
		DistanceKm:          f.DistanceKm,
		TimeMin:             f.DurationMin,
		TrafficLevel:        f.Traffic,
		UserSelectedWeather: f.Weather,
		Vehicle:             f.Vehicle,
		CargoWeightKg:       f.CargoWeightKg,
		FuelUsedL:           est.FuelUsedLiters,
		FuelCostRs:          est.FuelCost,
		PredictedCO2Kg:      est.ModelCO2Kg,
		FormulaCO2Kg:        est.FormulaCO2Kg,
	}
}

// Field returns the named numeric column.
func (r DeliveryRecord) Field(name string) (float64, error) {
	get, ok := numericFields[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return get(r), nil
}

// Row renders the record as strings in RecordColumns order.
func (r DeliveryRecord) Row() []string {
	return []string{
		r.StartLocation,
		r.EndLocation,
		formatFloat(r.DistanceKm),
		formatFloat(r.TimeMin),
		r.TrafficLevel.String(),
		r.UserSelectedWeather.String(),
		r.Vehicle.String(),
		formatFloat(r.CargoWeightKg),
		formatFloat(r.FuelUsedL),
		formatFloat(r.FuelCostRs),
		formatFloat(r.PredictedCO2Kg),
		formatFloat(r.FormulaCO2Kg),
	}
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
