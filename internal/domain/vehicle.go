package domain

import "fmt"

// Vehicle is a delivery vehicle type. The numeric value is the ordinal the
// regression model was trained on; the order must not change without retraining.
type Vehicle int

const (
	Bike Vehicle = iota
	Car
	Van
	Truck
	vehicleCount
)

var vehicleLabels = []string{
	Bike:  "Bike",
	Car:   "Car",
	Van:   "Van",
	Truck: "Truck",
}

// Fuel-consumption constants for one vehicle type.
type VehicleProfile struct {
	MileageKmPerLiter float64 `json:"mileage_km_per_liter"`
	CO2KgPerLiter     float64 `json:"co2_kg_per_liter"`
}

// Indexed by Vehicle; a keyed array literal cannot grow past vehicleCount.
var vehicleProfiles = [vehicleCount]VehicleProfile{
	Bike:  {MileageKmPerLiter: 40, CO2KgPerLiter: 2.3},
	Car:   {MileageKmPerLiter: 15, CO2KgPerLiter: 2.3},
	Van:   {MileageKmPerLiter: 12, CO2KgPerLiter: 2.6},
	Truck: {MileageKmPerLiter: 5, CO2KgPerLiter: 2.7},
}

// Every vehicle must have a label and a strictly positive profile; a gap here
// would surface as a division by zero in the estimator.
func init() {
	if len(vehicleLabels) != int(vehicleCount) {
		panic(fmt.Sprintf("domain: %d vehicle labels for %d vehicles", len(vehicleLabels), vehicleCount))
	}
	for v := Vehicle(0); v < vehicleCount; v++ {
		p := vehicleProfiles[v]
		if vehicleLabels[v] == "" || p.MileageKmPerLiter <= 0 || p.CO2KgPerLiter <= 0 {
			panic(fmt.Sprintf("domain: vehicle %d has no valid profile", v))
		}
	}
}

// Vehicles returns every vehicle in ordinal order.
func Vehicles() []Vehicle {
	out := make([]Vehicle, 0, vehicleCount)
	for v := Vehicle(0); v < vehicleCount; v++ {
		out = append(out, v)
	}
	return out
}

func ParseVehicle(s string) (Vehicle, error) { return parseLabel[Vehicle]("vehicle", vehicleLabels, s) }

func (v Vehicle) Valid() bool { return v >= 0 && v < vehicleCount }
func (v Vehicle) String() string { return labelOf(vehicleLabels, int(v)) }
func (v Vehicle) Ordinal() int { return int(v) }

func (v Vehicle) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: vehicle %d", ErrInvalidInput, int(v))
	}
	return []byte(v.String()), nil
}

func (v *Vehicle) UnmarshalText(b []byte) error {
	parsed, err := ParseVehicle(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Profile returns the fuel-consumption constants for v.
func (v Vehicle) Profile() (VehicleProfile, error) {
	if !v.Valid() {
		return VehicleProfile{}, fmt.Errorf("%w: no profile for vehicle %d", ErrInvalidInput, int(v))
	}
	return vehicleProfiles[v], nil
}

// Mileage returns km per liter for v.
func Mileage(v Vehicle) (float64, error) {
	p, err := v.Profile()
	if err != nil {
		return 0, err
	}
	return p.MileageKmPerLiter, nil
}

// CO2Factor returns kg of CO2 emitted per liter of fuel burned by v.
func CO2Factor(v Vehicle) (float64, error) {
	p, err := v.Profile()
	if err != nil {
		return 0, err
	}
	return p.CO2KgPerLiter, nil
}
