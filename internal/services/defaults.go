package services

// Form defaults for a new prediction.
const (
	DefaultStart             = "Hyderabad"
	DefaultDestination       = "Warangal"
	DefaultFuelPricePerLiter = 100.0
)
