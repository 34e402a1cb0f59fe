package domain

import "fmt"

// Self-reported traffic level. Values are model ordinals.
type TrafficLevel int

const (
	TrafficLow TrafficLevel = iota
	TrafficMedium
	TrafficHigh
	trafficLevelCount
)

var trafficLabels = []string{
	TrafficLow:    "Low",
	TrafficMedium: "Medium",
	TrafficHigh:   "High",
}

func ParseTrafficLevel(s string) (TrafficLevel, error) {
	return parseLabel[TrafficLevel]("traffic level", trafficLabels, s)
}

func (t TrafficLevel) Valid() bool { return t >= 0 && t < trafficLevelCount }
func (t TrafficLevel) String() string { return labelOf(trafficLabels, int(t)) }

func (t TrafficLevel) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: traffic level %d", ErrInvalidInput, int(t))
	}
	return []byte(t.String()), nil
}

func (t *TrafficLevel) UnmarshalText(b []byte) error {
	parsed, err := ParseTrafficLevel(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// User-selected weather condition, independent of the looked-up weather summary.
type WeatherChoice int

const (
	WeatherClear WeatherChoice = iota
	WeatherRainy
	weatherChoiceCount
)

var weatherLabels = []string{
	WeatherClear: "Clear",
	WeatherRainy: "Rainy",
}

func ParseWeatherChoice(s string) (WeatherChoice, error) {
	return parseLabel[WeatherChoice]("weather choice", weatherLabels, s)
}

func (w WeatherChoice) Valid() bool { return w >= 0 && w < weatherChoiceCount }
func (w WeatherChoice) String() string { return labelOf(weatherLabels, int(w)) }

func (w WeatherChoice) MarshalText() ([]byte, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("%w: weather choice %d", ErrInvalidInput, int(w))
	}
	return []byte(w.String()), nil
}

func (w *WeatherChoice) UnmarshalText(b []byte) error {
	parsed, err := ParseWeatherChoice(string(b))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Input to the emission estimator for a single delivery leg.
type TripFeatures struct {
	DistanceKm        float64
	DurationMin       float64
	Traffic           TrafficLevel
	Weather           WeatherChoice
	Vehicle           Vehicle
	CargoWeightKg     float64
	FuelPricePerLiter float64
}

// Model input: [distance_km, traffic, cargo_weight_kg, weather, vehicle, duration_min].
// Order and ordinals are fixed by the trained model.
type FeatureVector [6]float64

// Ordinals the encoder assigns to the three categorical inputs.
type Ordinals struct {
	Traffic int
	Weather int
	Vehicle int
}
