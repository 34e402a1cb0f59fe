package domain

import "errors"

// Error kinds surfaced by the estimation flow. Adapters and services wrap these
// with context; callers classify with errors.Is. Each kind aborts only the
// current prediction attempt and never touches the session ledger.
var (
	// A place name could not be resolved to coordinates.
	ErrNotFound = errors.New("not found")
	// Routing, weather, geocoding, or cache backend unreachable or malformed.
	ErrExternalService = errors.New("external service error")
	// Non-positive distance or mileage, or an out-of-range trip feature.
	ErrInvalidInput = errors.New("invalid input")
	// The prediction call failed or returned a non-numeric value.
	ErrModelPrediction = errors.New("model prediction failed")
	// Ledger aggregate requested for a field that does not exist.
	ErrUnknownField = errors.New("unknown field")

	ErrSessionNotFound = errors.New("session not found")
	ErrRecordNotFound  = errors.New("record not found")
)
