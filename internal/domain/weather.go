package domain

import "fmt"

const WeatherPlaceholder = "Weather data not available"

// Reasons attached to an unavailable weather lookup.
const (
	WeatherReasonAPIKey        = "API key error"
	WeatherReasonAPI           = "API error"
	WeatherReasonFormat        = "format error"
	WeatherReasonTimeout       = "timeout"
	WeatherReasonError         = "error"
	WeatherReasonNotConfigured = "not configured"
)

// Returned by weather lookups that could not produce a summary.
type WeatherUnavailableError struct {
	Reason string
	Err    error
}

func (e *WeatherUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("weather unavailable (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("weather unavailable (%s)", e.Reason)
}

func (e *WeatherUnavailableError) Unwrap() error { return e.Err }

// Display text used in place of a weather summary, e.g.
// "Weather data not available (timeout)".
func WeatherPlaceholderFor(reason string) string {
	if reason == "" {
		reason = WeatherReasonError
	}
	return fmt.Sprintf("%s (%s)", WeatherPlaceholder, reason)
}
