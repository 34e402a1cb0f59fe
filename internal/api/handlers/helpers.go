package handlers

import (
	"delivery-emissions-service/internal/domain"
	"delivery-emissions-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().
			Str("req_id", obs.RequestID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Err(err).
			Msg("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// Error kind -> HTTP status. Anything unclassified is a 500.
var errorStatuses = []struct {
	err    error
	kind   string
	status int
}{
	{domain.ErrSessionNotFound, "session_not_found", http.StatusNotFound},
	{domain.ErrRecordNotFound, "record_not_found", http.StatusNotFound},
	{domain.ErrNotFound, "not_found", http.StatusNotFound},
	{domain.ErrInvalidInput, "invalid_input", http.StatusUnprocessableEntity},
	{domain.ErrUnknownField, "unknown_field", http.StatusBadRequest},
	{domain.ErrModelPrediction, "model_prediction", http.StatusBadGateway},
	{domain.ErrExternalService, "external_service", http.StatusBadGateway},
}

// classify returns the metrics label and status for err.
func classify(err error) (string, int) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.kind, e.status
		}
	}
	return "internal", http.StatusInternalServerError
}

// writeDomainError maps err to a status. Classified errors are returned to the
// client verbatim; anything else is logged and reported generically.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	_, status := classify(err)
	if status == http.StatusInternalServerError {
		log.Error().Str("req_id", obs.RequestID(r.Context())).Err(err).Msg("request failed")
		writeError(w, r, status, "internal server error")
		return
	}
	writeError(w, r, status, err.Error())
}

// decodeJSON reads exactly one JSON object with no unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}
