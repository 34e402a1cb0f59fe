package handlers

import (
	"bytes"
	"delivery-emissions-service/internal/api/dto"
	"delivery-emissions-service/internal/domain"
	"delivery-emissions-service/internal/export"
	"delivery-emissions-service/internal/session"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// DeliveryHandler serves the session ledger: listing, charts, downloads, reset.
type DeliveryHandler struct {
	Registry *session.Registry
}

func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r, h.Registry)
	if !ok {
		return
	}

	var res dto.DeliveriesResponse
	_ = s.With(func(l *domain.SessionLedger) error {
		res.Records = l.All()
		res.Summary = l.Summary()
		return nil
	})
	writeJSON(w, r, http.StatusOK, res)
}

func (h *DeliveryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r, h.Registry)
	if !ok {
		return
	}

	_ = s.With(func(l *domain.SessionLedger) error {
		l.Clear()
		return nil
	})
	w.WriteHeader(http.StatusNoContent)
}

// Series returns one numeric column across the ledger, for charting.
func (h *DeliveryHandler) Series(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r, h.Registry)
	if !ok {
		return
	}

	field := r.URL.Query().Get("field")
	if field == "" {
		writeError(w, r, http.StatusBadRequest, "field query parameter is required")
		return
	}

	var values []float64
	err := s.With(func(l *domain.SessionLedger) error {
		var err error
		values, err = l.Aggregate(field)
		return err
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SeriesResponse{Field: field, Values: values})
}

// Export downloads the whole ledger as CSV.
func (h *DeliveryHandler) Export(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r, h.Registry)
	if !ok {
		return
	}

	var records []domain.DeliveryRecord
	_ = s.With(func(l *domain.SessionLedger) error {
		records = l.All()
		return nil
	})

	var buf bytes.Buffer
	if err := export.WriteRecords(&buf, records); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCSV(w, export.DashboardFilename, buf.Bytes())
}

// ExportOne downloads a single record, addressed by its ledger position.
func (h *DeliveryHandler) ExportOne(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r, h.Registry)
	if !ok {
		return
	}

	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "index must be an integer")
		return
	}

	var rec domain.DeliveryRecord
	err = s.With(func(l *domain.SessionLedger) error {
		var err error
		rec, err = l.At(idx)
		return err
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteRecord(&buf, rec); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCSV(w, export.ReportFilename, buf.Bytes())
}

func writeCSV(w http.ResponseWriter, filename string, body []byte) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
