package domain

import "fmt"

// Append-only, insertion-ordered collection of delivery records for one session.
//
// A ledger is Empty until the first Append and returns to Empty only via Clear;
// there is no partial removal. It is not safe for concurrent use: each session
// owns its own ledger and serializes access to it.
type SessionLedger struct {
	records []DeliveryRecord
}

func NewSessionLedger() *SessionLedger {
	return &SessionLedger{}
}

// Append a record at the end of the ledger.
func (l *SessionLedger) Append(r DeliveryRecord) {
	l.records = append(l.records, r)
}

// All returns a copy of the records in append order.
func (l *SessionLedger) All() []DeliveryRecord {
	out := make([]DeliveryRecord, len(l.records))
	copy(out, l.records)
	return out
}

func (l *SessionLedger) Len() int { return len(l.records) }
func (l *SessionLedger) Empty() bool { return len(l.records) == 0 }

// At returns the record at position i (its implicit key).
func (l *SessionLedger) At(i int) (DeliveryRecord, error) {
	if i < 0 || i >= len(l.records) {
		return DeliveryRecord{}, fmt.Errorf("%w: index %d (ledger size %d)", ErrRecordNotFound, i, len(l.records))
	}
	return l.records[i], nil
}

// Drop every record.
func (l *SessionLedger) Clear() {
	l.records = nil
}

// Aggregate projects one numeric column across all records in append order.
func (l *SessionLedger) Aggregate(field string) ([]float64, error) {
	get, ok := numericFields[field]
	if !ok {
		return nil, fmt.Errorf("aggregate ledger: %w: %q", ErrUnknownField, field)
	}

	out := make([]float64, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, get(r))
	}
	return out, nil
}

// Totals across the ledger, shown under the delivery table.
type LedgerSummary struct {
	Deliveries        int     `json:"deliveries"`
	TotalDistanceKm   float64 `json:"total_distance_km"`
	TotalTimeMin      float64 `json:"total_time_min"`
	TotalFuelUsedL    float64 `json:"total_fuel_used_l"`
	TotalFuelCost     float64 `json:"total_fuel_cost"`
	TotalPredictedCO2 float64 `json:"total_predicted_co2_kg"`
	TotalFormulaCO2   float64 `json:"total_formula_co2_kg"`
}

func (l *SessionLedger) Summary() LedgerSummary {
	s := LedgerSummary{Deliveries: len(l.records)}
	for _, r := range l.records {
		s.TotalDistanceKm += r.DistanceKm
		s.TotalTimeMin += r.TimeMin
		s.TotalFuelUsedL += r.FuelUsedL
		s.TotalFuelCost += r.FuelCostRs
		s.TotalPredictedCO2 += r.PredictedCO2Kg
		s.TotalFormulaCO2 += r.FormulaCO2Kg
	}
	return s
}
