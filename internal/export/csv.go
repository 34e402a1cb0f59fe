// Package export writes delivery records as CSV.
package export

import (
	"delivery-emissions-service/internal/domain"
	"encoding/csv"
	"fmt"
	"io"
)

const (
	// Single-record download name.
	ReportFilename = "delivery_report.csv"
	// Whole-ledger download name.
	DashboardFilename = "delivery_dashboard.csv"
)

// WriteRecords writes a header row followed by one row per record, in order.
// An empty slice yields only the header.
func WriteRecords(w io.Writer, records []domain.DeliveryRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(domain.RecordColumns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteRecord writes the header and a single record.
func WriteRecord(w io.Writer, r domain.DeliveryRecord) error {
	return WriteRecords(w, []domain.DeliveryRecord{r})
}
