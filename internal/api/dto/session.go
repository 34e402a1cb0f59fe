package dto

import (
	"delivery-emissions-service/internal/domain"
	"time"
)

type SessionResponse struct {
	SessionID  string    `json:"session_id"`
	CreatedAt  time.Time `json:"created_at"`
	Deliveries int       `json:"deliveries"`
}

type DeliveriesResponse struct {
	Records []domain.DeliveryRecord `json:"records"`
	Summary domain.LedgerSummary    `json:"summary"`
}

type SeriesResponse struct {
	Field  string    `json:"field"`
	Values []float64 `json:"values"`
}

type VehicleResponse struct {
	Vehicle string `json:"vehicle"`
	Ordinal int    `json:"ordinal"`
	domain.VehicleProfile
}

type ListVehicleResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}
