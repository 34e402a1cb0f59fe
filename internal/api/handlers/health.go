package handlers

import (
	"delivery-emissions-service/internal/api/dto"
	"delivery-emissions-service/internal/domain"
	"net/http"
)

// Health provides a minimal liveness check endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	res := map[string]string{"status": "ok"}
	writeJSON(w, r, http.StatusOK, res)
}

// Vehicles lists the vehicle catalogue in model ordinal order.
func Vehicles(w http.ResponseWriter, r *http.Request) {
	vs := domain.Vehicles()
	res := dto.ListVehicleResponse{Vehicles: make([]dto.VehicleResponse, 0, len(vs))}
	for _, v := range vs {
		p, err := v.Profile()
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		res.Vehicles = append(res.Vehicles, dto.VehicleResponse{
			Vehicle:        v.String(),
			Ordinal:        v.Ordinal(),
			VehicleProfile: p,
		})
	}
	writeJSON(w, r, http.StatusOK, res)
}
