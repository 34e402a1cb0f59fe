package handlers

import (
	"delivery-emissions-service/internal/api/dto"
	"delivery-emissions-service/internal/domain"
	"delivery-emissions-service/internal/platform/obs"
	"delivery-emissions-service/internal/services"
	"delivery-emissions-service/internal/session"
	"errors"
	"net/http"
	"strings"
)

type PredictionHandler struct {
	Registry *session.Registry
	Deps     services.Collaborators
}

// Predict runs one delivery prediction and appends its record to the
// session ledger. A failed attempt leaves the ledger unchanged.
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r, h.Registry)
	if !ok {
		return
	}

	var req dto.PredictionRequest
	if err := decodeJSON(r, &req); err != nil {
		obs.CountPrediction("bad_request")
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := getValidator().Struct(req); err != nil {
		obs.CountPrediction("invalid_input")
		writeError(w, r, http.StatusUnprocessableEntity, validationMessage(err))
		return
	}

	svcReq, err := toServiceRequest(req)
	if err != nil {
		obs.CountPrediction("invalid_input")
		writeDomainError(w, r, err)
		return
	}

	var res *services.PredictionResult
	err = s.With(func(l *domain.SessionLedger) error {
		var err error
		res, err = services.PredictDelivery(r.Context(), svcReq, h.Deps, l)
		return err
	})
	if err != nil {
		kind, _ := classify(err)
		obs.CountPrediction(kind)
		writeDomainError(w, r, err)
		return
	}
	obs.CountPrediction("ok")

	path := make([][2]float64, 0, len(res.Path))
	for _, c := range res.Path {
		path = append(path, c.LatLon())
	}

	writeJSON(w, r, http.StatusOK, dto.PredictionResponse{
		Record:   res.Record,
		Estimate: res.Estimate,
		Start: dto.PlaceResponse{
			Place:   res.Record.StartLocation,
			Lat:     res.StartCoords.Lat,
			Lon:     res.StartCoords.Lon,
			Weather: res.StartWeather,
		},
		Destination: dto.PlaceResponse{
			Place:   res.Record.EndLocation,
			Lat:     res.EndCoords.Lat,
			Lon:     res.EndCoords.Lon,
			Weather: res.EndWeather,
		},
		Path:       path,
		LedgerSize: res.LedgerSize,
	})
}

func toServiceRequest(req dto.PredictionRequest) (services.PredictDeliveryRequest, error) {
	traffic, terr := domain.ParseTrafficLevel(req.Traffic)
	weather, werr := domain.ParseWeatherChoice(req.Weather)
	vehicle, verr := domain.ParseVehicle(req.Vehicle)
	if err := errors.Join(terr, werr, verr); err != nil {
		return services.PredictDeliveryRequest{}, err
	}

	price := services.DefaultFuelPricePerLiter
	if req.FuelPricePerLiter != nil {
		price = *req.FuelPricePerLiter
	}

	return services.PredictDeliveryRequest{
		Start:             strings.TrimSpace(req.Start),
		End:               strings.TrimSpace(req.Destination),
		Traffic:           traffic,
		Weather:           weather,
		Vehicle:           vehicle,
		CargoWeightKg:     *req.CargoWeightKg,
		FuelPricePerLiter: price,
	}, nil
}
