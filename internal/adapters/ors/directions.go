package ors

import (
	"bytes"
	"context"
	"delivery-emissions-service/internal/domain"
	"delivery-emissions-service/internal/platform/obs"
	"delivery-emissions-service/internal/ports"
	"encoding/json"
	"fmt"
	"net/http"
)

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsSummary struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Segments []directionsSummary `json:"segments"`
			Summary  directionsSummary   `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// Route fetches a driving route between two points using the
// OpenRouteService directions endpoint in GeoJSON format.
// Distance and duration come from the first (only) segment of the route.
func (c *Client) Route(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ ports.Route, err error) {
	defer obs.Time(ctx, "ors.Route")(&err)

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", c.baseURL, c.profile)

	payload, err := json.Marshal(directionsRequest{
		Coordinates: [][]float64{origin.CoordsToList(), destination.CoordsToList()},
	})
	if err != nil {
		return ports.Route{}, fmt.Errorf("marshal directions request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return ports.Route{}, fmt.Errorf("ors route: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return ports.Route{}, fmt.Errorf("ors route: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return ports.Route{}, fmt.Errorf("ors route: %w: decode directions response: %w", domain.ErrExternalService, err)
	}

	if len(dr.Features) == 0 {
		return ports.Route{}, fmt.Errorf("ors route: %w: response has no features", domain.ErrExternalService)
	}
	feature := dr.Features[0]

	// Identical endpoints come back without segments; the summary then holds zeros.
	leg := feature.Properties.Summary
	if len(feature.Properties.Segments) > 0 {
		leg = feature.Properties.Segments[0]
	}

	path := make([]domain.Coordinates, 0, len(feature.Geometry.Coordinates))
	for i, pt := range feature.Geometry.Coordinates {
		if len(pt) < 2 {
			return ports.Route{}, fmt.Errorf("ors route: %w: invalid geometry point #%d", domain.ErrExternalService, i)
		}
		path = append(path, domain.Coordinates{Lon: pt[0], Lat: pt[1]})
	}

	return ports.Route{
		DistanceMeters:  leg.Distance,
		DurationSeconds: leg.Duration,
		Path:            path,
	}, nil
}
