// Package model bridges to the remote regression service that scores
// feature vectors.
package model

import (
	"bytes"
	"context"
	"delivery-emissions-service/internal/domain"
	"delivery-emissions-service/internal/platform/obs"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPPredictor implements ports.Predictor against POST {base}/predict.
// There is no local fallback: a failed call is a failed prediction.
type HTTPPredictor struct {
	serviceURL string
	httpClient *http.Client
}

func NewHTTPPredictor(serviceURL string, timeout time.Duration) *HTTPPredictor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPPredictor{
		serviceURL: strings.TrimRight(serviceURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// predictRequest carries a batch of one row in model column order.
type predictRequest struct {
	Features [][]float64 `json:"features"`
}

type predictResponse struct {
	Predictions []float64 `json:"predictions"`
}

func (p *HTTPPredictor) Predict(ctx context.Context, fv domain.FeatureVector) (float64, error) {
	body, err := json.Marshal(predictRequest{Features: [][]float64{fv[:]}})
	if err != nil {
		return 0, fmt.Errorf("%w: marshal request: %w", domain.ErrModelPrediction, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.serviceURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: create request: %w", domain.ErrModelPrediction, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrModelPrediction, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return 0, fmt.Errorf("%w: status %d: %s", domain.ErrModelPrediction, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var pr predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return 0, fmt.Errorf("%w: decode response: %w", domain.ErrModelPrediction, err)
	}
	if len(pr.Predictions) != 1 {
		return 0, fmt.Errorf("%w: expected 1 prediction, got %d", domain.ErrModelPrediction, len(pr.Predictions))
	}

	return pr.Predictions[0], nil
}

// Health checks model service connectivity.
func (p *HTTPPredictor) Health(ctx context.Context) (err error) {
	defer obs.Time(ctx, "model.Health")(&err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.serviceURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("model: create health request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("model: health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model: health check returned status %d", resp.StatusCode)
	}
	return nil
}
