package ports

import (
	"context"
	"delivery-emissions-service/internal/domain"
)

// Black-box regression model: one fixed-order feature vector in, one CO2 figure (kg) out.
type Predictor interface {
	Predict(ctx context.Context, features domain.FeatureVector) (float64, error)
}

// PredictFunc adapts a plain function to Predictor.
type PredictFunc func(ctx context.Context, features domain.FeatureVector) (float64, error)

func (f PredictFunc) Predict(ctx context.Context, features domain.FeatureVector) (float64, error) {
	return f(ctx, features)
}
