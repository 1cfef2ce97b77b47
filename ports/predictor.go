package ports

import (
	"context"

	"telcochurn/models"
)

// Predictor scores a customer record
type Predictor interface {
	Predict(ctx context.Context, record models.CustomerRecord) (*models.Prediction, error)
}
