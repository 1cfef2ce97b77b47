package ports

import (
	"context"

	"telcochurn/models"
)

// PredictionRepository records served predictions
type PredictionRepository interface {
	RecordPrediction(ctx context.Context, p *models.Prediction) error

	// CountByClass returns how many predictions were served per class
	CountByClass(ctx context.Context) (map[int]int, error)
}
