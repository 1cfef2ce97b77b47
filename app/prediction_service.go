package app

import (
	"context"
	"encoding/json"
	"time"

	"telcochurn/domain/core"
	"telcochurn/internal"
	"telcochurn/internal/errors"
	"telcochurn/models"
	"telcochurn/ports"
)

// PredictionService scores customers and keeps a record of every prediction
type PredictionService struct {
	predictor   ports.Predictor
	predictions ports.PredictionRepository
	logger      *internal.Logger
}

// NewPredictionService creates a prediction service. predictions may be nil.
func NewPredictionService(predictor ports.Predictor, predictions ports.PredictionRepository, logger *internal.Logger) *PredictionService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &PredictionService{predictor: predictor, predictions: predictions, logger: logger.With("Prediction")}
}

// Predict scores record. A failure to store the prediction is logged, not returned.
func (s *PredictionService) Predict(ctx context.Context, record models.CustomerRecord) (*models.Prediction, error) {
	if s.predictor == nil {
		return nil, errors.ModelError("no model loaded", nil)
	}

	p, err := s.predictor.Predict(ctx, record)
	if err != nil {
		return nil, errors.Wrap(err, "predict churn")
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrap(err, "encode customer record")
	}
	p.ID = core.NewPredictionID().UUID()
	p.Payload = payload
	p.CreatedAt = time.Now().UTC()

	s.logger.Debug("prediction %s: %s (p=%.4f)", p.ID, p.ClassName, p.Probability)

	if s.predictions != nil {
		if err := s.predictions.RecordPrediction(ctx, p); err != nil {
			s.logger.Warn("failed to record prediction %s: %v", p.ID, err)
		}
	}
	return p, nil
}
