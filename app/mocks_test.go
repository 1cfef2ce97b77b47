package app

import (
	"context"

	"telcochurn/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) SaveRun(ctx context.Context, run *models.RemediationRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) GetRun(ctx context.Context, id uuid.UUID) (*models.RemediationRun, error) {
	args := m.Called(ctx, id)
	run, _ := args.Get(0).(*models.RemediationRun)
	return run, args.Error(1)
}

func (m *MockRunRepository) ListRuns(ctx context.Context, limit int) ([]*models.RemediationRun, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*models.RemediationRun), args.Error(1)
}

type MockPredictionRepository struct {
	mock.Mock
}

func (m *MockPredictionRepository) RecordPrediction(ctx context.Context, p *models.Prediction) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPredictionRepository) CountByClass(ctx context.Context) (map[int]int, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[int]int), args.Error(1)
}

type MockPredictor struct {
	mock.Mock
}

func (m *MockPredictor) Predict(ctx context.Context, record models.CustomerRecord) (*models.Prediction, error) {
	args := m.Called(ctx, record)
	p, _ := args.Get(0).(*models.Prediction)
	return p, args.Error(1)
}
