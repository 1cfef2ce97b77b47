// Package memory holds process-local repositories used when no database is configured.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"telcochurn/domain/core"
	"telcochurn/models"
	"telcochurn/ports"

	"github.com/google/uuid"
)

type runRepository struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]*models.RemediationRun
}

// NewRunRepository creates an empty in-memory run repository
func NewRunRepository() ports.RunRepository {
	return &runRepository{runs: make(map[uuid.UUID]*models.RemediationRun)}
}

func (r *runRepository) SaveRun(_ context.Context, run *models.RemediationRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.runs[run.ID]; exists {
		return core.NewInvalidArgumentError("run", fmt.Sprintf("duplicate id %s", run.ID))
	}
	stored := *run
	r.runs[run.ID] = &stored
	return nil
}

func (r *runRepository) GetRun(_ context.Context, id uuid.UUID) (*models.RemediationRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
	}
	out := *run
	return &out, nil
}

func (r *runRepository) ListRuns(_ context.Context, limit int) ([]*models.RemediationRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runs := make([]*models.RemediationRun, 0, len(r.runs))
	for _, run := range r.runs {
		out := *run
		runs = append(runs, &out)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

type predictionRepository struct {
	mu          sync.Mutex
	predictions []*models.Prediction
}

// NewPredictionRepository creates an empty in-memory prediction repository
func NewPredictionRepository() ports.PredictionRepository {
	return &predictionRepository{}
}

func (r *predictionRepository) RecordPrediction(_ context.Context, p *models.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *p
	r.predictions = append(r.predictions, &stored)
	return nil
}

func (r *predictionRepository) CountByClass(_ context.Context) (map[int]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[int]int)
	for _, p := range r.predictions {
		counts[p.Class]++
	}
	return counts, nil
}
