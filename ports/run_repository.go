package ports

import (
	"context"

	"telcochurn/models"

	"github.com/google/uuid"
)

// RunRepository stores dataset preparation reports
type RunRepository interface {
	// SaveRun persists a completed run
	SaveRun(ctx context.Context, run *models.RemediationRun) error

	// GetRun returns a run by ID, or an error matching core.ErrRunNotFound
	GetRun(ctx context.Context, id uuid.UUID) (*models.RemediationRun, error)

	// ListRuns returns the most recent runs first
	ListRuns(ctx context.Context, limit int) ([]*models.RemediationRun, error)
}
