package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"telcochurn/domain/core"
	"telcochurn/models"
	"telcochurn/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// runRepository implements the RunRepository interface
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new remediation run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &runRepository{db: db}
}

// SaveRun inserts a completed run
func (r *runRepository) SaveRun(ctx context.Context, run *models.RemediationRun) error {
	query := `INSERT INTO remediation_runs (
		id, source, fold, rows_before, rows_after, report, created_at
	) VALUES (
		:id, :source, :fold, :rows_before, :rows_after, :report, :created_at
	)`

	if _, err := r.db.NamedExecContext(ctx, query, run); err != nil {
		return fmt.Errorf("failed to save remediation run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by its ID
func (r *runRepository) GetRun(ctx context.Context, id uuid.UUID) (*models.RemediationRun, error) {
	query := `SELECT id, source, fold, rows_before, rows_after, report, created_at
	FROM remediation_runs WHERE id = $1`

	var run models.RemediationRun
	if err := r.db.GetContext(ctx, &run, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
		}
		return nil, fmt.Errorf("failed to get remediation run: %w", err)
	}
	return &run, nil
}

// ListRuns returns the most recent runs first
func (r *runRepository) ListRuns(ctx context.Context, limit int) ([]*models.RemediationRun, error) {
	query := `SELECT id, source, fold, rows_before, rows_after, report, created_at
	FROM remediation_runs ORDER BY created_at DESC LIMIT $1`

	var runs []*models.RemediationRun
	if err := r.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list remediation runs: %w", err)
	}
	return runs, nil
}
