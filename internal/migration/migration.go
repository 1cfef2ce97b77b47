package migration

import (
	"context"

	"telcochurn/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in order. Every step is idempotent.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	steps := []struct {
		name string
		fn   func(context.Context, *sqlx.DB) error
	}{
		{"create remediation_runs table", r.createRemediationRunsTable},
		{"create predictions table", r.createPredictionsTable},
		{"create indexes", r.createIndexes},
	}
	for _, step := range steps {
		if err := step.fn(ctx, db); err != nil {
			return errors.WithCode(errors.CodeDatabaseError, errors.Wrapf(err, "failed to %s", step.name))
		}
	}
	return nil
}

func (r *MigrationRunner) createRemediationRunsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS remediation_runs (
			id UUID PRIMARY KEY,
			source TEXT NOT NULL,
			fold DOUBLE PRECISION NOT NULL,
			rows_before INTEGER NOT NULL,
			rows_after INTEGER NOT NULL,
			report JSONB NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createPredictionsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS predictions (
			id UUID PRIMARY KEY,
			payload JSONB NOT NULL,
			class SMALLINT NOT NULL CHECK (class IN (0, 1)),
			class_name VARCHAR(20) NOT NULL,
			probability DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_remediation_runs_created_at ON remediation_runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_predictions_class ON predictions(class);
	`)
	return err
}
