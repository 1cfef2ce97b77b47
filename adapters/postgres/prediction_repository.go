package postgres

import (
	"context"
	"fmt"

	"telcochurn/models"
	"telcochurn/ports"

	"github.com/jmoiron/sqlx"
)

// predictionRepository implements the PredictionRepository interface
type predictionRepository struct {
	db *sqlx.DB
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db *sqlx.DB) ports.PredictionRepository {
	return &predictionRepository{db: db}
}

// RecordPrediction inserts a served prediction
func (r *predictionRepository) RecordPrediction(ctx context.Context, p *models.Prediction) error {
	query := `INSERT INTO predictions (id, payload, class, class_name, probability, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query, p.ID, p.Payload, p.Class, p.ClassName, p.Probability, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record prediction: %w", err)
	}
	return nil
}

// CountByClass returns how many predictions were served per class
func (r *predictionRepository) CountByClass(ctx context.Context) (map[int]int, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT class, COUNT(*) FROM predictions GROUP BY class`)
	if err != nil {
		return nil, fmt.Errorf("failed to count predictions: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var class, n int
		if err := rows.Scan(&class, &n); err != nil {
			return nil, fmt.Errorf("failed to scan prediction count: %w", err)
		}
		counts[class] = n
	}
	return counts, rows.Err()
}
