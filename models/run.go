package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RemediationRun is a persisted dataset preparation report
type RemediationRun struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	Source     string          `json:"source" db:"source"`
	Fold       float64         `json:"fold" db:"fold"`
	RowsBefore int             `json:"rows_before" db:"rows_before"`
	RowsAfter  int             `json:"rows_after" db:"rows_after"`
	Report     json.RawMessage `json:"report" db:"report"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}
