package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Class labels indexed by predicted class
var ClassNames = [2]string{"Not Churn", "Churn"}

// PredictionResult is the classification returned to clients
type PredictionResult struct {
	Class     string `json:"class"`
	ClassName string `json:"class_name"`
}

// PredictResponse is the body of every POST /predict answer
type PredictResponse struct {
	Success bool              `json:"success"`
	Result  *PredictionResult `json:"result,omitempty"`
	Message string            `json:"message,omitempty"`
}

// Prediction is a scored customer record as stored
type Prediction struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Payload     json.RawMessage `json:"payload" db:"payload"`
	Class       int             `json:"class" db:"class"`
	ClassName   string          `json:"class_name" db:"class_name"`
	Probability float64         `json:"probability" db:"probability"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// Result converts the stored prediction to its wire form
func (p *Prediction) Result() *PredictionResult {
	return &PredictionResult{
		Class:     classString(p.Class),
		ClassName: p.ClassName,
	}
}

func classString(class int) string {
	if class == 1 {
		return "1"
	}
	return "0"
}
