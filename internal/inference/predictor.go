package inference

import (
	"context"
	"fmt"
	"math"

	"telcochurn/domain/dataset"
	"telcochurn/internal/errors"
	"telcochurn/internal/imputation"
	"telcochurn/models"

	"gonum.org/v1/gonum/mat"
)

// DefaultThreshold separates churn from no churn
const DefaultThreshold = 0.5

// Predictor runs the full preprocessing and network pipeline
type Predictor struct {
	scaler    *Scaler
	encoder   *Encoder
	network   *Network
	threshold float64
}

// NewPredictor validates the artifacts against each other
func NewPredictor(a *Artifacts, threshold float64) (*Predictor, error) {
	scaler, err := NewScaler(a.Scaler)
	if err != nil {
		return nil, err
	}
	encoder, err := NewEncoder(a.Encoder)
	if err != nil {
		return nil, err
	}
	network, err := NewNetwork(a.Network)
	if err != nil {
		return nil, err
	}
	if want := scaler.Width() + encoder.Width(); network.Inputs() != want {
		return nil, errors.ModelError(fmt.Sprintf("network expects %d features, scaler and encoder produce %d", network.Inputs(), want), nil)
	}
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultThreshold
	}
	return &Predictor{scaler: scaler, encoder: encoder, network: network, threshold: threshold}, nil
}

// LoadPredictor reads the artifacts in dir and builds a predictor
func LoadPredictor(dir string, threshold float64) (*Predictor, error) {
	a, err := LoadArtifacts(dir)
	if err != nil {
		return nil, err
	}
	return NewPredictor(a, threshold)
}

// Predict scores one customer. The result carries class, label and
// probability; identity and payload are left to the caller.
func (p *Predictor) Predict(ctx context.Context, record models.CustomerRecord) (*models.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := RecordTable(record)
	if err != nil {
		return nil, err
	}
	probs, err := p.PredictTable(ctx, table)
	if err != nil {
		return nil, err
	}

	class := p.Classify(probs[0])
	return &models.Prediction{
		Class:       class,
		ClassName:   models.ClassNames[class],
		Probability: probs[0],
	}, nil
}

// PredictTable returns the churn probability of every row. TotalCharges is
// filled from MonthlyCharges and placeholder categories are collapsed first;
// table itself is not modified.
func (p *Predictor) PredictTable(ctx context.Context, table *dataset.Table) ([]float64, error) {
	prepared := table.Clone()
	if prepared.HasColumn(imputation.TotalChargesColumn) {
		if err := imputation.FillTotalCharges(prepared); err != nil {
			return nil, errors.Wrap(err, "impute TotalCharges")
		}
	}
	imputation.CollapsePlaceholderCategories(prepared)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scaled, err := p.scaler.Transform(prepared)
	if err != nil {
		return nil, err
	}
	encoded, err := p.encoder.Transform(prepared)
	if err != nil {
		return nil, err
	}

	var features mat.Matrix = scaled
	if encoded != nil {
		var joined mat.Dense
		joined.Augment(scaled, encoded)
		features = &joined
	}

	probs, err := p.network.Forward(features)
	if err != nil {
		return nil, err
	}
	for i, v := range probs {
		if math.IsNaN(v) {
			return nil, errors.ModelError(fmt.Sprintf("network produced NaN for row %d", i), nil)
		}
	}
	return probs, nil
}

// Classify applies the threshold: strictly above it is churn
func (p *Predictor) Classify(prob float64) int {
	if prob > p.threshold {
		return 1
	}
	return 0
}

// RecordTable turns one customer record into a single-row table
func RecordTable(record models.CustomerRecord) (*dataset.Table, error) {
	table := dataset.NewTable(1)
	numeric := record.Numeric()
	for _, name := range numericOrder {
		v := math.NaN()
		if ptr := numeric[name]; ptr != nil {
			v = *ptr
		}
		if err := table.AddNumeric(name, []float64{v}); err != nil {
			return nil, err
		}
	}
	categorical := record.Categorical()
	for _, name := range categoricalOrder {
		value := categorical[name]
		if err := table.AddCategorical(name, []string{value}, []bool{value == ""}); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// Column order of the telco churn dataset
var (
	numericOrder     = []string{"SeniorCitizen", "tenure", "MonthlyCharges", "TotalCharges"}
	categoricalOrder = []string{
		"gender", "Partner", "Dependents", "PhoneService", "MultipleLines",
		"InternetService", "OnlineSecurity", "OnlineBackup", "DeviceProtection",
		"TechSupport", "StreamingTV", "StreamingMovies", "Contract",
		"PaperlessBilling", "PaymentMethod",
	}
)
