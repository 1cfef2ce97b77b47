package inference

import (
	"fmt"
	"math"

	"telcochurn/domain/dataset"
	"telcochurn/internal/errors"

	"gonum.org/v1/gonum/mat"
)

// Scaler is a validated standard scaler
type Scaler struct {
	columns []string
	mean    []float64
	scale   []float64
}

// NewScaler validates spec. A zero scale leaves the centred value unchanged.
func NewScaler(spec ScalerSpec) (*Scaler, error) {
	n := len(spec.Columns)
	if n == 0 {
		return nil, errors.ModelError("scaler has no columns", nil)
	}
	if len(spec.Mean) != n || len(spec.Scale) != n {
		return nil, errors.ModelError(fmt.Sprintf("scaler has %d columns, %d means and %d scales", n, len(spec.Mean), len(spec.Scale)), nil)
	}
	scale := make([]float64, n)
	for i, s := range spec.Scale {
		if s == 0 {
			s = 1
		}
		scale[i] = s
	}
	return &Scaler{columns: spec.Columns, mean: spec.Mean, scale: scale}, nil
}

// Width is the number of output features
func (s *Scaler) Width() int {
	return len(s.columns)
}

// Transform standardizes the scaler's columns of table into a rows×Width matrix
func (s *Scaler) Transform(table *dataset.Table) (*mat.Dense, error) {
	out := mat.NewDense(table.Len(), s.Width(), nil)
	for j, name := range s.columns {
		col, err := table.NumericColumn(name)
		if err != nil {
			return nil, errors.Wrapf(err, "scale %s", name)
		}
		for i, v := range col.Numbers {
			if math.IsNaN(v) {
				return nil, errors.InvalidInput(fmt.Sprintf("%s is missing in row %d", name, i))
			}
			out.Set(i, j, (v-s.mean[j])/s.scale[j])
		}
	}
	return out, nil
}
