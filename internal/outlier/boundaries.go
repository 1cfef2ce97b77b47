package outlier

import (
	"fmt"

	"telcochurn/domain/core"
	"telcochurn/domain/dataset"
	domain "telcochurn/domain/outlier"

	"gonum.org/v1/gonum/stat"
)

// ValidateFold accepts only the two supported IQR multipliers
func ValidateFold(fold float64) error {
	if fold != domain.FoldModerate && fold != domain.FoldExtreme {
		return fmt.Errorf("%w: got %v, want %v or %v", core.ErrInvalidFold, fold, domain.FoldModerate, domain.FoldExtreme)
	}
	return nil
}

// NormalBoundaries returns mean ± 3 sample standard deviations of feature
func NormalBoundaries(table *dataset.Table, feature string) (domain.Boundaries, error) {
	col, err := table.NumericColumn(feature)
	if err != nil {
		return domain.Boundaries{}, err
	}
	return gaussianBoundaries(col.Present(), domain.FoldExtreme), nil
}

// SkewedBoundaries returns the quartiles widened by fold interquartile ranges.
// fold must be 1.5 or 3.
func SkewedBoundaries(table *dataset.Table, feature string, fold float64) (domain.Boundaries, error) {
	if err := ValidateFold(fold); err != nil {
		return domain.Boundaries{}, err
	}
	col, err := table.NumericColumn(feature)
	if err != nil {
		return domain.Boundaries{}, err
	}
	return iqrBoundaries(col.Present(), fold), nil
}

func gaussianBoundaries(values []float64, fold float64) domain.Boundaries {
	mean, sd := stat.MeanStdDev(values, nil)
	return domain.Boundaries{
		Upper: mean + fold*sd,
		Lower: mean - fold*sd,
	}
}

func iqrBoundaries(values []float64, fold float64) domain.Boundaries {
	sorted := sortedCopy(values)
	q25 := quantile(sorted, 0.25)
	q75 := quantile(sorted, 0.75)
	iqr := q75 - q25
	return domain.Boundaries{
		Upper: q75 + iqr*fold,
		Lower: q25 - iqr*fold,
	}
}

// boundariesFor computes the pair for rule over values
func boundariesFor(rule domain.Rule, values []float64, fold float64) domain.Boundaries {
	if rule == domain.RuleGaussian {
		return gaussianBoundaries(values, fold)
	}
	return iqrBoundaries(values, fold)
}
