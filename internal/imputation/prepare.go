package imputation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"telcochurn/domain/core"
	"telcochurn/domain/dataset"

	"github.com/montanaflynn/stats"
)

// Suffixes of the columns added by ImputeNA
const (
	MeanSuffix   = "_mean"
	MedianSuffix = "_median"
	ZeroSuffix   = "_zero"
)

// PrepareImputation returns a copy of table in which every cell of columns
// equal to one of tokens is marked missing. A categorical column whose
// remaining values all parse as numbers is converted to a numeric column.
func PrepareImputation(table *dataset.Table, columns []string, tokens ...string) (*dataset.Table, error) {
	if table == nil {
		return nil, core.NewInvalidArgumentError("table", "must be specified")
	}
	if len(columns) == 0 {
		return nil, core.NewInvalidArgumentError("columns", "must be specified")
	}

	out := table.Clone()
	for _, name := range columns {
		col, err := out.Column(name)
		if err != nil {
			return nil, err
		}

		if col.IsNumeric() {
			markNumericTokens(col, tokens)
			continue
		}

		markCategoricalTokens(col, tokens)
		if converted, ok := toNumeric(col); ok {
			if err := out.ReplaceColumn(converted); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func markCategoricalTokens(col *dataset.Column, tokens []string) {
	for i, v := range col.Strings {
		for _, token := range tokens {
			if v == token {
				col.Missing[i] = true
				break
			}
		}
	}
}

func markNumericTokens(col *dataset.Column, tokens []string) {
	for _, token := range tokens {
		f, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
		if err != nil {
			continue
		}
		for i, v := range col.Numbers {
			if v == f {
				col.Numbers[i] = math.NaN()
			}
		}
	}
}

// toNumeric converts a categorical column when every present value is a number
func toNumeric(col *dataset.Column) (*dataset.Column, bool) {
	values := make([]float64, len(col.Strings))
	for i, v := range col.Strings {
		if col.Missing[i] {
			values[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, false
		}
		values[i] = f
	}
	return dataset.NewNumericColumn(col.Name, values), true
}

// ImputeNA returns a copy of table with three filled variants of column
// appended: <column>_mean, <column>_median and <column>_zero.
func ImputeNA(table *dataset.Table, column string, mean, median float64) (*dataset.Table, error) {
	src, err := numeric(table, column)
	if err != nil {
		return nil, err
	}

	out := table.Clone()
	fills := []struct {
		suffix string
		value  float64
	}{
		{MeanSuffix, mean},
		{MedianSuffix, median},
		{ZeroSuffix, 0},
	}
	for _, fill := range fills {
		values := make([]float64, len(src.Numbers))
		for i, v := range src.Numbers {
			if math.IsNaN(v) {
				v = fill.value
			}
			values[i] = v
		}
		if err := out.AddNumeric(column+fill.suffix, values); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ColumnMeanMedian returns the mean and median of the present values of column
func ColumnMeanMedian(table *dataset.Table, column string) (float64, float64, error) {
	col, err := numeric(table, column)
	if err != nil {
		return 0, 0, err
	}

	values := col.Present()
	mean, err := stats.Mean(values)
	if err != nil {
		return 0, 0, fmt.Errorf("mean of %s: %w", column, err)
	}
	median, err := stats.Median(values)
	if err != nil {
		return 0, 0, fmt.Errorf("median of %s: %w", column, err)
	}
	return mean, median, nil
}
