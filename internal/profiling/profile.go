// Package profiling summarizes numeric columns the way a describe() table does.
package profiling

import (
	"math"

	"telcochurn/domain/dataset"

	"github.com/montanaflynn/stats"
	gonumstat "gonum.org/v1/gonum/stat"
)

// ColumnProfile is the summary of one numeric column. Statistics that cannot
// be computed from the present values are nil.
type ColumnProfile struct {
	Feature  string   `json:"feature"`
	Count    int      `json:"count"`
	Missing  int      `json:"missing"`
	Mean     *float64 `json:"mean"`
	StdDev   *float64 `json:"std"`
	Min      *float64 `json:"min"`
	Q1       *float64 `json:"q1"`
	Median   *float64 `json:"median"`
	Q3       *float64 `json:"q3"`
	Max      *float64 `json:"max"`
	Kurtosis *float64 `json:"kurtosis"`
	// Coefficient of variation, a rough noise measure
	CV *float64 `json:"cv"`
}

// Describe profiles every numeric column of table in column order
func Describe(table *dataset.Table) []ColumnProfile {
	var profiles []ColumnProfile
	for _, col := range table.Columns() {
		if !col.IsNumeric() {
			continue
		}
		profiles = append(profiles, ProfileColumn(col.Name, col.Numbers))
	}
	return profiles
}

// ProfileColumn summarizes values, skipping NaN. Quartiles use the median of
// each half, so they can differ slightly from interpolated quantiles.
func ProfileColumn(name string, values []float64) ColumnProfile {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	p := ColumnProfile{
		Feature: name,
		Count:   len(present),
		Missing: len(values) - len(present),
	}
	if len(present) == 0 {
		return p
	}

	mean, _ := stats.Mean(present)
	min, _ := stats.Min(present)
	max, _ := stats.Max(present)
	median, _ := stats.Median(present)
	p.Mean = finite(mean)
	p.Min = finite(min)
	p.Max = finite(max)
	p.Median = finite(median)

	if len(present) > 1 {
		sd, err := stats.StandardDeviationSample(present)
		if err == nil {
			p.StdDev = finite(sd)
			if mean != 0 {
				p.CV = finite(sd / math.Abs(mean))
			}
		}
	}
	if len(present) > 3 {
		if q, err := stats.Quartile(present); err == nil {
			p.Q1 = finite(q.Q1)
			p.Q3 = finite(q.Q3)
		}
		p.Kurtosis = finite(gonumstat.ExKurtosis(present, nil))
	}
	return p
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
