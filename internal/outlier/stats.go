package outlier

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// skewness computes the bias-adjusted Fisher-Pearson coefficient (G1).
// Fewer than three values leave it undefined; a constant sample has none.
func skewness(values []float64) float64 {
	if len(values) < 3 {
		return math.NaN()
	}
	_, sd := stat.MeanStdDev(values, nil)
	if sd == 0 {
		return 0
	}
	return stat.Skew(values, nil)
}

// quantile returns the p-quantile interpolating linearly between the closest
// ranks at position (n-1)·p. sorted must be in ascending order.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	pos := float64(n-1) * p
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func sortedCopy(values []float64) []float64 {
	out := append([]float64(nil), values...)
	sort.Float64s(out)
	return out
}
