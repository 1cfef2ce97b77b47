package outlier

import (
	"telcochurn/domain/dataset"
	domain "telcochurn/domain/outlier"
)

// Categorize maps a skewness value to its distribution category. Only values
// strictly inside (-0.5, 0.5) are normal; NaN is skewed.
func Categorize(skew float64) domain.Category {
	if skew > -domain.NormalSkewLimit && skew < domain.NormalSkewLimit {
		return domain.CategoryNormal
	}
	return domain.CategorySkewed
}

// ClassifyDistribution computes the skewness and category of every numeric
// column, in table order. Missing values are skipped.
func ClassifyDistribution(table *dataset.Table) []domain.DistributionRecord {
	var records []domain.DistributionRecord
	for _, col := range table.Columns() {
		if !col.IsNumeric() {
			continue
		}
		skew := skewness(col.Present())
		records = append(records, domain.DistributionRecord{
			Feature:  col.Name,
			Skewness: skew,
			Category: Categorize(skew),
		})
	}
	return records
}
