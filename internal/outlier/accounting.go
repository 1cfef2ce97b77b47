package outlier

import (
	"telcochurn/domain/dataset"
	domain "telcochurn/domain/outlier"
)

// OutlierAccounting counts, for each numeric feature, the rows beyond the
// boundaries chosen by its distribution: normal features use mean ± 3 sd,
// skewed features use the IQR rule with fold. Percentages are relative to the
// full row count, so missing values dilute them without ever counting as outliers.
func OutlierAccounting(table *dataset.Table, fold float64) ([]domain.OutlierRecord, error) {
	if err := ValidateFold(fold); err != nil {
		return nil, err
	}
	return account(table, ClassifyDistribution(table), fold)
}

// OutlierSummary joins the distribution classification with outlier totals
func OutlierSummary(table *dataset.Table, fold float64) ([]domain.SummaryRecord, error) {
	if err := ValidateFold(fold); err != nil {
		return nil, err
	}
	dist := ClassifyDistribution(table)
	outliers, err := account(table, dist, fold)
	if err != nil {
		return nil, err
	}
	return summarize(dist, outliers), nil
}

func account(table *dataset.Table, dist []domain.DistributionRecord, fold float64) ([]domain.OutlierRecord, error) {
	records := make([]domain.OutlierRecord, 0, len(dist))
	for _, d := range dist {
		col, err := table.NumericColumn(d.Feature)
		if err != nil {
			return nil, err
		}

		var bounds domain.Boundaries
		if d.Category == domain.CategoryNormal {
			bounds = gaussianBoundaries(col.Present(), domain.FoldExtreme)
		} else {
			bounds = iqrBoundaries(col.Present(), fold)
		}

		rec := domain.OutlierRecord{
			Feature: d.Feature,
			Upper:   bounds.Upper,
			Lower:   bounds.Lower,
		}
		for _, v := range col.Numbers {
			// NaN compares false on both sides
			if v > bounds.Upper {
				rec.RightCount++
			}
			if v < bounds.Lower {
				rec.LeftCount++
			}
		}
		rec.RightPct = percentOf(rec.RightCount, table.Len())
		rec.LeftPct = percentOf(rec.LeftCount, table.Len())
		rec.TotalCount = rec.RightCount + rec.LeftCount
		rec.TotalPct = rec.RightPct + rec.LeftPct

		records = append(records, rec)
	}
	return records, nil
}

func summarize(dist []domain.DistributionRecord, outliers []domain.OutlierRecord) []domain.SummaryRecord {
	summary := make([]domain.SummaryRecord, len(dist))
	for i, d := range dist {
		summary[i] = domain.SummaryRecord{
			Feature:    d.Feature,
			Skewness:   d.Skewness,
			Category:   d.Category,
			TotalCount: outliers[i].TotalCount,
			TotalPct:   outliers[i].TotalPct,
		}
	}
	return summary
}

func percentOf(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
