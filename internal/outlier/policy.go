package outlier

import (
	"fmt"

	"telcochurn/domain/dataset"
	domain "telcochurn/domain/outlier"
)

// Result is the outcome of Remediate
type Result struct {
	Table        *dataset.Table               `json:"-"`
	Target       *dataset.Series              `json:"-"`
	Distribution []domain.DistributionRecord `json:"distribution"`
	Outliers     []domain.OutlierRecord      `json:"outliers"`
	Summary      []domain.SummaryRecord      `json:"summary"`
	Decisions    []domain.Decision           `json:"decisions"`
	RowsBefore   int                         `json:"rows_before"`
	RowsAfter    int                         `json:"rows_after"`
}

// Decide assigns the remediation for one feature from its category and outlier
// percentage. The application rule ignores the fold used for accounting:
// normal features are handled with mean ± 3 sd, skewed ones with 1.5 IQR.
func Decide(rec domain.OutlierRecord, category domain.Category, excepted bool) domain.Decision {
	d := domain.Decision{
		Feature:  rec.Feature,
		Category: category,
		TotalPct: rec.TotalPct,
		Excepted: excepted,
		Action:   domain.ActionNone,
	}
	if excepted {
		return d
	}

	switch {
	case rec.TotalPct < domain.TrimBelowPct:
		d.Action = domain.ActionTrim
	case rec.TotalPct < domain.CapBelowPct:
		d.Action = domain.ActionCap
	default:
		return d
	}

	if category == domain.CategoryNormal {
		d.Rule = domain.RuleGaussian
		d.Fold = domain.FoldExtreme
	} else {
		d.Rule = domain.RuleIQR
		d.Fold = domain.FoldModerate
	}
	return d
}

// Remediate trims or caps outliers per feature. Boundaries are computed once
// from the input table; trims for normal then skewed features are applied
// before any capping, and each trim drops the same rows from target. The input
// table and target are left untouched.
func Remediate(table *dataset.Table, exceptions []string, target *dataset.Series, fold float64) (*Result, error) {
	if err := ValidateFold(fold); err != nil {
		return nil, err
	}
	if target != nil {
		if err := target.AlignsWith(table); err != nil {
			return nil, err
		}
	}

	dist := ClassifyDistribution(table)
	outliers, err := account(table, dist, fold)
	if err != nil {
		return nil, err
	}

	excepted := make(map[string]bool, len(exceptions))
	for _, name := range exceptions {
		excepted[name] = true
	}

	decisions := make([]domain.Decision, len(dist))
	for i, d := range dist {
		decision := Decide(outliers[i], d.Category, excepted[d.Feature])
		if decision.Action != domain.ActionNone {
			col, err := table.NumericColumn(d.Feature)
			if err != nil {
				return nil, err
			}
			decision.Applied = boundariesFor(decision.Rule, col.Present(), decision.Fold)
		}
		decisions[i] = decision
	}

	work := table.Clone()
	var adjusted *dataset.Series
	if target != nil {
		adjusted = target.Clone()
	}

	for _, category := range []domain.Category{domain.CategoryNormal, domain.CategorySkewed} {
		bucket := selectDecisions(decisions, domain.ActionTrim, category)
		if len(bucket) == 0 {
			continue
		}
		if err := trim(work, bucket); err != nil {
			return nil, fmt.Errorf("trim %s features: %w", category, err)
		}
		if adjusted != nil {
			adjusted.Retain(work.RowIDs())
		}
	}

	for _, category := range []domain.Category{domain.CategoryNormal, domain.CategorySkewed} {
		for _, d := range selectDecisions(decisions, domain.ActionCap, category) {
			col, err := work.NumericColumn(d.Feature)
			if err != nil {
				return nil, err
			}
			capColumn(col, d.Applied)
		}
	}

	return &Result{
		Table:        work,
		Target:       adjusted,
		Distribution: dist,
		Outliers:     outliers,
		Summary:      summarize(dist, outliers),
		Decisions:    decisions,
		RowsBefore:   table.Len(),
		RowsAfter:    work.Len(),
	}, nil
}

func selectDecisions(decisions []domain.Decision, action domain.Action, category domain.Category) []domain.Decision {
	var out []domain.Decision
	for _, d := range decisions {
		if d.Action == action && d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// trim removes every row where any bucket feature lies outside its boundaries.
// Missing values are kept.
func trim(table *dataset.Table, bucket []domain.Decision) error {
	keep := make([]bool, table.Len())
	for i := range keep {
		keep[i] = true
	}
	for _, d := range bucket {
		col, err := table.NumericColumn(d.Feature)
		if err != nil {
			return err
		}
		for i, v := range col.Numbers {
			if v > d.Applied.Upper || v < d.Applied.Lower {
				keep[i] = false
			}
		}
	}
	return table.Filter(keep)
}

// capColumn winsorizes the column in place. Missing values are kept.
func capColumn(col *dataset.Column, bounds domain.Boundaries) {
	for i, v := range col.Numbers {
		if v > bounds.Upper || v < bounds.Lower {
			col.Numbers[i] = bounds.Clamp(v)
		}
	}
}
