package imputation

import (
	"fmt"

	"telcochurn/domain/core"
	"telcochurn/domain/dataset"
)

// Column names of the telco churn dataset used by the fixed specializations
const (
	TotalChargesColumn   = "TotalCharges"
	MonthlyChargesColumn = "MonthlyCharges"
)

// placeholders maps service-specific negative answers onto a plain "No"
var placeholders = map[string]string{
	"No internet service": "No",
	"No phone service":    "No",
}

// FillDependentNumeric copies sourceCol into targetCol wherever targetCol is
// missing. Rows that already hold a value are left alone.
func FillDependentNumeric(table *dataset.Table, targetCol, sourceCol string) error {
	target, err := numeric(table, targetCol)
	if err != nil {
		return err
	}
	source, err := numeric(table, sourceCol)
	if err != nil {
		return err
	}

	for i := range target.Numbers {
		if target.IsMissing(i) {
			target.Numbers[i] = source.Numbers[i]
		}
	}
	return nil
}

// FillTotalCharges fills missing TotalCharges with MonthlyCharges. Customers
// with a blank total are in their first month, so the two amounts agree.
func FillTotalCharges(table *dataset.Table) error {
	return FillDependentNumeric(table, TotalChargesColumn, MonthlyChargesColumn)
}

// CollapsePlaceholderCategories rewrites "No internet service" and
// "No phone service" to "No" in every categorical column.
func CollapsePlaceholderCategories(table *dataset.Table) {
	for _, col := range table.Columns() {
		if col.IsNumeric() {
			continue
		}
		for i, v := range col.Strings {
			if col.Missing[i] {
				continue
			}
			if replacement, ok := placeholders[v]; ok {
				col.Strings[i] = replacement
			}
		}
	}
}

func numeric(table *dataset.Table, name string) (*dataset.Column, error) {
	col, err := table.Column(name)
	if err != nil {
		return nil, err
	}
	if !col.IsNumeric() {
		return nil, core.NewInvalidArgumentError(name, fmt.Sprintf("column %q must be numeric", name))
	}
	return col, nil
}
