package imputation

import (
	"math"
	"testing"

	"telcochurn/domain/core"
	"telcochurn/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chargesTable(t *testing.T) *dataset.Table {
	t.Helper()
	table := dataset.NewTable(4)
	require.NoError(t, table.AddNumeric(MonthlyChargesColumn, []float64{29.85, 56.95, 53.85, 42.3}))
	require.NoError(t, table.AddNumeric(TotalChargesColumn, []float64{29.85, math.NaN(), 108.15, math.NaN()}))
	require.NoError(t, table.AddCategorical("InternetService", []string{"DSL", "No internet service", "Fiber optic", ""}, []bool{false, false, false, true}))
	require.NoError(t, table.AddCategorical("MultipleLines", []string{"No phone service", "No", "Yes", "No phone service"}, nil))
	return table
}

func TestFillTotalCharges(t *testing.T) {
	table := chargesTable(t)

	require.NoError(t, FillTotalCharges(table))

	col, err := table.Column(TotalChargesColumn)
	require.NoError(t, err)
	assert.Equal(t, []float64{29.85, 56.95, 108.15, 42.3}, col.Numbers)
}

func TestFillDependentNumericLeavesPresentValues(t *testing.T) {
	table := dataset.NewTable(3)
	require.NoError(t, table.AddNumeric("a", []float64{1, math.NaN(), 3}))
	require.NoError(t, table.AddNumeric("b", []float64{10, 20, 30}))

	require.NoError(t, FillDependentNumeric(table, "a", "b"))

	col, _ := table.Column("a")
	assert.Equal(t, []float64{1, 20, 3}, col.Numbers)
}

func TestFillDependentNumericErrors(t *testing.T) {
	table := chargesTable(t)

	err := FillDependentNumeric(table, "Missing", MonthlyChargesColumn)
	assert.True(t, core.IsMissingColumn(err))

	err = FillDependentNumeric(table, TotalChargesColumn, "Missing")
	assert.True(t, core.IsMissingColumn(err))

	err = FillDependentNumeric(table, "InternetService", MonthlyChargesColumn)
	assert.True(t, core.IsInvalidArgument(err))
}

func TestCollapsePlaceholderCategories(t *testing.T) {
	table := chargesTable(t)

	CollapsePlaceholderCategories(table)

	internet, _ := table.Column("InternetService")
	assert.Equal(t, []string{"DSL", "No", "Fiber optic", ""}, internet.Strings)
	assert.True(t, internet.IsMissing(3))

	lines, _ := table.Column("MultipleLines")
	assert.Equal(t, []string{"No", "No", "Yes", "No"}, lines.Strings)

	snapshot := table.Clone()
	CollapsePlaceholderCategories(table)
	again, _ := table.Column("MultipleLines")
	before, _ := snapshot.Column("MultipleLines")
	assert.Equal(t, before.Strings, again.Strings)
}

func TestPrepareImputationConvertsBlankCharges(t *testing.T) {
	table := dataset.NewTable(3)
	require.NoError(t, table.AddCategorical(TotalChargesColumn, []string{"29.85", " ", "1889.5"}, nil))

	prepared, err := PrepareImputation(table, []string{TotalChargesColumn}, " ")
	require.NoError(t, err)

	col, err := prepared.Column(TotalChargesColumn)
	require.NoError(t, err)
	require.True(t, col.IsNumeric())
	assert.Equal(t, 29.85, col.Numbers[0])
	assert.True(t, math.IsNaN(col.Numbers[1]))
	assert.Equal(t, 1889.5, col.Numbers[2])

	original, _ := table.Column(TotalChargesColumn)
	assert.False(t, original.IsNumeric())
	assert.Equal(t, " ", original.Strings[1])
}

func TestPrepareImputationKeepsTextColumns(t *testing.T) {
	table := dataset.NewTable(3)
	require.NoError(t, table.AddCategorical("gender", []string{"Male", "?", "Female"}, nil))

	prepared, err := PrepareImputation(table, []string{"gender"}, "?", " ")
	require.NoError(t, err)

	col, _ := prepared.Column("gender")
	assert.False(t, col.IsNumeric())
	assert.Equal(t, []bool{false, true, false}, col.Missing)
}

func TestPrepareImputationRequiresColumns(t *testing.T) {
	table := chargesTable(t)

	_, err := PrepareImputation(table, nil, " ")
	assert.True(t, core.IsInvalidArgument(err))

	_, err = PrepareImputation(nil, []string{TotalChargesColumn})
	assert.True(t, core.IsInvalidArgument(err))

	_, err = PrepareImputation(table, []string{"nope"}, " ")
	assert.True(t, core.IsMissingColumn(err))
}

func TestImputeNA(t *testing.T) {
	table := chargesTable(t)

	mean, median, err := ColumnMeanMedian(table, TotalChargesColumn)
	require.NoError(t, err)
	assert.InDelta(t, 69.0, mean, 1e-9)
	assert.InDelta(t, 69.0, median, 1e-9)

	imputed, err := ImputeNA(table, TotalChargesColumn, mean, median)
	require.NoError(t, err)

	for suffix, fill := range map[string]float64{MeanSuffix: mean, MedianSuffix: median, ZeroSuffix: 0} {
		col, err := imputed.Column(TotalChargesColumn + suffix)
		require.NoError(t, err, suffix)
		assert.Equal(t, []float64{29.85, fill, 108.15, fill}, col.Numbers, suffix)
	}

	assert.False(t, table.HasColumn(TotalChargesColumn+MeanSuffix))
}

func TestColumnMeanMedianEmptyColumn(t *testing.T) {
	table := dataset.NewTable(2)
	require.NoError(t, table.AddNumeric("x", []float64{math.NaN(), math.NaN()}))

	_, _, err := ColumnMeanMedian(table, "x")
	assert.Error(t, err)
}
