package checker

import (
	"math"
	"testing"

	"telcochurn/domain/core"
	"telcochurn/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *dataset.Table {
	t.Helper()
	nan := math.NaN()
	table := dataset.NewTable(4)
	require.NoError(t, table.AddCategorical("customerID", []string{"a", "b", "c", "d"}, nil))
	require.NoError(t, table.AddNumeric("tenure", []float64{1, 1, 34, nan}))
	require.NoError(t, table.AddCategorical("gender", []string{"Male", "Female", "", "Male"}, []bool{false, false, true, false}))
	require.NoError(t, table.AddNumeric("TotalCharges", []float64{nan, nan, 10, nan}))
	require.NoError(t, table.AddCategorical("Partner", []string{"Yes", " ", "?", " "}, nil))
	return table
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"number", "object", "both"} {
		k, err := ParseKind(s)
		require.NoError(t, err)
		assert.Equal(t, Kind(s), k)
	}

	_, err := ParseKind("float")
	assert.True(t, core.IsInvalidArgument(err))
}

func TestCheckUnique(t *testing.T) {
	table := sampleTable(t)

	tests := []struct {
		kind     Kind
		features []string
		counts   []int
	}{
		{KindNumber, []string{"tenure", "TotalCharges"}, []int{2, 1}},
		{KindObject, []string{"customerID", "gender", "Partner"}, []int{4, 2, 3}},
		{KindBoth, []string{"customerID", "tenure", "gender", "TotalCharges", "Partner"}, []int{4, 2, 2, 1, 3}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			records, err := CheckUnique(table, tt.kind)
			require.NoError(t, err)
			require.Len(t, records, len(tt.features))
			for i, rec := range records {
				assert.Equal(t, tt.features[i], rec.Feature)
				assert.Equal(t, tt.counts[i], rec.NumUnique)
				assert.InDelta(t, float64(tt.counts[i])*25, rec.PctUnique, 1e-9)
			}
		})
	}

	_, err := CheckUnique(table, Kind("text"))
	assert.True(t, core.IsInvalidArgument(err))
}

func TestCheckMissingSortedByCount(t *testing.T) {
	records := CheckMissing(sampleTable(t))

	require.Len(t, records, 3)
	assert.Equal(t, "TotalCharges", records[0].Feature)
	assert.Equal(t, 3, records[0].TotalMissing)
	assert.InDelta(t, 75.0, records[0].TotalMissingPct, 1e-9)

	// ties keep column order
	assert.Equal(t, "tenure", records[1].Feature)
	assert.Equal(t, "gender", records[2].Feature)
}

func TestCheckMissingSpecial(t *testing.T) {
	table := sampleTable(t)

	records := CheckMissingSpecial(table, " ", "?")
	require.Len(t, records, 1)
	assert.Equal(t, "Partner", records[0].Feature)
	assert.Equal(t, 3, records[0].TotalMissing)
	assert.InDelta(t, 75.0, records[0].TotalMissingPct, 1e-9)

	records = CheckMissingSpecial(table, " ")
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].TotalMissing)

	assert.Empty(t, CheckMissingSpecial(table, "N/A"))
}
