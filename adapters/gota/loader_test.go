package gota

import (
	"bytes"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"telcochurn/domain/core"
	"telcochurn/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const churnCSV = `customerID,SeniorCitizen,tenure,MonthlyCharges,TotalCharges,Churn
7590-VHVEG,0,1,29.85,29.85,No
5575-GNVDE,0,34,56.95,1889.5,No
3668-QPYBK,1,2,,108.15,Yes
4183-MYFRB,0,,70.7, ,Yes
`

func TestLoadDetectsTypes(t *testing.T) {
	table, err := NewLoader(nil).Load(strings.NewReader(churnCSV))
	require.NoError(t, err)

	assert.Equal(t, 4, table.Len())
	assert.Equal(t, []string{"SeniorCitizen", "tenure", "MonthlyCharges"}, table.NumericNames())

	tenure, err := table.NumericColumn("tenure")
	require.NoError(t, err)
	assert.Equal(t, 34.0, tenure.Numbers[1])
	assert.True(t, math.IsNaN(tenure.Numbers[3]))

	monthly, err := table.NumericColumn("MonthlyCharges")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(monthly.Numbers[2]))

	total, err := table.Column("TotalCharges")
	require.NoError(t, err)
	assert.False(t, total.IsNumeric())
	assert.Equal(t, " ", total.Strings[3])

	churn, err := table.Column("Churn")
	require.NoError(t, err)
	assert.Equal(t, []string{"No", "No", "Yes", "Yes"}, churn.Strings)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "churn.csv")
	require.NoError(t, os.WriteFile(path, []byte(churnCSV), 0o644))

	table, err := NewLoader(nil).LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, table.Names(), 6)

	_, err = NewLoader(nil).LoadFile(filepath.Join(t.TempDir(), "absent.csv"))
	assert.True(t, core.IsNotFoundError(err))
}

func TestLoadCustomNaNValues(t *testing.T) {
	table, err := NewLoader(nil, "", "?").Load(strings.NewReader("a,b\n1,?\n2,x\n"))
	require.NoError(t, err)

	b, err := table.Column("b")
	require.NoError(t, err)
	assert.True(t, b.IsMissing(0))
	assert.False(t, b.IsMissing(1))
}

func TestLoadFileLogsThroughLogger(t *testing.T) {
	var buf bytes.Buffer
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})

	path := filepath.Join(t.TempDir(), "churn.csv")
	require.NoError(t, os.WriteFile(path, []byte(churnCSV), 0o644))

	_, err := NewLoader(internal.NewLogger(internal.LogLevelInfo)).LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[INFO] [GotaLoader] Loaded "+path+" (6 columns, 4 rows)\n", buf.String())

	buf.Reset()
	_, err = NewLoader(internal.NewLogger(internal.LogLevelWarn)).LoadFile(path)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
