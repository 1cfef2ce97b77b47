// Package gota loads CSV files through gota dataframes.
package gota

import (
	"fmt"
	"io"
	"os"
	"strings"

	"telcochurn/domain/core"
	"telcochurn/domain/dataset"
	"telcochurn/internal"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// DefaultNaNValues are the cells gota reads as missing
var DefaultNaNValues = []string{"", "NA", "NaN", "<nil>"}

// Loader reads CSV files with gota's type detection
type Loader struct {
	nanValues []string
	logger    *internal.Logger
}

// NewLoader creates a loader; with no tokens DefaultNaNValues is used
func NewLoader(logger *internal.Logger, nanValues ...string) *Loader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if len(nanValues) == 0 {
		nanValues = DefaultNaNValues
	}
	return &Loader{nanValues: nanValues, logger: logger.With("GotaLoader")}
}

// LoadFile reads the CSV file at path
func (l *Loader) LoadFile(path string) (*dataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.NewNotFoundError("CSV file", path)
		}
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	table, err := l.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.logger.Info("Loaded %s (%d columns, %d rows)", path, len(table.Names()), table.Len())
	return table, nil
}

// Load reads CSV data. Float and Int series become numeric columns, every
// other series type becomes categorical.
func (l *Loader) Load(r io.Reader) (*dataset.Table, error) {
	df := dataframe.ReadCSV(r,
		dataframe.DetectTypes(true),
		dataframe.NaNValues(l.nanValues),
	)
	if df.Err != nil {
		return nil, core.NewInvalidArgumentError("csv", df.Err.Error())
	}
	return FromDataFrame(df)
}

// FromDataFrame converts a gota dataframe into a table
func FromDataFrame(df dataframe.DataFrame) (*dataset.Table, error) {
	table := dataset.NewTable(df.Nrow())
	for _, name := range df.Names() {
		if err := table.AddColumn(fromSeries(strings.TrimSpace(name), df.Col(name))); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func fromSeries(name string, s series.Series) *dataset.Column {
	switch s.Type() {
	case series.Float, series.Int:
		// NA elements come back as NaN
		return dataset.NewNumericColumn(name, s.Float())
	}

	values := s.Records()
	missing := s.IsNaN()
	for i := range values {
		if missing[i] {
			values[i] = ""
		}
	}
	return dataset.NewCategoricalColumn(name, values, missing)
}
