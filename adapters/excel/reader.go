package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"telcochurn/domain/core"
	"telcochurn/domain/dataset"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files into feature tables
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	config   ReaderConfig
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	return NewDataReaderWithConfig(filePath, DefaultReaderConfig())
}

// NewDataReaderWithConfig creates a data reader with custom column inference
func NewDataReaderWithConfig(filePath string, config ReaderConfig) *DataReader {
	return &DataReader{filePath: filePath, fileType: FileType(filePath), config: config}
}

// FileType returns "csv" for .csv paths and "xlsx" otherwise
func FileType(path string) string {
	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		return "csv"
	}
	return "xlsx"
}

// ReadTable reads the file into a table
func (r *DataReader) ReadTable() (*dataset.Table, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, core.NewNotFoundError(strings.ToUpper(r.fileType)+" file", r.filePath)
	}

	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", r.fileType, err)
	}
	defer f.Close()

	return r.ReadTableFrom(f)
}

// ReadTableFrom reads an already opened file of the reader's type, such as an upload
func (r *DataReader) ReadTableFrom(src io.Reader) (*dataset.Table, error) {
	var (
		rows RawRows
		err  error
	)
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows(src)
	case "xlsx":
		rows, err = r.readExcelRows(src)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}
	return r.processRows(rows)
}

// readExcelRows reads every row of the configured sheet
func (r *DataReader) readExcelRows(src io.Reader) (RawRows, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.config.Sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.config.Sheet, err)
	}
	log.Printf("[DataReader] %s read in %.2fms (%d rows)", r.config.Sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// readCSVRows reads CSV data
func (r *DataReader) readCSVRows(src io.Reader) (RawRows, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// processRows converts raw string rows into a table, inferring column kinds
func (r *DataReader) processRows(rows RawRows) (*dataset.Table, error) {
	if len(rows) < 2 {
		return nil, core.NewInvalidArgumentError("file", "must have at least a header row and one data row")
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}
	body := rows[1:]

	table := dataset.NewTable(len(body))
	for j, header := range headers {
		cells := make([]string, len(body))
		for i, row := range body {
			// excelize drops trailing empty cells
			if j < len(row) {
				cells[i] = row[j]
			}
		}
		if err := table.AddColumn(r.buildColumn(header, cells)); err != nil {
			return nil, err
		}
	}

	log.Printf("[DataReader] %s file processed (%d columns, %d rows, %d numeric)",
		strings.ToUpper(r.fileType), len(headers), table.Len(), len(table.NumericNames()))

	return table, nil
}

func (r *DataReader) buildColumn(name string, cells []string) *dataset.Column {
	missing := make([]bool, len(cells))
	var profile columnProfile
	for i, cell := range cells {
		if r.isMissingToken(cell) {
			missing[i] = true
			continue
		}
		profile.present++
		if _, ok := parseNumber(cell); ok {
			profile.numeric++
		}
	}

	if profile.present > 0 && profile.numericRatio() >= r.config.NumericThreshold {
		values := make([]float64, len(cells))
		for i, cell := range cells {
			values[i] = math.NaN()
			if missing[i] {
				continue
			}
			if f, ok := parseNumber(cell); ok {
				values[i] = f
			}
		}
		return dataset.NewNumericColumn(name, values)
	}
	return dataset.NewCategoricalColumn(name, cells, missing)
}

func (r *DataReader) isMissingToken(cell string) bool {
	for _, token := range r.config.MissingTokens {
		if cell == token {
			return true
		}
	}
	return false
}

func parseNumber(cell string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
