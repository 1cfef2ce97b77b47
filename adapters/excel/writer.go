package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"

	"telcochurn/domain/dataset"

	"github.com/xuri/excelize/v2"
)

// WriteTable writes the table and optional target column to path. The format
// follows the extension, like NewDataReader.
func WriteTable(path string, table *dataset.Table, target *dataset.Series) error {
	rows := tableRows(table, target)

	if FileType(path) == "csv" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create CSV file: %w", err)
		}
		if err := WriteCSV(f, rows); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	return writeExcel(path, rows)
}

// WriteCSV writes raw rows as CSV
func WriteCSV(w io.Writer, rows RawRows) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}

func writeExcel(path string, rows RawRows) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := DefaultReaderConfig().Sheet
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	log.Printf("[DataWriter] Wrote %d rows to %s", len(rows)-1, path)
	return nil
}

// tableRows renders the header and every row as text, target last
func tableRows(table *dataset.Table, target *dataset.Series) RawRows {
	columns := table.Columns()
	if target != nil {
		columns = append(columns, target.Column)
	}

	header := make([]string, len(columns))
	for j, col := range columns {
		header[j] = col.Name
	}

	rows := make(RawRows, 0, table.Len()+1)
	rows = append(rows, header)
	for i := 0; i < table.Len(); i++ {
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = col.Format(i)
		}
		rows = append(rows, row)
	}
	return rows
}
