package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"telcochurn/domain/core"
)

// ColumnKind distinguishes numeric from categorical columns
type ColumnKind string

const (
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
)

// Column holds one named feature. Numeric columns mark missing values as NaN;
// categorical columns carry an explicit missing mask.
type Column struct {
	Name    string
	Kind    ColumnKind
	Numbers []float64
	Strings []string
	Missing []bool
}

// NewNumericColumn creates a numeric column; NaN entries are treated as missing
func NewNumericColumn(name string, values []float64) *Column {
	return &Column{Name: name, Kind: KindNumeric, Numbers: values}
}

// NewCategoricalColumn creates a categorical column. A nil mask means no value is missing.
func NewCategoricalColumn(name string, values []string, missing []bool) *Column {
	if missing == nil {
		missing = make([]bool, len(values))
	}
	return &Column{Name: name, Kind: KindCategorical, Strings: values, Missing: missing}
}

// Len returns the number of rows in the column
func (c *Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Numbers)
	}
	return len(c.Strings)
}

// IsNumeric reports whether the column holds numbers
func (c *Column) IsNumeric() bool {
	return c.Kind == KindNumeric
}

// IsMissing reports whether row i has no value
func (c *Column) IsMissing(i int) bool {
	if c.Kind == KindNumeric {
		return math.IsNaN(c.Numbers[i])
	}
	return c.Missing[i]
}

// MissingCount returns the number of missing rows
func (c *Column) MissingCount() int {
	count := 0
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			count++
		}
	}
	return count
}

// Present returns the non-missing numeric values in row order
func (c *Column) Present() []float64 {
	values := make([]float64, 0, len(c.Numbers))
	for _, v := range c.Numbers {
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	return values
}

// Format renders row i as text; missing values render as an empty string
func (c *Column) Format(i int) string {
	if c.IsMissing(i) {
		return ""
	}
	if c.Kind == KindNumeric {
		return strconv.FormatFloat(c.Numbers[i], 'f', -1, 64)
	}
	return c.Strings[i]
}

// Clone returns a deep copy of the column
func (c *Column) Clone() *Column {
	out := &Column{Name: c.Name, Kind: c.Kind}
	if c.Numbers != nil {
		out.Numbers = append([]float64(nil), c.Numbers...)
	}
	if c.Strings != nil {
		out.Strings = append([]string(nil), c.Strings...)
	}
	if c.Missing != nil {
		out.Missing = append([]bool(nil), c.Missing...)
	}
	return out
}

// keep retains only the rows whose mask entry is true
func (c *Column) keep(mask []bool) {
	if c.Kind == KindNumeric {
		kept := c.Numbers[:0]
		for i, v := range c.Numbers {
			if mask[i] {
				kept = append(kept, v)
			}
		}
		c.Numbers = kept
		return
	}
	keptStrings := c.Strings[:0]
	keptMissing := c.Missing[:0]
	for i := range c.Strings {
		if mask[i] {
			keptStrings = append(keptStrings, c.Strings[i])
			keptMissing = append(keptMissing, c.Missing[i])
		}
	}
	c.Strings = keptStrings
	c.Missing = keptMissing
}

// Table is a rectangular feature table with ordered columns and stable row identifiers
type Table struct {
	columns []*Column
	index   map[string]int
	rowIDs  []int
}

// NewTable creates an empty table with rows identified 0..rows-1
func NewTable(rows int) *Table {
	ids := make([]int, rows)
	for i := range ids {
		ids[i] = i
	}
	return NewTableWithRowIDs(ids)
}

// NewTableWithRowIDs creates an empty table using the given row identifiers
func NewTableWithRowIDs(rowIDs []int) *Table {
	return &Table{
		index:  make(map[string]int),
		rowIDs: append([]int(nil), rowIDs...),
	}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rowIDs)
}

// RowIDs returns a copy of the row identifiers in row order
func (t *Table) RowIDs() []int {
	return append([]int(nil), t.rowIDs...)
}

// AddColumn appends a column; its length must match the table and its name must be new
func (t *Table) AddColumn(col *Column) error {
	if col.Len() != t.Len() {
		return fmt.Errorf("%w: column %q has %d rows, table has %d", core.ErrLengthMismatch, col.Name, col.Len(), t.Len())
	}
	if _, exists := t.index[col.Name]; exists {
		return core.NewInvalidArgumentError("column", fmt.Sprintf("duplicate column %q", col.Name))
	}
	t.index[col.Name] = len(t.columns)
	t.columns = append(t.columns, col)
	return nil
}

// AddNumeric appends a numeric column
func (t *Table) AddNumeric(name string, values []float64) error {
	return t.AddColumn(NewNumericColumn(name, values))
}

// AddCategorical appends a categorical column
func (t *Table) AddCategorical(name string, values []string, missing []bool) error {
	return t.AddColumn(NewCategoricalColumn(name, values, missing))
}

// ReplaceColumn swaps the column with the same name for col, keeping its position
func (t *Table) ReplaceColumn(col *Column) error {
	idx, ok := t.index[col.Name]
	if !ok {
		return core.NewMissingColumnError(col.Name)
	}
	if col.Len() != t.Len() {
		return fmt.Errorf("%w: column %q has %d rows, table has %d", core.ErrLengthMismatch, col.Name, col.Len(), t.Len())
	}
	t.columns[idx] = col
	return nil
}

// Column looks up a column by name
func (t *Table) Column(name string) (*Column, error) {
	idx, ok := t.index[name]
	if !ok {
		return nil, core.NewMissingColumnError(name)
	}
	return t.columns[idx], nil
}

// NumericColumn looks up a column and requires it to be numeric
func (t *Table) NumericColumn(name string) (*Column, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if !col.IsNumeric() {
		return nil, core.NewNotNumericError(name)
	}
	return col, nil
}

// HasColumn reports whether the table contains name
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Columns returns the columns in table order
func (t *Table) Columns() []*Column {
	return append([]*Column(nil), t.columns...)
}

// Names returns the column names in table order
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// NumericNames returns the numeric column names in table order
func (t *Table) NumericNames() []string {
	var names []string
	for _, col := range t.columns {
		if col.IsNumeric() {
			names = append(names, col.Name)
		}
	}
	return names
}

// DropColumn removes a column and returns it
func (t *Table) DropColumn(name string) (*Column, error) {
	idx, ok := t.index[name]
	if !ok {
		return nil, core.NewMissingColumnError(name)
	}
	col := t.columns[idx]
	t.columns = append(t.columns[:idx], t.columns[idx+1:]...)
	t.reindex()
	return col, nil
}

// SplitTarget removes the named column and returns it as a row-aligned series
func (t *Table) SplitTarget(name string) (*Series, error) {
	col, err := t.DropColumn(name)
	if err != nil {
		return nil, err
	}
	return &Series{Column: col, RowIDs: t.RowIDs()}, nil
}

// Filter keeps the rows whose mask entry is true, in place
func (t *Table) Filter(mask []bool) error {
	if len(mask) != t.Len() {
		return fmt.Errorf("%w: mask has %d entries, table has %d rows", core.ErrLengthMismatch, len(mask), t.Len())
	}
	for _, col := range t.columns {
		col.keep(mask)
	}
	kept := t.rowIDs[:0]
	for i, id := range t.rowIDs {
		if mask[i] {
			kept = append(kept, id)
		}
	}
	t.rowIDs = kept
	return nil
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	out := NewTableWithRowIDs(t.rowIDs)
	for _, col := range t.columns {
		out.index[col.Name] = len(out.columns)
		out.columns = append(out.columns, col.Clone())
	}
	return out
}

// Record returns row i as column name to formatted cell value
func (t *Table) Record(i int) map[string]string {
	record := make(map[string]string, len(t.columns))
	for _, col := range t.columns {
		record[col.Name] = col.Format(i)
	}
	return record
}

// Fingerprint hashes the column names, kinds and every formatted cell, so two
// tables with the same content share a fingerprint
func (t *Table) Fingerprint() core.Hash {
	var b strings.Builder
	for _, col := range t.columns {
		fmt.Fprintf(&b, "%s\x1f%s\x1e", col.Name, col.Kind)
	}
	for i := 0; i < t.Len(); i++ {
		for _, col := range t.columns {
			if col.IsMissing(i) {
				b.WriteString("\x00")
			} else {
				b.WriteString(col.Format(i))
			}
			b.WriteByte(0x1f)
		}
		b.WriteByte(0x1e)
	}
	return core.NewHash([]byte(b.String()))
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.columns))
	for i, col := range t.columns {
		t.index[col.Name] = i
	}
}
