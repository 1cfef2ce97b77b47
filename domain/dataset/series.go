package dataset

import (
	"fmt"

	"telcochurn/domain/core"
)

// Series is a single named column detached from a table, such as a prediction target.
// RowIDs tie each value to the table row it belongs to.
type Series struct {
	*Column
	RowIDs []int
}

// NewSeries creates a series for the given column and row identifiers
func NewSeries(col *Column, rowIDs []int) (*Series, error) {
	if col.Len() != len(rowIDs) {
		return nil, fmt.Errorf("%w: series %q has %d values and %d row ids", core.ErrLengthMismatch, col.Name, col.Len(), len(rowIDs))
	}
	return &Series{Column: col, RowIDs: append([]int(nil), rowIDs...)}, nil
}

// AlignsWith checks that the series covers exactly the rows of t, in the same order
func (s *Series) AlignsWith(t *Table) error {
	if s.Len() != t.Len() {
		return fmt.Errorf("%w: target has %d rows, table has %d", core.ErrLengthMismatch, s.Len(), t.Len())
	}
	for i, id := range t.rowIDs {
		if s.RowIDs[i] != id {
			return core.NewInvalidArgumentError("target", fmt.Sprintf("row id %d at position %d does not match table row id %d", s.RowIDs[i], i, id))
		}
	}
	return nil
}

// Retain drops every value whose row identifier is not in rowIDs
func (s *Series) Retain(rowIDs []int) {
	wanted := make(map[int]struct{}, len(rowIDs))
	for _, id := range rowIDs {
		wanted[id] = struct{}{}
	}
	mask := make([]bool, len(s.RowIDs))
	kept := s.RowIDs[:0]
	for i, id := range s.RowIDs {
		if _, ok := wanted[id]; ok {
			mask[i] = true
			kept = append(kept, id)
		}
	}
	s.Column.keep(mask)
	s.RowIDs = kept
}

// Clone returns a deep copy of the series
func (s *Series) Clone() *Series {
	return &Series{Column: s.Column.Clone(), RowIDs: append([]int(nil), s.RowIDs...)}
}
