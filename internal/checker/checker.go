// Package checker reports per-feature cardinality and missing-value counts.
package checker

import (
	"fmt"
	"sort"

	"telcochurn/domain/core"
	"telcochurn/domain/dataset"
)

// Kind selects which columns CheckUnique inspects
type Kind string

const (
	KindNumber Kind = "number"
	KindObject Kind = "object"
	KindBoth   Kind = "both"
)

// UniqueRecord is the cardinality of one feature
type UniqueRecord struct {
	Feature   string  `json:"feats"`
	NumUnique int     `json:"num_unique"`
	PctUnique float64 `json:"pct_unique"`
}

// MissingRecord is the missing-value count of one feature
type MissingRecord struct {
	Feature         string  `json:"feats"`
	TotalMissing    int     `json:"tot_missing"`
	TotalMissingPct float64 `json:"tot_missing_pct"`
}

// ParseKind validates a column kind name
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindNumber, KindObject, KindBoth:
		return k, nil
	}
	return "", core.NewInvalidArgumentError("kind", fmt.Sprintf("must be %q, %q or %q, got %q", KindNumber, KindObject, KindBoth, s))
}

// CheckUnique counts distinct present values of every column of the given kind
func CheckUnique(table *dataset.Table, kind Kind) ([]UniqueRecord, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}

	var records []UniqueRecord
	for _, col := range table.Columns() {
		if !selected(col, kind) {
			continue
		}
		n := distinct(col)
		records = append(records, UniqueRecord{
			Feature:   col.Name,
			NumUnique: n,
			PctUnique: percentOf(n, table.Len()),
		})
	}
	return records, nil
}

// CheckMissing lists the features with at least one missing value, most missing first
func CheckMissing(table *dataset.Table) []MissingRecord {
	var records []MissingRecord
	for _, col := range table.Columns() {
		n := col.MissingCount()
		if n == 0 {
			continue
		}
		records = append(records, MissingRecord{
			Feature:         col.Name,
			TotalMissing:    n,
			TotalMissingPct: percentOf(n, table.Len()),
		})
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TotalMissing > records[j].TotalMissing
	})
	return records
}

// CheckMissingSpecial counts categorical cells holding one of tokens, such as
// a lone space standing in for a blank. Features without any are omitted.
func CheckMissingSpecial(table *dataset.Table, tokens ...string) []MissingRecord {
	special := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		special[token] = struct{}{}
	}

	var records []MissingRecord
	for _, col := range table.Columns() {
		if col.IsNumeric() {
			continue
		}
		n := 0
		for i, v := range col.Strings {
			if col.Missing[i] {
				continue
			}
			if _, ok := special[v]; ok {
				n++
			}
		}
		if n == 0 {
			continue
		}
		records = append(records, MissingRecord{
			Feature:         col.Name,
			TotalMissing:    n,
			TotalMissingPct: percentOf(n, table.Len()),
		})
	}
	return records
}

func selected(col *dataset.Column, kind Kind) bool {
	switch kind {
	case KindNumber:
		return col.IsNumeric()
	case KindObject:
		return !col.IsNumeric()
	}
	return true
}

func distinct(col *dataset.Column) int {
	seen := make(map[string]struct{})
	for i := 0; i < col.Len(); i++ {
		if col.IsMissing(i) {
			continue
		}
		seen[col.Format(i)] = struct{}{}
	}
	return len(seen)
}

func percentOf(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
