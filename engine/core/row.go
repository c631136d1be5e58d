package core

import (
	"strings"
)

// Row is one tabular record from a sheet: an ordered tuple of cell values
// plus an optional header-label index for header-addressed lookup. Cells are
// kept as raw any values; coercion happens at the normalization boundary.
type Row struct {
	Cells  []any
	Header map[string]int
}

// NewRow builds a row over the given cells with no header index.
func NewRow(cells ...any) Row {
	return Row{Cells: cells}
}

// HeaderIndex builds a case-insensitive header-label index from a label list.
// Blank labels are skipped; the first occurrence of a duplicate label wins.
func HeaderIndex(labels []string) map[string]int {
	idx := make(map[string]int, len(labels))
	for i, label := range labels {
		key := strings.ToLower(strings.TrimSpace(label))
		if key == "" {
			continue
		}
		if _, ok := idx[key]; !ok {
			idx[key] = i
		}
	}
	return idx
}

// Cell returns the cell at position i, or nil when out of range.
func (r Row) Cell(i int) any {
	if i < 0 || i >= len(r.Cells) {
		return nil
	}
	return r.Cells[i]
}

// CellByHeader returns the cell under the given header label, falling back
// to the positional index when the row carries no header or the label is
// unknown. This mirrors how the sheet variants address columns.
func (r Row) CellByHeader(label string, fallback int) any {
	if r.Header != nil {
		if i, ok := r.Header[strings.ToLower(strings.TrimSpace(label))]; ok {
			return r.Cell(i)
		}
	}
	return r.Cell(fallback)
}

// String returns the cell as a trimmed string. Non-string scalars are
// rendered through CleanCell; nil becomes the empty string.
func (r Row) String(i int) string {
	return CleanCell(r.Cell(i))
}

// StringByHeader is String with header-addressed lookup.
func (r Row) StringByHeader(label string, fallback int) string {
	return CleanCell(r.CellByHeader(label, fallback))
}
