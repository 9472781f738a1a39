package store

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Header is the ordered set of column names read from the first record.
type Header struct {
	names []string
	index map[string]int
}

func newHeader(names []string) (*Header, error) {
	h := &Header{
		names: slices.Clone(names),
		index: make(map[string]int, len(names)),
	}
	if len(h.names) > 0 {
		h.names[0] = strings.TrimPrefix(h.names[0], "\ufeff")
	}
	for i, name := range h.names {
		if _, dup := h.index[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		h.index[name] = i
	}
	return h, nil
}

// Names returns the column names in header order.
func (h *Header) Names() []string {
	return slices.Clone(h.names)
}

// Len returns the number of columns.
func (h *Header) Len() int {
	return len(h.names)
}

// Lookup returns the position of a column.
func (h *Header) Lookup(column string) (int, bool) {
	i, ok := h.index[column]
	return i, ok
}

// Row is one job listing. Rows are immutable; every row of a dataset has
// exactly the dataset's columns.
type Row struct {
	header *Header
	values []string
}

// Value returns the cell for a column.
func (r Row) Value(column string) (string, bool) {
	if r.header == nil {
		return "", false
	}
	i, ok := r.header.Lookup(column)
	if !ok {
		return "", false
	}
	return r.values[i], true
}

// Columns returns the row's column names in header order.
func (r Row) Columns() []string {
	if r.header == nil {
		return nil
	}
	return r.header.Names()
}

// Values returns the cells in header order.
func (r Row) Values() []string {
	return slices.Clone(r.values)
}

// Map returns a copy of the row as column name to value.
func (r Row) Map() map[string]string {
	m := make(map[string]string, len(r.values))
	if r.header == nil {
		return m
	}
	for i, name := range r.header.names {
		m[name] = r.values[i]
	}
	return m
}

func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

// text is the lowercased concatenation of every cell in header order.
func (r Row) text() string {
	return strings.ToLower(strings.Join(r.values, ""))
}

// Dataset is the ordered, read-only collection of rows from one source.
type Dataset struct {
	header *Header
	rows   []Row
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// At returns the i-th row in file order.
func (d *Dataset) At(i int) Row {
	return d.rows[i]
}

// Rows returns the rows in file order. The slice is a copy.
func (d *Dataset) Rows() []Row {
	return slices.Clone(d.rows)
}

// Columns returns the header in file order.
func (d *Dataset) Columns() []string {
	return d.header.Names()
}

func (d *Dataset) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.rows)
}
