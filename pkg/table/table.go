package table

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Table is an ordered-column tabular dataset. Cells are strings as decoded
// from the stats service (numeric literals kept verbatim, nulls as "").
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New creates a Table with the given column order.
func New(columns ...string) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		t.index[c] = i
	}
	return t
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	if t == nil {
		return 0
	}
	return len(t.columns)
}

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool {
	return t.NumRows() == 0
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[name]
	return ok
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// AppendRow adds a row. The cell count must match the column count.
func (t *Table) AppendRow(cells []string) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.columns))
	}
	t.rows = append(t.rows, append([]string(nil), cells...))
	return nil
}

// Row returns the cells of row i.
func (t *Table) Row(i int) []string {
	return append([]string(nil), t.rows[i]...)
}

// Cell returns the value at (row, column name); "" if the column is absent.
func (t *Table) Cell(row int, col string) string {
	i, ok := t.index[col]
	if !ok {
		return ""
	}
	return t.rows[row][i]
}

// Column returns all values of the named column in row order.
func (t *Table) Column(name string) []string {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	out := make([]string, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out
}

// AddConstColumn appends a provenance column with the same value in every
// row. Provenance columns are appended, never overwritten: a name collision
// with an existing column is an error.
func (t *Table) AddConstColumn(name, value string) error {
	return t.AddDerivedColumn(name, func(int) string { return value })
}

// AddDerivedColumn appends a column computed per row from the existing row.
func (t *Table) AddDerivedColumn(name string, fn func(row int) string) error {
	if t.HasColumn(name) {
		return fmt.Errorf("column %q already exists", name)
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], fn(i))
	}
	return nil
}

// Select returns a new table containing the named columns in the given
// order, preserving row order.
func (t *Table) Select(columns []string) (*Table, error) {
	indices := make([]int, len(columns))
	for i, c := range columns {
		idx, ok := t.index[c]
		if !ok {
			return nil, fmt.Errorf("column %q not present", c)
		}
		indices[i] = idx
	}
	out := New(columns...)
	for _, row := range t.rows {
		cells := make([]string, len(indices))
		for i, idx := range indices {
			cells[i] = row[idx]
		}
		out.rows = append(out.rows, cells)
	}
	return out, nil
}

// Concat concatenates tables row-wise. The output column set is the union of
// input columns in first-seen order; cells absent from a source are "".
// Nil and empty tables are skipped. Returns an empty table if nothing
// contributes.
func Concat(tables ...*Table) *Table {
	out := New()
	for _, src := range tables {
		if src == nil || src.IsEmpty() {
			continue
		}
		for _, c := range src.columns {
			if !out.HasColumn(c) {
				out.index[c] = len(out.columns)
				out.columns = append(out.columns, c)
				for i := range out.rows {
					out.rows[i] = append(out.rows[i], "")
				}
			}
		}
		for _, row := range src.rows {
			cells := make([]string, len(out.columns))
			for i, c := range src.columns {
				cells[out.index[c]] = row[i]
			}
			out.rows = append(out.rows, cells)
		}
	}
	return out
}

// SortKey names a column to sort by and its direction.
type SortKey struct {
	Column     string
	Descending bool
}

// SortBy stably sorts rows by the given keys. Keys naming absent columns are
// ignored. Cells that both parse as numbers compare numerically, otherwise
// lexically.
func (t *Table) SortBy(keys ...SortKey) {
	var active []struct {
		idx  int
		desc bool
	}
	for _, k := range keys {
		if i, ok := t.index[k.Column]; ok {
			active = append(active, struct {
				idx  int
				desc bool
			}{i, k.Descending})
		}
	}
	if len(active) == 0 {
		return
	}

	sort.SliceStable(t.rows, func(a, b int) bool {
		for _, k := range active {
			cmp := compareCells(t.rows[a][k.idx], t.rows[b][k.idx])
			if cmp == 0 {
				continue
			}
			if k.desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

func compareCells(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}
