package models

import (
	"fmt"
	"strings"
)

// Table is the in-memory listing dataset: named columns and rows of cells.
// Columns are loosely typed; nothing guarantees a given column exists.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// NewTable builds a table from a header and rows. Header names are trimmed,
// blank names become "Unnamed: <i>" and repeated names get ".1", ".2"
// suffixes. Rows shorter than the header are padded with Null; longer rows
// are truncated.
func NewTable(header []string, rows [][]Value) *Table {
	cols := normaliseHeader(header)
	t := &Table{
		columns: cols,
		index:   make(map[string]int, len(cols)),
		rows:    make([][]Value, 0, len(rows)),
	}
	for i, c := range cols {
		t.index[c] = i
	}
	for _, r := range rows {
		t.rows = append(t.rows, fitRow(r, len(cols)))
	}
	return t
}

func normaliseHeader(header []string) []string {
	cols := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		}
		seen[name] = 0
		cols[i] = name
	}
	return cols
}

func fitRow(r []Value, width int) []Value {
	out := make([]Value, width)
	for i := range out {
		if i < len(r) {
			out[i] = r[i]
		} else {
			out[i] = Null()
		}
	}
	return out
}

// Shape returns (rows, columns).
func (t *Table) Shape() (int, int) { return len(t.rows), len(t.columns) }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Index returns the position of a column, or -1.
func (t *Table) Index(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// HasColumns reports whether every named column exists.
func (t *Table) HasColumns(names ...string) bool {
	for _, n := range names {
		if !t.HasColumn(n) {
			return false
		}
	}
	return true
}

// Row returns row i. The slice must not be modified.
func (t *Table) Row(i int) []Value { return t.rows[i] }

// Column returns a copy of the named column's cells, or nil when absent.
func (t *Table) Column(name string) []Value {
	idx := t.Index(name)
	if idx < 0 {
		return nil
	}
	out := make([]Value, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[idx]
	}
	return out
}

// Filter returns a new table with the rows for which keep returns true.
func (t *Table) Filter(keep func(row []Value) bool) *Table {
	out := &Table{columns: t.columns, index: t.index, rows: make([][]Value, 0, len(t.rows))}
	for _, r := range t.rows {
		if keep(r) {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// WithColumn returns a new table where the named column holds values.
// values must have one entry per row.
func (t *Table) WithColumn(name string, values []Value) (*Table, error) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("table: no column %q", name)
	}
	if len(values) != len(t.rows) {
		return nil, fmt.Errorf("table: column %q needs %d values, got %d", name, len(t.rows), len(values))
	}
	out := &Table{columns: t.columns, index: t.index, rows: make([][]Value, len(t.rows))}
	for i, r := range t.rows {
		row := make([]Value, len(r))
		copy(row, r)
		row[idx] = values[i]
		out.rows[i] = row
	}
	return out, nil
}

// Head returns a table with at most the first n rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	if n < 0 {
		n = 0
	}
	return &Table{columns: t.columns, index: t.index, rows: t.rows[:n]}
}

// NumericColumns lists the columns whose non-null cells are all numbers,
// with at least one non-null cell.
func (t *Table) NumericColumns() []string {
	var out []string
	for i, c := range t.columns {
		numeric, seen := true, false
		for _, r := range t.rows {
			v := r[i]
			if v.IsNull() {
				continue
			}
			seen = true
			if !v.IsNumber() {
				numeric = false
				break
			}
		}
		if numeric && seen {
			out = append(out, c)
		}
	}
	return out
}

// RowKey identifies a full row for duplicate detection.
func RowKey(row []Value) string {
	var b strings.Builder
	for i, v := range row {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		b.WriteString(v.Key())
	}
	return b.String()
}

// Records renders the table as a string grid with the header first.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.rows)+1)
	out = append(out, t.Columns())
	for _, r := range t.rows {
		rec := make([]string, len(r))
		for i, v := range r {
			rec[i] = v.String()
		}
		out = append(out, rec)
	}
	return out
}
