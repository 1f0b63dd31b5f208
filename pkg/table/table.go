// Package table holds rectangular, column-typed datasets loaded from
// delimited files. Analyzers read tables; they never modify them.
package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the detected type of a column.
type Kind int

const (
	// Numeric columns parse as float64 in every non-missing cell.
	Numeric Kind = iota
	// Text columns hold at least one non-numeric cell.
	Text
)

func (k Kind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "text"
}

// Column is a single named column. Raw holds the original cell text for
// every row. For Numeric columns Floats holds the parsed values with NaN
// in place of missing cells; for Text columns Floats is nil.
type Column struct {
	Name   string
	Kind   Kind
	Raw    []string
	Floats []float64
}

// Table is an ordered set of named columns with positionally aligned rows.
type Table struct {
	cols   []*Column
	byName map[string]*Column
	rows   int
}

// missing reports whether a cell value marks an absent entry.
// Markers follow the usual CSV conventions for NA values.
func missing(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "NA", "N/A", "NaN", "nan", "null", "NULL":
		return true
	}
	return false
}

// FromRecords builds a Table from a header row and data rows. Column types
// are inferred: a column is Numeric when every non-missing cell parses as a
// float. Rows must all have len(header) fields.
func FromRecords(header []string, rows [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("table: empty header")
	}
	t := &Table{byName: make(map[string]*Column, len(header)), rows: len(rows)}
	for j, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("table: column %d has an empty name", j)
		}
		if _, dup := t.byName[name]; dup {
			return nil, fmt.Errorf("table: duplicate column %q", name)
		}
		col := &Column{Name: name, Raw: make([]string, len(rows))}
		floats := make([]float64, len(rows))
		numeric := true
		for i, row := range rows {
			if len(row) != len(header) {
				return nil, fmt.Errorf("table: row %d has %d fields, want %d", i, len(row), len(header))
			}
			cell := row[j]
			col.Raw[i] = cell
			if missing(cell) {
				floats[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				numeric = false
				continue
			}
			floats[i] = v
		}
		if numeric {
			col.Kind = Numeric
			col.Floats = floats
		} else {
			col.Kind = Text
		}
		t.cols = append(t.cols, col)
		t.byName[name] = col
	}
	return t, nil
}

// FromFloats builds an all-numeric Table. data[j] is the column named
// names[j]; columns must share a length.
func FromFloats(names []string, data [][]float64) (*Table, error) {
	if len(names) != len(data) {
		return nil, fmt.Errorf("table: %d names for %d columns", len(names), len(data))
	}
	rows := 0
	if len(data) > 0 {
		rows = len(data[0])
	}
	t := &Table{byName: make(map[string]*Column, len(names)), rows: rows}
	for j, name := range names {
		if len(data[j]) != rows {
			return nil, fmt.Errorf("table: column %q has %d rows, want %d", name, len(data[j]), rows)
		}
		if _, dup := t.byName[name]; dup {
			return nil, fmt.Errorf("table: duplicate column %q", name)
		}
		vals := make([]float64, rows)
		copy(vals, data[j])
		raw := make([]string, rows)
		for i, v := range vals {
			raw[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		col := &Column{Name: name, Kind: Numeric, Raw: raw, Floats: vals}
		t.cols = append(t.cols, col)
		t.byName[name] = col
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.rows
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	if t == nil {
		return 0
	}
	return len(t.cols)
}

// Names returns the column names in table order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name
	}
	return out
}

// Column returns the named column, or false if absent.
func (t *Table) Column(name string) (*Column, bool) {
	if t == nil {
		return nil, false
	}
	c, ok := t.byName[name]
	return c, ok
}

// NumericColumns returns the names of all Numeric columns in table order.
func (t *Table) NumericColumns() []string {
	if t == nil {
		return nil
	}
	var out []string
	for _, c := range t.cols {
		if c.Kind == Numeric {
			out = append(out, c.Name)
		}
	}
	return out
}

// IsNumeric reports whether the named column exists and is Numeric.
func (t *Table) IsNumeric(name string) bool {
	c, ok := t.Column(name)
	return ok && c.Kind == Numeric
}

// Floats returns the parsed values of a Numeric column, or false when the
// column is absent or not numeric. The returned slice is shared; callers
// must not modify it.
func (t *Table) Floats(name string) ([]float64, bool) {
	c, ok := t.Column(name)
	if !ok || c.Kind != Numeric {
		return nil, false
	}
	return c.Floats, true
}
