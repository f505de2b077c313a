// sim/frame.go
package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Row holds one record of named values. Values are typically float64 but may
// be strings (e.g. a province tag) or nil; non-numeric values are skipped by
// downstream metric collection.
type Row map[string]any

// Frame is a tabular result buffer with a stable column schema, one row per
// simulated year (components that track sub-entities may append several rows
// per year). It is the Go stand-in for the per-component results table.
type Frame struct {
	columns []string
	rows    []Row
}

// NewFrame creates an empty frame with the given column order.
func NewFrame(columns ...string) *Frame {
	return &Frame{columns: columns}
}

func (f *Frame) Columns() []string { return f.columns }

func (f *Frame) Len() int { return len(f.rows) }

func (f *Frame) Empty() bool { return len(f.rows) == 0 }

// Append adds one row. Keys outside the column schema are retained in the
// row but not emitted by WriteCSV.
func (f *Frame) Append(r Row) {
	f.rows = append(f.rows, r)
}

// Row returns the i-th row, or nil if out of range.
func (f *Frame) Row(i int) Row {
	if i < 0 || i >= len(f.rows) {
		return nil
	}
	return f.rows[i]
}

// Last returns the final row, or nil for an empty frame.
func (f *Frame) Last() Row {
	if len(f.rows) == 0 {
		return nil
	}
	return f.rows[len(f.rows)-1]
}

// Float returns the value at (row i, column col) coerced to float64.
// The second return is false for missing or non-numeric values.
func (f *Frame) Float(i int, col string) (float64, bool) {
	r := f.Row(i)
	if r == nil {
		return 0, false
	}
	return asFloat(r[col])
}

// WriteCSV emits a header row followed by one record per row, columns in
// schema order.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(f.columns))
	for _, row := range f.rows {
		for i, col := range f.columns {
			record[i] = formatCSVValue(row[col])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the frame to a file, truncating any existing content.
func (f *Frame) SaveCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()
	if err := f.WriteCSV(file); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// asFloat coerces the numeric types produced by YAML decoding and component
// arithmetic into float64.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func formatCSVValue(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case int:
		return strconv.Itoa(n)
	default:
		return fmt.Sprint(n)
	}
}
