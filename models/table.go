package models

import (
	"fmt"
	"time"
)

// TimestampLayout is used when readings are written back out.
const TimestampLayout = "2006-01-02 15:04:05"

// Table holds readings that share one timestamp index. Columns keep the
// order in which they were added.
type Table struct {
	TimestampColumn string
	Timestamps      []time.Time

	order   []string
	columns map[string]*Series
}

// NewTable creates an empty table over the given timestamps.
func NewTable(timestampColumn string, timestamps []time.Time) *Table {
	return &Table{
		TimestampColumn: timestampColumn,
		Timestamps:      timestamps,
		columns:         make(map[string]*Series),
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Timestamps)
}

// Names returns the measurement column names in insertion order.
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Has reports whether a measurement column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Column returns the named series or ErrColumnNotFound.
func (t *Table) Column(name string) (*Series, error) {
	s, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return s, nil
}

// SetColumn adds or replaces a column. Its length must match the index.
func (t *Table) SetColumn(s *Series) error {
	if s.Len() != t.Len() {
		return fmt.Errorf("column %q has %d rows, table has %d", s.Name, s.Len(), t.Len())
	}
	if _, ok := t.columns[s.Name]; !ok {
		t.order = append(t.order, s.Name)
	}
	t.columns[s.Name] = s
	return nil
}

// Reading returns row i as a standalone record.
func (t *Table) Reading(i int) *Reading {
	r := &Reading{
		TimestampColumn: t.TimestampColumn,
		Timestamp:       t.Timestamps[i],
		Names:           t.order,
		Values:          make([]float64, len(t.order)),
	}
	for j, name := range t.order {
		r.Values[j] = t.columns[name].Values[i]
	}
	return r
}

// Reading is one row: a timestamp plus named measurements.
type Reading struct {
	TimestampColumn string
	Timestamp       time.Time
	Names           []string
	Values          []float64
}

func (r *Reading) CSVHeader() []string {
	h := make([]string, 0, len(r.Names)+1)
	h = append(h, r.TimestampColumn)
	return append(h, r.Names...)
}

// CSVRow writes undefined values as empty fields.
func (r *Reading) CSVRow() []string {
	row := make([]string, 0, len(r.Values)+1)
	row = append(row, r.Timestamp.Format(TimestampLayout))
	for _, v := range r.Values {
		row = append(row, ftoa(v, -1))
	}
	return row
}
