package models

import "math"

// Series is one named measurement column. NaN marks an undefined value.
type Series struct {
	Name   string
	Values []float64
}

// NewSeries wraps values under name. The slice is not copied.
func NewSeries(name string, values []float64) *Series {
	return &Series{Name: name, Values: values}
}

// Len returns the number of rows.
func (s *Series) Len() int {
	return len(s.Values)
}

// DefinedCount returns how many values are present.
func (s *Series) DefinedCount() int {
	n := 0
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// DefinedValues returns the present values in row order.
func (s *Series) DefinedValues() []float64 {
	out := make([]float64, 0, len(s.Values))
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
