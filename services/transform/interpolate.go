package transform

import (
	"fmt"
	"math"

	"sensor-plotter/models"
)

// InterpolateLinear fills interior NaN runs along row order:
//
//	v[i] = v[p] + (v[n]-v[p]) * (i-p) / (n-p)
//
// where p and n are the nearest defined rows before and after i. Leading and
// trailing runs stay NaN. The input is not modified.
func InterpolateLinear(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)

	prev := -1
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			vp, vn := values[prev], v
			span := float64(i - prev)
			for j := prev + 1; j < i; j++ {
				out[j] = vp + (vn-vp)*float64(j-prev)/span
			}
		}
		prev = i
	}
	return out
}

// Cleaner interpolates designated columns of a table.
type Cleaner struct {
	columns []string
}

func NewCleaner(columns []string) *Cleaner {
	return &Cleaner{columns: columns}
}

// Apply replaces each designated column with its interpolated copy and
// returns how many values were filled.
func (c *Cleaner) Apply(t *models.Table) (int, error) {
	filled := 0
	for _, name := range c.columns {
		s, err := t.Column(name)
		if err != nil {
			return filled, fmt.Errorf("interpolate: %w", err)
		}
		before := s.DefinedCount()
		out := models.NewSeries(name, InterpolateLinear(s.Values))
		if err := t.SetColumn(out); err != nil {
			return filled, err
		}
		filled += out.DefinedCount() - before
	}
	return filled, nil
}
