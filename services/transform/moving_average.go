package transform

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"sensor-plotter/models"
)

// SmoothSuffix names the derived column written by the Smoother.
const SmoothSuffix = "_smooth"

// RollingMean returns the trailing simple moving average of values:
// out[i] is the mean of values[i-window+1 : i+1]. It is NaN for
// i < window-1 and for any window containing a NaN. Each output is
// computed from its own window only.
func RollingMean(values []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, fmt.Errorf("rolling mean: window must be >= 1, got %d", window)
	}
	out := make([]float64, len(values))
	for i := range out {
		if i < window-1 {
			out[i] = nan
			continue
		}
		w := values[i-window+1 : i+1]
		if floats.HasNaN(w) {
			out[i] = nan
			continue
		}
		out[i] = stat.Mean(w, nil)
	}
	return out, nil
}

// Smoother adds a "<column>_smooth" series for every selected column.
type Smoother struct {
	window  int
	columns []string
}

func NewSmoother(window int, columns []string) *Smoother {
	return &Smoother{window: window, columns: columns}
}

// Window returns the configured window size.
func (s *Smoother) Window() int {
	return s.window
}

// Apply derives the smoothed columns. Source columns are left untouched.
func (s *Smoother) Apply(t *models.Table) error {
	for _, name := range s.columns {
		src, err := t.Column(name)
		if err != nil {
			return fmt.Errorf("smooth: %w", err)
		}
		vals, err := RollingMean(src.Values, s.window)
		if err != nil {
			return err
		}
		if err := t.SetColumn(models.NewSeries(name+SmoothSuffix, vals)); err != nil {
			return err
		}
	}
	return nil
}
