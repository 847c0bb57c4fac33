package views

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrEmptySeries is returned when a plotted series has no defined value.
var ErrEmptySeries = errors.New("series has no defined values")

// segments splits a series into runs of consecutive defined points, so
// undefined values break the line instead of being bridged.
func segments(xs, ys []float64) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for i, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: xs[i], Y: y})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// seriesLines builds one plotter.Line per defined segment.
func seriesLines(name string, xs, ys []float64, clr color.Color, width vg.Length) ([]*plotter.Line, error) {
	segs := segments(xs, ys)
	if len(segs) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptySeries)
	}
	lines := make([]*plotter.Line, 0, len(segs))
	for _, seg := range segs {
		l, err := plotter.NewLine(seg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		l.Color = clr
		l.Width = width
		lines = append(lines, l)
	}
	return lines, nil
}

// rescale maps values from [lo, hi] onto [toLo, toHi]. NaN stays NaN.
func rescale(values []float64, lo, hi, toLo, toHi float64) []float64 {
	out := make([]float64, len(values))
	k := (toHi - toLo) / (hi - lo)
	for i, v := range values {
		out[i] = toLo + (v-lo)*k
	}
	return out
}
