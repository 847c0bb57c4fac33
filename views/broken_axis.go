package views

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"sensor-plotter/models"
)

const (
	breakMarkSize = 5 // points
	subplotGap    = 8 // points between the two bands
)

// brokenAxisChart holds two stacked plots sharing the time axis. Every
// series is added to both; clipping keeps each in its own band.
type brokenAxisChart struct {
	upper, lower           *plot.Plot
	upperLines, lowerLines [][]*plotter.Line
}

func (r *Renderer) buildBrokenAxis(t *models.Table) (*brokenAxisChart, error) {
	ch := &brokenAxisChart{upper: r.newPlot(), lower: r.newPlot()}
	xs := timeAxis(t)

	for _, st := range r.series {
		col, err := t.Column(st.Source)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		up, err := seriesLines(st.Column, xs, col.Values, st.Color, r.lineWidth())
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		lo, err := seriesLines(st.Column, xs, col.Values, st.Color, r.lineWidth())
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		for _, l := range up {
			ch.upper.Add(l)
		}
		for _, l := range lo {
			ch.lower.Add(l)
		}
		ch.upper.Legend.Add(st.Label, up[0])
		ch.upperLines = append(ch.upperLines, up)
		ch.lowerLines = append(ch.lowerLines, lo)
	}

	ba := r.cfg.BrokenAxis
	ch.upper.Y.Min, ch.upper.Y.Max = ba.Upper.Min, ba.Upper.Max
	ch.lower.Y.Min, ch.lower.Y.Max = ba.Lower.Min, ba.Lower.Max
	ch.lower.X.Min, ch.lower.X.Max = ch.upper.X.Min, ch.upper.X.Max

	ch.upper.HideX()
	ch.lower.Title.Text = ""
	ch.lower.Y.Label.Text = r.cfg.YLabel
	return ch, nil
}

func (r *Renderer) drawBrokenAxis(c draw.Canvas, t *models.Table) error {
	ch, err := r.buildBrokenAxis(t)
	if err != nil {
		return err
	}

	upC, loC := splitVertical(c, r.cfg.BrokenAxis.HeightRatio, vg.Points(subplotGap))
	upC, loC = alignDataLeft(ch.upper, upC, ch.lower, loC)

	ch.upper.Draw(upC)
	ch.lower.Draw(loC)

	upDA := ch.upper.DataCanvas(upC)
	loDA := ch.lower.DataCanvas(loC)
	drawBreakMarks(c, upDA, loDA)
	r.drawAnnotation(c, upDA, ch.upper.Y.Tick.Label)
	return nil
}

// splitVertical divides c into an upper and lower canvas whose heights
// follow ratio, separated by gap.
func splitVertical(c draw.Canvas, ratio [2]float64, gap vg.Length) (upper, lower draw.Canvas) {
	h := c.Max.Y - c.Min.Y - gap
	upperH := h * vg.Length(ratio[0]/(ratio[0]+ratio[1]))
	upper = draw.Crop(c, 0, 0, h-upperH+gap, 0)
	lower = draw.Crop(c, 0, 0, 0, -(upperH + gap))
	return upper, lower
}

// alignDataLeft crops whichever canvas has the narrower y axis so both data
// areas start at the same x.
func alignDataLeft(up *plot.Plot, upC draw.Canvas, lo *plot.Plot, loC draw.Canvas) (draw.Canvas, draw.Canvas) {
	d := lo.DataCanvas(loC).Min.X - up.DataCanvas(upC).Min.X
	switch {
	case d > 0:
		upC = draw.Crop(upC, d, 0, 0, 0)
	case d < 0:
		loC = draw.Crop(loC, -d, 0, 0, 0)
	}
	return upC, loC
}

// drawBreakMarks draws the short diagonals at both ends of the seam, in
// figure coordinates.
func drawBreakMarks(c, upDA, loDA draw.Canvas) {
	ls := draw.LineStyle{Color: color.Black, Width: vg.Points(1)}
	d := vg.Points(breakMarkSize)
	for _, pt := range []vg.Point{
		{X: upDA.Min.X, Y: upDA.Min.Y},
		{X: upDA.Max.X, Y: upDA.Min.Y},
		{X: loDA.Min.X, Y: loDA.Max.Y},
		{X: loDA.Max.X, Y: loDA.Max.Y},
	} {
		c.StrokeLine2(ls, pt.X-d, pt.Y-d, pt.X+d, pt.Y+d)
	}
}
