package views

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"sensor-plotter/models"
)

const (
	axisTickLength = 4 // points
	axisLabelPad   = 3 // points
)

// multiAxisChart is one plot whose first series owns the left axis. Every
// other series is rescaled into the first series' range and gets its own
// axis drawn to the right of the data area.
type multiAxisChart struct {
	plot  *plot.Plot
	base  SeriesStyle
	extra []SeriesStyle
	lines [][]*plotter.Line
}

func (r *Renderer) buildMultiAxis(t *models.Table) (*multiAxisChart, error) {
	if len(r.series) == 0 {
		return nil, fmt.Errorf("multi-axis chart needs at least one series")
	}
	for _, st := range r.series {
		if st.Min == nil || st.Max == nil {
			return nil, fmt.Errorf("series %s: axis limits are required", st.Column)
		}
	}

	ch := &multiAxisChart{plot: r.newPlot(), base: r.series[0], extra: r.series[1:]}
	p := ch.plot
	lo0, hi0 := *ch.base.Min, *ch.base.Max
	xs := timeAxis(t)

	for i, st := range r.series {
		col, err := t.Column(st.Source)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		ys := col.Values
		if i > 0 {
			ys = rescale(ys, *st.Min, *st.Max, lo0, hi0)
		}
		lines, err := seriesLines(st.Column, xs, ys, st.Color, r.lineWidth())
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		for _, l := range lines {
			p.Add(l)
		}
		p.Legend.Add(st.Label, lines[0])
		ch.lines = append(ch.lines, lines)
	}

	p.Y.Min, p.Y.Max = lo0, hi0
	p.Y.Label.Text = ch.base.Label
	p.Y.Label.TextStyle.Color = ch.base.Color
	p.Y.Tick.Label.Color = ch.base.Color
	p.Y.Color = ch.base.Color
	return ch, nil
}

func (r *Renderer) drawMultiAxis(c draw.Canvas, t *models.Table) error {
	ch, err := r.buildMultiAxis(t)
	if err != nil {
		return err
	}
	p := ch.plot

	offset := vg.Points(r.cfg.AxisOffset)
	var right vg.Length
	for i, x := range rightAxisXs(0, offset, len(ch.extra)) {
		if w := x + axisWidth(p.Y.Tick.Label, p.Y.Label.TextStyle, ch.extra[i]); w > right {
			right = w
		}
	}

	pc := draw.Crop(c, 0, -right, 0, 0)
	p.Draw(pc)
	da := p.DataCanvas(pc)
	for i, x := range rightAxisXs(da.Max.X, offset, len(ch.extra)) {
		drawRightAxis(c, da, p.Y.Tick.Label, p.Y.Label.TextStyle, ch.extra[i], x)
	}
	r.drawAnnotation(c, da, p.Y.Tick.Label)
	return nil
}

// rightAxisXs places n right-hand axes at edge, edge+offset, edge+2*offset...
func rightAxisXs(edge, offset vg.Length, n int) []vg.Length {
	xs := make([]vg.Length, n)
	for i := range xs {
		xs[i] = edge + vg.Length(i)*offset
	}
	return xs
}

// axisWidth is the horizontal room one right-hand axis needs.
func axisWidth(tickSty, labelSty text.Style, st SeriesStyle) vg.Length {
	var widest vg.Length
	for _, tk := range (plot.DefaultTicks{}).Ticks(*st.Min, *st.Max) {
		if tk.IsMinor() {
			continue
		}
		if w := tickSty.Width(tk.Label); w > widest {
			widest = w
		}
	}
	return vg.Points(axisTickLength+2*axisLabelPad) + widest + labelSty.Height(st.Label)
}

// drawRightAxis draws a vertical axis at x for st, in st's colour.
func drawRightAxis(c, da draw.Canvas, tickSty, labelSty text.Style, st SeriesStyle, x vg.Length) {
	lo, hi := *st.Min, *st.Max
	ls := draw.LineStyle{Color: st.Color, Width: vg.Points(0.5)}
	c.StrokeLine2(ls, x, da.Min.Y, x, da.Max.Y)

	tickSty.Color = st.Color
	tickSty.Rotation = 0
	tickSty.XAlign = text.XLeft
	tickSty.YAlign = text.YCenter

	tickLen := vg.Points(axisTickLength)
	labelX := x + tickLen + vg.Points(axisLabelPad)
	var widest vg.Length
	for _, tk := range (plot.DefaultTicks{}).Ticks(lo, hi) {
		if tk.Value < lo || tk.Value > hi {
			continue
		}
		y := da.Y((tk.Value - lo) / (hi - lo))
		if tk.IsMinor() {
			c.StrokeLine2(ls, x, y, x+tickLen/2, y)
			continue
		}
		c.StrokeLine2(ls, x, y, x+tickLen, y)
		c.FillText(tickSty, vg.Point{X: labelX, Y: y}, tk.Label)
		if w := tickSty.Width(tk.Label); w > widest {
			widest = w
		}
	}

	labelSty.Color = st.Color
	labelSty.Rotation = math.Pi / 2
	labelSty.XAlign = text.XCenter
	labelSty.YAlign = text.YTop
	c.FillText(labelSty, vg.Point{X: labelX + widest + vg.Points(axisLabelPad), Y: (da.Min.Y + da.Max.Y) / 2}, st.Label)
}
