package views

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"sensor-plotter/models"
	"sensor-plotter/utils"
)

// SeriesStyle is a configured series with its colour resolved. Source is
// the table column drawn for it: Column itself or a derived column.
type SeriesStyle struct {
	Column string
	Source string
	Label  string
	Color  color.Color
	Min    *float64
	Max    *float64
}

// Annotation is the boxed "mean / max" note drawn on the data area.
type Annotation struct {
	Label string
	Max   float64
	Mean  float64
}

// Text renders the annotation line.
func (a Annotation) Text() string {
	return fmt.Sprintf("Average %s: %.2f / Max %s: %g", a.Label, a.Mean, a.Label, a.Max)
}

// Renderer draws the configured chart for a processed table.
type Renderer struct {
	cfg    utils.RenderConfig
	series []SeriesStyle

	// Annotation is drawn when set; the controller fills Mean.
	Annotation *Annotation
}

// NewRenderer resolves colours and copies the render settings.
func NewRenderer(cfg *utils.PlotConfig) (*Renderer, error) {
	r := &Renderer{cfg: cfg.Render}
	for _, s := range cfg.Series {
		clr, err := utils.ParseColor(s.Color)
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", s.Column, err)
		}
		r.series = append(r.series, SeriesStyle{
			Column: s.Column,
			Source: s.Column,
			Label:  s.Label,
			Color:  clr,
			Min:    s.Min,
			Max:    s.Max,
		})
	}
	return r, nil
}

// Series returns the resolved series styles.
func (r *Renderer) Series() []SeriesStyle {
	return r.series
}

// PlotDerived switches the listed columns to their "<column><suffix>"
// counterpart. Series not listed keep plotting their source column.
func (r *Renderer) PlotDerived(suffix string, columns []string) {
	for i := range r.series {
		if slices.Contains(columns, r.series[i].Column) {
			r.series[i].Source = r.series[i].Column + suffix
		}
	}
}

// Render draws the chart for t and writes it to w as PNG.
func (r *Renderer) Render(t *models.Table, w io.Writer) error {
	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(r.cfg.Width)*vg.Inch, vg.Length(r.cfg.Height)*vg.Inch),
		vgimg.UseDPI(r.cfg.DPI),
	)
	dc := draw.New(img)

	var err error
	switch r.cfg.Mode {
	case utils.ModeBrokenAxis:
		err = r.drawBrokenAxis(dc, t)
	case utils.ModeMultiAxis:
		err = r.drawMultiAxis(dc, t)
	default:
		err = fmt.Errorf("unknown render mode %q", r.cfg.Mode)
	}
	if err != nil {
		return err
	}

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// RenderFile renders into memory first so a failed render never leaves a
// partial file behind.
func (r *Renderer) RenderFile(t *models.Table, path string) error {
	var buf bytes.Buffer
	if err := r.Render(t, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}

// newPlot returns a plot with the shared time axis and font settings.
func (r *Renderer) newPlot() *plot.Plot {
	p := plot.New()
	fs := vg.Points(r.cfg.FontSize)

	p.X.Tick.Marker = TimeTicks{Interval: r.cfg.TickInterval, Format: r.cfg.TimeFormat}
	p.X.Tick.Label.Font.Size = fs
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	p.X.Label.TextStyle.Font.Size = fs

	p.Y.Tick.Label.Font.Size = fs
	p.Y.Label.TextStyle.Font.Size = fs

	p.Legend.TextStyle.Font.Size = fs
	p.Legend.Padding = vg.Points(4)
	switch r.cfg.Legend {
	case utils.LegendTopRight:
		p.Legend.Top, p.Legend.Left = true, false
	case utils.LegendBottomLeft:
		p.Legend.Top, p.Legend.Left = false, true
	case utils.LegendBottomRight:
		p.Legend.Top, p.Legend.Left = false, false
	default:
		p.Legend.Top, p.Legend.Left = true, true
	}

	if r.cfg.ShowTitle {
		p.Title.Text = r.cfg.Title
		p.Title.TextStyle.Font.Size = fs
	}
	return p
}

func (r *Renderer) lineWidth() vg.Length {
	return vg.Points(r.cfg.LineWidth)
}

// timeAxis converts the table index to chart x values.
func timeAxis(t *models.Table) []float64 {
	xs := make([]float64, t.Len())
	for i, ts := range t.Timestamps {
		xs[i] = unixSeconds(ts)
	}
	return xs
}

// drawAnnotation writes the boxed note near the top right of the data area.
func (r *Renderer) drawAnnotation(c, da draw.Canvas, sty text.Style) {
	if r.Annotation == nil {
		return
	}
	sty.Color = color.RGBA{R: 0xff, G: 0xa5, A: 0xff}
	sty.XAlign = text.XRight
	sty.YAlign = text.YTop
	sty.Rotation = 0

	txt := r.Annotation.Text()
	pt := vg.Point{X: da.X(0.9), Y: da.Y(0.9)}
	pad := vg.Points(3)
	w, h := sty.Width(txt), sty.Height(txt)
	box := []vg.Point{
		{X: pt.X - w - pad, Y: pt.Y + pad},
		{X: pt.X + pad, Y: pt.Y + pad},
		{X: pt.X + pad, Y: pt.Y - h - pad},
		{X: pt.X - w - pad, Y: pt.Y - h - pad},
		{X: pt.X - w - pad, Y: pt.Y + pad},
	}
	c.FillPolygon(color.White, box)
	c.StrokeLines(draw.LineStyle{Color: sty.Color, Width: vg.Points(0.8)}, box)
	c.FillText(sty, pt, txt)
}
