package utils

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Render modes.
const (
	ModeMultiAxis  = "multi_axis"
	ModeBrokenAxis = "broken_axis"
)

// Legend corners.
const (
	LegendTopLeft     = "top_left"
	LegendTopRight    = "top_right"
	LegendBottomLeft  = "bottom_left"
	LegendBottomRight = "bottom_right"
)

// ─── Section configs ────────────────────────────────────────────────────

type DatasetConfig struct {
	CSVFile         string `yaml:"csv_file"`
	TimestampColumn string `yaml:"timestamp_column"`
	TimestampLayout string `yaml:"timestamp_layout"` // Go layout; empty = auto
	Delimiter       string `yaml:"delimiter"`
}

type CleaningConfig struct {
	Interpolate []string `yaml:"interpolate"`
}

type SmoothingConfig struct {
	Enabled bool     `yaml:"enabled"`
	Window  int      `yaml:"window"`
	Columns []string `yaml:"columns"` // empty = every plotted series
}

// Range is a closed y-axis interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type BrokenAxisConfig struct {
	Upper       Range      `yaml:"upper"`
	Lower       Range      `yaml:"lower"`
	HeightRatio [2]float64 `yaml:"height_ratio"` // upper, lower
}

type RenderConfig struct {
	Mode         string           `yaml:"mode"`
	OutputStem   string           `yaml:"output_stem"`
	Title        string           `yaml:"title"`
	ShowTitle    bool             `yaml:"show_title"`
	YLabel       string           `yaml:"y_label"`
	Width        float64          `yaml:"width"`  // inches
	Height       float64          `yaml:"height"` // inches
	DPI          int              `yaml:"dpi"`
	LineWidth    float64          `yaml:"line_width"` // points
	FontSize     float64          `yaml:"font_size"`  // points
	TickInterval time.Duration    `yaml:"tick_interval"`
	TimeFormat   string           `yaml:"time_format"`
	Legend       string           `yaml:"legend"`
	AxisOffset   float64          `yaml:"axis_offset"` // points between extra y-axes
	BrokenAxis   BrokenAxisConfig `yaml:"broken_axis"`
}

// SeriesConfig binds a column to its display properties.
type SeriesConfig struct {
	Column  string   `yaml:"column"`
	Label   string   `yaml:"label"`
	Color   string   `yaml:"color"`
	Min     *float64 `yaml:"min"`
	Max     *float64 `yaml:"max"`
	Warning *float64 `yaml:"warning"`
	Danger  *float64 `yaml:"danger"`
}

// AnnotationConfig renders the mean of a column as a boxed note.
type AnnotationConfig struct {
	Column string  `yaml:"column"`
	Label  string  `yaml:"label"`
	Max    float64 `yaml:"max"`
}

// PlotConfig is the top-level structure of one dataset variant file.
type PlotConfig struct {
	Name       string            `yaml:"name"`
	Dataset    DatasetConfig     `yaml:"dataset"`
	Cleaning   CleaningConfig    `yaml:"cleaning"`
	Smoothing  SmoothingConfig   `yaml:"smoothing"`
	Render     RenderConfig      `yaml:"render"`
	Series     []SeriesConfig    `yaml:"series"`
	Annotation *AnnotationConfig `yaml:"annotation"`

	// dir is the directory of the config file; relative CSV paths resolve against it.
	dir string
}

// ─── Loaders ────────────────────────────────────────────────────────────

// LoadPlotConfig reads, defaults and validates a variant file.
func LoadPlotConfig(path string) (*PlotConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plot config: %w", err)
	}
	cfg, err := ParsePlotConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	cfg.dir = abs
	return cfg, nil
}

// ParsePlotConfig decodes YAML, applies defaults and validates.
func ParsePlotConfig(data []byte) (*PlotConfig, error) {
	var cfg PlotConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse plot config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills unset fields with the values the logger scripts used.
func (c *PlotConfig) ApplyDefaults() {
	if c.Dataset.TimestampColumn == "" {
		c.Dataset.TimestampColumn = "Timestamp"
	}
	if c.Dataset.Delimiter == "" {
		c.Dataset.Delimiter = ","
	}
	if c.Smoothing.Window == 0 {
		c.Smoothing.Window = 30
	}
	r := &c.Render
	if r.Mode == "" {
		r.Mode = ModeMultiAxis
	}
	if r.OutputStem == "" {
		r.OutputStem = c.Name
		if r.OutputStem == "" {
			r.OutputStem = "chart"
		}
	}
	if r.Width == 0 {
		r.Width = 14
	}
	if r.Height == 0 {
		r.Height = 8
	}
	if r.DPI == 0 {
		r.DPI = 300
	}
	if r.LineWidth == 0 {
		r.LineWidth = 1.2
	}
	if r.FontSize == 0 {
		r.FontSize = 10
	}
	if r.TickInterval == 0 {
		r.TickInterval = time.Hour
	}
	if r.TimeFormat == "" {
		r.TimeFormat = "15:04"
	}
	if r.Legend == "" {
		r.Legend = LegendTopLeft
	}
	if r.AxisOffset == 0 {
		r.AxisOffset = 60
	}
	if r.BrokenAxis.HeightRatio == [2]float64{} {
		r.BrokenAxis.HeightRatio = [2]float64{1, 1.3}
	}
	for i := range c.Series {
		if c.Series[i].Label == "" {
			c.Series[i].Label = c.Series[i].Column
		}
		if c.Series[i].Color == "" {
			c.Series[i].Color = "black"
		}
	}
	if c.Annotation != nil && c.Annotation.Label == "" {
		c.Annotation.Label = c.Annotation.Column
	}
}

// Validate rejects configurations no stage could run with.
func (c *PlotConfig) Validate() error {
	var errs []error
	if c.Dataset.CSVFile == "" {
		errs = append(errs, errors.New("dataset.csv_file is required"))
	}
	if len([]rune(c.Dataset.Delimiter)) != 1 {
		errs = append(errs, fmt.Errorf("dataset.delimiter must be one character, got %q", c.Dataset.Delimiter))
	}
	if c.Smoothing.Window < 1 {
		errs = append(errs, fmt.Errorf("smoothing.window must be >= 1, got %d", c.Smoothing.Window))
	}
	if len(c.Series) == 0 {
		errs = append(errs, errors.New("at least one series is required"))
	}

	r := c.Render
	switch r.Mode {
	case ModeMultiAxis:
		for _, s := range c.Series {
			if s.Min == nil || s.Max == nil {
				errs = append(errs, fmt.Errorf("series %s: min and max are required in %s mode", s.Column, ModeMultiAxis))
			}
		}
	case ModeBrokenAxis:
		if err := r.BrokenAxis.Upper.validate("broken_axis.upper"); err != nil {
			errs = append(errs, err)
		}
		if err := r.BrokenAxis.Lower.validate("broken_axis.lower"); err != nil {
			errs = append(errs, err)
		}
		if r.BrokenAxis.Lower.Max > r.BrokenAxis.Upper.Min {
			errs = append(errs, errors.New("broken_axis.lower must lie below broken_axis.upper"))
		}
		if r.BrokenAxis.HeightRatio[0] <= 0 || r.BrokenAxis.HeightRatio[1] <= 0 {
			errs = append(errs, errors.New("broken_axis.height_ratio must be positive"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown render.mode %q", r.Mode))
	}

	switch r.Legend {
	case LegendTopLeft, LegendTopRight, LegendBottomLeft, LegendBottomRight:
	default:
		errs = append(errs, fmt.Errorf("unknown render.legend %q", r.Legend))
	}
	if r.Width <= 0 || r.Height <= 0 || r.DPI <= 0 {
		errs = append(errs, errors.New("render width, height and dpi must be positive"))
	}
	if r.TickInterval < 0 {
		errs = append(errs, errors.New("render.tick_interval must be positive"))
	}

	for _, s := range c.Series {
		if s.Column == "" {
			errs = append(errs, errors.New("series column is required"))
		}
		if _, err := ParseColor(s.Color); err != nil {
			errs = append(errs, fmt.Errorf("series %s: %w", s.Column, err))
		}
		if s.Min != nil && s.Max != nil && *s.Min >= *s.Max {
			errs = append(errs, fmt.Errorf("series %s: min %g must be below max %g", s.Column, *s.Min, *s.Max))
		}
	}
	return errors.Join(errs...)
}

func (r Range) validate(name string) error {
	if r.Min >= r.Max {
		return fmt.Errorf("%s: min %g must be below max %g", name, r.Min, r.Max)
	}
	return nil
}

// CSVPath resolves dataset.csv_file against the config file directory.
func (c *PlotConfig) CSVPath() string {
	if filepath.IsAbs(c.Dataset.CSVFile) || c.dir == "" {
		return c.Dataset.CSVFile
	}
	return filepath.Join(c.dir, c.Dataset.CSVFile)
}

// DelimiterRune returns the dataset field separator.
func (c *PlotConfig) DelimiterRune() rune {
	return []rune(c.Dataset.Delimiter)[0]
}

// SmoothColumns returns the columns the smoother applies to.
func (c *PlotConfig) SmoothColumns() []string {
	if len(c.Smoothing.Columns) > 0 {
		return c.Smoothing.Columns
	}
	cols := make([]string, len(c.Series))
	for i, s := range c.Series {
		cols[i] = s.Column
	}
	return cols
}

// ─── Colours ────────────────────────────────────────────────────────────

// ParseColor accepts an SVG colour name ("blue", "purple") or #rrggbb.
func ParseColor(s string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		v, err := strconv.ParseUint(name[1:], 16, 32)
		if err == nil {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
		}
	}
	return nil, fmt.Errorf("unknown colour %q", s)
}
