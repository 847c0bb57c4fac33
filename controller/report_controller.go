package controller

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"sensor-plotter/models"
	"sensor-plotter/services/transform"
	"sensor-plotter/utils"
	"sensor-plotter/views"
)

// ReportController summarises a processed variant: value ranges per series
// and how often the firmware alarm levels were reached.
type ReportController struct {
	cfg      *utils.PlotConfig
	pipeline *PipelineController
}

func NewReportController(cfg *utils.PlotConfig) *ReportController {
	return &ReportController{cfg: cfg, pipeline: NewPipelineController(cfg, "")}
}

// Summaries loads and processes the variant, then summarises each series.
// Alarm levels are checked against the source column, not the smoothed one.
func (rc *ReportController) Summaries(ctx context.Context) ([]*models.SeriesSummary, error) {
	res, err := rc.pipeline.Process(ctx)
	if err != nil {
		return nil, err
	}

	if v := views.ParseVariant(rc.cfg.Name); v != views.VariantUnknown {
		if missing := views.MissingColumns(v, res.Table); len(missing) > 0 {
			utils.L().Warn("%s log is missing canonical columns %v", v, missing)
		}
	}

	out := make([]*models.SeriesSummary, 0, len(rc.cfg.Series))
	for _, s := range rc.cfg.Series {
		sum, err := transform.Summarize(res.Table, s.Column, transform.Thresholds{
			Warning: s.Warning,
			Danger:  s.Danger,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, nil
}

// WriteText prints the summaries as an aligned table.
func WriteText(w io.Writer, name string, sums []*models.SeriesSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "===== %s =====\n", name)
	fmt.Fprintln(tw, "column\trows\tdefined\tmin\tmax\tmean\t>=warning\t>=danger")
	for _, s := range sums {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.3f\t%.3f\t%.3f\t%s\t%s\n",
			s.Column, s.Rows, s.Defined, s.Min, s.Max, s.Mean,
			levelCount(s.Warning, s.AboveWarning), levelCount(s.Danger, s.AboveDanger))
	}
	return tw.Flush()
}

func levelCount(level *float64, n int) string {
	if level == nil {
		return "-"
	}
	return fmt.Sprintf("%d (%g)", n, *level)
}

// WriteCSV stores the summaries through the buffered CSV writer.
func WriteCSV(path string, sums []*models.SeriesSummary) error {
	w, err := views.NewCSVWriter(path, 0, true, models.SeriesSummary{}.CSVHeader())
	if err != nil {
		return err
	}
	for _, s := range sums {
		if err := w.Write(s); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}
