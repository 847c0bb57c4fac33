package controller

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sensor-plotter/models"
	"sensor-plotter/services/ingest"
	"sensor-plotter/services/transform"
	"sensor-plotter/utils"
	"sensor-plotter/views"
)

// PipelineController runs one dataset variant through
//
//	Loader  ──►  Cleaner  ──►  Smoother (optional)  ──►  Renderer
//
// in a single synchronous pass. Any stage error aborts the run.
type PipelineController struct {
	cfg    *utils.PlotConfig
	outDir string
}

// Result is what a run produced.
type Result struct {
	Table      *models.Table
	Smoothed   []string // columns that gained a SmoothSuffix counterpart
	OutputPath string
	Filled     int // values filled by interpolation
}

// NewPipelineController binds a variant config. outDir overrides the
// default of writing next to the input CSV.
func NewPipelineController(cfg *utils.PlotConfig, outDir string) *PipelineController {
	return &PipelineController{cfg: cfg, outDir: outDir}
}

// OutputPath returns where the chart will be written.
func (pc *PipelineController) OutputPath() string {
	dir := pc.outDir
	if dir == "" {
		dir = filepath.Dir(pc.cfg.CSVPath())
	}
	r := pc.cfg.Render
	return filepath.Join(dir, utils.OutputName(r.OutputStem, pc.cfg.Smoothing.Enabled, r.ShowTitle))
}

// Process runs the load, clean and smooth stages only.
func (pc *PipelineController) Process(ctx context.Context) (*Result, error) {
	start := time.Now()

	// 1. Load
	opts := ingest.DefaultCSVOptions()
	if ds := pc.cfg.Dataset; ds.TimestampColumn != "" {
		opts.TimestampColumn = ds.TimestampColumn
	}
	if ds := pc.cfg.Dataset; ds.Delimiter != "" {
		opts.Delimiter = pc.cfg.DelimiterRune()
	}
	opts.TimestampLayout = pc.cfg.Dataset.TimestampLayout
	table, err := ingest.NewCSVReader(pc.cfg.CSVPath(), opts).Load()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	utils.L().Info("loaded %d rows from %s", table.Len(), pc.cfg.CSVPath())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Table: table}

	// 2. Clean
	if len(pc.cfg.Cleaning.Interpolate) > 0 {
		filled, err := transform.NewCleaner(pc.cfg.Cleaning.Interpolate).Apply(table)
		if err != nil {
			return nil, fmt.Errorf("clean: %w", err)
		}
		res.Filled = filled
		utils.L().Info("interpolated %v  (filled=%d)", pc.cfg.Cleaning.Interpolate, filled)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 3. Smooth
	if pc.cfg.Smoothing.Enabled {
		sm := transform.NewSmoother(pc.cfg.Smoothing.Window, pc.cfg.SmoothColumns())
		if err := sm.Apply(table); err != nil {
			return nil, fmt.Errorf("smooth: %w", err)
		}
		res.Smoothed = pc.cfg.SmoothColumns()
		utils.L().Info("rolling mean applied  (window=%d, columns=%v)", sm.Window(), res.Smoothed)
	}

	utils.L().Debug("processing took %s", time.Since(start))
	return res, ctx.Err()
}

// Run executes every stage and writes the chart.
func (pc *PipelineController) Run(ctx context.Context) (*Result, error) {
	res, err := pc.Process(ctx)
	if err != nil {
		return nil, err
	}

	// 4. Render
	renderer, err := views.NewRenderer(pc.cfg)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if a := pc.cfg.Annotation; a != nil {
		col, err := res.Table.Column(a.Column)
		if err != nil {
			return nil, fmt.Errorf("annotation: %w", err)
		}
		renderer.Annotation = &views.Annotation{
			Label: a.Label,
			Max:   a.Max,
			Mean:  transform.MeanDefined(col),
		}
	}
	renderer.PlotDerived(transform.SmoothSuffix, res.Smoothed)
	for _, st := range renderer.Series() {
		utils.L().Debug("series %s  <- column %s", st.Label, st.Source)
	}

	res.OutputPath = pc.OutputPath()
	if dir := filepath.Dir(res.OutputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := renderer.RenderFile(res.Table, res.OutputPath); err != nil {
		return nil, fmt.Errorf("render %s: %w", pc.cfg.Render.Mode, err)
	}
	utils.L().Info("chart written  path=%s  mode=%s", res.OutputPath, pc.cfg.Render.Mode)
	return res, nil
}
