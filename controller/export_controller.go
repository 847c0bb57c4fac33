package controller

import (
	"context"
	"fmt"
	"path/filepath"

	"sensor-plotter/utils"
	"sensor-plotter/views"
)

// ExportController writes the processed table (source plus derived
// columns) back to CSV.
type ExportController struct {
	pipeline *PipelineController
	cfg      *utils.PlotConfig
	outDir   string
}

func NewExportController(cfg *utils.PlotConfig, outDir string) *ExportController {
	return &ExportController{pipeline: NewPipelineController(cfg, outDir), cfg: cfg, outDir: outDir}
}

// OutputPath is <output_stem>[_smoothed].csv in outDir or next to the
// input, so variants sharing one log do not overwrite each other.
func (ec *ExportController) OutputPath() string {
	dir := ec.outDir
	if dir == "" {
		dir = filepath.Dir(ec.cfg.CSVPath())
	}
	return filepath.Join(dir, utils.ExportName(ec.cfg.Render.OutputStem, ec.cfg.Smoothing.Enabled))
}

// Run processes the variant and exports it, returning the path written.
func (ec *ExportController) Run(ctx context.Context) (string, error) {
	res, err := ec.pipeline.Process(ctx)
	if err != nil {
		return "", err
	}
	path := ec.OutputPath()
	rows, err := views.ExportTable(res.Table, path)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	utils.L().Info("exported %d rows to %s", rows, path)
	return path, nil
}
