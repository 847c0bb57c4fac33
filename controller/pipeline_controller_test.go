package controller

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensor-plotter/utils"
)

const pipelineYAML = `
name: gas
dataset:
  csv_file: DATALOG1.csv
cleaning:
  interpolate: [H2_ppm]
smoothing:
  enabled: true
  window: 30
render:
  mode: broken_axis
  width: 4
  height: 3
  dpi: 40
  broken_axis:
    upper: {min: 50, max: 100}
    lower: {min: 0, max: 1}
series:
  - {column: H2_ppm, color: blue, warning: 50, danger: 90}
  - {column: CO_ppm, color: orange}
`

// writeFixture creates a 100-row gas log where H2_ppm[i] = i except for a
// 3-row gap at rows 40..42, plus the config next to it.
func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	var sb strings.Builder
	sb.WriteString("Timestamp,H2_ppm,CO_ppm\n")
	start := time.Date(2024, 7, 11, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 100; i++ {
		h2 := fmt.Sprint(i)
		if i >= 40 && i <= 42 {
			h2 = ""
		}
		fmt.Fprintf(&sb, "%s,%s,0.5\n", start.Add(time.Duration(i)*time.Minute).Format("2006-01-02 15:04:05"), h2)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "DATALOG1.csv"), []byte(sb.String()), 0644))

	path := filepath.Join(dir, "gas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(pipelineYAML), 0644))
	return path
}

func loadFixture(t *testing.T) *utils.PlotConfig {
	t.Helper()
	cfg, err := utils.LoadPlotConfig(writeFixture(t))
	require.NoError(t, err)
	return cfg
}

func TestPipelineEndToEnd(t *testing.T) {
	cfg := loadFixture(t)
	outDir := t.TempDir()

	res, err := NewPipelineController(cfg, outDir).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 100, res.Table.Len())
	assert.Equal(t, 3, res.Filled)
	assert.Equal(t, filepath.Join(outDir, "gas_smoothed_notitle.png"), res.OutputPath)
	_, err = os.Stat(res.OutputPath)
	require.NoError(t, err)

	h2, err := res.Table.Column("H2_ppm")
	require.NoError(t, err)
	for i := 40; i <= 42; i++ {
		assert.Equal(t, float64(i), h2.Values[i], "gap row %d", i)
	}

	smooth, err := res.Table.Column("H2_ppm_smooth")
	require.NoError(t, err)
	for i := 0; i < 29; i++ {
		assert.True(t, math.IsNaN(smooth.Values[i]), "row %d", i)
	}
	for i := 29; i < 100; i++ {
		// mean of i-29..i
		assert.InDelta(t, float64(i)-14.5, smooth.Values[i], 1e-9, "row %d", i)
	}
}

func TestPipelineWritesNextToCSV(t *testing.T) {
	cfg := loadFixture(t)
	pc := NewPipelineController(cfg, "")
	assert.Equal(t, filepath.Join(filepath.Dir(cfg.CSVPath()), "gas_smoothed_notitle.png"), pc.OutputPath())
}

func TestPipelineMissingCSV(t *testing.T) {
	cfg := loadFixture(t)
	require.NoError(t, os.Remove(cfg.CSVPath()))

	_, err := NewPipelineController(cfg, t.TempDir()).Run(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPipelineCancelled(t *testing.T) {
	cfg := loadFixture(t)
	outDir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPipelineController(cfg, outDir).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	entries, _ := os.ReadDir(outDir)
	assert.Empty(t, entries)
}

func TestReportSummaries(t *testing.T) {
	cfg := loadFixture(t)

	sums, err := NewReportController(cfg).Summaries(context.Background())
	require.NoError(t, err)
	require.Len(t, sums, 2)

	h2 := sums[0]
	assert.Equal(t, "H2_ppm", h2.Column)
	assert.Equal(t, 100, h2.Defined)
	assert.Equal(t, 0.0, h2.Min)
	assert.Equal(t, 99.0, h2.Max)
	assert.Equal(t, 50, h2.AboveWarning)
	assert.Equal(t, 10, h2.AboveDanger)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, cfg.Name, sums))
	assert.Contains(t, buf.String(), "===== gas =====")
	assert.Contains(t, buf.String(), "50 (50)")

	path := filepath.Join(t.TempDir(), "summary.csv")
	require.NoError(t, WriteCSV(path, sums))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "H2_ppm,100,100,0.0000,99.0000,49.5000,50,90,50,10"), lines[1])
}

func TestExportController(t *testing.T) {
	cfg := loadFixture(t)
	outDir := t.TempDir()

	path, err := NewExportController(cfg, outDir).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "gas_smoothed.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 101)
	assert.Equal(t, "Timestamp,H2_ppm,CO_ppm,H2_ppm_smooth,CO_ppm_smooth", lines[0])
}

func TestPipelineSmoothsSubsetOfSeries(t *testing.T) {
	cfg := loadFixture(t)
	cfg.Smoothing.Columns = []string{"H2_ppm"}

	res, err := NewPipelineController(cfg, t.TempDir()).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"H2_ppm"}, res.Smoothed)
	assert.True(t, res.Table.Has("H2_ppm_smooth"))
	assert.False(t, res.Table.Has("CO_ppm_smooth"))
	_, err = os.Stat(res.OutputPath)
	assert.NoError(t, err)
}

func TestExportNamesFollowVariant(t *testing.T) {
	smoothed := loadFixture(t)
	raw := loadFixture(t)
	raw.Smoothing.Enabled = false
	outDir := t.TempDir()

	a, err := NewExportController(smoothed, outDir).Run(context.Background())
	require.NoError(t, err)
	b, err := NewExportController(raw, outDir).Run(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, filepath.Join(outDir, "gas.csv"), b)
	_, err = os.Stat(a)
	assert.NoError(t, err, "smoothed export is kept")
}
