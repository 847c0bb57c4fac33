package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensor-plotter/models"
)

func ptr(v float64) *float64 { return &v }

func TestSummarize(t *testing.T) {
	tbl := newTable(t, map[string][]float64{
		"H2S_ppm": {2, nan, 12, 55, 6},
	}, 5)

	sum, err := Summarize(tbl, "H2S_ppm", Thresholds{Warning: ptr(10), Danger: ptr(50)})
	require.NoError(t, err)
	assert.Equal(t, 5, sum.Rows)
	assert.Equal(t, 4, sum.Defined)
	assert.Equal(t, 2.0, sum.Min)
	assert.Equal(t, 55.0, sum.Max)
	assert.InDelta(t, 18.75, sum.Mean, 1e-12)
	assert.Equal(t, 2, sum.AboveWarning)
	assert.Equal(t, 1, sum.AboveDanger)
}

func TestSummarizeWithoutThresholds(t *testing.T) {
	tbl := newTable(t, map[string][]float64{"TVOC_ppb": {100, 200}}, 2)
	sum, err := Summarize(tbl, "TVOC_ppb", Thresholds{})
	require.NoError(t, err)
	assert.Zero(t, sum.AboveWarning)
	assert.Zero(t, sum.AboveDanger)
	assert.Nil(t, sum.Warning)
}

func TestSummarizeAllUndefined(t *testing.T) {
	tbl := newTable(t, map[string][]float64{"CO_ppm": {nan, nan}}, 2)
	sum, err := Summarize(tbl, "CO_ppm", Thresholds{})
	require.NoError(t, err)
	assert.Zero(t, sum.Defined)
	assert.True(t, math.IsNaN(sum.Mean))
}

func TestSummarizeMissingColumn(t *testing.T) {
	tbl := newTable(t, nil, 1)
	_, err := Summarize(tbl, "CO_ppm", Thresholds{})
	assert.ErrorIs(t, err, models.ErrColumnNotFound)
}

func TestMeanDefined(t *testing.T) {
	assert.Equal(t, 3.0, MeanDefined(models.NewSeries("AQI", []float64{2, nan, 4})))
	assert.True(t, math.IsNaN(MeanDefined(models.NewSeries("AQI", []float64{nan}))))
}
