package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensor-plotter/models"
)

func TestRollingMeanConstant(t *testing.T) {
	const c, w = 2.7, 5
	in := make([]float64, 20)
	for i := range in {
		in[i] = c
	}
	out, err := RollingMean(in, w)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i, v := range out {
		if i < w-1 {
			assert.True(t, math.IsNaN(v), "index %d", i)
			continue
		}
		assert.InDelta(t, c, v, 1e-12, "index %d", i)
	}
}

func TestRollingMeanTrailingWindow(t *testing.T) {
	out, err := RollingMean([]float64{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.Equal(t, []float64{2, 3, 4}, out[2:])
}

func TestRollingMeanUndefinedInWindow(t *testing.T) {
	out, err := RollingMean([]float64{1, 2, nan, 4, 5, 6}, 2)
	require.NoError(t, err)
	assert.Equal(t, 1.5, out[1])
	assert.True(t, math.IsNaN(out[2]))
	assert.True(t, math.IsNaN(out[3]))
	assert.Equal(t, 4.5, out[4])
	assert.Equal(t, 5.5, out[5])
}

func TestRollingMeanWindowOne(t *testing.T) {
	in := []float64{3, nan, 5}
	out, err := RollingMean(in, 1)
	require.NoError(t, err)
	assert.Equal(t, 3.0, out[0])
	assert.True(t, math.IsNaN(out[1]))
	assert.Equal(t, 5.0, out[2])
}

func TestRollingMeanInvalidWindow(t *testing.T) {
	_, err := RollingMean([]float64{1}, 0)
	assert.Error(t, err)
}

func TestSmootherIndependentOfOtherColumns(t *testing.T) {
	h2 := []float64{5, 1, 4, 2, 8, 3, 7}
	a := newTable(t, map[string][]float64{
		"H2_ppm":  append([]float64(nil), h2...),
		"NH3_ppm": {1, 2, 3, 4, 5, 6, 7},
	}, len(h2))
	b := newTable(t, map[string][]float64{
		"H2_ppm":  append([]float64(nil), h2...),
		"NH3_ppm": {7, 6, 5, 4, 3, 2, 1},
	}, len(h2))

	for _, tbl := range []*models.Table{a, b} {
		require.NoError(t, NewSmoother(3, []string{"H2_ppm", "NH3_ppm"}).Apply(tbl))
	}
	sa, err := a.Column("H2_ppm" + SmoothSuffix)
	require.NoError(t, err)
	sb, err := b.Column("H2_ppm" + SmoothSuffix)
	require.NoError(t, err)
	assert.Equal(t, sa.Values[2:], sb.Values[2:])

	src, _ := a.Column("H2_ppm")
	assert.Equal(t, h2, src.Values, "source column is untouched")
}

func TestSmootherUnknownColumn(t *testing.T) {
	tbl := newTable(t, map[string][]float64{"H2_ppm": {1, 2}}, 2)
	err := NewSmoother(2, []string{"CO_ppm"}).Apply(tbl)
	assert.ErrorIs(t, err, models.ErrColumnNotFound)
}
