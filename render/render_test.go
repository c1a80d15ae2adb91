package render

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bob-anderson-ok/WGMassign/spectrum"
	"github.com/bob-anderson-ok/WGMassign/wgm"
)

func testSpectrum(t *testing.T) spectrum.Spectrum {
	t.Helper()
	s, err := spectrum.Synthetic(600, 700, 401, 1, 0.05, 3,
		spectrum.Line{Center: 620, Width: 1, Amplitude: 8},
		spectrum.Line{Center: 655, Width: 1.5, Amplitude: 5},
	)
	require.NoError(t, err)
	return s
}

func TestStepTicks(t *testing.T) {
	ticks := StepTicks{Step: 0.2, Format: "%.1f"}.Ticks(0, 1.15)
	require.Len(t, ticks, 6)
	assert.Equal(t, "0.0", ticks[0].Label)
	assert.Equal(t, "1.0", ticks[5].Label)

	ticks = StepTicks{Step: 10, Format: "%.0f"}.Ticks(603, 641)
	var labels []string
	for _, tk := range ticks {
		labels = append(labels, tk.Label)
	}
	assert.Equal(t, []string{"610", "620", "630", "640"}, labels)

	assert.NotEmpty(t, StepTicks{}.Ticks(0, 100))
}

func TestNiceStep(t *testing.T) {
	assert.Equal(t, 10.0, niceStep(10))
	assert.Equal(t, 20.0, niceStep(12))
	assert.Equal(t, 50.0, niceStep(31))
	assert.InDelta(t, 0.5, niceStep(0.34), 1e-15)
	assert.Equal(t, 0.0, niceStep(0))
	assert.Equal(t, 0.0, niceStep(-3))
}

func TestPeaksPlotSavesImage(t *testing.T) {
	s := testSpectrum(t)
	peaks, err := spectrum.FindPeaks(s)
	require.NoError(t, err)

	p, err := PeaksPlot(s, spectrum.TopPeaks(peaks, 4), "test spectrum")
	require.NoError(t, err)
	assert.Equal(t, "test spectrum", p.Title.Text)

	path := filepath.Join(t.TempDir(), "peaks.png")
	require.NoError(t, SavePlotPNG(path, p, 600, 400))

	img, err := LoadImageFromFile(path)
	require.NoError(t, err)
	assert.InDelta(t, 600, img.Bounds().Dx(), 1)
	assert.InDelta(t, 400, img.Bounds().Dy(), 1)
}

func TestPeaksPlotWithoutPeaks(t *testing.T) {
	p, err := PeaksPlot(testSpectrum(t), nil, "")
	require.NoError(t, err)
	assert.NotNil(t, PlotImage(p, 300, 200))
}

func TestAssignmentPlot(t *testing.T) {
	modes, err := wgm.PredictModes(1.59, 10000, 600, 700)
	require.NoError(t, err)
	require.NotEmpty(t, modes)

	p, err := AssignmentPlot(testSpectrum(t), modes, 1.59, 10000)
	require.NoError(t, err)
	assert.Equal(t, "Diameter = 10 µm  Refractive Index = 1.59", p.Title.Text)
	assert.Equal(t, 1.15, p.Y.Max)
	assert.NotNil(t, PlotImage(p, 400, 300))
}

func TestScoreHeatMap(t *testing.T) {
	res, err := wgm.NewMatcher(wgm.WithWorkers(1)).BestFit(context.Background(),
		[]float64{620, 655}, 600, 700,
		wgm.Range{Start: 1.5, Stop: 1.6, Step: 0.02},
		wgm.Range{Start: 9000, Stop: 10000, Step: 100},
	)
	require.NoError(t, err)

	xyz := scoreGridXYZ{grid: res.Grid}
	c, r := xyz.Dims()
	assert.Equal(t, 11, c)
	assert.Equal(t, 6, r)
	assert.Equal(t, 9.0, xyz.X(0))
	assert.Equal(t, 1.5, xyz.Y(0))
	assert.Equal(t, res.Grid.Score(2, 3), xyz.Z(3, 2))

	p := ScoreHeatMap(res.Grid, 2)
	assert.NotNil(t, PlotImage(p, 400, 300))

	assert.NotNil(t, PlotImage(ScoreHeatMap(res.Grid, 0), 200, 200))
}

func TestHeatScale(t *testing.T) {
	ctx := context.Background()
	m := wgm.NewMatcher(wgm.WithWorkers(1))
	nRange := wgm.Range{Start: 1.5, Stop: 1.5, Step: 0.01}
	dRange := wgm.Range{Start: 7999, Stop: 8000, Step: 1}

	te3, err := wgm.TEWavelength(1.5, 8000, 3)
	require.NoError(t, err)
	res, err := m.BestFit(ctx, []float64{te3, 5000}, 4500, 6700, nRange, dRange)
	require.NoError(t, err)
	require.Positive(t, res.Grid.Max())

	assert.Equal(t, 2.0, heatScale(res.Grid, 2))
	assert.Equal(t, res.Grid.Max(), heatScale(res.Grid, 0))
	assert.Equal(t, res.Grid.Max(), heatScale(res.Grid, -1))

	empty, err := m.BestFit(ctx, nil, 4500, 6700, nRange, dRange)
	require.NoError(t, err)
	assert.Equal(t, 1.0, heatScale(empty.Grid, 0))
	assert.NotNil(t, PlotImage(ScoreHeatMap(empty.Grid, 0), 200, 200))
}
