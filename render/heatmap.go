package render

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"

	"github.com/bob-anderson-ok/WGMassign/wgm"
)

// scoreGridXYZ adapts a score grid to plotter.GridXYZ with diameter (µm) on the
// x axis and refractive index on the y axis.
type scoreGridXYZ struct {
	grid *wgm.ScoreGrid
}

func (g scoreGridXYZ) Dims() (c, r int) {
	rows, cols := g.grid.Dims()
	return cols, rows
}

func (g scoreGridXYZ) Z(c, r int) float64 { return g.grid.Score(r, c) }
func (g scoreGridXYZ) X(c int) float64    { return g.grid.D[c] / 1000 }
func (g scoreGridXYZ) Y(r int) float64    { return g.grid.N[r] }

// ScoreHeatMap draws the score of every grid cell. maxScore fixes the top of
// the color scale, normally the number of matched peaks. A non-positive
// maxScore scales to the best score in the grid instead.
func ScoreHeatMap(grid *wgm.ScoreGrid, maxScore float64) *plot.Plot {
	p := newLiberationPlot()
	p.Title.Text = "WGM assignment score"
	p.X.Label.Text = "Diameter / µm"
	p.Y.Label.Text = "Refractive Index"

	hm := plotter.NewHeatMap(scoreGridXYZ{grid: grid}, palette.Heat(64, 1))
	hm.Min = 0
	hm.Max = heatScale(grid, maxScore)
	p.Add(hm)

	return p
}

// heatScale returns the top of the heat map color scale, always above zero.
func heatScale(grid *wgm.ScoreGrid, maxScore float64) float64 {
	if maxScore > 0 {
		return maxScore
	}
	if best := grid.Max(); best > 0 {
		return best
	}
	return 1
}
