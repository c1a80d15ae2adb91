package wgm

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidRange is returned for empty or malformed parameter ranges.
var ErrInvalidRange = errors.New("invalid parameter range")

// rangeTolerance absorbs floating point error when deciding whether Stop is
// reached, so that Stop itself is included in the range.
const rangeTolerance = 1e-9

// MaxRangeLen is the largest number of values a Range may hold.
const MaxRangeLen = 10_000_000

// MaxGridCells is the largest refractive index × diameter grid BestFit scores.
const MaxGridCells = 50_000_000

// Range is an arithmetic sequence Start, Start+Step, ... up to and including Stop.
type Range struct {
	Start float64
	Stop  float64
	Step  float64
}

// Len returns the number of values in the range, or 0 if the range is invalid.
func (r Range) Len() int {
	if r.validate() != nil {
		return 0
	}
	return int(math.Floor((r.Stop-r.Start)/r.Step+rangeTolerance)) + 1
}

// Values returns the values of the range.
func (r Range) Values() ([]float64, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	vals := make([]float64, r.Len())
	for i := range vals {
		vals[i] = r.Start + float64(i)*r.Step
	}
	return vals, nil
}

// Scale returns the range with all three fields multiplied by f.
func (r Range) Scale(f float64) Range {
	return Range{Start: r.Start * f, Stop: r.Stop * f, Step: r.Step * f}
}

func (r Range) validate() error {
	for _, v := range []float64{r.Start, r.Stop, r.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %+v has a non-finite field", ErrInvalidRange, r)
		}
	}
	if r.Step <= 0 {
		return fmt.Errorf("%w: step %g must be positive", ErrInvalidRange, r.Step)
	}
	if r.Stop < r.Start {
		return fmt.Errorf("%w: stop %g is below start %g", ErrInvalidRange, r.Stop, r.Start)
	}
	if n := math.Floor((r.Stop-r.Start)/r.Step+rangeTolerance) + 1; math.IsInf(n, 0) || n > MaxRangeLen {
		return fmt.Errorf("%w: step %g gives more than %d values", ErrInvalidRange, r.Step, MaxRangeLen)
	}
	return nil
}

// ScoreGrid holds the match score of every (refractive index, diameter) cell.
// Rows follow the refractive index values and columns the diameter values.
type ScoreGrid struct {
	N      []float64 // Refractive index of each row
	D      []float64 // Diameter in nm of each column
	scores *mat.Dense
}

func newScoreGrid(n, d []float64) *ScoreGrid {
	return &ScoreGrid{N: n, D: d, scores: mat.NewDense(len(n), len(d), nil)}
}

// Dims returns the number of refractive index rows and diameter columns.
func (g *ScoreGrid) Dims() (rows, cols int) {
	return g.scores.Dims()
}

// Score returns the score of row i (refractive index) and column j (diameter).
func (g *ScoreGrid) Score(i, j int) float64 {
	return g.scores.At(i, j)
}

// Row returns a copy of the scores of refractive index row i.
func (g *ScoreGrid) Row(i int) []float64 {
	return mat.Row(nil, i, g.scores)
}

// Max returns the largest score in the grid.
func (g *ScoreGrid) Max() float64 {
	return mat.Max(g.scores)
}

// best returns the first maximal cell in row-major order.
func (g *ScoreGrid) best() (row, col int) {
	rows, cols := g.Dims()
	bestScore := math.Inf(-1)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if s := g.scores.At(i, j); s > bestScore {
				bestScore = s
				row, col = i, j
			}
		}
	}
	return row, col
}
