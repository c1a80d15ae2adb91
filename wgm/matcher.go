package wgm

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// matchWindow is the distance in nm within which a predicted mode counts
// towards a peak.
const matchWindow = 1.0

// Result is the outcome of a grid search.
type Result struct {
	N     float64    // Best refractive index
	D     float64    // Best diameter in nm
	Score float64    // Score of the best cell
	Row   int        // Grid row of the best cell
	Col   int        // Grid column of the best cell
	Grid  *ScoreGrid // Scores of every cell
}

// Matcher fits refractive index and diameter to observed peak wavelengths.
type Matcher struct {
	workers int
	logger  *zap.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithWorkers sets how many grid rows are scored concurrently. Zero uses
// GOMAXPROCS and one scores the grid sequentially.
func WithWorkers(n int) Option {
	return func(m *Matcher) {
		if n >= 0 {
			m.workers = n
		}
	}
}

// WithLogger sets the logger used for progress reports.
func WithLogger(l *zap.Logger) Option {
	return func(m *Matcher) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMatcher returns a Matcher configured by opts.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// BestFit scores every (n, d) cell of nRange × dRange against the peak
// wavelengths and returns the best cell together with the full score grid.
//
// For each cell, TE and TM modes 1..199 with predictions strictly inside
// (waveMin, waveMax) are compared with every peak; a prediction within 1 nm of
// a peak adds 1 - |peak - prediction|. The cell score is capped at len(peaks).
// Ties are resolved in favour of the first cell in row-major order (ascending
// n, then ascending d), whatever the number of workers.
func (m *Matcher) BestFit(ctx context.Context, peaks []float64, waveMin, waveMax float64, nRange, dRange Range) (*Result, error) {
	if !(waveMin < waveMax) {
		return nil, fmt.Errorf("%w: wavelength window (%g, %g) is empty", ErrInvalidRange, waveMin, waveMax)
	}
	nVals, err := nRange.Values()
	if err != nil {
		return nil, fmt.Errorf("refractive index range: %w", err)
	}
	dVals, err := dRange.Values()
	if err != nil {
		return nil, fmt.Errorf("diameter range: %w", err)
	}
	if cells := len(nVals) * len(dVals); cells > MaxGridCells {
		return nil, fmt.Errorf("%w: %d x %d grid exceeds %d cells", ErrInvalidRange, len(nVals), len(dVals), MaxGridCells)
	}
	if err := checkDomain(nVals[0], dVals[0], MinModeNumber); err != nil {
		return nil, err
	}

	grid := newScoreGrid(nVals, dVals)
	sc := scorer{
		peaks:   append([]float64(nil), peaks...),
		waveMin: waveMin,
		waveMax: waveMax,
		terms:   modeTerms(),
	}

	workers := m.workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	m.logger.Debug("starting grid search",
		zap.Int("rows", len(nVals)),
		zap.Int("cols", len(dVals)),
		zap.Int("peaks", len(peaks)),
		zap.Int("workers", workers),
	)
	start := time.Now()
	progress := newProgress(m.logger, len(nVals))

	if workers == 1 {
		for i, n := range nVals {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			grid.scores.SetRow(i, sc.row(n, dVals))
			progress.rowDone()
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i, n := range nVals {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				grid.scores.SetRow(i, sc.row(n, dVals))
				progress.rowDone()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	row, col := grid.best()
	res := &Result{
		N:     nVals[row],
		D:     dVals[col],
		Score: grid.Score(row, col),
		Row:   row,
		Col:   col,
		Grid:  grid,
	}
	m.logger.Debug("grid search finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Float64("n", res.N),
		zap.Float64("d_nm", res.D),
		zap.Float64("score", res.Score),
	)
	return res, nil
}

// scorer holds the read-only inputs shared by every cell.
type scorer struct {
	peaks   []float64
	waveMin float64
	waveMax float64
	terms   []float64
}

func (s scorer) row(n float64, dVals []float64) []float64 {
	out := make([]float64, len(dVals))
	for j, d := range dVals {
		out[j] = s.cell(n, d)
	}
	return out
}

func (s scorer) cell(n, d float64) float64 {
	score := 0.0
	nd := n * math.Pi * d
	for _, corr := range [2]float64{teCorrection(n), tmCorrection(n)} {
		for _, term := range s.terms {
			x := nd / (term - corr)
			if !(s.waveMin < x && x < s.waveMax) {
				continue
			}
			for _, p := range s.peaks {
				if p-matchWindow < x && x < p+matchWindow {
					score += matchWindow - math.Abs(p-x)
				}
			}
		}
	}
	if limit := float64(len(s.peaks)); score > limit {
		score = limit
	}
	return score
}

// progress reports completion in steps of ten percent.
type progress struct {
	logger *zap.Logger
	total  int
	done   atomic.Int64
}

func newProgress(l *zap.Logger, total int) *progress {
	return &progress{logger: l, total: total}
}

func (p *progress) rowDone() {
	done := int(p.done.Add(1))
	step := max(p.total/10, 1)
	if done%step == 0 || done == p.total {
		p.logger.Debug("grid search progress",
			zap.Int("rows_done", done),
			zap.Int("rows", p.total),
			zap.Float64("percent", math.Round(1000*float64(done)/float64(p.total))/10),
		)
	}
}
