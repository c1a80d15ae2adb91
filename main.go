package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/KevinWang15/go-json5"
	"go.uber.org/zap"

	"github.com/bob-anderson-ok/WGMassign/render"
	"github.com/bob-anderson-ok/WGMassign/spectrum"
	"github.com/bob-anderson-ok/WGMassign/wgm"
)

// !!!!! This MUST match the app name given in the run configuration !!!!!
const version = "1_0_0"

const (
	plotWidthPx  = 1200
	plotHeightPx = 700
)

func main() {

	programStart := time.Now()

	args := os.Args

	if len(args) != 2 {
		fmt.Println("\n\tWrong number of arguments.\n\tUsage: WGMassign <parameter-file>")
		os.Exit(1)
	}

	path := args[1]

	// Read the Json5 (or Json) parameter file
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tAttempt to read input file %q failed: %w\n", path, err))
		os.Exit(2)
	}

	// Parse json(5) data into a generic container
	var jsonTable map[string]interface{}
	err = json.Unmarshal(data, &jsonTable)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tFormat error in file %q: %w\n", path, err))
		os.Exit(3)
	}

	var job AssignmentJob
	if err := validateJsonFileAndFillJob(jsonTable, &job); err != nil {
		fmt.Println(fmt.Errorf("\n\tInvalid parameter file %q: %w\n", path, err))
		os.Exit(4)
	}

	logger, err := newLogger(job.LogLevel)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tCould not create logger: %w\n", err))
		os.Exit(5)
	}

	// Check for user wanting printout of complete jsonTable
	if job.ShowInput {
		fmt.Printf("%s", "\nPrintout of  complete jsonTable contents...\n")
		fmt.Println(string(data))
	}

	logger.Info("starting", zap.String("version", version), zap.String("parameter_file", path))

	images, code := runJob(context.Background(), job, logger)
	if code != 0 {
		_ = logger.Sync()
		os.Exit(code)
	}

	logger.Info("finished", zap.Duration("total_run_time", time.Since(programStart)))
	_ = logger.Sync()

	if job.WindowSizePixels > 0 {
		showResults(job.displayTitle(), job.WindowSizePixels, images)
	}
}

// runJob performs load, smoothing, peak search and (optionally) mode matching,
// writing the plots to the output folder. It returns the written images and a
// non-zero exit code on failure.
func runJob(ctx context.Context, job AssignmentJob, logger *zap.Logger) ([]resultImage, int) {
	var images []resultImage

	if err := os.MkdirAll(job.OutputFolder, 0o755); err != nil {
		logger.Error("cannot create output folder", zap.String("folder", job.OutputFolder), zap.Error(err))
		return nil, 6
	}

	start := time.Now()
	original, err := spectrum.LoadFile(job.InputFile)
	if err != nil {
		if errors.Is(err, spectrum.ErrUnsupportedFormat) {
			logger.Error("the data style is not supported", zap.String("input_file", job.InputFile))
		} else {
			logger.Error("failed to load spectrum", zap.Error(err))
		}
		return nil, 7
	}
	waveMin, waveMax := original.Bounds()
	logger.Info("spectrum loaded",
		zap.String("input_file", job.InputFile),
		zap.Int("samples", original.Len()),
		zap.Float64("wave_min_nm", waveMin),
		zap.Float64("wave_max_nm", waveMax),
		zap.Duration("elapsed", time.Since(start)),
	)

	session, err := spectrum.NewSession(original, job.NumPeaks)
	if err != nil {
		logger.Error("failed to start session", zap.Error(err))
		return nil, 8
	}
	if err := session.SetLevel(job.NumSmoothing); err != nil {
		logger.Error("smoothing failed", zap.Int("num_smoothing", job.NumSmoothing), zap.Error(err))
		return nil, 9
	}

	active := session.Active()
	selected := session.Selected()
	if len(session.Peaks()) == 0 {
		logger.Warn("no peaks found", zap.Int("num_smoothing", session.Level()))
	}
	logger.Info("peaks found",
		zap.Int("num_smoothing", session.Level()),
		zap.Int("total_peaks", len(session.Peaks())),
		zap.Int("selected_peaks", len(selected)),
	)
	fmt.Print(spectrum.FormatPeakTable(session.Displayed()))

	peaksTitle := fmt.Sprintf("%s: %d peaks, smoothed %d times", job.displayTitle(), len(selected), session.Level())
	peaksPlot, err := render.PeaksPlot(active, selected, peaksTitle)
	if err != nil {
		logger.Error("failed to build peak plot", zap.Error(err))
		return nil, 10
	}
	peaksFile := filepath.Join(job.OutputFolder, job.PeaksPlotFile)
	if err := render.SavePlotPNG(peaksFile, peaksPlot, plotWidthPx, plotHeightPx); err != nil {
		logger.Error("failed to write peak plot", zap.String("file", peaksFile), zap.Error(err))
		return nil, 11
	}
	images = append(images, resultImage{Title: "Found peaks", Path: peaksFile})

	if !job.Assign {
		return images, 0
	}

	matcher := wgm.NewMatcher(wgm.WithWorkers(job.ParallelWorkers), wgm.WithLogger(logger))
	activeMin, activeMax := active.Bounds()
	dRangeNm := job.DiameterUm.Scale(1000)

	logger.Info("now processing, please wait",
		zap.Int("refractive_index_values", job.RefractiveIndex.Len()),
		zap.Int("diameter_values", dRangeNm.Len()),
	)
	start = time.Now()
	res, err := matcher.BestFit(ctx, spectrum.PeakWavelengths(selected), activeMin, activeMax, job.RefractiveIndex, dRangeNm)
	if err != nil {
		logger.Error("WGM assignment failed", zap.Error(err))
		return nil, 12
	}
	logger.Info("best fit",
		zap.Float64("refractive_index", res.N),
		zap.Float64("diameter_um", res.D/1000),
		zap.Float64("score", res.Score),
		zap.Duration("elapsed", time.Since(start)),
	)

	scoreFile := filepath.Join(job.OutputFolder, job.ScorePlotFile)
	heatMap := render.ScoreHeatMap(res.Grid, float64(len(selected)))
	if err := render.SavePlotPNG(scoreFile, heatMap, plotWidthPx, plotHeightPx); err != nil {
		logger.Error("failed to write score plot", zap.String("file", scoreFile), zap.Error(err))
		return nil, 13
	}
	images = append(images, resultImage{Title: "Score", Path: scoreFile})

	modes, err := wgm.PredictModes(res.N, res.D, activeMin, activeMax)
	if err != nil {
		logger.Error("mode prediction failed", zap.Error(err))
		return nil, 14
	}
	for _, m := range modes {
		logger.Debug("predicted mode", zap.String("mode", m.Label()), zap.Float64("wavelength_nm", m.Wavelength))
	}

	assignPlot, err := render.AssignmentPlot(session.Original(), modes, res.N, res.D)
	if err != nil {
		logger.Error("failed to build assignment plot", zap.Error(err))
		return nil, 15
	}
	assignFile := filepath.Join(job.OutputFolder, job.AssignPlotFile)
	if err := render.SavePlotPNG(assignFile, assignPlot, plotWidthPx, plotHeightPx); err != nil {
		logger.Error("failed to write assignment plot", zap.String("file", assignFile), zap.Error(err))
		return nil, 16
	}
	images = append(images, resultImage{Title: "WGM assignment", Path: assignFile})

	return images, 0
}
