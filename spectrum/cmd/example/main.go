// Example program demonstrating how to use the spectrum and wgm packages to:
// 1. Build a synthetic microsphere spectrum with known TE/TM resonances
// 2. Smooth it and find its most prominent peaks
// 3. Fit refractive index and diameter to the peaks
// 4. Plot the peaks, the score grid and the mode assignment
//
// Usage:
//
//	go run main.go
//
// The plots are written to the current directory.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bob-anderson-ok/WGMassign/render"
	"github.com/bob-anderson-ok/WGMassign/spectrum"
	"github.com/bob-anderson-ok/WGMassign/wgm"
)

func main() {
	fmt.Println("WGM Assignment Example")
	fmt.Println("======================")

	// A polystyrene-like sphere, 10 µm across, measured between 600 and 700 nm
	const (
		trueN    = 1.59
		trueDNm  = 10000.0
		waveMin  = 600.0
		waveMax  = 700.0
		numPts   = 2000
		numPeaks = 6
	)

	modes, err := wgm.PredictModes(trueN, trueDNm, waveMin, waveMax)
	if err != nil {
		log.Fatalf("Failed to predict modes: %v", err)
	}
	fmt.Printf("\n%d resonances between %.0f and %.0f nm:\n", len(modes), waveMin, waveMax)

	var lines []spectrum.Line
	for _, m := range modes {
		fmt.Printf("  %-6s %8.3f nm\n", m.Label(), m.Wavelength)
		amplitude := 1.0
		if m.Family == wgm.TM {
			amplitude = 0.6
		}
		lines = append(lines, spectrum.Line{Center: m.Wavelength, Width: 0.4, Amplitude: amplitude})
	}

	raw, err := spectrum.Synthetic(waveMin, waveMax, numPts, 0.1, 0.05, 1, lines...)
	if err != nil {
		log.Fatalf("Failed to build synthetic spectrum: %v", err)
	}

	session, err := spectrum.NewSession(raw, numPeaks)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}
	fmt.Printf("\nRaw spectrum: %d peaks (noise included)\n", len(session.Peaks()))

	// Smooth until the noise peaks no longer dominate
	for _, level := range []int{1, 2, 4, 8} {
		if err := session.SetLevel(level); err != nil {
			log.Fatalf("Failed to smooth: %v", err)
		}
		fmt.Printf("Smoothed %d times: %d peaks, total variation %.2f\n",
			level, len(session.Peaks()), session.Active().TotalVariation())
	}

	fmt.Printf("\nThe %d most prominent peaks:\n", numPeaks)
	fmt.Print(spectrum.FormatPeakTable(session.Displayed()))

	peaksPlot, err := render.PeaksPlot(session.Active(), session.Selected(), "Synthetic spectrum")
	if err != nil {
		log.Fatalf("Failed to plot peaks: %v", err)
	}
	if err := render.SavePlotPNG("peaks.png", peaksPlot, 1200, 700); err != nil {
		log.Printf("Could not save peak plot: %v\n", err)
	} else {
		fmt.Println("\nSaved peak plot to peaks.png")
	}

	lo, hi := session.Active().Bounds()
	nRange := wgm.Range{Start: 1.55, Stop: 1.63, Step: 0.002}
	dRange := wgm.Range{Start: 9.8, Stop: 10.2, Step: 0.005}.Scale(1000)

	start := time.Now()
	res, err := wgm.NewMatcher().BestFit(context.Background(),
		spectrum.PeakWavelengths(session.Selected()), lo, hi, nRange, dRange)
	if err != nil {
		log.Fatalf("Grid search failed: %v", err)
	}
	rows, cols := res.Grid.Dims()
	fmt.Printf("\nSearched %d x %d grid in %s\n", rows, cols, time.Since(start))
	fmt.Printf("Best fit: n = %.3f, d = %.3f µm, score = %.3f of %d\n", res.N, res.D/1000, res.Score, numPeaks)
	fmt.Printf("True values: n = %.3f, d = %.3f µm\n", trueN, trueDNm/1000)

	if err := render.SavePlotPNG("score.png", render.ScoreHeatMap(res.Grid, numPeaks), 1200, 700); err != nil {
		log.Printf("Could not save score plot: %v\n", err)
	} else {
		fmt.Println("Saved score plot to score.png")
	}

	fitted, err := wgm.PredictModes(res.N, res.D, lo, hi)
	if err != nil {
		log.Fatalf("Failed to predict fitted modes: %v", err)
	}
	assignPlot, err := render.AssignmentPlot(raw, fitted, res.N, res.D)
	if err != nil {
		log.Fatalf("Failed to plot assignment: %v", err)
	}
	if err := render.SavePlotPNG("WGM_assign.png", assignPlot, 1200, 700); err != nil {
		log.Printf("Could not save assignment plot: %v\n", err)
	} else {
		fmt.Println("Saved assignment plot to WGM_assign.png")
	}

	fmt.Println("\nDone!")
}
