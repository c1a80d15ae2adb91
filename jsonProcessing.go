package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/bob-anderson-ok/WGMassign/wgm"
)

// AssignmentJob holds everything read from the parameter file.
type AssignmentJob struct {
	InputFile        string
	Title            string
	ShowInput        bool
	NumPeaks         int
	NumSmoothing     int
	Assign           bool
	RefractiveIndex  wgm.Range
	DiameterUm       wgm.Range // Micrometers, as given by the user
	ParallelWorkers  int
	OutputFolder     string
	PeaksPlotFile    string
	ScorePlotFile    string
	AssignPlotFile   string
	WindowSizePixels int
	LogLevel         string
}

// displayTitle is the title for plots and windows, falling back to the input file name.
func (j AssignmentJob) displayTitle() string {
	if j.Title != "" {
		return j.Title
	}
	return filepath.Base(j.InputFile)
}

func getLeafValue(jsonTable map[string]interface{}, path ...string) (interface{}, bool) {
	var cur interface{} = jsonTable
	for _, p := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func optionalString(jsonTable map[string]interface{}, key string, dst *string) error {
	v, ok := getLeafValue(jsonTable, key)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%s: is not a string", key)
	}
	*dst = s
	return nil
}

func optionalBool(jsonTable map[string]interface{}, key string, dst *bool) error {
	v, ok := getLeafValue(jsonTable, key)
	if !ok {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("%s: is not a bool", key)
	}
	*dst = b
	return nil
}

func optionalFloat(jsonTable map[string]interface{}, dst *float64, path ...string) error {
	v, ok := getLeafValue(jsonTable, path...)
	if !ok {
		return nil
	}
	f, ok := v.(float64)
	if !ok {
		return fmt.Errorf("%s: is not a float64", strings.Join(path, "."))
	}
	*dst = f
	return nil
}

// optionalCount reads a non-negative whole number no larger than math.MaxInt32.
func optionalCount(jsonTable map[string]interface{}, key string, dst *int) error {
	f := float64(*dst)
	if err := optionalFloat(jsonTable, &f, key); err != nil {
		return err
	}
	if f < 0 || f != math.Trunc(f) {
		return fmt.Errorf("%s: must be a non-negative whole number, got %g", key, f)
	}
	if f > math.MaxInt32 {
		return fmt.Errorf("%s: %g is larger than %d", key, f, math.MaxInt32)
	}
	*dst = int(f)
	return nil
}

func optionalRange(jsonTable map[string]interface{}, key string, dst *wgm.Range) error {
	v, ok := getLeafValue(jsonTable, key)
	if !ok {
		return nil
	}
	if _, ok := v.(map[string]interface{}); !ok {
		return fmt.Errorf("%s: is not an object with start, stop and step", key)
	}
	if err := optionalFloat(jsonTable, &dst.Start, key, "start"); err != nil {
		return err
	}
	if err := optionalFloat(jsonTable, &dst.Stop, key, "stop"); err != nil {
		return err
	}
	if err := optionalFloat(jsonTable, &dst.Step, key, "step"); err != nil {
		return err
	}
	if _, err := dst.Values(); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

func defaultJob() AssignmentJob {
	return AssignmentJob{
		NumPeaks:        10,
		Assign:          true,
		RefractiveIndex: wgm.Range{Start: 1.3, Stop: 1.8, Step: 0.01},
		DiameterUm:      wgm.Range{Start: 3.0, Stop: 15.0, Step: 0.01},
		OutputFolder:    ".",
		PeaksPlotFile:   "peaks.png",
		ScorePlotFile:   "score.png",
		AssignPlotFile:  "WGM_assign.png",
		LogLevel:        "info",
	}
}

// validateJsonFileAndFillJob starts from the defaults and overrides every field
// present in jsonTable. Only input_file is required.
func validateJsonFileAndFillJob(jsonTable map[string]interface{}, job *AssignmentJob) error {
	*job = defaultJob()

	inputFile, ok := getLeafValue(jsonTable, "input_file")
	if !ok {
		return fmt.Errorf("input_file: not found")
	}
	job.InputFile, ok = inputFile.(string)
	if !ok {
		return fmt.Errorf("input_file: is not a string")
	}
	if job.InputFile == "" {
		return fmt.Errorf("input_file: is empty")
	}

	for key, dst := range map[string]*string{
		"title":            &job.Title,
		"output_folder":    &job.OutputFolder,
		"peaks_plot_file":  &job.PeaksPlotFile,
		"score_plot_file":  &job.ScorePlotFile,
		"assign_plot_file": &job.AssignPlotFile,
		"log_level":        &job.LogLevel,
	} {
		if err := optionalString(jsonTable, key, dst); err != nil {
			return err
		}
	}

	if err := optionalBool(jsonTable, "show_input_bool", &job.ShowInput); err != nil {
		return err
	}
	if err := optionalBool(jsonTable, "wgm_assign_bool", &job.Assign); err != nil {
		return err
	}

	for key, dst := range map[string]*int{
		"num_peaks":          &job.NumPeaks,
		"num_smoothing":      &job.NumSmoothing,
		"parallel_workers":   &job.ParallelWorkers,
		"window_size_pixels": &job.WindowSizePixels,
	} {
		if err := optionalCount(jsonTable, key, dst); err != nil {
			return err
		}
	}

	if err := optionalRange(jsonTable, "refractive_index", &job.RefractiveIndex); err != nil {
		return err
	}
	if job.RefractiveIndex.Start <= 1 {
		return fmt.Errorf("refractive_index: start %g must be greater than 1", job.RefractiveIndex.Start)
	}

	if err := optionalRange(jsonTable, "diameter_um", &job.DiameterUm); err != nil {
		return err
	}
	if job.DiameterUm.Start <= 0 {
		return fmt.Errorf("diameter_um: start %g must be positive", job.DiameterUm.Start)
	}

	switch job.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: %q is not one of debug, info, warn, error", job.LogLevel)
	}

	return nil
}
