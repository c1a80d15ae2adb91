package spectrum_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/bob-anderson-ok/WGMassign/spectrum"
)

// Example demonstrates how to use the spectrum package to:
// 1. Build a spectrum from wavelength and intensity columns
// 2. Find its peaks ranked by prominence
// 3. Keep the most prominent peaks and list them in wavelength order
func Example() {
	s, err := spectrum.New(
		[]float64{500, 501, 502, 503, 504, 505, 506},
		[]float64{0, 5, 2, 8, 1, 6, 0},
	)
	if err != nil {
		log.Fatalf("Failed to build spectrum: %v", err)
	}

	peaks, err := spectrum.FindPeaks(s)
	if err != nil {
		log.Fatalf("Failed to find peaks: %v", err)
	}
	for _, p := range peaks {
		fmt.Printf("%.0f nm  intensity %.0f  prominence %.0f\n", p.Wavelength, p.Intensity, p.Prominence)
	}

	// The two most prominent peaks, numbered from left to right
	fmt.Print(spectrum.FormatPeakTable(spectrum.DisplayOrder(spectrum.TopPeaks(peaks, 2))))

	// Output:
	// 503 nm  intensity 8  prominence 8
	// 505 nm  intensity 6  prominence 5
	// 501 nm  intensity 5  prominence 3
	// 01 : 503.00 nm
	// 02 : 505.00 nm
}

func ExampleSmooth() {
	s, err := spectrum.New([]float64{1, 2, 3, 4}, []float64{2, 4, 8, 16})
	if err != nil {
		log.Fatal(err)
	}

	smoothed, err := spectrum.Smooth(s)
	if err != nil {
		log.Fatal(err)
	}
	for _, p := range smoothed.Points() {
		fmt.Printf("%.1f %.0f\n", p.Wavelength, p.Intensity)
	}

	// Output:
	// 1.5 3
	// 2.5 6
	// 3.5 12
}

func ExampleSmoothingCache() {
	s, err := spectrum.New([]float64{1, 2, 3, 4}, []float64{2, 4, 8, 16})
	if err != nil {
		log.Fatal(err)
	}

	cache := spectrum.NewSmoothingCache(s)
	for k := 0; k <= 3; k++ {
		level, err := cache.Level(k)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("level %d: %d samples\n", k, level.Len())
	}

	_, err = cache.Level(4)
	fmt.Println(errors.Is(err, spectrum.ErrCannotSmooth))

	// Output:
	// level 0: 4 samples
	// level 1: 3 samples
	// level 2: 2 samples
	// level 3: 1 samples
	// true
}
