// Package spectrum provides functions for loading wavelength/intensity spectra,
// smoothing them by successive pair averaging, and detecting peaks ranked by
// topographic prominence.
package spectrum

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Point represents a single sample of a spectrum.
type Point struct {
	Wavelength float64 // Wavelength in nm
	Intensity  float64 // Intensity in arbitrary units
}

// Spectrum is an immutable sequence of samples ordered by wavelength.
type Spectrum struct {
	wavelength []float64
	intensity  []float64
}

var (
	// ErrMalformed is returned when spectrum data cannot be parsed or violates
	// the sample ordering rules.
	ErrMalformed = errors.New("malformed spectrum")

	// ErrUnsupportedFormat is returned by LoadFile for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported spectrum format")
)

// New builds a spectrum from parallel wavelength and intensity columns.
// The columns are copied. At least two samples are required, all values must be
// finite, and wavelengths must be strictly increasing.
func New(wavelength, intensity []float64) (Spectrum, error) {
	if len(wavelength) != len(intensity) {
		return Spectrum{}, fmt.Errorf("%w: %d wavelengths but %d intensities", ErrMalformed, len(wavelength), len(intensity))
	}
	if len(wavelength) < 2 {
		return Spectrum{}, fmt.Errorf("%w: need at least 2 samples, got %d", ErrMalformed, len(wavelength))
	}
	for i := range wavelength {
		if math.IsNaN(wavelength[i]) || math.IsInf(wavelength[i], 0) ||
			math.IsNaN(intensity[i]) || math.IsInf(intensity[i], 0) {
			return Spectrum{}, fmt.Errorf("%w: non-finite value at sample %d", ErrMalformed, i)
		}
		if i > 0 && wavelength[i] <= wavelength[i-1] {
			return Spectrum{}, fmt.Errorf("%w: wavelength not increasing at sample %d (%g after %g)",
				ErrMalformed, i, wavelength[i], wavelength[i-1])
		}
	}
	return Spectrum{
		wavelength: append([]float64(nil), wavelength...),
		intensity:  append([]float64(nil), intensity...),
	}, nil
}

// FromPoints builds a spectrum from a slice of points. See New for the rules.
func FromPoints(points []Point) (Spectrum, error) {
	wl := make([]float64, len(points))
	in := make([]float64, len(points))
	for i, p := range points {
		wl[i] = p.Wavelength
		in[i] = p.Intensity
	}
	return New(wl, in)
}

// Len returns the number of samples.
func (s Spectrum) Len() int { return len(s.wavelength) }

// At returns sample i.
func (s Spectrum) At(i int) Point {
	return Point{Wavelength: s.wavelength[i], Intensity: s.intensity[i]}
}

// Points returns a copy of the samples.
func (s Spectrum) Points() []Point {
	pts := make([]Point, len(s.wavelength))
	for i := range pts {
		pts[i] = s.At(i)
	}
	return pts
}

// Wavelengths returns a copy of the wavelength column.
func (s Spectrum) Wavelengths() []float64 {
	return append([]float64(nil), s.wavelength...)
}

// Intensities returns a copy of the intensity column.
func (s Spectrum) Intensities() []float64 {
	return append([]float64(nil), s.intensity...)
}

// Bounds returns the smallest and largest wavelength.
func (s Spectrum) Bounds() (lo, hi float64) {
	if len(s.wavelength) == 0 {
		return 0, 0
	}
	return floats.Min(s.wavelength), floats.Max(s.wavelength)
}

// Normalized returns a copy of the spectrum with intensities divided by the
// maximum intensity. A spectrum whose maximum is not positive is returned unchanged.
func (s Spectrum) Normalized() Spectrum {
	in := s.Intensities()
	if len(in) == 0 {
		return s
	}
	maxIntensity := floats.Max(in)
	if maxIntensity <= 0 {
		return Spectrum{wavelength: s.Wavelengths(), intensity: in}
	}
	floats.Scale(1/maxIntensity, in)
	return Spectrum{wavelength: s.Wavelengths(), intensity: in}
}

// TotalVariation returns the sum of absolute differences between adjacent intensities.
func (s Spectrum) TotalVariation() float64 {
	tv := 0.0
	for i := 1; i < len(s.intensity); i++ {
		tv += math.Abs(s.intensity[i] - s.intensity[i-1])
	}
	return tv
}
