package spectrum

import (
	"fmt"
	"math/rand"
)

// Line is a Lorentzian emission line used to build synthetic spectra.
type Line struct {
	Center    float64 // Center wavelength in nm
	Width     float64 // Full width at half maximum in nm
	Amplitude float64 // Peak height above the baseline
}

// Synthetic builds a spectrum sampled at numPts evenly spaced wavelengths in
// [start, stop], made of the given Lorentzian lines on top of a constant
// baseline plus uniform noise in [-noise, noise]. The noise is seeded, so equal
// arguments always give equal spectra.
func Synthetic(start, stop float64, numPts int, baseline, noise float64, seed int64, lines ...Line) (Spectrum, error) {
	if numPts < 2 {
		return Spectrum{}, fmt.Errorf("synthetic spectrum needs at least 2 points, got %d", numPts)
	}
	if stop <= start {
		return Spectrum{}, fmt.Errorf("synthetic spectrum range [%g, %g] is empty", start, stop)
	}

	rng := rand.New(rand.NewSource(seed))

	dx := (stop - start) / float64(numPts-1)
	wl := make([]float64, numPts)
	in := make([]float64, numPts)
	for i := range wl {
		x := start + float64(i)*dx
		y := baseline
		for _, l := range lines {
			hw := l.Width / 2
			d := x - l.Center
			y += l.Amplitude * hw * hw / (d*d + hw*hw)
		}
		if noise > 0 {
			y += (rng.Float64()*2 - 1) * noise
		}
		wl[i] = x
		in[i] = y
	}
	return New(wl, in)
}
