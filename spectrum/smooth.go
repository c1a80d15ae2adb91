package spectrum

import (
	"errors"
	"fmt"
)

// ErrCannotSmooth is returned when a spectrum has fewer than two samples.
var ErrCannotSmooth = errors.New("cannot smooth spectrum")

// Smooth averages each adjacent pair of samples, so the result is one sample
// shorter than s. Both the wavelength and the intensity of output sample i are
// the means of input samples i and i+1.
func Smooth(s Spectrum) (Spectrum, error) {
	n := s.Len()
	if n < 2 {
		return Spectrum{}, fmt.Errorf("%w: need at least 2 samples, got %d", ErrCannotSmooth, n)
	}
	wl := make([]float64, n-1)
	in := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		wl[i] = (s.wavelength[i] + s.wavelength[i+1]) / 2
		in[i] = (s.intensity[i] + s.intensity[i+1]) / 2
	}
	return Spectrum{wavelength: wl, intensity: in}, nil
}

// SmoothingCache memoizes smoothing levels. Level 0 is the original spectrum
// and level k is always derived from level k-1, each level being computed once.
type SmoothingCache struct {
	levels []Spectrum
}

// NewSmoothingCache creates a cache whose level 0 is original.
func NewSmoothingCache(original Spectrum) *SmoothingCache {
	return &SmoothingCache{levels: []Spectrum{original}}
}

// Level returns the spectrum smoothed k times.
func (c *SmoothingCache) Level(k int) (Spectrum, error) {
	if k < 0 {
		return Spectrum{}, fmt.Errorf("smoothing level %d is negative", k)
	}
	if k > c.MaxLevel() {
		return Spectrum{}, fmt.Errorf("%w: level %d exceeds %d for %d samples",
			ErrCannotSmooth, k, c.MaxLevel(), c.levels[0].Len())
	}
	for len(c.levels) <= k {
		last := len(c.levels) - 1
		next, err := Smooth(c.levels[last])
		if err != nil {
			return Spectrum{}, fmt.Errorf("smoothing level %d: %w", last+1, err)
		}
		c.levels = append(c.levels, next)
	}
	return c.levels[k], nil
}

// Len returns the number of cached levels, including level 0.
func (c *SmoothingCache) Len() int { return len(c.levels) }

// MaxLevel returns the highest level that can be produced from the original.
func (c *SmoothingCache) MaxLevel() int { return c.levels[0].Len() - 1 }
