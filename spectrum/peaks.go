package spectrum

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoPeaks is returned by FindPeaks when the spectrum has no interior local
// maximum. It is informational: the returned slice is empty but valid.
var ErrNoPeaks = errors.New("no peaks found")

// Peak is a strict local maximum of a spectrum.
type Peak struct {
	Index      int     // Sample index in the spectrum the peak was found in
	Wavelength float64 // Wavelength in nm
	Intensity  float64 // Intensity at the peak
	Prominence float64 // Topographic prominence
}

// FindPeaks returns the strict interior local maxima of s ordered by descending
// prominence. Peaks with equal prominence keep their left-to-right order.
//
// Prominence follows the usual topographic definition: from the peak, walk
// outwards on each side until a strictly higher sample or the edge is reached,
// remembering the lowest sample seen. The prominence is the peak height above
// the higher of the two minima.
func FindPeaks(s Spectrum) ([]Peak, error) {
	y := s.intensity
	peaks := make([]Peak, 0)
	for i := 1; i < len(y)-1; i++ {
		if y[i-1] < y[i] && y[i] > y[i+1] {
			peaks = append(peaks, Peak{
				Index:      i,
				Wavelength: s.wavelength[i],
				Intensity:  y[i],
				Prominence: prominence(y, i),
			})
		}
	}
	if len(peaks) == 0 {
		return peaks, ErrNoPeaks
	}
	sort.SliceStable(peaks, func(a, b int) bool {
		return peaks[a].Prominence > peaks[b].Prominence
	})
	return peaks, nil
}

func prominence(y []float64, peak int) float64 {
	height := y[peak]

	leftMin := height
	for i := peak; i >= 0 && y[i] <= height; i-- {
		if y[i] < leftMin {
			leftMin = y[i]
		}
	}

	rightMin := height
	for i := peak; i < len(y) && y[i] <= height; i++ {
		if y[i] < rightMin {
			rightMin = y[i]
		}
	}

	return height - max(leftMin, rightMin)
}

// TopPeaks returns the first k peaks. k is clamped to [0, len(peaks)].
func TopPeaks(peaks []Peak, k int) []Peak {
	k = max(0, min(k, len(peaks)))
	return append([]Peak(nil), peaks[:k]...)
}

// DisplayOrder returns a copy of peaks sorted by ascending wavelength.
// The input slice is not modified.
func DisplayOrder(peaks []Peak) []Peak {
	out := append([]Peak(nil), peaks...)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Wavelength < out[b].Wavelength
	})
	return out
}

// PeakWavelengths returns the wavelengths of peaks, in the given order.
func PeakWavelengths(peaks []Peak) []float64 {
	wl := make([]float64, len(peaks))
	for i, p := range peaks {
		wl[i] = p.Wavelength
	}
	return wl
}

// FormatPeakTable lists peaks with display indices 1..n, one per line, in the
// order given. Callers normally pass the result of DisplayOrder.
func FormatPeakTable(peaks []Peak) string {
	var b strings.Builder
	for i, p := range peaks {
		fmt.Fprintf(&b, "%02d : %.2f nm\n", i+1, p.Wavelength)
	}
	return b.String()
}
