// Package wgm predicts whispering-gallery-mode resonance wavelengths of a
// dielectric microresonator and fits refractive index and diameter to observed
// spectral peaks by a brute-force grid search.
package wgm

import (
	"errors"
	"fmt"
	"math"
)

// ErrDomain is returned when resonance parameters are outside the physical domain.
var ErrDomain = errors.New("resonance parameter out of domain")

const (
	// MinModeNumber and MaxModeNumber bound the mode numbers searched when
	// predicting resonances.
	MinModeNumber = 1
	MaxModeNumber = 199

	// airyCoeff is the first-order correction coefficient of the asymptotic
	// resonance expansion.
	airyCoeff = 1.85576
)

// Family is a polarization family of WGM resonances.
type Family int

const (
	TE Family = iota
	TM
)

func (f Family) String() string {
	switch f {
	case TE:
		return "TE"
	case TM:
		return "TM"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// Mode is a predicted resonance.
type Mode struct {
	Family     Family
	Number     int     // Mode number m
	Wavelength float64 // Predicted wavelength in nm
}

// Label returns the family and mode number, e.g. "TE12".
func (m Mode) Label() string {
	return fmt.Sprintf("%s%d", m.Family, m.Number)
}

// TEWavelength returns the TE resonance wavelength in nm for refractive index n,
// diameter d (nm) and mode number m.
func TEWavelength(n, d float64, m int) (float64, error) {
	if err := checkDomain(n, d, m); err != nil {
		return 0, err
	}
	return wavelength(n, d, modeTerm(m)-teCorrection(n))
}

// TMWavelength returns the TM resonance wavelength in nm for refractive index n,
// diameter d (nm) and mode number m.
func TMWavelength(n, d float64, m int) (float64, error) {
	if err := checkDomain(n, d, m); err != nil {
		return 0, err
	}
	return wavelength(n, d, modeTerm(m)-tmCorrection(n))
}

// PredictModes lists the TE modes and then the TM modes with m in
// [MinModeNumber, MaxModeNumber] whose wavelength lies strictly inside
// (waveMin, waveMax). Each family is in ascending mode number.
func PredictModes(n, d, waveMin, waveMax float64) ([]Mode, error) {
	if err := checkDomain(n, d, MinModeNumber); err != nil {
		return nil, err
	}
	terms := modeTerms()
	var modes []Mode
	for _, fam := range []Family{TE, TM} {
		corr := teCorrection(n)
		if fam == TM {
			corr = tmCorrection(n)
		}
		for i, term := range terms {
			x := n * math.Pi * d / (term - corr)
			if waveMin < x && x < waveMax {
				modes = append(modes, Mode{Family: fam, Number: MinModeNumber + i, Wavelength: x})
			}
		}
	}
	return modes, nil
}

func checkDomain(n, d float64, m int) error {
	switch {
	case math.IsNaN(n) || math.IsInf(n, 0) || n <= 1:
		return fmt.Errorf("%w: refractive index %g must be greater than 1", ErrDomain, n)
	case math.IsNaN(d) || math.IsInf(d, 0) || d <= 0:
		return fmt.Errorf("%w: diameter %g must be positive", ErrDomain, d)
	case m < MinModeNumber:
		return fmt.Errorf("%w: mode number %d must be at least %d", ErrDomain, m, MinModeNumber)
	}
	return nil
}

func wavelength(n, d, denom float64) (float64, error) {
	if denom <= 0 {
		return 0, fmt.Errorf("%w: refractive index %g gives a non-positive resonance denominator", ErrDomain, n)
	}
	return n * math.Pi * d / denom, nil
}

// modeTerm is the n-independent part of the resonance denominator.
func modeTerm(m int) float64 {
	v := float64(m) + 0.5
	return v + airyCoeff*math.Pow(v, 1.0/3.0)
}

func modeTerms() []float64 {
	terms := make([]float64, MaxModeNumber-MinModeNumber+1)
	for i := range terms {
		terms[i] = modeTerm(MinModeNumber + i)
	}
	return terms
}

func teCorrection(n float64) float64 {
	n2 := n * n
	return (1 / n2) * math.Sqrt(n2/(n2-1))
}

func tmCorrection(n float64) float64 {
	n2 := n * n
	return math.Sqrt(n2 / (n2 - 1))
}
