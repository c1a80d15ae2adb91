package spectrum

import (
	"errors"
	"fmt"
)

// DefaultNumPeaks is the number of peaks a new session selects.
const DefaultNumPeaks = 10

// Session holds the working state of one analysis: the smoothing cache, the
// active smoothing level, the number of selected peaks and the peaks of the
// active spectrum. It is owned by the caller and is not safe for concurrent use.
type Session struct {
	cache    *SmoothingCache
	level    int
	numPeaks int
	peaks    []Peak
}

// NewSession starts a session on the original spectrum at smoothing level 0.
func NewSession(original Spectrum, numPeaks int) (*Session, error) {
	if numPeaks < 0 {
		return nil, fmt.Errorf("number of peaks %d is negative", numPeaks)
	}
	s := &Session{
		cache:    NewSmoothingCache(original),
		numPeaks: numPeaks,
	}
	if err := s.refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) refresh() error {
	active, err := s.cache.Level(s.level)
	if err != nil {
		return err
	}
	peaks, err := FindPeaks(active)
	if err != nil && !errors.Is(err, ErrNoPeaks) {
		return err
	}
	s.peaks = peaks
	return nil
}

// Original returns the unsmoothed spectrum.
func (s *Session) Original() Spectrum {
	sp, _ := s.cache.Level(0)
	return sp
}

// Active returns the spectrum at the current smoothing level.
func (s *Session) Active() Spectrum {
	sp, _ := s.cache.Level(s.level)
	return sp
}

// Level returns the current smoothing level.
func (s *Session) Level() int { return s.level }

// NumPeaks returns the number of peaks selected for display and matching.
func (s *Session) NumPeaks() int { return s.numPeaks }

// SetLevel changes the smoothing level and recomputes the peaks. On error the
// session keeps its previous level.
func (s *Session) SetLevel(level int) error {
	if _, err := s.cache.Level(level); err != nil {
		return err
	}
	prev := s.level
	s.level = level
	if err := s.refresh(); err != nil {
		s.level = prev
		return err
	}
	return nil
}

// SetNumPeaks changes the number of selected peaks.
func (s *Session) SetNumPeaks(k int) error {
	if k < 0 {
		return fmt.Errorf("number of peaks %d is negative", k)
	}
	s.numPeaks = k
	return nil
}

// Peaks returns all peaks of the active spectrum by descending prominence.
func (s *Session) Peaks() []Peak {
	return append([]Peak(nil), s.peaks...)
}

// Selected returns the NumPeaks most prominent peaks, by descending prominence.
func (s *Session) Selected() []Peak {
	return TopPeaks(s.peaks, s.numPeaks)
}

// Displayed returns the selected peaks ordered by wavelength.
func (s *Session) Displayed() []Peak {
	return DisplayOrder(s.Selected())
}
