package spectrum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSelectsPeaks(t *testing.T) {
	s, err := NewSession(indexed(t, 0, 5, 2, 8, 1, 6, 0), 2)
	require.NoError(t, err)

	assert.Equal(t, 0, s.Level())
	assert.Equal(t, 2, s.NumPeaks())
	assert.Len(t, s.Peaks(), 3)
	assert.Equal(t, []float64{3, 5}, PeakWavelengths(s.Selected()))
	assert.Equal(t, []float64{3, 5}, PeakWavelengths(s.Displayed()))

	require.NoError(t, s.SetNumPeaks(3))
	assert.Equal(t, []float64{3, 5, 1}, PeakWavelengths(s.Selected()))
	assert.Equal(t, []float64{1, 3, 5}, PeakWavelengths(s.Displayed()))

	assert.Error(t, s.SetNumPeaks(-1))
	assert.Equal(t, 3, s.NumPeaks())
}

func TestSessionSmoothingRecomputesPeaks(t *testing.T) {
	raw := indexed(t, 0, 5, 2, 8, 1, 6, 0)
	s, err := NewSession(raw, DefaultNumPeaks)
	require.NoError(t, err)

	require.NoError(t, s.SetLevel(1))
	assert.Equal(t, 1, s.Level())
	assert.Equal(t, raw.Len()-1, s.Active().Len())
	assert.Equal(t, raw.Points(), s.Original().Points())

	// Level 1 intensities: 2.5 3.5 5 4.5 3.5 3 -> a single peak at 2.5 nm
	peaks := s.Peaks()
	require.Len(t, peaks, 1)
	assert.Equal(t, 2.5, peaks[0].Wavelength)

	require.NoError(t, s.SetLevel(0))
	assert.Len(t, s.Peaks(), 3)
}

func TestSessionKeepsStateOnFailedSmoothing(t *testing.T) {
	s, err := NewSession(indexed(t, 0, 5, 2, 8), 1)
	require.NoError(t, err)
	require.NoError(t, s.SetLevel(1))

	err = s.SetLevel(10)
	assert.ErrorIs(t, err, ErrCannotSmooth)
	assert.Equal(t, 1, s.Level())
	assert.Equal(t, 3, s.Active().Len())

	assert.Error(t, s.SetLevel(-1))
	assert.Equal(t, 1, s.Level())
}

func TestSessionWithoutPeaks(t *testing.T) {
	s, err := NewSession(indexed(t, 1, 2, 3, 4), 5)
	require.NoError(t, err)
	assert.Empty(t, s.Peaks())
	assert.Empty(t, s.Selected())
	assert.Empty(t, s.Displayed())

	_, err = NewSession(indexed(t, 1, 2), -1)
	assert.Error(t, err)
}
