package spectrum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPeaksTriplePeak(t *testing.T) {
	s := indexed(t, 0, 5, 2, 8, 1, 6, 0)

	peaks, err := FindPeaks(s)
	require.NoError(t, err)
	require.Len(t, peaks, 3)

	want := []Peak{
		{Index: 3, Wavelength: 3, Intensity: 8, Prominence: 8},
		{Index: 5, Wavelength: 5, Intensity: 6, Prominence: 5},
		{Index: 1, Wavelength: 1, Intensity: 5, Prominence: 3},
	}
	assert.Equal(t, want, peaks)
}

func TestFindPeaksSingleMaximum(t *testing.T) {
	s := indexed(t, 1, 2, 2, 3, 9, 4, 4, 1)

	peaks, err := FindPeaks(s)
	require.NoError(t, err)
	require.Len(t, peaks, 1)
	assert.Equal(t, 4, peaks[0].Index)
	assert.Equal(t, 8.0, peaks[0].Prominence)
}

func TestFindPeaksProminenceWalksPastEqualHeights(t *testing.T) {
	// The walk only stops at strictly higher samples, so both peaks reach the edges.
	s := indexed(t, 0, 3, 1, 3, 0)

	peaks, err := FindPeaks(s)
	require.NoError(t, err)
	require.Len(t, peaks, 2)
	assert.Equal(t, 3.0, peaks[0].Prominence)
	assert.Equal(t, 3.0, peaks[1].Prominence)
	// Equal prominence keeps left-to-right order
	assert.Equal(t, 1, peaks[0].Index)
	assert.Equal(t, 3, peaks[1].Index)
}

func TestFindPeaksProminenceUsesHigherBase(t *testing.T) {
	// Peak at index 5 (height 6): left walk stops at 8, lowest on the way is 1;
	// right walk reaches the edge with lowest 4. The higher base is 4.
	s := indexed(t, 0, 8, 1, 3, 2, 6, 5, 4)

	peaks, err := FindPeaks(s)
	require.NoError(t, err)

	byIndex := map[int]Peak{}
	for _, p := range peaks {
		byIndex[p.Index] = p
	}
	assert.Equal(t, 2.0, byIndex[5].Prominence)
	assert.Equal(t, 1.0, byIndex[3].Prominence)
	assert.Equal(t, 7.0, byIndex[1].Prominence)
}

func TestFindPeaksNoPeaks(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
	}{
		{"increasing", []float64{1, 2, 3, 4}},
		{"decreasing", []float64{4, 3, 2, 1}},
		{"flat", []float64{2, 2, 2, 2}},
		{"plateau", []float64{0, 2, 2, 0}},
		{"two samples", []float64{1, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			peaks, err := FindPeaks(indexed(t, tt.in...))
			assert.ErrorIs(t, err, ErrNoPeaks)
			assert.NotNil(t, peaks)
			assert.Empty(t, peaks)
		})
	}
}

func TestTopPeaksAndDisplayOrder(t *testing.T) {
	peaks, err := FindPeaks(indexed(t, 0, 5, 2, 8, 1, 6, 0))
	require.NoError(t, err)

	assert.Empty(t, TopPeaks(peaks, -1))
	assert.Empty(t, TopPeaks(peaks, 0))
	assert.Len(t, TopPeaks(peaks, 10), 3)

	top := TopPeaks(peaks, 2)
	display := DisplayOrder(top)
	assert.Equal(t, []float64{3, 5}, PeakWavelengths(display))

	// Display ordering leaves the prominence ordering untouched
	assert.Equal(t, []float64{3, 5}, PeakWavelengths(top))
	assert.Equal(t, []float64{3, 5, 1}, PeakWavelengths(peaks))

	all := DisplayOrder(peaks)
	assert.Equal(t, []float64{1, 3, 5}, PeakWavelengths(all))
	assert.Equal(t, []float64{3, 5, 1}, PeakWavelengths(peaks))
}

func TestFormatPeakTable(t *testing.T) {
	peaks := []Peak{{Wavelength: 612.345}, {Wavelength: 650}}
	assert.Equal(t, "01 : 612.35 nm\n02 : 650.00 nm\n", FormatPeakTable(peaks))
	assert.Equal(t, "", FormatPeakTable(nil))
}
