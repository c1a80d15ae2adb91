package render

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"gonum.org/v1/plot"
)

// SavePlotPNG renders p at wPx × hPx pixels and writes it to filename.
func SavePlotPNG(filename string, p *plot.Plot, wPx, hPx float64) error {
	return SaveImageToFile(filename, PlotImage(p, wPx, hPx))
}

// SaveImageToFile saves an image to a PNG file.
func SaveImageToFile(filename string, img image.Image) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return png.Encode(f, img)
}

// LoadImageFromFile loads any PNG image file.
func LoadImageFromFile(filename string) (img image.Image, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	img, err = png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}

	return img, nil
}
