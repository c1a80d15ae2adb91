// Package render draws spectra, peak markers and WGM assignment results with
// gonum/plot. It only consumes results; nothing in the numeric packages calls it.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/plot"

	// Liberation fonts register automatically on import
	_ "gonum.org/v1/plot/font/liberation"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/bob-anderson-ok/WGMassign/spectrum"
	"github.com/bob-anderson-ok/WGMassign/wgm"
)

var (
	blue   = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	orange = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	green  = color.RGBA{R: 0, G: 128, B: 0, A: 255}
)

// StepTicks is a tick marker with a fixed step between ticks.
type StepTicks struct {
	Step   float64
	Format string
}

func (t StepTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	if t.Step <= 0 {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	start := math.Ceil(min/t.Step) * t.Step
	for v := start; v <= max; v += t.Step {
		ticks = append(ticks, plot.Tick{
			Value: v,
			Label: fmt.Sprintf(t.Format, v),
		})
	}
	return ticks
}

func newLiberationPlot() *plot.Plot {
	p := plot.New()

	p.Title.TextStyle.Font.Typeface = "Liberation"
	p.Title.TextStyle.Font.Variant = "Sans"
	p.Title.TextStyle.Font.Size = vg.Points(12)

	p.X.Label.TextStyle.Font.Typeface = "Liberation"
	p.X.Label.TextStyle.Font.Variant = "Sans"
	p.X.Label.TextStyle.Font.Size = vg.Points(12)

	p.Y.Label.TextStyle.Font.Typeface = "Liberation"
	p.Y.Label.TextStyle.Font.Variant = "Sans"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	p.X.Tick.Label.Font.Typeface = "Liberation"
	p.X.Tick.Label.Font.Variant = "Sans"
	p.X.Tick.Label.Font.Size = vg.Points(10)

	p.Y.Tick.Label.Font.Typeface = "Liberation"
	p.Y.Tick.Label.Font.Variant = "Sans"
	p.Y.Tick.Label.Font.Size = vg.Points(10)

	return p
}

func spectrumLine(s spectrum.Spectrum) (*plotter.Line, error) {
	pts := make(plotter.XYs, s.Len())
	for i := range pts {
		p := s.At(i)
		pts[i].X = p.Wavelength
		pts[i].Y = p.Intensity
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = blue
	return line, nil
}

func verticalLine(x, y0, y1 float64, col color.Color, dashes []vg.Length) (*plotter.Line, error) {
	vline, err := plotter.NewLine(plotter.XYs{{X: x, Y: y0}, {X: x, Y: y1}})
	if err != nil {
		return nil, err
	}
	vline.Color = col
	vline.Dashes = dashes
	return vline, nil
}

// PeaksPlot draws the spectrum with a dotted red marker from zero up to each
// peak. Markers are numbered 1..len(peaks) in ascending wavelength order.
func PeaksPlot(s spectrum.Spectrum, peaks []spectrum.Peak, title string) (*plot.Plot, error) {
	p := newLiberationPlot()
	p.Title.Text = title
	p.X.Label.Text = "Wavelength (nm)"
	p.Y.Label.Text = "Normalized Int."

	lo, hi := s.Bounds()
	p.X.Tick.Marker = StepTicks{Step: niceStep((hi - lo) / 10), Format: "%.0f"}
	p.Add(plotter.NewGrid())

	line, err := spectrumLine(s)
	if err != nil {
		return nil, err
	}
	p.Add(line)

	hline, err := zeroLine(lo, hi)
	if err != nil {
		return nil, err
	}
	p.Add(hline)

	display := spectrum.DisplayOrder(peaks)
	if len(display) == 0 {
		return p, nil
	}

	labelPts := make(plotter.XYs, len(display))
	labelText := make([]string, len(display))
	for i, pk := range display {
		vline, err := verticalLine(pk.Wavelength, 0, pk.Intensity, red,
			[]vg.Length{vg.Points(2), vg.Points(2)})
		if err != nil {
			return nil, err
		}
		p.Add(vline)
		labelPts[i] = plotter.XY{X: pk.Wavelength, Y: pk.Intensity}
		labelText[i] = fmt.Sprintf("%d", i+1)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: labelPts, Labels: labelText})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Font.Size = vg.Points(7)
		labels.TextStyle[i].XAlign = draw.XCenter
	}
	labels.Offset = vg.Point{Y: vg.Points(3)}
	p.Add(labels)

	return p, nil
}

// AssignmentPlot draws the spectrum normalized to a maximum of one, with a
// vertical line and label for every predicted mode: TE in orange, TM in green.
func AssignmentPlot(s spectrum.Spectrum, modes []wgm.Mode, n, dNm float64) (*plot.Plot, error) {
	p := newLiberationPlot()
	p.Title.Text = fmt.Sprintf("Diameter = %g µm  Refractive Index = %g", dNm/1000, n)
	p.X.Label.Text = "Wavelength (nm)"
	p.Y.Label.Text = "Normalized Int."
	p.Y.Min = 0
	p.Y.Max = 1.15
	p.Y.Tick.Marker = StepTicks{Step: 0.2, Format: "%.1f"}
	p.Add(plotter.NewGrid())

	line, err := spectrumLine(s.Normalized())
	if err != nil {
		return nil, err
	}
	p.Add(line)

	if len(modes) == 0 {
		return p, nil
	}

	labelPts := make(plotter.XYs, len(modes))
	labelText := make([]string, len(modes))
	for i, m := range modes {
		col := color.Color(orange)
		if m.Family == wgm.TM {
			col = green
		}
		vline, err := verticalLine(m.Wavelength, 0, 1, col, nil)
		if err != nil {
			return nil, err
		}
		p.Add(vline)
		labelPts[i] = plotter.XY{X: m.Wavelength, Y: 1}
		labelText[i] = m.Label()
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: labelPts, Labels: labelText})
	if err != nil {
		return nil, err
	}
	for i, m := range modes {
		labels.TextStyle[i].Rotation = math.Pi / 2
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].Font.Size = vg.Points(8)
		if m.Family == wgm.TM {
			labels.TextStyle[i].Color = green
		} else {
			labels.TextStyle[i].Color = orange
		}
	}
	p.Add(labels)

	return p, nil
}

// zeroLine returns a dashed black horizontal line at y = 0 spanning [x0, x1].
func zeroLine(x0, x1 float64) (*plotter.Line, error) {
	hline, err := plotter.NewLine(plotter.XYs{{X: x0, Y: 0}, {X: x1, Y: 0}})
	if err != nil {
		return nil, err
	}
	hline.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	hline.Color = black
	return hline, nil
}

// niceStep rounds raw up to 1, 2 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, f := range []float64{1, 2, 5, 10} {
		if raw <= f*mag {
			return f * mag
		}
	}
	return 10 * mag
}

// PlotImage renders p into an in-memory image of wPx × hPx pixels.
func PlotImage(p *plot.Plot, wPx, hPx float64) image.Image {
	const dpi = 96
	width := vg.Length(wPx) * vg.Inch / dpi
	height := vg.Length(hPx) * vg.Inch / dpi

	c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
	dc := draw.New(c)
	p.Draw(dc)

	return c.Image()
}
