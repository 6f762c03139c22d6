package lowpoly

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Default analysis resolution. The source is always resampled to this size,
// whatever its own resolution, so sampling density and timings stay stable.
const (
	AnalyzeWidth  = 480
	AnalyzeHeight = 270
)

// Field is the reduced resolution view of a source image used to drive the
// point sampling: the resampled colors and the Sobel gradient magnitudes.
type Field struct {
	Width, Height int

	pix     *image.NRGBA
	grad    []float64
	maxGrad float64
}

// Analyze resamples src to width x height and computes its gradient field.
// Dimensions smaller than the 3x3 kernel are raised to 3.
func Analyze(src image.Image, width, height int) *Field {
	width, height = Max(width, 3), Max(height, 3)

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	grad, maxG := SobelMagnitude(Luminance(dst), width, height)

	return &Field{
		Width:   width,
		Height:  height,
		pix:     dst,
		grad:    grad,
		maxGrad: maxG,
	}
}

// cell maps a normalized coordinate to the nearest field sample.
func (f *Field) cell(u, v float64) (int, int) {
	x := Clamp(int(u*float64(f.Width-1)), 0, f.Width-1)
	y := Clamp(int(v*float64(f.Height-1)), 0, f.Height-1)
	return x, y
}

// GradientAt returns the normalized edge strength in [0, 1] at (u, v).
func (f *Field) GradientAt(u, v float64) float64 {
	x, y := f.cell(u, v)
	return f.grad[y*f.Width+x] / f.maxGrad
}

// ColorAt returns the resampled source color at (u, v).
func (f *Field) ColorAt(u, v float64) color.NRGBA {
	x, y := f.cell(u, v)
	i := f.pix.PixOffset(x, y)
	return color.NRGBA{R: f.pix.Pix[i], G: f.pix.Pix[i+1], B: f.pix.Pix[i+2], A: 0xff}
}

// MaxGradient returns the unnormalized peak magnitude of the field.
func (f *Field) MaxGradient() float64 {
	return f.maxGrad
}
