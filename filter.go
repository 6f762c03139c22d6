package lowpoly

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Filter is an image operation applied to the photo layer.
type Filter interface {
	Draw(dst draw.Image, src image.Image)
	// Bounds calculates the appropriate bounds of an image after applying the filter.
	Bounds(srcBounds image.Rectangle) (dstBounds image.Rectangle)
}

// FilterChain implements a list of filters that can be applied to an image at once.
type FilterChain struct {
	Filters []Filter
}

// NewFilterChain creates a filter chain initialized with the given list of filters.
func NewFilterChain(filters ...Filter) *FilterChain {
	return &FilterChain{
		Filters: filters,
	}
}

// Draw applies all the filters to the src image and outputs the result to
// the dst image. An empty chain copies src into dst.
func (c *FilterChain) Draw(dst draw.Image, src image.Image) {
	if len(c.Filters) == 0 {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		return
	}
	first, last := 0, len(c.Filters)-1
	var tmpIn image.Image
	var tmpOut draw.Image

	for i, f := range c.Filters {
		if i == first {
			tmpIn = src
		} else {
			tmpIn = tmpOut
		}

		if i == last {
			tmpOut = dst
		} else {
			tmpOut = image.NewNRGBA(f.Bounds(tmpIn.Bounds()))
		}

		f.Draw(tmpOut, tmpIn)
	}
}

// PhotoFilters returns the photo layer treatment at fraction t of the
// resolve phase: a slight blur, extra contrast and muted colors, all of
// which vanish at t = 1. Identity passes are left out.
func PhotoFilters(t, density float64) []Filter {
	rest := 1 - Clamp(t, 0, 1)

	var filters []Filter
	if r := int(math.Round(1.25 * rest * Clamp(density, 1, 2))); r > 0 {
		filters = append(filters, BoxBlur{Radius: r})
	}
	if rest > 0 {
		filters = append(filters,
			Contrast{Amount: 1 + 0.12*rest},
			Saturate{Amount: 1 - 0.1*rest},
		)
	}
	return filters
}

// BoxBlur averages every pixel with its neighbours within Radius. Pixels
// out of the image do not contribute.
type BoxBlur struct {
	Radius int
}

// Bounds implements Filter.
func (b BoxBlur) Bounds(srcBounds image.Rectangle) image.Rectangle {
	return srcBounds.Sub(srcBounds.Min)
}

// Draw implements Filter. The kernel is separable so it runs as a
// horizontal and a vertical pass.
func (b BoxBlur) Draw(dst draw.Image, src image.Image) {
	img := ImgToNRGBA(src)
	if b.Radius < 1 {
		draw.Draw(dst, dst.Bounds(), img, image.Point{}, draw.Src)
		return
	}
	kernel := setBlurMatrix(b.Radius)

	tmp := image.NewNRGBA(img.Bounds())
	convolve(tmp, img, kernel, 1, 0)
	out := image.NewNRGBA(img.Bounds())
	convolve(out, tmp, kernel, 0, 1)

	draw.Draw(dst, dst.Bounds(), out, image.Point{}, draw.Src)
}

// setBlurMatrix populates a one dimensional box kernel of the given radius.
func setBlurMatrix(radius int) []float64 {
	matrix := make([]float64, radius*2+1)
	for i := range matrix {
		matrix[i] = 1
	}
	return matrix
}

// convolve runs the kernel along the (dx, dy) direction over every channel.
// Weights falling outside the image are dropped and the rest renormalized.
func convolve(dst, src *image.NRGBA, kernel []float64, dx, dy int) {
	var (
		width  = src.Bounds().Dx()
		height = src.Bounds().Dy()
		dim    = len(kernel) / 2
	)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var acc [4]float64
			var weight float64

			for k := -dim; k <= dim; k++ {
				sx, sy := x+k*dx, y+k*dy
				if sx < 0 || sx >= width || sy < 0 || sy >= height {
					continue
				}
				v := kernel[k+dim]
				i := src.PixOffset(sx, sy)
				for c := 0; c < 4; c++ {
					acc[c] += float64(src.Pix[i+c]) * v
				}
				weight += v
			}

			i := dst.PixOffset(x, y)
			for c := 0; c < 4; c++ {
				dst.Pix[i+c] = uint8(Clamp(math.Round(acc[c]/weight), 0, 255))
			}
		}
	}
}

// Contrast scales every channel away from (Amount > 1) or toward
// (Amount < 1) the mid gray.
type Contrast struct {
	Amount float64
}

// Bounds implements Filter.
func (c Contrast) Bounds(srcBounds image.Rectangle) image.Rectangle {
	return srcBounds.Sub(srcBounds.Min)
}

// Draw implements Filter.
func (c Contrast) Draw(dst draw.Image, src image.Image) {
	pointFilter(dst, src, func(r, g, b float64) (float64, float64, float64) {
		return (r-0.5)*c.Amount + 0.5, (g-0.5)*c.Amount + 0.5, (b-0.5)*c.Amount + 0.5
	})
}

// Saturate blends every pixel between its gray level (Amount = 0) and its
// original color (Amount = 1).
type Saturate struct {
	Amount float64
}

// Bounds implements Filter.
func (s Saturate) Bounds(srcBounds image.Rectangle) image.Rectangle {
	return srcBounds.Sub(srcBounds.Min)
}

// Draw implements Filter.
func (s Saturate) Draw(dst draw.Image, src image.Image) {
	a := s.Amount
	pointFilter(dst, src, func(r, g, b float64) (float64, float64, float64) {
		return (0.213+0.787*a)*r + (0.715-0.715*a)*g + (0.072-0.072*a)*b,
			(0.213-0.213*a)*r + (0.715+0.285*a)*g + (0.072-0.072*a)*b,
			(0.213-0.213*a)*r + (0.715-0.715*a)*g + (0.072+0.928*a)*b
	})
}

// pointFilter maps the color channels, normalized to [0, 1], of every pixel.
// Alpha is kept.
func pointFilter(dst draw.Image, src image.Image, fn func(r, g, b float64) (float64, float64, float64)) {
	img := ImgToNRGBA(src)
	out := image.NewNRGBA(img.Bounds())

	toByte := func(v float64) uint8 {
		return uint8(Clamp(math.Round(v*255), 0, 255))
	}
	for i := 0; i < len(img.Pix); i += 4 {
		r, g, b := fn(float64(img.Pix[i])/255, float64(img.Pix[i+1])/255, float64(img.Pix[i+2])/255)
		out.Pix[i] = toByte(r)
		out.Pix[i+1] = toByte(g)
		out.Pix[i+2] = toByte(b)
		out.Pix[i+3] = img.Pix[i+3]
	}
	draw.Draw(dst, dst.Bounds(), out, image.Point{}, draw.Src)
}
