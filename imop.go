package lowpoly

import (
	"image"
	"image/color"

	"golang.org/x/exp/constraints"
	"golang.org/x/image/draw"
)

// Luminance coefficients (Rec. 709) used to build the analysis field.
const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

// Luminance converts the image into a row-major slice of luminance values in [0, 255].
func Luminance(src *image.NRGBA) []float64 {
	dx, dy := src.Bounds().Dx(), src.Bounds().Dy()
	lum := make([]float64, dx*dy)

	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			i := src.PixOffset(src.Bounds().Min.X+x, src.Bounds().Min.Y+y)
			r, g, b := src.Pix[i], src.Pix[i+1], src.Pix[i+2]
			lum[y*dx+x] = lumR*float64(r) + lumG*float64(g) + lumB*float64(b)
		}
	}
	return lum
}

// ImgToNRGBA returns the image as a tightly packed *image.NRGBA anchored at
// the origin. Decoded JPEGs take a direct YCbCr conversion; other types go
// through draw.
func ImgToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if src, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && src.Stride == 4*b.Dx() {
		return src
	}
	dst := image.NewNRGBA(b.Sub(b.Min))

	ycc, ok := img.(*image.YCbCr)
	if !ok {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	for y := 0; y < b.Dy(); y++ {
		row := dst.Pix[y*dst.Stride : (y+1)*dst.Stride]
		for x := 0; x < b.Dx(); x++ {
			yi := ycc.YOffset(b.Min.X+x, b.Min.Y+y)
			ci := ycc.COffset(b.Min.X+x, b.Min.Y+y)
			r, g, bl := color.YCbCrToRGB(ycc.Y[yi], ycc.Cb[ci], ycc.Cr[ci])
			row[4*x], row[4*x+1], row[4*x+2], row[4*x+3] = r, g, bl, 0xff
		}
	}
	return dst
}

// Min returns the smallest value between two numbers.
func Min[T constraints.Ordered](values ...T) T {
	var acc T = values[0]

	for _, v := range values {
		if v < acc {
			acc = v
		}
	}
	return acc
}

// Max returns the biggest value between two numbers.
func Max[T constraints.Ordered](values ...T) T {
	var acc T = values[0]

	for _, v := range values {
		if v > acc {
			acc = v
		}
	}
	return acc
}

// Clamp restricts v to the [lo, hi] interval.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return Min(hi, Max(lo, v))
}

func lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}

// smoothstep is the cubic Hermite ease between 0 and 1.
func smoothstep(t float64) float64 {
	x := Clamp(t, 0, 1)
	return x * x * (3 - 2*x)
}
