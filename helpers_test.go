package lowpoly

import (
	"image"
	"image/color"
	"math/rand"

	"go.uber.org/zap"
)

func uniformImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// splitImage is black on the left half and white on the right half.
func splitImage(w, h int) *image.NRGBA {
	img := uniformImage(w, h, color.Black)
	for y := 0; y < h; y++ {
		for x := w / 2; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

// discImage draws a bright disc on a dark background.
func discImage(w, h int) *image.NRGBA {
	img := uniformImage(w, h, color.NRGBA{R: 20, G: 30, B: 60, A: 255})
	cx, cy, r := w/2, h/2, h/3
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) < r*r {
				img.Set(x, y, color.NRGBA{R: 240, G: 200, B: 40, A: 255})
			}
		}
	}
	return img
}

func smallBuilder(seed int64) *Builder {
	return &Builder{
		BorderSamples: 12,
		EdgeSamples:   120,
		FillSamples:   40,
		EdgeGamma:     DefaultEdgeGamma,
		AttemptFactor: DefaultAttemptFactor,
		Quantization:  DefaultQuantization,
		Rand:          rand.New(rand.NewSource(seed)),
		Logger:        zap.NewNop(),
	}
}
