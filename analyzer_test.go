package lowpoly

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeUniformImageHasNoEdges(t *testing.T) {
	field := Analyze(uniformImage(2, 2, color.NRGBA{R: 120, G: 80, B: 40, A: 255}), AnalyzeWidth, AnalyzeHeight)

	require.Equal(t, AnalyzeWidth, field.Width)
	require.Equal(t, AnalyzeHeight, field.Height)
	assert.Equal(t, minGradient, field.MaxGradient())

	for _, uv := range [][2]float64{{0, 0}, {0.5, 0.5}, {1, 1}, {0.25, 0.9}} {
		assert.Zero(t, field.GradientAt(uv[0], uv[1]), "gradient at %v", uv)
	}
}

func TestAnalyzeDetectsVerticalEdge(t *testing.T) {
	field := Analyze(splitImage(100, 50), 100, 50)

	edge := field.GradientAt(49.5/99, 0.5)
	assert.InDelta(t, 1.0, edge, 1e-9)
	assert.Zero(t, field.GradientAt(10.0/99, 0.5))
	assert.Zero(t, field.GradientAt(90.0/99, 0.5))

	// The one pixel border is outside the kernel reach.
	assert.Zero(t, field.GradientAt(49.5/99, 0))
	assert.Zero(t, field.GradientAt(49.5/99, 1))
}

func TestAnalyzeClampsCoordinates(t *testing.T) {
	field := Analyze(splitImage(100, 50), 100, 50)

	assert.Equal(t, field.GradientAt(0, 0.5), field.GradientAt(-3, 0.5))
	assert.Equal(t, field.ColorAt(1, 1), field.ColorAt(4, 7))
}

func TestAnalyzeColorAt(t *testing.T) {
	field := Analyze(splitImage(100, 50), 100, 50)

	assert.Equal(t, color.NRGBA{A: 255}, field.ColorAt(0.1, 0.5))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, field.ColorAt(0.9, 0.5))
}

func TestAnalyzeRaisesTinyFields(t *testing.T) {
	field := Analyze(uniformImage(4, 4, color.White), 1, 0)

	assert.Equal(t, 3, field.Width)
	assert.Equal(t, 3, field.Height)
}

func TestSobelMagnitudeBorderIsZero(t *testing.T) {
	w, h := 5, 4
	lum := make([]float64, w*h)
	for i := range lum {
		lum[i] = float64(i * 7 % 255)
	}
	grad, maxG := SobelMagnitude(lum, w, h)

	for x := 0; x < w; x++ {
		assert.Zero(t, grad[x])
		assert.Zero(t, grad[(h-1)*w+x])
	}
	for y := 0; y < h; y++ {
		assert.Zero(t, grad[y*w])
		assert.Zero(t, grad[y*w+w-1])
	}
	assert.GreaterOrEqual(t, maxG, minGradient)
}
