package lowpoly

import "math"

type kernel [3][3]float64

var (
	kernelX = kernel{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}

	kernelY = kernel{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// minGradient keeps the normalization divisor positive on flat images.
const minGradient = 1e-6

// SobelMagnitude applies the Sobel operator over a row-major luminance field
// and returns the gradient magnitude for every cell together with the maximum
// magnitude found. Cells on the one pixel border have no full 3x3 window and
// are left at zero.
func SobelMagnitude(lum []float64, width, height int) ([]float64, float64) {
	grad := make([]float64, width*height)
	maxG := minGradient

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			var sumX, sumY float64
			for row := 0; row < 3; row++ {
				step := (y + row - 1) * width
				for col := 0; col < 3; col++ {
					px := lum[step+x+col-1]
					sumX += px * kernelX[row][col]
					sumY += px * kernelY[row][col]
				}
			}
			m := math.Hypot(sumX, sumY)
			grad[y*width+x] = m
			if m > maxG {
				maxG = m
			}
		}
	}
	return grad, maxG
}
