package lowpoly

import (
	"math"
	"math/rand"
)

// BorderPoints seeds n points evenly along each of the four edges of the unit
// square. Corners are shared between edges, so 4n-4 points are returned.
func BorderPoints(n, quant int) []Point {
	if n < 2 {
		return nil
	}
	points := make([]Point, 0, 4*n-4)
	den := float64(n - 1)

	for i := 0; i < n; i++ {
		t := quantize(float64(i)/den, quant)
		points = append(points, Point{X: t, Y: 0}, Point{X: t, Y: 1})
	}
	for i := 1; i < n-1; i++ {
		t := quantize(float64(i)/den, quant)
		points = append(points, Point{X: 0, Y: t}, Point{X: 1, Y: t})
	}
	return points
}

// EdgePoints rejection-samples up to target points, accepting a candidate with
// probability gradient^gamma. At most maxAttempts candidates are drawn; the
// number of attempts used is returned so callers can tell whether the budget
// ran out before the target was reached.
func EdgePoints(field *Field, r *rand.Rand, target, maxAttempts int, gamma float64) ([]Point, int) {
	var (
		points   = make([]Point, 0, target)
		attempts int
	)

	for len(points) < target && attempts < maxAttempts {
		attempts++
		u, v := r.Float64(), r.Float64()
		p := math.Pow(field.GradientAt(u, v), gamma)
		if r.Float64() < p {
			points = append(points, Point{X: u, Y: v})
		}
	}
	return points, attempts
}

// FillPoints returns n uniformly distributed points.
func FillPoints(r *rand.Rand, n int) []Point {
	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, Point{X: r.Float64(), Y: r.Float64()})
	}
	return points
}

// Dedupe snaps every point onto a 1/quant grid and drops the points falling on
// an already occupied cell. The first occurrence wins and the input order is kept.
func Dedupe(points []Point, quant int) []Point {
	seen := make(map[[2]int]struct{}, len(points))
	out := make([]Point, 0, len(points))

	for _, p := range points {
		key := [2]int{int(math.Round(p.X * float64(quant))), int(math.Round(p.Y * float64(quant)))}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Point{X: float64(key[0]) / float64(quant), Y: float64(key[1]) / float64(quant)})
	}
	return out
}

func quantize(v float64, quant int) float64 {
	return math.Round(v*float64(quant)) / float64(quant)
}
