package lowpoly

import "math"

// collinearEps is the smallest doubled triangle area treated as non-degenerate.
const collinearEps = 1e-12

// Point is a normalized image coordinate in [0, 1] x [0, 1].
type Point struct {
	X, Y float64
}

func (p Point) isEq(q Point) bool {
	return math.Abs(p.X-q.X) < 1e-9 && math.Abs(p.Y-q.Y) < 1e-9
}

type edge [2]Point

func (e edge) isEq(o edge) bool {
	return e[0].isEq(o[0]) && e[1].isEq(o[1]) ||
		e[0].isEq(o[1]) && e[1].isEq(o[0])
}

type circle struct {
	x, y, radius float64
}

// face is a working triangle of the triangulation.
type face struct {
	nodes  [3]Point
	circle circle
}

func newFace(p0, p1, p2 Point) face {
	f := face{nodes: [3]Point{p0, p1, p2}}

	ax, ay := p1.X-p0.X, p1.Y-p0.Y
	bx, by := p2.X-p0.X, p2.Y-p0.Y
	m := p1.X*p1.X - p0.X*p0.X + p1.Y*p1.Y - p0.Y*p0.Y
	u := p2.X*p2.X - p0.X*p0.X + p2.Y*p2.Y - p0.Y*p0.Y
	s := 1.0 / (2.0 * (ax*by - ay*bx))

	f.circle.x = ((p2.Y-p0.Y)*m + (p0.Y-p1.Y)*u) * s
	f.circle.y = ((p0.X-p2.X)*m + (p1.X-p0.X)*u) * s

	dx := p0.X - f.circle.x
	dy := p0.Y - f.circle.y
	f.circle.radius = dx*dx + dy*dy

	return f
}

func (f face) edges() [3]edge {
	return [3]edge{{f.nodes[0], f.nodes[1]}, {f.nodes[1], f.nodes[2]}, {f.nodes[2], f.nodes[0]}}
}

func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// Delaunay is an incremental Bowyer-Watson triangulation over a rectangle.
// The rectangle corners are the first vertices of the mesh, so every point
// inserted afterwards must lie inside the rectangle.
type Delaunay struct {
	width  float64
	height float64
	faces  []face
}

// Init resets the triangulation to the two triangles spanning the rectangle.
func (d *Delaunay) Init(width, height float64) *Delaunay {
	d.width = width
	d.height = height
	d.clear()

	return d
}

func (d *Delaunay) clear() {
	p0 := Point{0, 0}
	p1 := Point{d.width, 0}
	p2 := Point{d.width, d.height}
	p3 := Point{0, d.height}

	d.faces = []face{newFace(p0, p2, p3), newFace(p0, p1, p2)}
}

// Insert adds the points one by one. Points equal to an existing vertex
// (the rectangle corners included) are ignored.
func (d *Delaunay) Insert(points []Point) *Delaunay {
	var (
		polygon []edge
		bad     []edge
		temps   []face
	)

	for _, p := range points {
		if d.isCorner(p) {
			continue
		}
		bad = bad[:0]
		temps = make([]face, 0, len(d.faces)+2)

		for _, f := range d.faces {
			dx := f.circle.x - p.X
			dy := f.circle.y - p.Y

			if dx*dx+dy*dy < f.circle.radius {
				e := f.edges()
				bad = append(bad, e[0], e[1], e[2])
			} else {
				temps = append(temps, f)
			}
		}

		// Edges shared by two removed triangles are interior to the cavity.
		polygon = polygon[:0]
	edgesLoop:
		for _, e := range bad {
			for j := range polygon {
				if e.isEq(polygon[j]) {
					polygon = append(polygon[:j], polygon[j+1:]...)
					continue edgesLoop
				}
			}
			polygon = append(polygon, e)
		}

		for _, e := range polygon {
			// A point dropped on a hull edge splits it; the zero area fan
			// triangle on that edge is skipped.
			if math.Abs(cross(e[0], e[1], p)) < collinearEps {
				continue
			}
			temps = append(temps, newFace(e[0], e[1], p))
		}
		d.faces = temps
	}
	return d
}

func (d *Delaunay) isCorner(p Point) bool {
	for _, c := range [...]Point{{0, 0}, {d.width, 0}, {d.width, d.height}, {0, d.height}} {
		if p.isEq(c) {
			return true
		}
	}
	return false
}

// GetTriangles returns the vertices of every triangle in the mesh.
func (d *Delaunay) GetTriangles() [][3]Point {
	tris := make([][3]Point, 0, len(d.faces))
	for _, f := range d.faces {
		tris = append(tris, f.nodes)
	}
	return tris
}
