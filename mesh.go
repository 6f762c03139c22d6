package lowpoly

import (
	"cmp"
	"image/color"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Default sampling parameters.
const (
	DefaultBorderSamples = 180
	DefaultEdgeSamples   = 1400
	DefaultFillSamples   = 500
	DefaultEdgeGamma     = 1.6
	DefaultAttemptFactor = 40
	DefaultQuantization  = 1200
)

// Triangle is a mesh triangle in normalized coordinates. Priority is the
// normalized edge strength at the centroid and decides the reveal order.
type Triangle struct {
	A, B, C  Point
	Color    color.NRGBA
	Priority float64
}

// Centroid returns the barycenter of the triangle.
func (t Triangle) Centroid() Point {
	return Point{X: (t.A.X + t.B.X + t.C.X) / 3, Y: (t.A.Y + t.B.Y + t.C.Y) / 3}
}

// Stats describes how a mesh was sampled.
type Stats struct {
	BorderSamples int
	EdgeSamples   int
	FillSamples   int
	Attempts      int
	Duplicates    int

	// Exhausted reports that the attempt budget ran out before the edge
	// target was met. The mesh is still complete, only sparser on edges.
	Exhausted bool
}

// Mesh is the immutable result of a build. Triangles are sorted by
// non-increasing priority.
type Mesh struct {
	Triangles []Triangle
	Points    []Point
	Stats     Stats
}

// Builder holds the sampling options of the mesh generation.
type Builder struct {
	BorderSamples int
	EdgeSamples   int
	FillSamples   int
	EdgeGamma     float64
	AttemptFactor int
	Quantization  int

	Rand   *rand.Rand
	Logger *zap.Logger
}

// NewBuilder returns a Builder with the default options and a time seeded
// random source.
func NewBuilder() *Builder {
	return &Builder{
		BorderSamples: DefaultBorderSamples,
		EdgeSamples:   DefaultEdgeSamples,
		FillSamples:   DefaultFillSamples,
		EdgeGamma:     DefaultEdgeGamma,
		AttemptFactor: DefaultAttemptFactor,
		Quantization:  DefaultQuantization,
		Rand:          rand.New(rand.NewSource(time.Now().UnixNano())),
		Logger:        zap.NewNop(),
	}
}

// MaxAttempts is the rejection sampling budget.
func (b *Builder) MaxAttempts() int {
	return b.EdgeSamples * b.AttemptFactor
}

// Build samples the field, triangulates the points and orders the triangles
// by priority. It runs once per source image.
func (b *Builder) Build(field *Field) *Mesh {
	log := b.Logger
	if log == nil {
		log = zap.NewNop()
	}
	r := b.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	border := BorderPoints(b.BorderSamples, b.Quantization)
	edges, attempts := EdgePoints(field, r, b.EdgeSamples, b.MaxAttempts(), b.EdgeGamma)
	fill := FillPoints(r, b.FillSamples)

	pts := make([]Point, 0, len(border)+len(edges)+len(fill))
	pts = append(pts, border...)
	pts = append(pts, edges...)
	pts = append(pts, fill...)
	points := Dedupe(pts, b.Quantization)

	stats := Stats{
		BorderSamples: len(border),
		EdgeSamples:   len(edges),
		FillSamples:   len(fill),
		Attempts:      attempts,
		Exhausted:     len(edges) < b.EdgeSamples,
		Duplicates:    len(pts) - len(points),
	}
	if stats.Exhausted {
		log.Debug("edge sampling budget exhausted",
			zap.Int("accepted", len(edges)),
			zap.Int("target", b.EdgeSamples),
			zap.Int("attempts", attempts),
		)
	}

	mesh := &Mesh{Points: points, Stats: stats}
	if len(points) < 3 {
		return mesh
	}

	delaunay := &Delaunay{}
	faces := delaunay.Init(1, 1).Insert(points).GetTriangles()

	mesh.Triangles = make([]Triangle, 0, len(faces))
	for _, f := range faces {
		t := Triangle{A: f[0], B: f[1], C: f[2]}
		c := t.Centroid()
		t.Color = field.ColorAt(c.X, c.Y)
		t.Priority = field.GradientAt(c.X, c.Y)
		mesh.Triangles = append(mesh.Triangles, t)
	}
	slices.SortStableFunc(mesh.Triangles, func(a, b Triangle) int {
		return cmp.Compare(b.Priority, a.Priority)
	})

	log.Debug("mesh built",
		zap.Int("points", len(points)),
		zap.Int("triangles", len(mesh.Triangles)),
		zap.Int("duplicates", stats.Duplicates),
	)
	return mesh
}
