package lowpoly

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMesh() *Mesh {
	return &Mesh{
		Points: []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0.5, 0.25}},
		Triangles: []Triangle{
			{A: Point{0, 0}, B: Point{1, 0}, C: Point{0.5, 0.25}, Color: color.NRGBA{R: 10, A: 255}, Priority: 0.9},
			{A: Point{1, 0}, B: Point{1, 1}, C: Point{0.5, 0.25}, Color: color.NRGBA{G: 10, A: 255}, Priority: 0.4},
		},
	}
}

func TestGeometryCacheScales(t *testing.T) {
	c := NewGeometryCache()
	c.SetMesh(testMesh())

	require.True(t, c.NotifyViewportChanged(200, 100, 1))
	assert.True(t, c.Ready())
	assert.Equal(t, Viewport{Width: 200, Height: 100, Density: 1}, c.Viewport())

	assert.Equal(t, Point{100, 25}, c.Points()[4])
	assert.Equal(t, ScaledTriangle{
		X1: 0, Y1: 0, X2: 200, Y2: 0, X3: 100, Y3: 25,
		Color: color.NRGBA{R: 10, A: 255}, Priority: 0.9,
	}, c.Triangles()[0])
}

func TestGeometryCacheIsIdempotent(t *testing.T) {
	c := NewGeometryCache()
	c.SetMesh(testMesh())

	require.True(t, c.NotifyViewportChanged(640, 360, 2))
	firstTris := append([]ScaledTriangle(nil), c.Triangles()...)
	firstPts := append([]Point(nil), c.Points()...)
	triPtr, ptPtr := &c.Triangles()[0], &c.Points()[0]

	assert.False(t, c.NotifyViewportChanged(640, 360, 2))

	// Same backing arrays: nothing was recomputed.
	assert.Same(t, triPtr, &c.Triangles()[0])
	assert.Same(t, ptPtr, &c.Points()[0])
	if diff := cmp.Diff(firstTris, c.Triangles()); diff != "" {
		t.Errorf("scaled triangles changed (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(firstPts, c.Points()); diff != "" {
		t.Errorf("scaled points changed (-first +second):\n%s", diff)
	}
}

func TestGeometryCacheRebuildsOnChange(t *testing.T) {
	c := NewGeometryCache()
	c.SetMesh(testMesh())

	require.True(t, c.NotifyViewportChanged(100, 100, 1))
	assert.True(t, c.NotifyViewportChanged(100, 50, 1))
	assert.Equal(t, Point{50, 12.5}, c.Points()[4])

	assert.True(t, c.NotifyViewportChanged(100, 50, 1.5))
	assert.Equal(t, 1.5, c.Viewport().Density)
}

func TestGeometryCacheClampsViewport(t *testing.T) {
	c := NewGeometryCache()
	c.SetMesh(testMesh())

	c.NotifyViewportChanged(0, -4, 3)
	assert.Equal(t, Viewport{Width: 1, Height: 1, Density: 2}, c.Viewport())

	c.NotifyViewportChanged(10, 10, 0.5)
	assert.Equal(t, 1.0, c.Viewport().Density)
}

func TestGeometryCacheWithoutMesh(t *testing.T) {
	c := NewGeometryCache()

	assert.False(t, c.NotifyViewportChanged(320, 200, 1))
	assert.False(t, c.Ready())
	assert.Empty(t, c.Triangles())
	assert.Equal(t, Viewport{Width: 320, Height: 200, Density: 1}, c.Viewport())

	// The mesh arrives after the resize: same viewport, real rebuild.
	c.SetMesh(testMesh())
	assert.True(t, c.NotifyViewportChanged(320, 200, 1))
	assert.True(t, c.Ready())
	assert.Len(t, c.Triangles(), 2)
	assert.Equal(t, 0.9, c.Triangles()[0].Priority)
}

func TestViewportPixelSize(t *testing.T) {
	w, h := Viewport{Width: 300, Height: 200, Density: 1.5}.PixelSize()

	assert.Equal(t, 450, w)
	assert.Equal(t, 300, h)
}
