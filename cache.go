package lowpoly

import "image/color"

// Viewport is the drawing surface size in layout units and its pixel density.
type Viewport struct {
	Width, Height int
	Density       float64
}

// PixelSize returns the backing store dimensions of the viewport.
func (v Viewport) PixelSize() (int, int) {
	return int(float64(v.Width) * v.Density), int(float64(v.Height) * v.Density)
}

// ScaledTriangle is a mesh triangle mapped into viewport coordinates.
type ScaledTriangle struct {
	X1, Y1   float64
	X2, Y2   float64
	X3, Y3   float64
	Color    color.NRGBA
	Priority float64
}

// GeometryCache keeps the mesh scaled to the current viewport. Rescaling only
// happens when the viewport actually changes; the triangulation itself is
// never recomputed.
type GeometryCache struct {
	mesh      *Mesh
	viewport  Viewport
	points    []Point
	triangles []ScaledTriangle
	stale     bool
}

// NewGeometryCache returns an empty cache.
func NewGeometryCache() *GeometryCache {
	return &GeometryCache{viewport: Viewport{Density: 1}}
}

// SetMesh binds a new mesh. The next viewport notification rebuilds the
// scaled geometry even if the viewport did not change.
func (c *GeometryCache) SetMesh(m *Mesh) {
	c.mesh = m
	c.stale = true
}

// NotifyViewportChanged rescales the geometry if the viewport differs from the
// cached one and reports whether a rebuild happened. Width and height are
// raised to 1 and the density is kept within [1, 2].
func (c *GeometryCache) NotifyViewportChanged(width, height int, density float64) bool {
	vp := Viewport{
		Width:   Max(1, width),
		Height:  Max(1, height),
		Density: Clamp(density, 1, 2),
	}
	if vp == c.viewport && !c.stale {
		return false
	}
	c.viewport = vp

	if c.mesh == nil {
		// Nothing to scale yet. Stay stale so the geometry gets built on
		// the first notification after a mesh is bound.
		c.stale = true
		return false
	}

	w, h := float64(vp.Width), float64(vp.Height)

	c.points = make([]Point, len(c.mesh.Points))
	for i, p := range c.mesh.Points {
		c.points[i] = Point{X: p.X * w, Y: p.Y * h}
	}
	c.triangles = make([]ScaledTriangle, len(c.mesh.Triangles))
	for i, t := range c.mesh.Triangles {
		c.triangles[i] = ScaledTriangle{
			X1: t.A.X * w, Y1: t.A.Y * h,
			X2: t.B.X * w, Y2: t.B.Y * h,
			X3: t.C.X * w, Y3: t.C.Y * h,
			Color:    t.Color,
			Priority: t.Priority,
		}
	}
	c.stale = false

	return true
}

// Ready reports whether the scaled geometry matches the bound mesh.
func (c *GeometryCache) Ready() bool {
	return c.mesh != nil && !c.stale
}

// Viewport returns the last viewport the cache was notified about.
func (c *GeometryCache) Viewport() Viewport {
	return c.viewport
}

// Points returns the scaled sample points. The slice is shared and must not be modified.
func (c *GeometryCache) Points() []Point {
	return c.points
}

// Triangles returns the scaled triangles in priority order. The slice is shared
// and must not be modified.
func (c *GeometryCache) Triangles() []ScaledTriangle {
	return c.triangles
}
