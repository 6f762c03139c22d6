package lowpoly

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

var (
	vertexColor    = color.NRGBA{R: 16, G: 185, B: 129, A: 230}
	wireframeColor = color.NRGBA{R: 16, G: 185, B: 129, A: 140}
	outlineColor   = color.NRGBA{R: 0, G: 0, B: 0, A: 26}
)

const (
	vertexSize     = 2.0
	wireframeWidth = 0.7
	outlineWidth   = 0.5
)

// WireframeCount is the number of outlines drawn at fraction t of the
// wireframe phase. It starts at 12% of the mesh.
func WireframeCount(n int, t float64) int {
	return int(float64(n) * (0.12 + 0.88*Clamp(t, 0, 1)))
}

// RasterCount is the number of triangles filled at fraction t of the raster phase.
func RasterCount(n int, t float64) int {
	return int(float64(n) * smoothstep(t))
}

// RasterAlpha is the base opacity of the filled triangles in the raster phase.
func RasterAlpha(t float64) float64 {
	return 0.22 + 0.78*smoothstep(t)
}

// TriangleAlpha ramps the opacity along the revealed prefix so the newest
// triangles blend in instead of popping.
func TriangleAlpha(i, count int) float64 {
	return 0.35 + 0.65*smoothstep(float64(i)/float64(Max(1, count)))
}

// ResolveFade is the opacity multiplier of the mesh during the resolve phase.
func ResolveFade(t float64) float64 {
	return 1 - smoothstep(t)
}

func resolveT(progress float64) float64 {
	return Clamp((progress-75)/25, 0, 1)
}

// PhotoOpacity is the opacity of the photographic layer. The photo is always
// faintly visible and resolves over the last quarter.
func PhotoOpacity(progress float64) float64 {
	return 0.35 + 0.65*resolveT(progress)
}

// CanvasOpacity is the opacity of the mesh layer.
func CanvasOpacity(progress float64) float64 {
	if progress < 75 {
		return 1
	}
	return 1 - resolveT(progress)
}

// Scene is a source image and the mesh built from it. Mesh is nil when the
// mesh could not be built; such a scene renders the photo layer only.
type Scene struct {
	Photo image.Image
	Mesh  *Mesh
}

// Renderer draws animation frames of a scene into RGBA images.
type Renderer struct {
	scene *Scene
	cache *GeometryCache

	photo     *image.NRGBA
	photoSize image.Point
	photoStep int
	photoDPR  float64
}

// NewRenderer returns a renderer with an empty viewport. Resize must be
// called before the first frame is drawn.
func NewRenderer(scene *Scene) *Renderer {
	if scene == nil {
		scene = &Scene{}
	}
	cache := NewGeometryCache()
	if scene.Mesh != nil {
		cache.SetMesh(scene.Mesh)
	}
	return &Renderer{scene: scene, cache: cache}
}

// Cache exposes the scaled geometry.
func (r *Renderer) Cache() *GeometryCache {
	return r.cache
}

// SetMesh binds a mesh built after the renderer was created.
func (r *Renderer) SetMesh(m *Mesh) {
	r.scene.Mesh = m
	r.cache.SetMesh(m)
}

// Resize forwards a viewport change to the geometry cache.
func (r *Renderer) Resize(width, height int, density float64) bool {
	return r.cache.NotifyViewportChanged(width, height, density)
}

// Draw renders the frame: the photo layer, then the mesh layer for the
// current phase on top of it.
func (r *Renderer) Draw(f Frame) *image.RGBA {
	// Covers the first frame and a mesh bound since the last resize.
	vp := r.cache.Viewport()
	r.cache.NotifyViewportChanged(vp.Width, vp.Height, vp.Density)
	vp = r.cache.Viewport()

	pw, ph := vp.PixelSize()
	dst := image.NewRGBA(image.Rect(0, 0, pw, ph))
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)

	if photo := r.scaledPhoto(pw, ph, resolveT(f.Progress), vp.Density); photo != nil {
		composite(dst, photo, PhotoOpacity(f.Progress))
	}
	if !r.cache.Ready() {
		return dst
	}

	ctx := gg.NewContext(pw, ph)
	if !r.drawMesh(ctx, f, vp.Density) {
		return dst
	}
	composite(dst, ctx.Image(), CanvasOpacity(f.Progress))

	return dst
}

// drawMesh draws the mesh layer and reports whether anything was drawn.
func (r *Renderer) drawMesh(ctx *gg.Context, f Frame, d float64) bool {
	pts := r.cache.Points()
	tris := r.cache.Triangles()

	switch f.Phase {
	case PhaseVertices:
		ctx.SetColor(vertexColor)
		for _, p := range pts {
			ctx.DrawRectangle(p.X*d, p.Y*d, vertexSize*d, vertexSize*d)
		}
		ctx.Fill()
	case PhaseWireframe:
		count := WireframeCount(len(tris), f.PhaseT)
		for _, t := range tris[:count] {
			trianglePath(ctx, t, d)
		}
		ctx.SetColor(wireframeColor)
		ctx.SetLineWidth(wireframeWidth * d)
		ctx.Stroke()
	case PhaseRaster:
		count := RasterCount(len(tris), f.PhaseT)
		base := RasterAlpha(f.PhaseT)
		for i, t := range tris[:count] {
			trianglePath(ctx, t, d)
			ctx.SetColor(withAlpha(t.Color, base*TriangleAlpha(i, count)))
			ctx.Fill()
		}
		for _, t := range tris[:count] {
			trianglePath(ctx, t, d)
		}
		ctx.SetColor(outlineColor)
		ctx.SetLineWidth(outlineWidth * d)
		ctx.Stroke()
	case PhaseResolve:
		fade := ResolveFade(f.PhaseT)
		if fade <= 0.01 {
			return false
		}
		for _, t := range tris {
			trianglePath(ctx, t, d)
			ctx.SetColor(withAlpha(t.Color, 0.75*fade))
			ctx.Fill()
		}
	}
	return true
}

func trianglePath(ctx *gg.Context, t ScaledTriangle, d float64) {
	ctx.MoveTo(t.X1*d, t.Y1*d)
	ctx.LineTo(t.X2*d, t.Y2*d)
	ctx.LineTo(t.X3*d, t.Y3*d)
	ctx.ClosePath()
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(math.Round(Clamp(a, 0, 1) * 255))
	return c
}

// photoSteps is the number of distinct photo treatments over the resolve
// phase. Frames within a step reuse the same filtered photo.
const photoSteps = 20

// scaledPhoto returns the photo resampled to the backing store size and
// filtered for fraction t of the resolve phase.
func (r *Renderer) scaledPhoto(w, h int, t, density float64) *image.NRGBA {
	if r.scene.Photo == nil {
		return nil
	}
	size := image.Pt(w, h)
	step := int(math.Round(Clamp(t, 0, 1) * photoSteps))
	if r.photo != nil && r.photoSize == size && r.photoStep == step && r.photoDPR == density {
		return r.photo
	}

	scaled := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), r.scene.Photo, r.scene.Photo.Bounds(), draw.Src, nil)

	filters := PhotoFilters(float64(step)/photoSteps, density)
	if len(filters) > 0 {
		out := image.NewNRGBA(scaled.Bounds())
		NewFilterChain(filters...).Draw(out, scaled)
		scaled = out
	}
	r.photo, r.photoSize, r.photoStep, r.photoDPR = scaled, size, step, density

	return r.photo
}

// composite draws src over dst with a uniform opacity.
func composite(dst draw.Image, src image.Image, opacity float64) {
	if opacity <= 0 {
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(math.Round(Clamp(opacity, 0, 1) * 255))})
	draw.DrawMask(dst, dst.Bounds(), src, image.Point{}, mask, image.Point{}, draw.Over)
}
