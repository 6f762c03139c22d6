package lowpoly

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Processor : type with the mesh generation options
type Processor struct {
	AnalyzeWidth  int
	AnalyzeHeight int
	BorderSamples int
	EdgeSamples   int
	FillSamples   int
	EdgeGamma     float64
	AttemptFactor int
	Quantization  int
	// Seed of the sampling random source. Zero seeds from the clock.
	Seed int64

	Logger *zap.Logger
}

// NewProcessor returns a Processor with the default options.
func NewProcessor() *Processor {
	return &Processor{
		AnalyzeWidth:  AnalyzeWidth,
		AnalyzeHeight: AnalyzeHeight,
		BorderSamples: DefaultBorderSamples,
		EdgeSamples:   DefaultEdgeSamples,
		FillSamples:   DefaultFillSamples,
		EdgeGamma:     DefaultEdgeGamma,
		AttemptFactor: DefaultAttemptFactor,
		Quantization:  DefaultQuantization,
		Logger:        zap.NewNop(),
	}
}

// Builder returns a mesh builder configured with the processor options.
func (p *Processor) Builder() *Builder {
	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		BorderSamples: p.BorderSamples,
		EdgeSamples:   p.EdgeSamples,
		FillSamples:   p.FillSamples,
		EdgeGamma:     p.EdgeGamma,
		AttemptFactor: p.AttemptFactor,
		Quantization:  p.Quantization,
		Rand:          rand.New(rand.NewSource(seed)),
		Logger:        log,
	}
}

// Process : decode the source image and build its mesh
func (p *Processor) Process(file io.Reader) (*Scene, error) {
	src, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding source image: %w", err)
	}
	return p.Build(src, format), nil
}

// Build analyzes an already decoded image and builds its mesh. The scene
// keeps the photo converted to NRGBA.
func (p *Processor) Build(src image.Image, format string) *Scene {
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}
	start := time.Now()

	photo := ImgToNRGBA(src)
	field := Analyze(photo, p.AnalyzeWidth, p.AnalyzeHeight)
	mesh := p.Builder().Build(field)

	log.Info("mesh ready",
		zap.String("format", format),
		zap.Int("width", src.Bounds().Dx()),
		zap.Int("height", src.Bounds().Dy()),
		zap.Int("points", len(mesh.Points)),
		zap.Int("triangles", len(mesh.Triangles)),
		zap.Bool("exhausted", mesh.Stats.Exhausted),
		zap.Duration("took", time.Since(start)),
	)
	return &Scene{Photo: photo, Mesh: mesh}
}
