package lowpoly

import (
	"math"
	"time"
)

// Simulated device.
const (
	DeviceName = "NVIDIA RTX™ 5090 (32GB GDDR7)"
	DeviceVRAM = 32.0
)

// Stage labels the pipeline stage shown for a phase.
type Stage struct {
	Text string
	Sub  string
	Unit string
}

var stages = [...]Stage{
	{Text: "INPUT ASSEMBLER", Sub: "FETCHING VERTICES", Unit: "Front-End / Input Assembler"},
	{Text: "GEOMETRY ENGINE", Sub: "PRIMITIVE ASSEMBLY + TESSELLATION", Unit: "Geometry / Tessellation Units"},
	{Text: "RASTERIZER", Sub: "TILE BINNING + DEPTH TEST", Unit: "Raster + ROPs"},
	{Text: "PIXEL SHADER", Sub: "LIGHTING + RT + DLSS", Unit: "SMs + RT Cores + Tensor Cores"},
}

var frameComplete = Stage{Text: "FRAME COMPLETE", Sub: "PRESENTING TO DISPLAY", Unit: stages[PhaseResolve].Unit}

type span [2]float64

func (s span) at(t float64) float64 { return lerp(s[0], s[1], t) }

// counterRanges are the start and end values of every counter within a phase.
type counterRanges struct {
	fps, draws, tris, vram, tops, load, clock, temp span
}

var phaseRanges = [...]counterRanges{
	{fps: span{140, 120}, draws: span{1200, 2800}, tris: span{0.8, 1.5}, vram: span{7.5, 10.0}, tops: span{120, 220}, load: span{35, 55}, clock: span{2950, 2900}, temp: span{56, 60}},
	{fps: span{120, 105}, draws: span{2800, 8000}, tris: span{1.5, 7.2}, vram: span{10.0, 18.5}, tops: span{220, 380}, load: span{55, 80}, clock: span{2900, 2875}, temp: span{60, 66}},
	{fps: span{105, 90}, draws: span{8000, 11000}, tris: span{7.2, 8.5}, vram: span{18.5, 25.5}, tops: span{380, 650}, load: span{80, 92}, clock: span{2875, 2825}, temp: span{66, 72}},
	{fps: span{90, 72}, draws: span{11000, 12500}, tris: span{8.5, 8.5}, vram: span{25.5, 31.5}, tops: span{650, 1050}, load: span{92, 99}, clock: span{2825, 2760}, temp: span{72, 78}},
}

// Snapshot is the set of counters displayed for one frame.
type Snapshot struct {
	FPS         float64
	FrameTime   float64
	DrawCalls   int
	Triangles   int
	VRAM        float64
	VRAMPercent int
	Load        int
	ComputeTOPS int
	Clock       int
	Temp        int
	Stage       Stage
	Device      string
}

// RenderFraction is the share of the frame considered rendered in a phase.
func RenderFraction(phase Phase, t float64) float64 {
	switch phase {
	case PhaseVertices:
		return 0.15 * t
	case PhaseWireframe:
		return 0.25 + 0.25*t
	case PhaseRaster:
		return 0.5 + 0.5*t
	}
	return 1
}

// Synthesize derives display counters from the animation state. The values
// are made up: each counter follows a hand-tuned range per phase, plus a
// small sinusoidal jitter keyed on now. The jitter stops while the finished
// frame is held, so the counters freeze on their final values.
func Synthesize(f Frame, now time.Duration) Snapshot {
	phase := Clamp(f.Phase, PhaseVertices, PhaseResolve)
	r := phaseRanges[phase]
	t := f.PhaseT
	frac := RenderFraction(phase, t)

	jitter := func(amp, period float64) float64 {
		if f.Holding {
			return 0
		}
		return math.Sin(float64(now.Milliseconds())/period) * amp
	}

	fps := r.fps.at(t) + jitter(1.6, 220)
	vram := Clamp(r.vram.at(t)*frac+0.06+jitter(0.06, 97), 0, DeviceVRAM-0.1)

	stage := stages[phase]
	if f.Progress >= 100 {
		stage = frameComplete
	}

	return Snapshot{
		FPS:         fps,
		FrameTime:   math.Round(100000/fps) / 100,
		DrawCalls:   int(r.draws.at(t) * frac),
		Triangles:   int(r.tris.at(t) * 1_000_000 * frac),
		VRAM:        vram,
		VRAMPercent: int(math.Round(vram / DeviceVRAM * 100)),
		Load:        int(r.load.at(t) * (0.75 + 0.25*frac)),
		ComputeTOPS: int(r.tops.at(t) * frac),
		Clock:       int(r.clock.at(t)),
		Temp:        int(r.temp.at(t)),
		Stage:       stage,
		Device:      DeviceName,
	}
}
