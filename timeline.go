package lowpoly

import (
	"fmt"
	"image/color"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// TimelineSample is the telemetry recorded at one simulated tick.
type TimelineSample struct {
	At       time.Duration
	Frame    Frame
	Snapshot Snapshot
}

// PlayCycle runs an animator through one full cycle, hold included,
// ticking every step, and hands the telemetry of every tick to fn. The last
// sample is the one where the progress is back to zero. Playback stops at
// the first error returned by fn.
func PlayCycle(cfg AnimatorConfig, step time.Duration, fn func(TimelineSample) error) error {
	if step <= 0 {
		step = 16 * time.Millisecond
	}
	a := NewAnimator(cfg)

	for now := time.Duration(0); ; now += step {
		f := a.Tick(now)
		if err := fn(TimelineSample{At: now, Frame: f, Snapshot: Synthesize(f, now)}); err != nil {
			return err
		}
		// Back to zero after the hold.
		if now > 0 && f.Progress == 0 && !f.Holding {
			return nil
		}
	}
}

// Timeline records the samples of one full cycle.
func Timeline(cfg AnimatorConfig, step time.Duration) []TimelineSample {
	var samples []TimelineSample
	PlayCycle(cfg, step, func(s TimelineSample) error {
		samples = append(samples, s)
		return nil
	})
	return samples
}

type series struct {
	name  string
	color color.Color
	value func(Snapshot) float64
}

var timelineSeries = []series{
	{"FPS", color.RGBA{R: 16, G: 185, B: 129, A: 255}, func(s Snapshot) float64 { return s.FPS }},
	{"Load %", color.RGBA{R: 59, G: 130, B: 246, A: 255}, func(s Snapshot) float64 { return float64(s.Load) }},
	{"Temp °C", color.RGBA{R: 239, G: 68, B: 68, A: 255}, func(s Snapshot) float64 { return float64(s.Temp) }},
	{"VRAM %", color.RGBA{R: 234, G: 179, B: 8, A: 255}, func(s Snapshot) float64 { return float64(s.VRAMPercent) }},
}

// PlotTimeline saves a chart of the main counters over time as an image.
// The format follows the file extension (png, svg, pdf...).
func PlotTimeline(samples []TimelineSample, path string) error {
	if len(samples) == 0 {
		return fmt.Errorf("plot timeline: no samples")
	}
	p := plot.New()
	p.Title.Text = "Reveal telemetry"
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "value"

	for _, s := range timelineSeries {
		pts := make(plotter.XYs, 0, len(samples))
		for _, sample := range samples {
			pts = append(pts, plotter.XY{X: sample.At.Seconds(), Y: s.value(sample.Snapshot)})
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("plot %s: %w", s.name, err)
		}
		line.Color = s.color
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	p.Legend.Top = true
	p.Legend.Left = false

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save timeline plot: %w", err)
	}
	return nil
}
