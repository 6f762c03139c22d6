package lowpoly

import (
	"fmt"
	"time"
)

// Phase is one quartile of the reveal progress.
type Phase int

const (
	PhaseVertices Phase = iota
	PhaseWireframe
	PhaseRaster
	PhaseResolve
)

func (p Phase) String() string {
	switch p {
	case PhaseVertices:
		return "vertices"
	case PhaseWireframe:
		return "wireframe"
	case PhaseRaster:
		return "raster"
	case PhaseResolve:
		return "resolve"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// PhaseOf maps a progress value onto its phase and the fraction already
// covered inside that phase. Boundaries sit at 25, 50 and 75; 100 belongs to
// the resolve phase.
func PhaseOf(progress float64) (Phase, float64) {
	var phase Phase
	switch {
	case progress < 25:
		phase = PhaseVertices
	case progress < 50:
		phase = PhaseWireframe
	case progress < 75:
		phase = PhaseRaster
	default:
		phase = PhaseResolve
	}
	return phase, Clamp((progress-float64(phase)*25)/25, 0, 1)
}

// AnimatorConfig holds the reveal timings.
type AnimatorConfig struct {
	// Duration is the time taken to go from 0 to 100.
	Duration time.Duration `yaml:"duration"`
	// Hold is how long the finished frame stays on screen before looping.
	Hold time.Duration `yaml:"hold"`
	// MaxStep caps a single tick, so a host resuming from a long stall
	// does not jump ahead.
	MaxStep time.Duration `yaml:"max_step"`
}

// DefaultAnimatorConfig returns the default reveal timings.
func DefaultAnimatorConfig() AnimatorConfig {
	return AnimatorConfig{
		Duration: 14 * time.Second,
		Hold:     3500 * time.Millisecond,
		MaxStep:  50 * time.Millisecond,
	}
}

// Frame is the animator state observed after a tick.
type Frame struct {
	Progress float64
	Phase    Phase
	PhaseT   float64
	Holding  bool
	Playing  bool
}

// Animator drives the reveal progress from elapsed wall clock time, so the
// animation speed does not depend on the host refresh rate. It is not safe
// for concurrent use; the host calls it from its frame callback.
type Animator struct {
	cfg AnimatorConfig

	playing  bool
	elapsed  time.Duration
	progress float64
	holding  bool
	held     time.Duration

	last     time.Duration
	anchored bool
}

// NewAnimator returns a playing animator at progress 0.
func NewAnimator(cfg AnimatorConfig) *Animator {
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultAnimatorConfig().Duration
	}
	return &Animator{cfg: cfg, playing: true}
}

// Tick advances the animation to the host timestamp now. Timestamps must be
// monotonic. The first tick after creation or Resume only sets the time
// baseline.
func (a *Animator) Tick(now time.Duration) Frame {
	if !a.playing {
		return a.Frame()
	}
	if !a.anchored {
		a.last = now
		a.anchored = true
		return a.Advance(0)
	}
	dt := now - a.last
	a.last = now

	return a.Advance(dt)
}

// Advance moves the animation forward by dt, clamped to [0, MaxStep].
func (a *Animator) Advance(dt time.Duration) Frame {
	if !a.playing {
		return a.Frame()
	}
	dt = Max(dt, 0)
	if a.cfg.MaxStep > 0 {
		dt = Min(dt, a.cfg.MaxStep)
	}

	if !a.holding {
		a.elapsed += dt
		if a.elapsed >= a.cfg.Duration {
			a.elapsed = a.cfg.Duration
			a.progress = 100
			a.holding = true
			a.held = 0
		} else {
			a.progress = Clamp(float64(a.elapsed)*100/float64(a.cfg.Duration), 0, 100)
		}
		return a.Frame()
	}

	a.held += dt
	if a.held >= a.cfg.Hold {
		a.elapsed = 0
		a.progress = 0
		a.holding = false
		a.held = 0
	}
	return a.Frame()
}

// Pause freezes the progress.
func (a *Animator) Pause() {
	a.playing = false
	a.anchored = false
}

// Resume continues from the paused progress. The time spent paused is not
// counted: the next Tick re-anchors the time baseline.
func (a *Animator) Resume() {
	if a.playing {
		return
	}
	a.playing = true
	a.anchored = false
}

// Toggle flips between playing and paused and returns the new playing state.
func (a *Animator) Toggle() bool {
	if a.playing {
		a.Pause()
	} else {
		a.Resume()
	}
	return a.playing
}

// Playing reports whether the animation advances on ticks.
func (a *Animator) Playing() bool {
	return a.playing
}

// Progress returns the current progress in [0, 100].
func (a *Animator) Progress() float64 {
	return a.progress
}

// Frame returns the current state without advancing it.
func (a *Animator) Frame() Frame {
	phase, t := PhaseOf(a.progress)
	return Frame{
		Progress: a.progress,
		Phase:    phase,
		PhaseT:   t,
		Holding:  a.holding,
		Playing:  a.playing,
	}
}
