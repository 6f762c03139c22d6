package lowpoly

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 50 * time.Millisecond

// play ticks the animator n times, tick apart, starting after now.
func play(a *Animator, now time.Duration, n int) (time.Duration, Frame) {
	var f Frame
	for i := 0; i < n; i++ {
		now += tick
		f = a.Tick(now)
	}
	return now, f
}

func TestPhaseOf(t *testing.T) {
	tests := []struct {
		progress float64
		phase    Phase
		t        float64
	}{
		{0, PhaseVertices, 0},
		{12.5, PhaseVertices, 0.5},
		{24.99, PhaseVertices, 0.9996},
		{25, PhaseWireframe, 0},
		{49.99, PhaseWireframe, 0.9996},
		{50, PhaseRaster, 0},
		{74.99, PhaseRaster, 0.9996},
		{75, PhaseResolve, 0},
		{87.5, PhaseResolve, 0.5},
		{100, PhaseResolve, 1},
	}
	for _, tt := range tests {
		phase, frac := PhaseOf(tt.progress)
		assert.Equal(t, tt.phase, phase, "progress %v", tt.progress)
		assert.InDelta(t, tt.t, frac, 1e-9, "progress %v", tt.progress)
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "vertices", PhaseVertices.String())
	assert.Equal(t, "resolve", PhaseResolve.String())
	assert.Equal(t, "Phase(7)", Phase(7).String())
}

func TestAnimatorFullCycle(t *testing.T) {
	cfg := DefaultAnimatorConfig()
	a := NewAnimator(cfg)

	f := a.Tick(0)
	require.Equal(t, 0.0, f.Progress)

	steps := int(cfg.Duration / tick)
	now, f := play(a, 0, steps-1)
	assert.Less(t, f.Progress, 100.0)

	now, f = play(a, now, 1)
	assert.Equal(t, 100.0, f.Progress)
	assert.True(t, f.Holding)
	assert.Equal(t, PhaseResolve, f.Phase)

	holdSteps := int(cfg.Hold / tick)
	now, f = play(a, now, holdSteps-1)
	assert.Equal(t, 100.0, f.Progress)
	assert.True(t, f.Holding)

	now, f = play(a, now, 1)
	assert.Equal(t, 0.0, f.Progress)
	assert.False(t, f.Holding)

	_, f = play(a, now, 1)
	assert.Greater(t, f.Progress, 0.0)
}

func TestAnimatorProgressStaysInRange(t *testing.T) {
	a := NewAnimator(DefaultAnimatorConfig())
	now := time.Duration(0)

	for i := 0; i < 2000; i++ {
		now += 17 * time.Millisecond
		f := a.Tick(now)
		require.GreaterOrEqual(t, f.Progress, 0.0)
		require.LessOrEqual(t, f.Progress, 100.0)
	}
}

func TestAnimatorClampsLargeSteps(t *testing.T) {
	cfg := DefaultAnimatorConfig()
	a := NewAnimator(cfg)

	a.Tick(0)
	f := a.Tick(10 * time.Second)

	want := float64(cfg.MaxStep) * 100 / float64(cfg.Duration)
	assert.InDelta(t, want, f.Progress, 1e-12)
}

func TestAnimatorIgnoresBackwardTime(t *testing.T) {
	a := NewAnimator(DefaultAnimatorConfig())

	a.Tick(time.Second)
	_, f := play(a, time.Second, 4)
	before := f.Progress

	f = a.Tick(0)
	assert.Equal(t, before, f.Progress)
}

func TestAnimatorPauseResume(t *testing.T) {
	cfg := DefaultAnimatorConfig()
	a := NewAnimator(cfg)

	a.Tick(0)
	// 40% of 14s is 5.6s, i.e. 112 ticks of 50ms.
	now, f := play(a, 0, 112)
	require.Equal(t, 40.0, f.Progress)

	a.Pause()
	assert.False(t, a.Playing())
	f = a.Tick(now + 10*time.Second)
	assert.Equal(t, 40.0, f.Progress)
	assert.False(t, f.Playing)

	a.Resume()
	now += 30 * time.Second
	f = a.Tick(now)
	assert.Equal(t, 40.0, f.Progress, "resume must not jump")

	f = a.Tick(now + 16*time.Millisecond)
	assert.InDelta(t, 40+16.0*100/14000, f.Progress, 1e-9)
}

func TestAnimatorPauseFreezesHold(t *testing.T) {
	cfg := DefaultAnimatorConfig()
	a := NewAnimator(cfg)

	a.Tick(0)
	now, f := play(a, 0, int(cfg.Duration/tick))
	require.True(t, f.Holding)

	a.Pause()
	a.Resume()
	f = a.Tick(now + time.Minute)
	assert.Equal(t, 100.0, f.Progress)
	assert.True(t, f.Holding)
}

func TestAnimatorToggle(t *testing.T) {
	a := NewAnimator(DefaultAnimatorConfig())

	assert.True(t, a.Playing())
	assert.False(t, a.Toggle())
	assert.True(t, a.Toggle())
}

func TestAnimatorAdvance(t *testing.T) {
	a := NewAnimator(AnimatorConfig{Duration: time.Second, Hold: 0, MaxStep: time.Second})

	f := a.Advance(250 * time.Millisecond)
	assert.Equal(t, 25.0, f.Progress)
	assert.Equal(t, PhaseWireframe, f.Phase)

	f = a.Advance(time.Second)
	assert.Equal(t, 100.0, f.Progress)

	// Zero hold loops on the next step.
	f = a.Advance(0)
	assert.Equal(t, 0.0, f.Progress)
}
