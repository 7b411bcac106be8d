package panel

import (
	"time"

	"github.com/san-kum/motorsim/internal/motor"
)

type AnimState int

const (
	Running AnimState = iota
	Stopped
)

func (s AnimState) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Animation is the per-frame rotor task of one mounted panel. It starts
// Running and moves to Stopped exactly once.
type Animation struct {
	panel  *Panel
	mode   motor.StepMode
	state  AnimState
	gen    uint64
	last   time.Time
	frames uint64
}

// Mount starts a new animation for the panel. A previously mounted
// animation is stopped first so at most one is ever running.
func (p *Panel) Mount(mode motor.StepMode) *Animation {
	var gen uint64 = 1
	if p.anim != nil {
		p.anim.Stop()
		gen = p.anim.gen + 1
	}
	p.anim = &Animation{panel: p, mode: mode, state: Running, gen: gen}
	p.log.Info().Uint64("generation", gen).Str("mode", string(mode)).Msg("panel mounted")
	return p.anim
}

// Unmount stops the current animation. It reports whether an animation
// was actually stopped by this call.
func (p *Panel) Unmount() bool {
	if p.anim == nil {
		return false
	}
	return p.anim.Stop()
}

// Animation returns the most recently mounted animation, or nil.
func (p *Panel) Animation() *Animation { return p.anim }

// Tick advances the rotor for a frame delivered at now. Frames arriving
// after Stop are ignored and Tick reports false.
func (a *Animation) Tick(now time.Time) bool {
	if a.state != Running {
		return false
	}
	elapsed := 0.0
	if !a.last.IsZero() {
		elapsed = now.Sub(a.last).Seconds()
	}
	a.last = now
	a.frames++
	a.panel.advance(elapsed, a.mode)
	return true
}

// Stop releases the animation. Only the first call has an effect.
func (a *Animation) Stop() bool {
	if a.state == Stopped {
		return false
	}
	a.state = Stopped
	a.panel.log.Info().Uint64("generation", a.gen).Uint64("frames", a.frames).Msg("panel unmounted")
	return true
}

func (a *Animation) State() AnimState     { return a.state }
func (a *Animation) Generation() uint64   { return a.gen }
func (a *Animation) Frames() uint64       { return a.frames }
func (a *Animation) Mode() motor.StepMode { return a.mode }
