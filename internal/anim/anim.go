// Package anim models visual transitions as timed interpolations. The
// cube state never depends on them; a transition only paces when the
// next logical change is committed.
package anim

import (
	"context"
	"math"
	"time"

	"github.com/SeamusWaldron/cubelayers/internal/cube"
)

// Ease maps linear progress in [0,1] to eased progress.
type Ease func(p float64) float64

// Linear is the identity easing.
func Linear(p float64) float64 { return p }

// EaseOutCubic decelerates towards the end. Used for face turns.
func EaseOutCubic(p float64) float64 {
	return 1 - math.Pow(1-p, 3)
}

// EaseInOutSine accelerates then decelerates. Used for slides.
func EaseInOutSine(p float64) float64 {
	return 0.5 - 0.5*math.Cos(p*math.Pi)
}

// Tween is a fixed-duration interpolation.
type Tween struct {
	Duration time.Duration
	Ease     Ease
}

// Sample returns the eased progress after elapsed.
func (t Tween) Sample(elapsed time.Duration) float64 {
	p := 1.0
	if t.Duration > 0 {
		p = math.Min(math.Max(float64(elapsed)/float64(t.Duration), 0), 1)
	}
	if t.Ease == nil {
		return p
	}
	return t.Ease(p)
}

// Run calls fn with the eased progress once per frame until the tween
// completes. The last call always reports 1. It returns ctx.Err() if ctx
// ends first.
func (t Tween) Run(ctx context.Context, frame time.Duration, fn func(p float64)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.Duration <= 0 || frame <= 0 {
		fn(t.Sample(t.Duration))
		return nil
	}

	start := time.Now()
	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			elapsed := now.Sub(start)
			if elapsed >= t.Duration {
				fn(t.Sample(t.Duration))
				return nil
			}
			fn(t.Sample(elapsed))
		}
	}
}

// Kind distinguishes transitions.
type Kind int

const (
	KindTurn Kind = iota
	KindSwap
	KindFade
	KindPause
)

func (k Kind) String() string {
	switch k {
	case KindTurn:
		return "turn"
	case KindSwap:
		return "swap"
	case KindFade:
		return "fade"
	default:
		return "pause"
	}
}

// Phase is one segment of a transition.
type Phase struct {
	Name  string
	Tween Tween
}

// Transition describes what is about to change on screen.
type Transition struct {
	Kind   Kind
	Cubies []cube.ID

	// Turn only.
	Axis      cube.Axis
	Direction cube.Direction

	Phases []Phase

	// Observe, if set, is called on every frame a real-time animator
	// plays, before any animator-level callback.
	Observe func(Frame)
}

// Duration is the total length of all phases.
func (t Transition) Duration() time.Duration {
	var d time.Duration
	for _, p := range t.Phases {
		d += p.Tween.Duration
	}
	return d
}

// Durations configures the transition lengths.
type Durations struct {
	Turn time.Duration
	Swap time.Duration
}

// DefaultDurations are the interactive speeds.
var DefaultDurations = Durations{Turn: 300 * time.Millisecond, Swap: 280 * time.Millisecond}

// Turn builds the transition for a face turn.
func Turn(d time.Duration, a cube.Axis, dir cube.Direction, ids []cube.ID) Transition {
	return Transition{
		Kind:      KindTurn,
		Cubies:    ids,
		Axis:      a,
		Direction: dir,
		Phases:    []Phase{{Name: "turn", Tween: Tween{Duration: d, Ease: EaseOutCubic}}},
	}
}

// Swap builds the transition for a swap. Two cubies in the same slice
// lift, slide past each other and lower in equal thirds; anything else
// fades.
func Swap(d time.Duration, sameLayer bool, ids ...cube.ID) Transition {
	if !sameLayer {
		return Fade(d, ids...)
	}
	third := Tween{Duration: d / 3, Ease: EaseInOutSine}
	return Transition{
		Kind:   KindSwap,
		Cubies: ids,
		Phases: []Phase{{"lift", third}, {"slide", third}, {"lower", third}},
	}
}

// Fade builds a single-phase hide and show transition.
func Fade(d time.Duration, ids ...cube.ID) Transition {
	return Transition{
		Kind:   KindFade,
		Cubies: ids,
		Phases: []Phase{{Name: "fade", Tween: Tween{Duration: d, Ease: Linear}}},
	}
}

// Animator plays transitions. Animate blocks until the transition has
// finished on screen.
type Animator interface {
	Animate(ctx context.Context, t Transition) error
}

// Instant completes every transition immediately.
type Instant struct{}

func (Instant) Animate(ctx context.Context, _ Transition) error {
	return ctx.Err()
}

// Func adapts a function to Animator.
type Func func(ctx context.Context, t Transition) error

func (f Func) Animate(ctx context.Context, t Transition) error {
	return f(ctx, t)
}

// Frame is one sample of a running transition.
type Frame struct {
	Transition Transition
	Phase      int
	Progress   float64
}

// Ticker plays each phase in real time and reports every frame.
type Ticker struct {
	Interval time.Duration
	OnFrame  func(Frame)
}

func (tk Ticker) Animate(ctx context.Context, t Transition) error {
	for i, ph := range t.Phases {
		err := ph.Tween.Run(ctx, tk.Interval, func(p float64) {
			f := Frame{Transition: t, Phase: i, Progress: p}
			if t.Observe != nil {
				t.Observe(f)
			}
			if tk.OnFrame != nil {
				tk.OnFrame(f)
			}
		})
		if err != nil {
			return err
		}
	}
	return nil
}
