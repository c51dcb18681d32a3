package cubelayers

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubelayers/internal/anim"
	"github.com/SeamusWaldron/cubelayers/internal/cube"
	"github.com/SeamusWaldron/cubelayers/internal/journal"
	"github.com/SeamusWaldron/cubelayers/internal/layer"
	"github.com/SeamusWaldron/cubelayers/internal/render"
	"github.com/SeamusWaldron/cubelayers/internal/solve"
)

// Option configures a Session.
type Option func(*config)

// Resolver maps a pointer position in a view to the cubie under it.
type Resolver interface {
	ResolvePointer(pt layer.Point, view render.View) (cube.ID, bool)
}

// Journal receives a record of everything a session does.
// *journal.Journal satisfies it.
type Journal interface {
	Start(id, notes, appVersion string) error
	Append(e journal.Event) error
	End(id string) error
}

type config struct {
	logger      *logrus.Logger
	animator    anim.Animator
	durations   anim.Durations
	timing      solve.Timing
	active      []layer.Key
	resolver    Resolver
	renderer    render.Renderer
	journal     Journal
	notes       string
	moveHistory bool
}

func defaultConfig() *config {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &config{
		logger:      logger,
		animator:    anim.Instant{},
		durations:   anim.DefaultDurations,
		timing:      solve.DefaultTiming,
		active:      []layer.Key{layer.Top, layer.Mid},
		moveHistory: true,
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *logrus.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithAnimator sets how transitions are played. The default completes
// them instantly.
func WithAnimator(a anim.Animator) Option {
	return func(c *config) {
		if a != nil {
			c.animator = a
		}
	}
}

// WithDurations sets the turn and swap transition lengths.
func WithDurations(turn, swap time.Duration) Option {
	return func(c *config) {
		c.durations = anim.Durations{Turn: turn, Swap: swap}
	}
}

// WithTiming sets the pauses between scripted demo steps.
func WithTiming(step, settle time.Duration) Option {
	return func(c *config) {
		c.timing = solve.Timing{Step: step, Settle: settle}
	}
}

// WithActiveLayers sets the initial layer selection.
func WithActiveLayers(keys ...layer.Key) Option {
	return func(c *config) {
		c.active = append([]layer.Key(nil), keys...)
	}
}

// WithResolver sets the pointer resolver used by BeginDragAt and DropAt.
func WithResolver(r Resolver) Option {
	return func(c *config) {
		c.resolver = r
	}
}

// WithRenderer redraws every view through r after each change.
func WithRenderer(r render.Renderer) Option {
	return func(c *config) {
		c.renderer = r
	}
}

// WithJournal records the session in j.
func WithJournal(j Journal, notes string) Option {
	return func(c *config) {
		c.journal = j
		c.notes = notes
	}
}

// WithMoveHistory enables or disables move history tracking.
// With history disabled ReverseAndReplay always reports ErrNoOp.
func WithMoveHistory(enabled bool) Option {
	return func(c *config) {
		c.moveHistory = enabled
	}
}
