// Package controller runs the grid: it owns the points, the active waves and
// the relation cache, turns pointer and resize events into wave and field
// changes, drives the per-frame update and draw, and runs the idle and
// auto-pulse timers.
//
// A Controller is not safe for concurrent use. Every method and every
// scheduler callback must run on the goroutine that drives the scheduler.
package controller

import (
	"image/color"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/gridwave/clock"
	"github.com/pthm-cable/gridwave/config"
	"github.com/pthm-cable/gridwave/grid"
	"github.com/pthm-cable/gridwave/renderer"
	"github.com/pthm-cable/gridwave/telemetry"
)

// State is the interaction state.
type State uint8

const (
	Idle        State = iota // No pointer engaged, idle timer pending
	Engaged                  // Pointer down
	AutoPulsing              // Idle window elapsed, pulses firing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Engaged:
		return "engaged"
	case AutoPulsing:
		return "auto_pulsing"
	}
	return "unknown"
}

// Callbacks are optional host notifications. Nil fields are skipped.
type Callbacks struct {
	OnReady            func() // First frame drawn onto an attached surface
	OnInteractionStart func() // Pointer engaged after being idle
	OnIdle             func() // Idle window elapsed
}

// ColorSource supplies the dot color for a frame.
type ColorSource interface {
	DotColor(now time.Time) color.RGBA
}

// ColorFunc adapts a plain function to ColorSource.
type ColorFunc func(now time.Time) color.RGBA

// DotColor calls f.
func (f ColorFunc) DotColor(now time.Time) color.RGBA {
	return f(now)
}

// Option configures a Controller.
type Option func(*Controller)

// WithCallbacks sets the host callbacks.
func WithCallbacks(cb Callbacks) Option {
	return func(c *Controller) { c.callbacks = cb }
}

// WithRand sets the random source used for pulse delays and positions.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithTelemetry reports frame timing and wave events to r.
func WithTelemetry(r *telemetry.Recorder) Option {
	return func(c *Controller) { c.telemetry = r }
}

// Controller is the interaction state machine and render loop.
type Controller struct {
	cfg       *config.Config
	params    grid.Params
	sched     clock.Scheduler
	rng       *rand.Rand
	logger    *slog.Logger
	telemetry *telemetry.Recorder
	callbacks Callbacks
	colors    ColorSource

	surface  renderer.Surface
	renderer *renderer.Renderer
	field    grid.Field
	dims     grid.Dimensions

	// Rows of rel track points; columns track waves, in order.
	points []grid.Point
	waves  []grid.Wave
	rel    grid.Relations

	state  State
	active bool
	ready  bool
	frames int
	draws  int

	// Pointer gesture
	pressedAt  time.Time
	moved      bool
	lastWeakAt time.Time
	haveWeak   bool

	cancelFrame      clock.Cancel
	cancelIdle       clock.Cancel
	cancelPulse      clock.Cancel
	cancelPulseFrame clock.Cancel
}

var defaultColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// New creates a controller. It does nothing until Mount.
func New(cfg *config.Config, sched clock.Scheduler, opts ...Option) *Controller {
	params := grid.ParamsFromConfig(cfg)
	c := &Controller{
		cfg:      cfg,
		params:   params,
		sched:    sched,
		renderer: renderer.New(params),
		colors:   ColorFunc(func(time.Time) color.RGBA { return defaultColor }),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// SetColorSource sets where the per-frame dot color comes from.
func (c *Controller) SetColorSource(src ColorSource) {
	if src == nil {
		return
	}
	c.colors = src
}

// State returns the current interaction state.
func (c *Controller) State() State {
	return c.state
}

// Active reports whether the controller is mounted.
func (c *Controller) Active() bool {
	return c.active
}

// Dimensions returns the current canvas size.
func (c *Controller) Dimensions() grid.Dimensions {
	return c.dims
}

// Points returns the live point slice. Callers must not modify it.
func (c *Controller) Points() []grid.Point {
	return c.points
}

// Waves returns the live wave slice. Callers must not modify it.
func (c *Controller) Waves() []grid.Wave {
	return c.waves
}

// Relations returns the live relation cache. Callers must not modify it.
func (c *Controller) Relations() grid.Relations {
	return c.rel
}

// Frames returns the number of ticks run since Mount.
func (c *Controller) Frames() int {
	return c.frames
}

// Draws returns the number of ticks that drew onto a ready surface.
func (c *Controller) Draws() int {
	return c.draws
}
