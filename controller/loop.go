package controller

import (
	"math"
	"time"

	"github.com/pthm-cable/gridwave/clock"
	"github.com/pthm-cable/gridwave/geom"
	"github.com/pthm-cable/gridwave/grid"
	"github.com/pthm-cable/gridwave/renderer"
	"github.com/pthm-cable/gridwave/telemetry"
)

// Mount attaches the controller to a surface of the given size and starts
// the render loop and the idle timer. s may be nil if the host attaches the
// surface later with SetSurface; frames skip drawing until then.
func (c *Controller) Mount(s renderer.Surface, dims grid.Dimensions) {
	if c.active {
		c.surface = s
		c.Resize(dims)
		return
	}
	c.active = true
	c.surface = s
	c.state = Idle
	c.ready = false
	c.frames = 0
	c.draws = 0
	c.haveWeak = false
	c.Resize(dims)

	c.cancelFrame = c.sched.RequestFrame(c.tick)
	c.startIdleTimer()

	c.logger.Debug("grid mounted",
		"width", c.dims.Width,
		"height", c.dims.Height,
		"points", len(c.points),
	)
}

// SetSurface replaces the drawing surface.
func (c *Controller) SetSurface(s renderer.Surface) {
	c.surface = s
}

// Unmount stops the render loop and both timers. Callbacks already queued
// on the scheduler become no-ops.
func (c *Controller) Unmount() {
	if !c.active {
		return
	}
	c.active = false
	cancel(&c.cancelFrame)
	c.stopIdleTimer()
	c.stopPulseTimer()
	c.surface = nil
	c.logger.Debug("grid unmounted", "frames", c.frames)
}

// Resize rebuilds the point field and relation cache for new dimensions.
// Active waves are kept. Non-finite or negative sizes are ignored.
func (c *Controller) Resize(dims grid.Dimensions) {
	if !geom.Finite(dims.Width, dims.Height) || dims.Width < 0 || dims.Height < 0 {
		c.logger.Debug("ignoring resize", "width", dims.Width, "height", dims.Height)
		return
	}
	c.dims = dims
	c.points = grid.BuildField(c.params, dims)
	c.rel = grid.BuildRelations(c.points, c.waves)
}

// tick runs one frame. The next frame is requested before any work so a
// panicking frame cannot stop the loop.
func (c *Controller) tick(now time.Time) {
	if !c.active {
		return
	}
	c.cancelFrame = c.sched.RequestFrame(c.tick)

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("frame panicked", "frame", c.frames, "panic", r)
		}
	}()
	c.step(now)
}

// step updates the field from the current waves, grows and expires waves,
// then draws.
func (c *Controller) step(now time.Time) {
	c.frames++
	c.telemetry.StartFrame()

	c.telemetry.Phase(telemetry.PhaseFieldUpdate)
	c.field.Update(c.params, c.points, c.waves, c.rel)

	c.telemetry.Phase(telemetry.PhaseWaveGrowth)
	var expired []grid.Wave
	c.waves, c.rel, expired = grid.GrowAll(c.params, c.waves, c.rel)
	for _, w := range expired {
		c.telemetry.WaveExpired(int(math.Round(w.CrestRadius / c.params.CrestVelocity)))
	}

	c.telemetry.Phase(telemetry.PhaseDraw)
	c.draw(now)

	c.telemetry.EndFrame(len(c.waves), len(c.points))
}

// draw renders the frame if the surface is attached.
func (c *Controller) draw(now time.Time) {
	if c.surface == nil || !c.surface.Ready() {
		return
	}
	c.renderer.Draw(c.surface, c.dims, renderer.State{
		Points: c.points,
		Waves:  c.waves,
		Color:  c.colors.DotColor(now),
	})
	c.draws++

	if !c.ready {
		c.ready = true
		if c.callbacks.OnReady != nil {
			c.callbacks.OnReady()
		}
	}
}

// addWave creates a wave at (x, y) and extends the relation cache by one
// column.
func (c *Controller) addWave(x, y float64, kind grid.WaveKind) {
	w := grid.NewWave(c.params, x, y,
		c.dims.FurthestCornerDistance(x, y),
		c.dims.Diagonal(),
		kind == grid.WaveWeak,
	)
	w.Kind = kind

	c.waves = append(c.waves, w)
	c.rel = c.rel.AddWave(c.points, w)
	c.telemetry.WaveSpawned(kind)
}

func cancel(fn *clock.Cancel) {
	if *fn != nil {
		(*fn)()
		*fn = nil
	}
}
