package controller

import (
	"time"

	"github.com/pthm-cable/gridwave/geom"
	"github.com/pthm-cable/gridwave/grid"
)

// PointerEvent is a pointer position in canvas pixels.
type PointerEvent struct {
	X, Y float64
}

func (ev PointerEvent) valid() bool {
	return geom.Finite(ev.X, ev.Y)
}

// PointerDown starts a gesture. Pending idle and pulse timers are cancelled.
func (c *Controller) PointerDown(ev PointerEvent) {
	if !c.active {
		return
	}
	if !ev.valid() {
		c.logger.Debug("ignoring pointer down", "x", ev.X, "y", ev.Y)
		return
	}

	c.stopPulseTimer()
	c.stopIdleTimer()

	wasEngaged := c.state == Engaged
	c.state = Engaged
	c.pressedAt = c.sched.Now()
	c.moved = false

	if !wasEngaged {
		c.telemetry.Interaction()
		if c.callbacks.OnInteractionStart != nil {
			c.callbacks.OnInteractionStart()
		}
	}
}

// PointerMove drops a weak wave at the pointer while a gesture is active,
// at most once per move throttle interval.
func (c *Controller) PointerMove(ev PointerEvent) {
	if !c.active || c.state != Engaged {
		return
	}
	if !ev.valid() {
		c.logger.Debug("ignoring pointer move", "x", ev.X, "y", ev.Y)
		return
	}
	c.moved = true

	now := c.sched.Now()
	if c.haveWeak && now.Sub(c.lastWeakAt) < millis(c.cfg.Interaction.MoveThrottleMs) {
		return
	}
	c.lastWeakAt = now
	c.haveWeak = true
	c.addWave(ev.X, ev.Y, grid.WaveWeak)
}

// PointerUp ends the gesture. A short press, or one without movement,
// releases a strong wave at the pointer. The idle timer restarts either way.
func (c *Controller) PointerUp(ev PointerEvent) {
	if !c.active || c.state != Engaged {
		return
	}

	held := c.sched.Now().Sub(c.pressedAt)
	tap := held <= millis(c.cfg.Interaction.TapThresholdMs)
	switch {
	case !ev.valid():
		c.logger.Debug("pointer up without position", "x", ev.X, "y", ev.Y)
	case tap || !c.moved:
		c.addWave(ev.X, ev.Y, grid.WaveStrong)
	}

	c.state = Idle
	c.startIdleTimer()
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
