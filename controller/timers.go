package controller

import (
	"time"

	"github.com/pthm-cable/gridwave/config"
	"github.com/pthm-cable/gridwave/geom"
	"github.com/pthm-cable/gridwave/grid"
)

func (c *Controller) startIdleTimer() {
	c.stopIdleTimer()
	c.cancelIdle = c.sched.AfterFunc(millis(c.cfg.Interaction.IdleMs), c.onIdle)
}

func (c *Controller) stopIdleTimer() {
	cancel(&c.cancelIdle)
}

// onIdle fires once per idle window and hands over to the pulse timer.
func (c *Controller) onIdle() {
	c.cancelIdle = nil
	if !c.active {
		return
	}
	c.state = AutoPulsing
	c.telemetry.Idle()
	c.logger.Debug("grid idle", "waves", len(c.waves))
	if c.callbacks.OnIdle != nil {
		c.callbacks.OnIdle()
	}
	c.startPulseTimer()
}

func (c *Controller) startPulseTimer() {
	c.stopPulseTimer()
	c.cancelPulse = c.sched.AfterFunc(c.pulseDelay(), c.onPulseTimer)
}

func (c *Controller) stopPulseTimer() {
	cancel(&c.cancelPulse)
	cancel(&c.cancelPulseFrame)
}

// onPulseTimer defers the pulse to the next displayed frame. While the host
// is hidden no frame runs, so at most one pulse is ever pending.
func (c *Controller) onPulseTimer() {
	c.cancelPulse = nil
	if !c.active {
		return
	}
	c.cancelPulseFrame = c.sched.RequestFrame(c.pulse)
}

func (c *Controller) pulse(time.Time) {
	c.cancelPulseFrame = nil
	if !c.active || c.state != AutoPulsing {
		return
	}
	x, y := c.pulsePosition()
	c.addWave(x, y, grid.WaveAuto)
	c.startPulseTimer()
}

// pulseDelay returns a delay in [PulseMinMs, PulseMinMs+PulseJitterMs).
func (c *Controller) pulseDelay() time.Duration {
	ic := c.cfg.Interaction
	ms := float64(ic.PulseMinMs) + c.rng.Float64()*float64(ic.PulseJitterMs)
	return time.Duration(ms * float64(time.Millisecond))
}

func (c *Controller) pulsePosition() (x, y float64) {
	if c.cfg.Interaction.PulsePosition == config.PulseRandom {
		return c.rng.Float64() * c.dims.Width, c.rng.Float64() * c.dims.Height
	}
	cx, cy := c.dims.Center()
	return geom.Round(cx), geom.Round(cy)
}
