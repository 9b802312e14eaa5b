package telemetry

import "github.com/pthm-cable/gridwave/grid"

// Collector accumulates wave and interaction events within frame windows
// and produces WindowStats.
type Collector struct {
	windowFrames int

	windowStartFrame int

	weakSpawned   int
	strongSpawned int
	autoSpawned   int
	expired       int
	interactions  int
	idles         int
	peakActive    int
	lifetimes     []float64 // Frames each expired wave lived
}

// NewCollector creates a collector that flushes every windowFrames frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{windowFrames: windowFrames}
}

// RecordSpawn records a new wave.
func (c *Collector) RecordSpawn(kind grid.WaveKind) {
	switch kind {
	case grid.WaveWeak:
		c.weakSpawned++
	case grid.WaveStrong:
		c.strongSpawned++
	case grid.WaveAuto:
		c.autoSpawned++
	}
}

// RecordExpire records a wave reaching its max radius after lifetimeFrames.
func (c *Collector) RecordExpire(lifetimeFrames int) {
	c.expired++
	c.lifetimes = append(c.lifetimes, float64(lifetimeFrames))
}

// RecordInteraction records the start of a pointer interaction.
func (c *Collector) RecordInteraction() {
	c.interactions++
}

// RecordIdle records the idle timer firing.
func (c *Collector) RecordIdle() {
	c.idles++
}

// ObserveActive tracks the peak number of simultaneously active waves.
func (c *Collector) ObserveActive(n int) {
	if n > c.peakActive {
		c.peakActive = n
	}
}

// ShouldFlush reports whether a full window has passed.
func (c *Collector) ShouldFlush(frame int) bool {
	return frame-c.windowStartFrame >= c.windowFrames
}

// Flush produces WindowStats ending at frame and resets the counters.
func (c *Collector) Flush(frame, active, points int) WindowStats {
	mean, p50, p90 := ComputeLifetimeStats(c.lifetimes)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   frame,
		Points:           points,
		ActiveWaves:      active,
		PeakActiveWaves:  c.peakActive,
		WeakSpawned:      c.weakSpawned,
		StrongSpawned:    c.strongSpawned,
		AutoSpawned:      c.autoSpawned,
		Expired:          c.expired,
		Interactions:     c.interactions,
		Idles:            c.idles,
		LifetimeMean:     mean,
		LifetimeP50:      p50,
		LifetimeP90:      p90,
	}

	c.windowStartFrame = frame
	c.weakSpawned = 0
	c.strongSpawned = 0
	c.autoSpawned = 0
	c.expired = 0
	c.interactions = 0
	c.idles = 0
	c.peakActive = active
	c.lifetimes = c.lifetimes[:0]

	return stats
}

// WindowFrames returns the number of frames per window.
func (c *Collector) WindowFrames() int {
	return c.windowFrames
}
