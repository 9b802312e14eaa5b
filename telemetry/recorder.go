// Package telemetry measures the grid loop: per-phase frame timing, wave and
// interaction counts per window, and optional CSV output.
package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/gridwave/config"
	"github.com/pthm-cable/gridwave/grid"
)

// Recorder is the single telemetry sink the controller reports into. A nil
// *Recorder is valid and records nothing.
type Recorder struct {
	perf      *PerfCollector
	collector *Collector
	output    *OutputManager
	logger    *slog.Logger

	logStats    bool
	budget      time.Duration
	frame       int
	lastOverrun int
	overruns    int
	lastPerf    PerfStats
	lastWindow  WindowStats
	haveWindow  bool
}

// RecorderOptions configures a Recorder.
type RecorderOptions struct {
	Output   *OutputManager // nil disables CSV output
	Logger   *slog.Logger   // nil uses slog.Default()
	LogStats bool           // log window stats at info level
}

// NewRecorder creates a recorder using the telemetry section of cfg.
func NewRecorder(cfg config.TelemetryConfig, opts RecorderOptions) *Recorder {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		perf:        NewPerfCollector(cfg.PerfWindow),
		collector:   NewCollector(cfg.StatsWindow),
		output:      opts.Output,
		logger:      logger,
		logStats:    opts.LogStats,
		budget:      time.Duration(cfg.FrameBudgetMs * float64(time.Millisecond)),
		lastOverrun: -cfg.PerfWindow,
	}
}

// StartFrame begins timing a frame.
func (r *Recorder) StartFrame() {
	if r == nil {
		return
	}
	r.perf.RecordFrame()
	r.perf.StartTick()
}

// Phase marks the start of a named phase within the current frame.
func (r *Recorder) Phase(name string) {
	if r == nil {
		return
	}
	r.perf.StartPhase(name)
}

// EndFrame finishes the frame. Slow frames are logged at warn, at most once
// per perf window. When a stats window completes, it is logged and written.
func (r *Recorder) EndFrame(activeWaves, points int) {
	if r == nil {
		return
	}
	d := r.perf.EndTick()
	r.frame++
	r.collector.ObserveActive(activeWaves)

	if r.budget > 0 && d > r.budget {
		r.overruns++
		if r.frame-r.lastOverrun >= r.perf.windowSize {
			r.logger.Warn("frame over budget",
				"frame", r.frame,
				"duration_us", d.Microseconds(),
				"budget_us", r.budget.Microseconds(),
				"overruns", r.overruns,
			)
			r.lastOverrun = r.frame
			r.overruns = 0
		}
	}

	if !r.collector.ShouldFlush(r.frame) {
		return
	}
	r.lastWindow = r.collector.Flush(r.frame, activeWaves, points)
	r.lastPerf = r.perf.Stats()
	r.haveWindow = true

	if r.logStats {
		r.logger.Info("window", "waves", r.lastWindow, "perf", r.lastPerf)
	}
	if err := r.output.WriteWaves(r.lastWindow); err != nil {
		r.logger.Error("telemetry write failed", "error", err)
	}
	if err := r.output.WritePerf(r.lastPerf, r.frame); err != nil {
		r.logger.Error("telemetry write failed", "error", err)
	}
}

// WaveSpawned records a new wave of the given kind.
func (r *Recorder) WaveSpawned(kind grid.WaveKind) {
	if r == nil {
		return
	}
	r.collector.RecordSpawn(kind)
}

// WaveExpired records a wave that expired after lifetimeFrames frames.
func (r *Recorder) WaveExpired(lifetimeFrames int) {
	if r == nil {
		return
	}
	r.collector.RecordExpire(lifetimeFrames)
}

// Interaction records the start of a pointer interaction.
func (r *Recorder) Interaction() {
	if r == nil {
		return
	}
	r.collector.RecordInteraction()
}

// Idle records the idle timer firing.
func (r *Recorder) Idle() {
	if r == nil {
		return
	}
	r.collector.RecordIdle()
}

// Frames returns the number of frames recorded.
func (r *Recorder) Frames() int {
	if r == nil {
		return 0
	}
	return r.frame
}

// Perf returns the current rolling perf stats.
func (r *Recorder) Perf() PerfStats {
	if r == nil {
		return PerfStats{}
	}
	return r.perf.Stats()
}

// LastWindow returns the most recently flushed window, if any.
func (r *Recorder) LastWindow() (WindowStats, bool) {
	if r == nil {
		return WindowStats{}, false
	}
	return r.lastWindow, r.haveWindow
}
