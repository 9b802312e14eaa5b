// Package game hosts the grid controller in a raylib window, or headless on a
// virtual clock with an in-memory image surface.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/pthm-cable/gridwave/clock"
	"github.com/pthm-cable/gridwave/config"
	"github.com/pthm-cable/gridwave/controller"
	"github.com/pthm-cable/gridwave/grid"
	"github.com/pthm-cable/gridwave/renderer"
	"github.com/pthm-cable/gridwave/telemetry"
	"github.com/pthm-cable/gridwave/theme"
	"github.com/pthm-cable/gridwave/ui"
	"github.com/pthm-cable/gridwave/viewport"
)

// Game holds the controller and everything the host wires around it.
type Game struct {
	cfg    *config.Config
	opts   Options
	logger *slog.Logger

	ctrl      *controller.Controller
	theme     *theme.Theme
	telemetry *telemetry.Recorder
	output    *telemetry.OutputManager

	// Graphical host
	rt      *clock.Realtime
	surface *RaylibSurface
	view    *viewport.Viewport
	hud     *ui.HUD
	perf    *ui.PerfPanel
	showHUD bool
	pressed bool

	// Headless host
	manual *clock.Manual
	image  *renderer.ImageSurface
	step   time.Duration
}

// NewTelemetry creates the telemetry recorder and, when dir is set, the CSV
// output manager with a snapshot of cfg. Shared by every host.
func NewTelemetry(cfg *config.Config, dir string, logStats bool, logger *slog.Logger) (*telemetry.Recorder, *telemetry.OutputManager, error) {
	var output *telemetry.OutputManager
	if dir != "" {
		var err error
		output, err = telemetry.NewOutputManager(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("creating output manager: %w", err)
		}
		if err := output.WriteConfig(cfg); err != nil {
			output.Close()
			return nil, nil, fmt.Errorf("writing config snapshot: %w", err)
		}
		logger.Info("output directory", "path", output.Dir())
	}
	rec := telemetry.NewRecorder(cfg.Telemetry, telemetry.RecorderOptions{
		Output:   output,
		Logger:   logger,
		LogStats: logStats,
	})
	return rec, output, nil
}

// NewGameWithOptions creates a game and mounts the controller. Graphical games
// must be created after the raylib window is open.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fps := cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = defaultFPS
	}

	th, err := theme.New(cfg.Theme, fps)
	if err != nil {
		return nil, fmt.Errorf("creating theme: %w", err)
	}
	rec, output, err := NewTelemetry(cfg, opts.OutputDir, opts.LogStats, logger)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:       cfg,
		opts:      opts,
		logger:    logger,
		theme:     th,
		telemetry: rec,
		output:    output,
		showHUD:   true,
	}

	var sched clock.Scheduler
	if opts.Headless {
		g.manual = clock.NewManual(time.Unix(0, 0))
		g.step = time.Second / time.Duration(fps)
		sched = g.manual
	} else {
		g.rt = clock.NewRealtime()
		sched = g.rt
	}

	g.ctrl = controller.New(cfg, sched,
		controller.WithRand(rand.New(rand.NewSource(opts.Seed))),
		controller.WithLogger(logger),
		controller.WithTelemetry(rec),
		controller.WithCallbacks(controller.Callbacks{
			OnReady:            func() { logger.Info("first frame drawn") },
			OnInteractionStart: func() { logger.Debug("interaction started") },
			OnIdle:             func() { logger.Debug("idle, auto pulsing") },
		}),
	)
	g.ctrl.SetColorSource(th)

	if opts.Headless {
		g.image = renderer.NewImageSurface(cfg.Screen.Width, cfg.Screen.Height, th.BackgroundColor())
		g.ctrl.Mount(g.image, grid.Dimensions{
			Width:  float64(cfg.Screen.Width),
			Height: float64(cfg.Screen.Height),
		})
	} else {
		g.initGraphics()
	}

	logger.Info("grid mounted",
		"headless", opts.Headless,
		"points", len(g.ctrl.Points()),
		"width", g.ctrl.Dimensions().Width,
		"height", g.ctrl.Dimensions().Height,
	)
	return g, nil
}

// Controller returns the mounted controller.
func (g *Game) Controller() *controller.Controller {
	return g.ctrl
}

// Theme returns the active theme.
func (g *Game) Theme() *theme.Theme {
	return g.theme
}

// Frame returns the number of frames the controller has run.
func (g *Game) Frame() int {
	return g.ctrl.Frames()
}

// UpdateHeadless advances the virtual clock by one frame.
func (g *Game) UpdateHeadless() {
	g.theme.Advance(g.manual.Now())
	g.image.SetBackground(g.theme.BackgroundColor())
	g.manual.Step(g.step)
}

// Snapshot writes the headless frame as a PNG.
func (g *Game) Snapshot(path string) error {
	if g.image == nil {
		return errors.New("snapshot: only available headless")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	if err := g.image.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing snapshot: %w", err)
	}
	g.logger.Info("snapshot written", "path", path, "frame", g.Frame())
	return nil
}

// Unload unmounts the controller and closes telemetry output.
func (g *Game) Unload() {
	g.ctrl.Unmount()
	if err := g.output.Close(); err != nil {
		g.logger.Error("closing output", "error", err)
	}
}
