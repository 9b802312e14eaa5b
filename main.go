package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridwave/clock"
	"github.com/pthm-cable/gridwave/config"
	"github.com/pthm-cable/gridwave/controller"
	"github.com/pthm-cable/gridwave/game"
	"github.com/pthm-cable/gridwave/term"
	"github.com/pthm-cable/gridwave/theme"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	backend := flag.String("backend", "raylib", "Host: raylib, term or headless")
	logStats := flag.Bool("log-stats", false, "Output wave and perf window stats via slog")
	logFile := flag.String("log-file", "", "Write logs to this file instead of stdout")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshot := flag.String("snapshot", "", "Headless: write the last frame to this PNG")
	themeState := flag.String("theme-state", "", "File that persists the theme choice (overrides config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited; headless defaults to 600)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *themeState != "" {
		cfg.Theme.StateFile = *themeState
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// JSON logs to stdout, except in the terminal host where they would
	// overwrite the grid.
	var out io.Writer = os.Stdout
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			slog.Error("failed to open log file", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	} else if *backend == "term" {
		out = io.Discard
	}
	logger := slog.New(slog.NewJSONHandler(out, nil))
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		Headless:  *backend == "headless",
		Logger:    logger,
	}

	var err error
	switch *backend {
	case "raylib":
		err = runRaylib(cfg, opts, *maxFrames)
	case "headless":
		err = runHeadless(cfg, opts, *maxFrames, *snapshot)
	case "term":
		err = runTerminal(cfg, opts, *maxFrames)
	default:
		err = fmt.Errorf("unknown backend %q", *backend)
	}
	if err != nil {
		logger.Error("run failed", "backend", *backend, "error", err)
		os.Exit(1)
	}
}

func runRaylib(cfg *config.Config, opts game.Options, maxFrames int) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Grid Wave")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(rl.KeyEscape)

	g, err := game.NewGameWithOptions(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxFrames > 0 && g.Frame() >= maxFrames {
			slog.Info("max frames reached", "frame", g.Frame())
			break
		}
	}
	return nil
}

func runHeadless(cfg *config.Config, opts game.Options, maxFrames int, snapshot string) error {
	if maxFrames <= 0 {
		maxFrames = 600
	}
	g, err := game.NewGameWithOptions(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting headless run",
		"seed", opts.Seed,
		"max_frames", maxFrames,
		"width", cfg.Screen.Width,
		"height", cfg.Screen.Height,
	)
	for g.Frame() < maxFrames {
		g.UpdateHeadless()
	}
	slog.Info("max frames reached", "frame", g.Frame(), "waves", len(g.Controller().Waves()))

	if snapshot != "" {
		return g.Snapshot(snapshot)
	}
	return nil
}

func runTerminal(cfg *config.Config, opts game.Options, maxFrames int) error {
	th, err := theme.New(cfg.Theme, cfg.Screen.TargetFPS)
	if err != nil {
		return fmt.Errorf("creating theme: %w", err)
	}
	rec, output, err := game.NewTelemetry(cfg, opts.OutputDir, opts.LogStats, opts.Logger)
	if err != nil {
		return err
	}
	defer output.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}

	sched := clock.NewRealtime()
	ctrl := controller.New(cfg, sched,
		controller.WithRand(rand.New(rand.NewSource(opts.Seed))),
		controller.WithLogger(opts.Logger),
		controller.WithTelemetry(rec),
	)
	app := term.NewApp(screen, ctrl, sched, term.Options{
		FPS:       cfg.Screen.TargetFPS,
		MaxFrames: maxFrames,
		Theme:     th,
		Logger:    opts.Logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return app.Run(ctx)
}
