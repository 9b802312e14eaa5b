package game

import "log/slog"

// Options configures a Game.
type Options struct {
	Seed      int64  // RNG seed for pulse jitter and positions
	LogStats  bool   // Log wave window stats at info level
	OutputDir string // CSV and config snapshot directory (empty = disabled)
	Headless  bool   // Render into an in-memory image on a virtual clock
	Logger    *slog.Logger
}

// Frame duration used by headless runs when the config has no target FPS.
const defaultFPS = 60
