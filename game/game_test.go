package game

import (
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/gridwave/config"
	"github.com/pthm-cable/gridwave/controller"
	"github.com/pthm-cable/gridwave/grid"
)

func newHeadless(t *testing.T, dir string) *Game {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Screen.Width = 320
	cfg.Screen.Height = 240
	cfg.Telemetry.StatsWindow = 60

	g, err := NewGameWithOptions(cfg, Options{
		Seed:      1,
		OutputDir: dir,
		Headless:  true,
		Logger:    slog.New(slog.DiscardHandler),
	})
	if err != nil {
		t.Fatalf("creating headless game: %v", err)
	}
	return g
}

func TestHeadlessMountsGrid(t *testing.T) {
	g := newHeadless(t, "")
	defer g.Unload()

	if n := len(g.Controller().Points()); n == 0 {
		t.Fatal("no points built")
	}
	if d := g.Controller().Dimensions(); d != (grid.Dimensions{Width: 320, Height: 240}) {
		t.Errorf("dimensions = %+v", d)
	}
}

func TestHeadlessIdleAutoPulses(t *testing.T) {
	g := newHeadless(t, "")
	defer g.Unload()

	// Idle after 3s, first pulse within a further 3.5s.
	for i := 0; i < 60*7; i++ {
		g.UpdateHeadless()
	}
	if g.Frame() != 420 {
		t.Errorf("frames = %d, want 420", g.Frame())
	}
	if g.Controller().State() != controller.AutoPulsing {
		t.Errorf("state = %v, want auto_pulsing", g.Controller().State())
	}
	stats, ok := g.telemetry.LastWindow()
	if !ok {
		t.Fatal("no telemetry window flushed")
	}
	if stats.WindowEndFrame != 420 || stats.Points != len(g.Controller().Points()) {
		t.Errorf("last window = %+v", stats)
	}
}

func TestSnapshotAndOutput(t *testing.T) {
	dir := t.TempDir()
	g := newHeadless(t, dir)

	for i := 0; i < 120; i++ {
		g.UpdateHeadless()
	}
	path := filepath.Join(dir, "frame.png")
	if err := g.Snapshot(path); err != nil {
		t.Fatal(err)
	}
	g.Unload()

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("snapshot size = %v", b)
	}

	for _, name := range []string{"config.yaml", "perf.csv", "waves.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot does not load: %v", err)
	}
}

func TestSnapshotRequiresHeadless(t *testing.T) {
	g := &Game{}
	if err := g.Snapshot(filepath.Join(t.TempDir(), "x.png")); err == nil {
		t.Error("expected error without an image surface")
	}
}
