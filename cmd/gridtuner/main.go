// Grid tuner - live preview of the wave grid with sliders for its parameters.
//
// Usage: go run ./cmd/gridtuner [-config path] [-out tuned.yaml]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/gridwave/clock"
	"github.com/pthm-cable/gridwave/config"
	"github.com/pthm-cable/gridwave/controller"
	"github.com/pthm-cable/gridwave/game"
	"github.com/pthm-cable/gridwave/viewport"
)

const (
	windowWidth  = 1040
	windowHeight = 720
	previewSize  = 560
	previewX     = 10
	previewY     = 10
	panelWidth   = windowWidth - previewSize - 40
)

// slider describes one tunable float parameter.
type slider struct {
	label    string
	value    *float64
	min, max float64
	format   string
}

// tuner owns the preview controller and rebuilds it when a parameter changes.
type tuner struct {
	cfg     *config.Config
	sched   *clock.Realtime
	surface *game.RaylibSurface
	view    *viewport.Viewport
	ctrl    *controller.Controller
	pressed bool
}

func (t *tuner) rebuild() {
	if t.ctrl != nil {
		t.ctrl.Unmount()
	}
	t.sched = clock.NewRealtime()
	t.ctrl = controller.New(t.cfg, t.sched,
		controller.WithRand(rand.New(rand.NewSource(1))),
		controller.WithLogger(slog.Default()),
	)
	t.ctrl.Mount(t.surface, t.view.Dimensions())
}

// pulse drops a strong wave at the preview center.
func (t *tuner) pulse() {
	d := t.ctrl.Dimensions()
	ev := controller.PointerEvent{X: d.Width / 2, Y: d.Height / 2}
	t.ctrl.PointerDown(ev)
	t.ctrl.PointerUp(ev)
}

func (t *tuner) handlePointer() {
	mouse := rl.GetMousePosition()
	mx, my := float64(mouse.X), float64(mouse.Y)
	x, y := t.view.ClientToCanvas(mx, my)
	ev := controller.PointerEvent{X: x, Y: y}

	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton) && t.view.Contains(mx, my):
		t.pressed = true
		t.ctrl.PointerDown(ev)
	case t.pressed && rl.IsMouseButtonReleased(rl.MouseLeftButton):
		t.pressed = false
		t.ctrl.PointerUp(ev)
	case t.pressed:
		t.ctrl.PointerMove(ev)
	}
}

func main() {
	configPath := flag.String("config", "", "Starting config (empty = defaults)")
	outPath := flag.String("out", "gridwave.yaml", "Where Save writes the tuned config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHeight, "Grid Tuner")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	target := rl.LoadRenderTexture(previewSize, previewSize)
	defer rl.UnloadRenderTexture(target)

	view := viewport.New(previewSize, previewSize, 1)
	view.Move(previewX, previewY)

	t := &tuner{
		cfg:     cfg,
		surface: game.NewRaylibSurface(rl.Black),
		view:    view,
	}
	t.rebuild()
	defer func() { t.ctrl.Unmount() }()

	sliders := []slider{
		{"Tile size (lattice spacing)", &cfg.Grid.TileSize, 12, 64, "%.0f"},
		{"Dot base size", &cfg.Grid.DotBaseSize, 1, 4, "%.1f"},
		{"Dot max size", &cfg.Grid.DotMaxSize, 4, 14, "%.1f"},
		{"Position resistance", &cfg.Grid.DotPositionResistance, 0, 0.3, "%.3f"},
		{"Size resistance", &cfg.Grid.DotSizeResistance, 0.5, 10, "%.1f"},
		{"Crest velocity (px/frame)", &cfg.Wave.CrestVelocity, 1, 30, "%.1f"},
		{"Crest decay (area of effect)", &cfg.Wave.CrestDecay, 50, 600, "%.0f"},
		{"Weak strength", &cfg.Wave.StrengthWeak, 0, 1, "%.2f"},
		{"Halo max opacity", &cfg.Wave.MaxOpacity, 0, 0.5, "%.2f"},
	}
	defaults := *cfg
	status := ""

	for !rl.WindowShouldClose() {
		t.handlePointer()

		rl.BeginTextureMode(target)
		t.sched.Pump(true)
		rl.EndTextureMode()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Render textures are stored upside down.
		rl.DrawTextureRec(
			target.Texture,
			rl.Rectangle{X: 0, Y: 0, Width: previewSize, Height: -previewSize},
			rl.Vector2{X: previewX, Y: previewY},
			rl.White,
		)
		rl.DrawRectangleLines(previewX, previewY, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewY + previewSize + 15)
		rl.DrawText(fmt.Sprintf("State: %s  Points: %d  Waves: %d",
			t.ctrl.State(), len(t.ctrl.Points()), len(t.ctrl.Waves())), 15, statsY, 16, rl.DarkGray)
		rl.DrawText("Click or drag in the preview to make waves", 15, statsY+22, 14, rl.Gray)

		// Control panel
		panelX := float32(previewX + previewSize + 20)
		panelY := float32(10)
		rl.DrawText("Grid Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		changed := false
		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				float32(*s.value), float32(s.min), float32(s.max),
			)
			rl.DrawText(fmt.Sprintf(s.format, *s.value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if v != float32(*s.value) {
				*s.value = float64(v)
				changed = true
			}
			panelY += 32
		}
		if cfg.Grid.DotMaxSize < cfg.Grid.DotBaseSize {
			cfg.Grid.DotMaxSize = cfg.Grid.DotBaseSize
		}
		if changed {
			t.rebuild()
		}
		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Pulse") {
			t.pulse()
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			*cfg = defaults
			t.rebuild()
			status = "reset to starting values"
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 250, Height: 30}, "Save "+*outPath) {
			if err := cfg.WriteYAML(*outPath); err != nil {
				slog.Error("save failed", "error", err)
				status = "save failed: " + err.Error()
			} else {
				slog.Info("config saved", "path", *outPath)
				status = "saved " + *outPath
			}
		}
		panelY += 45

		if status != "" {
			rl.DrawText(status, int32(panelX), int32(panelY), 14, rl.DarkGreen)
		}

		rl.DrawText("Press C to copy grid and wave YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.Gray)
		if rl.IsKeyPressed(rl.KeyC) {
			if text, err := sectionsYAML(cfg); err != nil {
				slog.Error("marshal failed", "error", err)
			} else {
				rl.SetClipboardText(text)
				status = "copied to clipboard"
			}
		}

		rl.EndDrawing()
	}
}

// sectionsYAML renders only the sections the tuner edits.
func sectionsYAML(cfg *config.Config) (string, error) {
	data, err := yaml.Marshal(struct {
		Grid config.GridConfig `yaml:"grid"`
		Wave config.WaveConfig `yaml:"wave"`
	}{cfg.Grid, cfg.Wave})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
