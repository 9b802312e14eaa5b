package game

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridwave/ui"
	"github.com/pthm-cable/gridwave/viewport"
)

const controlsText = "Drag: ripple | T: theme | H: HUD | F11: fullscreen | Esc: quit"

// initGraphics sets up the raylib surface and overlay panels, then mounts.
func (g *Game) initGraphics() {
	g.surface = NewRaylibSurface(g.theme.BackgroundColor())
	g.view = viewport.New(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()), g.cfg.Screen.DPR)
	g.hud = ui.NewHUD()
	g.perf = ui.NewPerfPanel(int32(rl.GetScreenWidth())-290, 10, 280)
	g.ctrl.Mount(g.surface, g.view.Dimensions())
}

// Update handles input for the graphical host.
func (g *Game) Update() {
	g.handleInput()
}

// Draw runs due timers and the controller frame inside a raylib frame, then
// draws the overlays. Frames are skipped while the window is minimized.
func (g *Game) Draw() {
	now := time.Now()
	g.theme.Advance(now)
	g.surface.SetBackground(g.theme.BackgroundColor())

	rl.BeginDrawing()
	visible := !rl.IsWindowMinimized()
	g.rt.SetVisible(visible)
	if g.rt.Pump(visible) == 0 {
		rl.ClearBackground(rl.Color{R: 0, G: 0, B: 0, A: 255})
	}
	if g.showHUD {
		g.drawOverlays()
	}
	rl.EndDrawing()
}

func (g *Game) drawOverlays() {
	h := int32(rl.GetScreenHeight())
	g.hud.Draw(ui.HUDData{
		State:        g.ctrl.State().String(),
		Theme:        string(g.theme.Current()),
		Points:       len(g.ctrl.Points()),
		Waves:        len(g.ctrl.Waves()),
		Frame:        g.ctrl.Frames(),
		FPS:          rl.GetFPS(),
		ScreenWidth:  int32(rl.GetScreenWidth()),
		ScreenHeight: h,
	})
	budget := time.Duration(g.cfg.Telemetry.FrameBudgetMs * float64(time.Millisecond))
	g.perf.Draw(g.telemetry.Perf(), budget)
	g.hud.DrawControls(h, controlsText)
}
