package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridwave/controller"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		g.showHUD = !g.showHUD
	}
	if rl.IsKeyPressed(rl.KeyT) {
		if err := g.theme.Toggle(); err != nil {
			g.logger.Error("theme toggle failed", "error", err)
		}
	}

	g.handlePointer()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	if !g.view.Resize(w, h) {
		return
	}
	g.ctrl.Resize(g.view.Dimensions())
	g.perf.SetPosition(int32(w)-290, 10)
}

// handlePointer maps the left mouse button onto controller pointer events.
// A press that leaves the window is released when the button comes up.
func (g *Game) handlePointer() {
	mouse := rl.GetMousePosition()
	x, y := g.view.ClientToCanvas(float64(mouse.X), float64(mouse.Y))
	ev := controller.PointerEvent{X: x, Y: y}

	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		if !g.view.Contains(float64(mouse.X), float64(mouse.Y)) {
			return
		}
		g.pressed = true
		g.ctrl.PointerDown(ev)
	case g.pressed && rl.IsMouseButtonReleased(rl.MouseLeftButton):
		g.pressed = false
		g.ctrl.PointerUp(ev)
	case g.pressed && rl.IsMouseButtonDown(rl.MouseLeftButton):
		if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
			g.ctrl.PointerMove(ev)
		}
	}
}
