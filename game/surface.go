package game

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridwave/renderer"
)

var _ renderer.Surface = (*RaylibSurface)(nil)

// RaylibSurface draws into the current raylib frame. Calls must happen
// between rl.BeginDrawing and rl.EndDrawing.
type RaylibSurface struct {
	background rl.Color
	fill       rl.Color
	alpha      float32
}

// NewRaylibSurface creates a surface that clears to background.
func NewRaylibSurface(background color.RGBA) *RaylibSurface {
	return &RaylibSurface{background: toRL(background), alpha: 1}
}

func toRL(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// SetBackground sets the clear color.
func (s *RaylibSurface) SetBackground(c color.RGBA) {
	s.background = toRL(c)
}

// Ready reports whether the raylib window is open.
func (s *RaylibSurface) Ready() bool {
	return rl.IsWindowReady()
}

// Clear clears the whole frame; raylib has no partial clear.
func (s *RaylibSurface) Clear(width, height float64) {
	rl.ClearBackground(s.background)
}

// SetColor sets the fill color.
func (s *RaylibSurface) SetColor(c color.RGBA) {
	s.fill = toRL(c)
}

// SetAlpha sets the fill opacity.
func (s *RaylibSurface) SetAlpha(a float64) {
	s.alpha = float32(a)
}

// FillRects draws every rect. raylib batches consecutive shape draws into a
// single draw call.
func (s *RaylibSurface) FillRects(rects []renderer.Rect) {
	c := rl.Fade(s.fill, s.alpha)
	for _, r := range rects {
		rl.DrawRectangle(int32(r.X), int32(r.Y), int32(r.W), int32(r.H), c)
	}
}

// FillCircle draws a filled circle.
func (s *RaylibSurface) FillCircle(cx, cy, r float64) {
	rl.DrawCircleV(rl.Vector2{X: float32(cx), Y: float32(cy)}, float32(r), rl.Fade(s.fill, s.alpha))
}
