package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridwave/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	State        string
	Theme        string
	Points       int
	Waves        int
	Frame        int
	FPS          int32
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the status line in the top-left corner.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	s := h.renderer.Style
	rl.DrawText(
		fmt.Sprintf("State: %s | Theme: %s", data.State, data.Theme),
		10, 10, s.HeaderFontSize, s.ValueColor,
	)
	rl.DrawText(
		fmt.Sprintf("Points: %d | Waves: %d | Frame: %d | FPS: %d", data.Points, data.Waves, data.Frame, data.FPS),
		10, 28, s.FontSize, s.LabelColor,
	)
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-22, h.renderer.Style.FontSize, rl.Gray)
}

// PerfPanel renders frame timing from the telemetry perf window.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

var perfPhases = []struct{ id, label string }{
	{telemetry.PhaseFieldUpdate, "Field"},
	{telemetry.PhaseWaveGrowth, "Waves"},
	{telemetry.PhaseDraw, "Draw"},
}

// Draw renders the performance panel. budget is the frame time target;
// ticks over budget are highlighted.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, budget time.Duration) {
	r := p.renderer
	pad := r.Style.Padding
	height := pad*2 + r.Style.LineHeight*int32(5+len(perfPhases)) + 2
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + pad
	y := r.DrawSectionHeader(x, p.y+pad, "Frame Timing")

	tick := fmt.Sprintf("%s avg / %s p95", stats.AvgTickDuration.Round(time.Microsecond), stats.P95TickDuration.Round(time.Microsecond))
	if budget > 0 && stats.P95TickDuration > budget {
		rl.DrawText(tick, x+r.Style.LabelWidth, y, r.Style.FontSize, r.Style.WarnColor)
		rl.DrawText("Tick:", x, y, r.Style.FontSize, r.Style.LabelColor)
		y += r.Style.LineHeight
	} else {
		y = r.DrawLabelValue(x, y, "Tick", tick)
	}
	y = r.DrawLabelValue(x, y, "Max", stats.MaxTickDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%.1f", stats.FPS))

	if budget > 0 {
		load := float64(stats.AvgTickDuration) / float64(budget)
		y = r.DrawBar(x, y, "Budget", load, 0.8, p.width-pad*2, "")
	}
	for _, ph := range perfPhases {
		pct := stats.PhasePct[ph.id]
		y = r.DrawBar(x, y, ph.label, pct/100, 0.5, p.width-pad*2, fmt.Sprintf("%.1f%%", pct))
	}
}
