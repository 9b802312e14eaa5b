// Package term hosts the grid in a terminal. Each character cell stands for
// a block of canvas pixels; dots become small glyphs and halos tint the cell
// background.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/gridwave/renderer"
)

// Glyphs by dot area covered in a cell, in canvas px².
var glyphs = []struct {
	minArea float64
	r       rune
}{
	{25, '●'},
	{9, '•'},
	{0.5, '·'},
}

// Surface is a renderer.Surface that accumulates one frame in a cell buffer
// and writes it to a tcell screen on Flush.
type Surface struct {
	screen       tcell.Screen
	cellW, cellH float64
	cols, rows   int

	dots []float64 // Dot area per cell
	halo []float64 // Halo opacity per cell

	fill  color.RGBA
	bg    color.RGBA
	alpha float64
	dirty bool
}

// NewSurface creates a surface over screen where each cell covers
// cellW x cellH canvas pixels. Call Resize before drawing.
func NewSurface(screen tcell.Screen, cellW, cellH float64) *Surface {
	return &Surface{
		screen: screen,
		cellW:  cellW,
		cellH:  cellH,
		alpha:  1,
		bg:     color.RGBA{A: 255},
	}
}

// Resize sets the cell grid size.
func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = cols, rows
	n := max(cols*rows, 0)
	s.dots = make([]float64, n)
	s.halo = make([]float64, n)
}

// SetBackground sets the color empty cells are drawn with.
func (s *Surface) SetBackground(c color.RGBA) {
	s.bg = c
}

// Ready reports whether the surface has a screen and a non-empty grid.
func (s *Surface) Ready() bool {
	return s.screen != nil && s.cols > 0 && s.rows > 0
}

// Clear empties the cell buffer.
func (s *Surface) Clear(width, height float64) {
	clear(s.dots)
	clear(s.halo)
	s.dirty = true
}

// SetColor sets the dot color.
func (s *Surface) SetColor(c color.RGBA) {
	s.fill = c
}

// SetAlpha sets the opacity for subsequent fills.
func (s *Surface) SetAlpha(a float64) {
	s.alpha = a
}

func (s *Surface) cell(x, y float64) (int, bool) {
	col := int(math.Floor(x / s.cellW))
	row := int(math.Floor(y / s.cellH))
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return 0, false
	}
	return row*s.cols + col, true
}

// FillRects adds each rect's area to the cell holding its center.
func (s *Surface) FillRects(rects []renderer.Rect) {
	for _, r := range rects {
		if i, ok := s.cell(r.X+r.W/2, r.Y+r.H/2); ok {
			s.dots[i] += r.W * r.H * s.alpha
		}
	}
}

// FillCircle tints every cell whose center lies inside the circle.
func (s *Surface) FillCircle(cx, cy, r float64) {
	if r <= 0 {
		return
	}
	c0 := max(int(math.Floor((cx-r)/s.cellW)), 0)
	c1 := min(int(math.Ceil((cx+r)/s.cellW)), s.cols-1)
	r0 := max(int(math.Floor((cy-r)/s.cellH)), 0)
	r1 := min(int(math.Ceil((cy+r)/s.cellH)), s.rows-1)

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			x := (float64(col) + 0.5) * s.cellW
			y := (float64(row) + 0.5) * s.cellH
			if math.Hypot(x-cx, y-cy) > r {
				continue
			}
			i := row*s.cols + col
			s.halo[i] = 1 - (1-s.halo[i])*(1-s.alpha)
		}
	}
}

// Flush writes the buffered frame to the screen and shows it. It does
// nothing if no frame was drawn since the last flush.
func (s *Surface) Flush() bool {
	if !s.dirty || !s.Ready() {
		return false
	}
	s.dirty = false

	fg, _ := colorful.MakeColor(s.fill)
	bg, _ := colorful.MakeColor(s.bg)
	base := tcell.StyleDefault.Background(toTcell(bg))

	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			i := row*s.cols + col
			style := base
			if h := s.halo[i]; h > 0 {
				style = style.Background(toTcell(bg.BlendRgb(fg, h)))
			}
			s.screen.SetContent(col, row, glyphFor(s.dots[i]), nil, style.Foreground(toTcell(fg)))
		}
	}
	s.screen.Show()
	return true
}

func glyphFor(area float64) rune {
	for _, g := range glyphs {
		if area >= g.minArea {
			return g.r
		}
	}
	return ' '
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
