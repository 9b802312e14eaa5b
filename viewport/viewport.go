// Package viewport maps host pointer coordinates onto the grid canvas.
package viewport

import "github.com/pthm-cable/gridwave/grid"

// Viewport places the canvas within the host's client coordinate space.
// Client units are whatever the host reports pointers in: logical window
// pixels, or terminal cells.
type Viewport struct {
	// Canvas origin in client coordinates
	Left, Top float64

	// Canvas size in client units
	Width, Height float64

	// Canvas pixels per client unit (device pixel ratio, or cell size)
	ScaleX, ScaleY float64
}

// New creates a viewport at the client origin with a uniform scale.
func New(width, height, dpr float64) *Viewport {
	if dpr <= 0 {
		dpr = 1
	}
	return &Viewport{Width: width, Height: height, ScaleX: dpr, ScaleY: dpr}
}

// NewCells creates a viewport for a character grid where each cell covers
// cellW x cellH canvas pixels.
func NewCells(cols, rows int, cellW, cellH float64) *Viewport {
	return &Viewport{
		Width:  float64(cols),
		Height: float64(rows),
		ScaleX: cellW,
		ScaleY: cellH,
	}
}

// ClientToCanvas converts a client position to canvas pixels.
func (v *Viewport) ClientToCanvas(cx, cy float64) (x, y float64) {
	return (cx - v.Left) * v.ScaleX, (cy - v.Top) * v.ScaleY
}

// CanvasToClient converts canvas pixels back to a client position.
func (v *Viewport) CanvasToClient(x, y float64) (cx, cy float64) {
	return v.Left + x/v.ScaleX, v.Top + y/v.ScaleY
}

// CellCenter returns the canvas position of the middle of client cell
// (col, row). Terminal hosts use it so a click lands mid-cell.
func (v *Viewport) CellCenter(col, row int) (x, y float64) {
	return v.ClientToCanvas(float64(col)+0.5, float64(row)+0.5)
}

// Contains reports whether a client position falls on the canvas.
func (v *Viewport) Contains(cx, cy float64) bool {
	return cx >= v.Left && cy >= v.Top && cx < v.Left+v.Width && cy < v.Top+v.Height
}

// Resize sets the client size and reports whether it changed.
func (v *Viewport) Resize(width, height float64) bool {
	if width == v.Width && height == v.Height {
		return false
	}
	v.Width = width
	v.Height = height
	return true
}

// Move sets the canvas origin in client coordinates.
func (v *Viewport) Move(left, top float64) {
	v.Left = left
	v.Top = top
}

// Dimensions returns the canvas size in canvas pixels.
func (v *Viewport) Dimensions() grid.Dimensions {
	return grid.Dimensions{Width: v.Width * v.ScaleX, Height: v.Height * v.ScaleY}
}
