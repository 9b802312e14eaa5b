// Package renderer draws the dot grid and wave halos onto a drawing surface.
package renderer

import (
	"image/color"

	"github.com/pthm-cable/gridwave/geom"
	"github.com/pthm-cable/gridwave/grid"
)

// Rect is an axis-aligned rectangle in whole canvas pixels.
type Rect struct {
	X, Y, W, H float64
}

// Surface is the 2D drawing target the renderer paints onto.
type Surface interface {
	// Ready reports whether the surface is attached and drawable.
	Ready() bool
	// Clear wipes the given area back to the surface background.
	Clear(width, height float64)
	// SetColor sets the fill color for subsequent fills.
	SetColor(c color.RGBA)
	// SetAlpha sets the global opacity in [0, 1] for subsequent fills.
	SetAlpha(a float64)
	// FillRects fills all rects in one batch.
	FillRects(rects []Rect)
	// FillCircle fills a circle centered at (cx, cy).
	FillCircle(cx, cy, r float64)
}

// State is everything one frame draws.
type State struct {
	Points []grid.Point
	Waves  []grid.Wave
	Color  color.RGBA
}

// Renderer turns grid state into surface calls. It keeps a rect buffer
// between frames; otherwise the output depends only on its inputs.
type Renderer struct {
	params grid.Params
	rects  []Rect
}

// New creates a renderer for the given grid parameters.
func New(p grid.Params) *Renderer {
	return &Renderer{params: p}
}

// Draw clears the surface, fills every point as one batch of squares and
// then fills the halo of each strong wave that is still visible. It returns
// the number of halos drawn.
func (r *Renderer) Draw(s Surface, dims grid.Dimensions, st State) int {
	s.Clear(dims.Width, dims.Height)
	s.SetColor(st.Color)
	s.SetAlpha(1)

	r.rects = PointRects(r.rects[:0], st.Points)
	s.FillRects(r.rects)

	halos := 0
	for i := range st.Waves {
		w := &st.Waves[i]
		alpha, ok := HaloAlpha(r.params, *w)
		if !ok {
			continue
		}
		s.SetAlpha(alpha)
		s.FillCircle(w.X, w.Y, w.EasedCrest(r.params))
		halos++
	}
	s.SetAlpha(1)
	return halos
}

// PointRects appends one whole-pixel square per point to dst.
func PointRects(dst []Rect, points []grid.Point) []Rect {
	for i := range points {
		p := &points[i]
		x0 := geom.Round(p.DisplayX)
		y0 := geom.Round(p.DisplayY)
		x1 := geom.Round(p.DisplayX + p.Size)
		y1 := geom.Round(p.DisplayY + p.Size)
		dst = append(dst, Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0})
	}
	return dst
}

// HaloAlpha returns the opacity of w's halo and whether it should be drawn.
// Halos fade out as the eased crest approaches half the easing radius and
// are not drawn past it. The alpha is rounded to three decimals so the last
// frames do not flash.
func HaloAlpha(p grid.Params, w grid.Wave) (float64, bool) {
	if !w.ShowHalo || w.EasingRadius <= 0 {
		return 0, false
	}
	halfCrest := w.EasedCrest(p) / (w.EasingRadius / 2)
	if halfCrest >= 1 {
		return 0, false
	}
	alpha := geom.RoundTo(p.MaxOpacity*p.OpacityEasing(1-halfCrest), 3)
	alpha = geom.Clamp01(alpha)
	if alpha <= 0 {
		return 0, false
	}
	return alpha, true
}
