package renderer

import "image/color"

// Op is one recorded surface call.
type Op struct {
	Kind  string // clear, color, alpha, rects, circle
	Rects []Rect
	X, Y  float64
	R     float64
	Alpha float64
	Color color.RGBA
}

// Recorder is a Surface that records calls instead of drawing. Hosts use it
// as a stand-in before a real surface is attached, and tests inspect it.
type Recorder struct {
	Detached bool // When true, Ready reports false
	Ops      []Op
}

// Ready reports whether the recorder accepts draws.
func (r *Recorder) Ready() bool {
	return !r.Detached
}

// Clear records a clear.
func (r *Recorder) Clear(width, height float64) {
	r.Ops = append(r.Ops, Op{Kind: "clear", X: width, Y: height})
}

// SetColor records a color change.
func (r *Recorder) SetColor(c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: "color", Color: c})
}

// SetAlpha records an alpha change.
func (r *Recorder) SetAlpha(a float64) {
	r.Ops = append(r.Ops, Op{Kind: "alpha", Alpha: a})
}

// FillRects records a copy of the rect batch.
func (r *Recorder) FillRects(rects []Rect) {
	r.Ops = append(r.Ops, Op{Kind: "rects", Rects: append([]Rect(nil), rects...)})
}

// FillCircle records a circle fill.
func (r *Recorder) FillCircle(cx, cy, rad float64) {
	r.Ops = append(r.Ops, Op{Kind: "circle", X: cx, Y: cy, R: rad})
}

// Count returns how many ops of the given kind were recorded.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops recorded ops.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
