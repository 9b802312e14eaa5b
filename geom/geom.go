// Package geom holds the small 2D helpers shared by the grid model and renderer.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Distance returns the Euclidean distance between (x1, y1) and (x2, y2).
func Distance(x1, y1, x2, y2 float64) float64 {
	return r2.Norm(r2.Sub(r2.Vec{X: x1, Y: y1}, r2.Vec{X: x2, Y: y2}))
}

// Angle returns the direction from (x1, y1) toward (x2, y2) in radians.
func Angle(x1, y1, x2, y2 float64) float64 {
	d := r2.Sub(r2.Vec{X: x2, Y: y2}, r2.Vec{X: x1, Y: y1})
	return math.Atan2(d.Y, d.X)
}

// AbsMax returns the larger of |a| and |b|.
func AbsMax(a, b float64) float64 {
	return math.Max(math.Abs(a), math.Abs(b))
}

// Clamp clamps v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 clamps v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Round adds one half and truncates toward zero, so pixel coordinates snap
// the same way on every frame.
func Round(v float64) float64 {
	return float64(int64(v + 0.5))
}

// RoundTo rounds v to the given number of decimals.
func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// Finite reports whether every value is neither NaN nor infinite.
func Finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
