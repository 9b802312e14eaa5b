// Package grid models the dot lattice and the expanding waves that perturb it.
//
// Everything here is plain value data: points and waves are slices owned by
// the caller, and the relation cache holds precomputed point-to-wave geometry
// so the per-frame update avoids recomputing trigonometry.
package grid

import (
	"math"

	"github.com/pthm-cable/gridwave/config"
	"github.com/pthm-cable/gridwave/easing"
	"github.com/pthm-cable/gridwave/geom"
)

// Params caches the config values read on the per-frame hot path.
type Params struct {
	DotBaseSize           float64
	DotMaxSize            float64
	TileSize              float64
	DotPositionResistance float64
	DotSizeResistance     float64

	CrestVelocity         float64
	CrestDecay            float64
	StrengthStrong        float64
	StrengthWeak          float64
	StrongDecayMultiplier float64
	WeakDecayMultiplier   float64
	WeakAreaDivisor       float64
	MaxOpacity            float64

	DotSizeEasing easing.Func
	CrestEasing   easing.Func
	PercEasing    easing.Func
	OpacityEasing easing.Func
}

// ParamsFromConfig copies grid and wave settings out of a loaded config.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		DotBaseSize:           cfg.Grid.DotBaseSize,
		DotMaxSize:            cfg.Grid.DotMaxSize,
		TileSize:              cfg.Grid.TileSize,
		DotPositionResistance: cfg.Grid.DotPositionResistance,
		DotSizeResistance:     cfg.Grid.DotSizeResistance,
		CrestVelocity:         cfg.Wave.CrestVelocity,
		CrestDecay:            cfg.Wave.CrestDecay,
		StrengthStrong:        cfg.Wave.StrengthStrong,
		StrengthWeak:          cfg.Wave.StrengthWeak,
		StrongDecayMultiplier: cfg.Wave.StrongDecayMultiplier,
		WeakDecayMultiplier:   cfg.Wave.WeakDecayMultiplier,
		WeakAreaDivisor:       cfg.Wave.WeakAreaDivisor,
		MaxOpacity:            cfg.Wave.MaxOpacity,
		DotSizeEasing:         cfg.Derived.DotSizeEasing,
		CrestEasing:           cfg.Derived.CrestEasing,
		PercEasing:            cfg.Derived.PercEasing,
		OpacityEasing:         cfg.Derived.OpacityEasing,
	}
}

// Dimensions is the size of the drawing surface in canvas pixels.
type Dimensions struct {
	Width, Height float64
}

// Cols returns the number of lattice columns that fit the width.
func (d Dimensions) Cols(tileSize float64) int {
	if tileSize <= 0 || d.Width <= 0 {
		return 0
	}
	return int(math.Floor(d.Width / tileSize))
}

// Rows returns the number of lattice rows that fit the height.
func (d Dimensions) Rows(tileSize float64) int {
	if tileSize <= 0 || d.Height <= 0 {
		return 0
	}
	return int(math.Floor(d.Height / tileSize))
}

// Diagonal returns the length of the canvas diagonal.
func (d Dimensions) Diagonal() float64 {
	return math.Hypot(d.Width, d.Height)
}

// FurthestCornerDistance returns the distance from (x, y) to the canvas
// corner farthest from it.
func (d Dimensions) FurthestCornerDistance(x, y float64) float64 {
	maxX := geom.AbsMax(x, x-d.Width)
	maxY := geom.AbsMax(y, y-d.Height)
	return math.Sqrt(maxX*maxX + maxY*maxY)
}

// Center returns the canvas center.
func (d Dimensions) Center() (x, y float64) {
	return d.Width / 2, d.Height / 2
}

// Contains reports whether (x, y) lies on the canvas.
func (d Dimensions) Contains(x, y float64) bool {
	return x >= 0 && y >= 0 && x <= d.Width && y <= d.Height
}
