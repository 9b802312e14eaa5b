// Package main searches grid and wave parameters with CMA-ES for a target
// ripple feel: how long a tap's wave lasts and how much of the grid it moves.
package main

import (
	"github.com/pthm-cable/gridwave/config"
	"github.com/pthm-cable/gridwave/geom"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name string  // Human-readable name
	Path string  // Config path for logging
	Min  float64 // Lower bound
	Max  float64 // Upper bound
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "crest_velocity", Path: "wave.crest_velocity", Min: 3, Max: 25},
			{Name: "crest_decay", Path: "wave.crest_decay", Min: 80, Max: 500},
			{Name: "strength_weak", Path: "wave.strength_weak", Min: 0.1, Max: 0.9},
			{Name: "position_resistance", Path: "grid.dot_position_resistance", Min: 0.01, Max: 0.2},
			{Name: "size_resistance", Path: "grid.dot_size_resistance", Min: 1, Max: 10},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = geom.Clamp(v[i], spec.Min, spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct. Order must
// match Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Wave.CrestVelocity = c[0]
	cfg.Wave.CrestDecay = c[1]
	cfg.Wave.StrengthWeak = c[2]
	cfg.Grid.DotPositionResistance = c[3]
	cfg.Grid.DotSizeResistance = c[4]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return pv.Clamp([]float64{
		cfg.Wave.CrestVelocity,
		cfg.Wave.CrestDecay,
		cfg.Wave.StrengthWeak,
		cfg.Grid.DotPositionResistance,
		cfg.Grid.DotSizeResistance,
	})
}
