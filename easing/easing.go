// Package easing provides curves that map normalized progress in [0, 1]
// to an eased output, used to shape how wave effects ramp in and out.
package easing

import (
	"fmt"
	"sort"
)

// Func maps a normalized progress value to an eased value.
type Func func(t float64) float64

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return t
}

// InQuad accelerates from zero velocity.
func InQuad(t float64) float64 {
	return t * t
}

// OutQuad decelerates to zero velocity.
func OutQuad(t float64) float64 {
	return t * (2 - t)
}

// InOutQuad accelerates until halfway, then decelerates.
func InOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// InCubic accelerates from zero velocity.
func InCubic(t float64) float64 {
	return t * t * t
}

// OutCubic decelerates to zero velocity.
func OutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}

// InOutCubic accelerates until halfway, then decelerates.
func InOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return (t-1)*(2*t-2)*(2*t-2) + 1
}

// InQuart accelerates from zero velocity.
func InQuart(t float64) float64 {
	return t * t * t * t
}

// OutQuart decelerates to zero velocity.
func OutQuart(t float64) float64 {
	t--
	return 1 - t*t*t*t
}

// InOutQuart accelerates until halfway, then decelerates.
func InOutQuart(t float64) float64 {
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	t--
	return 1 - 8*t*t*t*t
}

// InQuint accelerates from zero velocity.
func InQuint(t float64) float64 {
	return t * t * t * t * t
}

// OutQuint decelerates to zero velocity.
func OutQuint(t float64) float64 {
	t--
	return 1 + t*t*t*t*t
}

// InOutQuint accelerates until halfway, then decelerates.
func InOutQuint(t float64) float64 {
	if t < 0.5 {
		return 16 * t * t * t * t * t
	}
	t--
	return 1 + 16*t*t*t*t*t
}

// registry maps config names to curves.
var registry = map[string]Func{
	"linear":            Linear,
	"ease_in_quad":      InQuad,
	"ease_out_quad":     OutQuad,
	"ease_in_out_quad":  InOutQuad,
	"ease_in_cubic":     InCubic,
	"ease_out_cubic":    OutCubic,
	"ease_in_out_cubic": InOutCubic,
	"ease_in_quart":     InQuart,
	"ease_out_quart":    OutQuart,
	"ease_in_out_quart": InOutQuart,
	"ease_in_quint":     InQuint,
	"ease_out_quint":    OutQuint,
	"ease_in_out_quint": InOutQuint,
}

// ByName looks up an easing curve by its config name (e.g. "ease_out_quad").
func ByName(name string) (Func, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing function %q", name)
	}
	return fn, nil
}

// Names returns all registered curve names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
