package easing

import (
	"math"
	"testing"
)

func TestEndpoints(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			fn, err := ByName(name)
			if err != nil {
				t.Fatalf("ByName(%q): %v", name, err)
			}
			if got := fn(0); math.Abs(got) > 1e-9 {
				t.Errorf("%s(0) = %v, want 0", name, got)
			}
			if got := fn(1); math.Abs(got-1) > 1e-9 {
				t.Errorf("%s(1) = %v, want 1", name, got)
			}
		})
	}
}

func TestMonotonic(t *testing.T) {
	for _, name := range Names() {
		fn, _ := ByName(name)
		prev := fn(0)
		for i := 1; i <= 100; i++ {
			v := fn(float64(i) / 100)
			if v < prev-1e-12 {
				t.Errorf("%s not monotonic at t=%.2f: %v < %v", name, float64(i)/100, v, prev)
				break
			}
			prev = v
		}
	}
}

func TestMidpoints(t *testing.T) {
	tests := []struct {
		name string
		fn   Func
		want float64
	}{
		{"linear", Linear, 0.5},
		{"in quad", InQuad, 0.25},
		{"out quad", OutQuad, 0.75},
		{"in out quad", InOutQuad, 0.5},
		{"in cubic", InCubic, 0.125},
		{"out cubic", OutCubic, 0.875},
		{"in out cubic", InOutCubic, 0.5},
		{"in quart", InQuart, 0.0625},
		{"out quart", OutQuart, 0.9375},
		{"in quint", InQuint, 0.03125},
		{"out quint", OutQuint, 0.96875},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(0.5); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("f(0.5) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, err := ByName("bounce"); err == nil {
		t.Error("expected error for unknown easing name")
	}
}
