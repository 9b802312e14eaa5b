package viewport

import (
	"math"
	"testing"

	"github.com/pthm-cable/gridwave/grid"
)

func TestNew(t *testing.T) {
	v := New(1280, 720, 0)
	if v.ScaleX != 1 || v.ScaleY != 1 {
		t.Errorf("expected scale 1 for non-positive dpr, got (%f, %f)", v.ScaleX, v.ScaleY)
	}
	if d := v.Dimensions(); d != (grid.Dimensions{Width: 1280, Height: 720}) {
		t.Errorf("dimensions = %+v", d)
	}
}

func TestClientToCanvasWithDPR(t *testing.T) {
	v := New(640, 360, 2)
	v.Move(100, 50)

	x, y := v.ClientToCanvas(420, 230)
	if x != 640 || y != 360 {
		t.Errorf("expected canvas (640, 360), got (%f, %f)", x, y)
	}
	if d := v.Dimensions(); d.Width != 1280 || d.Height != 720 {
		t.Errorf("dimensions = %+v, want 1280x720", d)
	}
}

func TestCanvasClientRoundtrip(t *testing.T) {
	v := New(1280, 720, 1.5)
	v.Move(12, 34)

	testCases := []struct{ cx, cy float64 }{
		{12, 34},
		{640, 360},
		{1291, 753},
	}

	for _, tc := range testCases {
		x, y := v.ClientToCanvas(tc.cx, tc.cy)
		cx, cy := v.CanvasToClient(x, y)
		if math.Abs(cx-tc.cx) > 1e-9 || math.Abs(cy-tc.cy) > 1e-9 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)", tc.cx, tc.cy, x, y, cx, cy)
		}
	}
}

func TestContains(t *testing.T) {
	v := New(100, 50, 1)
	v.Move(10, 10)

	tests := []struct {
		name   string
		cx, cy float64
		want   bool
	}{
		{"origin", 10, 10, true},
		{"inside", 60, 30, true},
		{"right edge exclusive", 110, 30, false},
		{"above", 60, 9, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Contains(tt.cx, tt.cy); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.cx, tt.cy, got, tt.want)
			}
		})
	}
}

func TestCells(t *testing.T) {
	v := NewCells(80, 24, 8, 16)

	if d := v.Dimensions(); d.Width != 640 || d.Height != 384 {
		t.Errorf("dimensions = %+v, want 640x384", d)
	}
	x, y := v.CellCenter(2, 3)
	if x != 20 || y != 56 {
		t.Errorf("cell center = (%v, %v), want (20, 56)", x, y)
	}
}

func TestResize(t *testing.T) {
	v := New(100, 100, 1)
	if v.Resize(100, 100) {
		t.Error("resize to same size reported a change")
	}
	if !v.Resize(200, 100) {
		t.Error("resize not reported")
	}
	if v.Width != 200 {
		t.Errorf("width = %v", v.Width)
	}
}
