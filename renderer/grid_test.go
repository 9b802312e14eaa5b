package renderer

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/pthm-cable/gridwave/easing"
	"github.com/pthm-cable/gridwave/grid"
)

func testParams() grid.Params {
	return grid.Params{
		DotBaseSize:   2,
		DotMaxSize:    7,
		TileSize:      32,
		CrestVelocity: 10,
		CrestDecay:    120,
		MaxOpacity:    0.2,
		DotSizeEasing: easing.Linear,
		CrestEasing:   easing.Linear,
		PercEasing:    easing.Linear,
		OpacityEasing: easing.Linear,
	}
}

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func TestDrawOrder(t *testing.T) {
	p := testParams()
	points := grid.BuildField(p, grid.Dimensions{Width: 96, Height: 64})
	waves := []grid.Wave{
		{X: 48, Y: 32, CrestRadius: 10, MaxRadius: 100, EasingRadius: 200, ShowHalo: true},
		{X: 10, Y: 10, CrestRadius: 10, MaxRadius: 100, EasingRadius: 200}, // weak, no halo
	}

	rec := &Recorder{}
	r := New(p)
	halos := r.Draw(rec, grid.Dimensions{Width: 96, Height: 64}, State{Points: points, Waves: waves, Color: white})

	if halos != 1 {
		t.Fatalf("halos = %d, want 1", halos)
	}
	kinds := make([]string, len(rec.Ops))
	for i, op := range rec.Ops {
		kinds[i] = op.Kind
	}
	want := []string{"clear", "color", "alpha", "rects", "alpha", "circle", "alpha"}
	if len(kinds) != len(want) {
		t.Fatalf("ops = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("ops = %v, want %v", kinds, want)
		}
	}

	if got := len(rec.Ops[3].Rects); got != len(points) {
		t.Errorf("batched %d rects, want %d", got, len(points))
	}
	circle := rec.Ops[5]
	if circle.X != 48 || circle.Y != 32 || circle.R != 5 {
		t.Errorf("circle = %+v, want center (48,32) r=5", circle)
	}
	// eased crest 5 over half easing radius 100 -> 0.2 * 0.95
	if got := rec.Ops[4].Alpha; got != 0.19 {
		t.Errorf("halo alpha = %v, want 0.19", got)
	}
	if rec.Ops[6].Alpha != 1 {
		t.Error("alpha not restored after halos")
	}
}

func TestPointRectsRoundToPixels(t *testing.T) {
	points := []grid.Point{
		{DisplayX: 29.6, DisplayY: 30.4, Size: 2},
		{DisplayX: 10, DisplayY: 10, Size: 3.5},
	}
	rects := PointRects(nil, points)

	if rects[0] != (Rect{X: 30, Y: 30, W: 2, H: 2}) {
		t.Errorf("rect 0 = %+v", rects[0])
	}
	if rects[1] != (Rect{X: 10, Y: 10, W: 4, H: 4}) {
		t.Errorf("rect 1 = %+v", rects[1])
	}
}

func TestHaloAlpha(t *testing.T) {
	p := testParams()
	tests := []struct {
		name   string
		wave   grid.Wave
		want   float64
		wantOK bool
	}{
		{"fresh", grid.Wave{ShowHalo: true, MaxRadius: 100, EasingRadius: 200}, 0.2, true},
		{"no halo", grid.Wave{MaxRadius: 100, EasingRadius: 200}, 0, false},
		{"past half radius", grid.Wave{ShowHalo: true, CrestRadius: 200, MaxRadius: 100, EasingRadius: 200}, 0, false},
		{"exactly half", grid.Wave{ShowHalo: true, CrestRadius: 100, MaxRadius: 200, EasingRadius: 200}, 0, false},
		{"nearly gone rounds to zero", grid.Wave{ShowHalo: true, CrestRadius: 99.9, MaxRadius: 200, EasingRadius: 200}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HaloAlpha(p, tt.wave)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("HaloAlpha = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestImageSurface(t *testing.T) {
	black := color.RGBA{A: 255}
	s := NewImageSurface(64, 64, black)
	if !s.Ready() {
		t.Fatal("surface not ready")
	}

	p := testParams()
	points := grid.BuildField(p, grid.Dimensions{Width: 64, Height: 64})
	waves := []grid.Wave{{X: 32, Y: 32, CrestRadius: 20, MaxRadius: 100, EasingRadius: 400, ShowHalo: true}}
	New(p).Draw(s, grid.Dimensions{Width: 64, Height: 64}, State{Points: points, Waves: waves, Color: white})

	img := s.Image()
	// Dot of the first tile covers (30,30)-(31,31).
	if c := img.RGBAAt(30, 30); c.R != 255 {
		t.Errorf("dot pixel = %+v, want white", c)
	}
	// Corner pixel is background.
	if c := img.RGBAAt(0, 0); c != black {
		t.Errorf("background pixel = %+v, want black", c)
	}
	// Inside the halo but off the dots: partially lit.
	if c := img.RGBAAt(34, 34); c.R == 0 || c.R == 255 {
		t.Errorf("halo pixel = %+v, want translucent fill", c)
	}

	var buf bytes.Buffer
	if err := s.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding png: %v", err)
	}
	if decoded.Bounds().Dx() != 64 {
		t.Errorf("decoded width = %d", decoded.Bounds().Dx())
	}
}

func TestRecorderDetached(t *testing.T) {
	rec := &Recorder{Detached: true}
	if rec.Ready() {
		t.Error("detached recorder reports ready")
	}
}
