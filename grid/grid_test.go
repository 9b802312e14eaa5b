package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/gridwave/config"
	"github.com/pthm-cable/gridwave/easing"
)

// testParams uses linear curves so expected values are easy to derive.
func testParams() Params {
	return Params{
		DotBaseSize:           2,
		DotMaxSize:            7,
		TileSize:              32,
		DotPositionResistance: 0.1,
		DotSizeResistance:     4,
		CrestVelocity:         10,
		CrestDecay:            120,
		StrengthStrong:        1,
		StrengthWeak:          0.5,
		StrongDecayMultiplier: 1.5,
		WeakDecayMultiplier:   1,
		WeakAreaDivisor:       6,
		MaxOpacity:            0.2,
		DotSizeEasing:         easing.Linear,
		CrestEasing:           easing.Linear,
		PercEasing:            easing.Linear,
		OpacityEasing:         easing.Linear,
	}
}

func TestParamsFromDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	p := ParamsFromConfig(cfg)
	if p.TileSize != cfg.Grid.TileSize || p.CrestDecay != cfg.Wave.CrestDecay {
		t.Errorf("params not copied from config: %+v", p)
	}
	if p.CrestEasing == nil || p.PercEasing == nil {
		t.Error("easing functions not carried over")
	}
}

func TestBuildFieldScenario320(t *testing.T) {
	p := testParams()
	points := BuildField(p, Dimensions{Width: 320, Height: 320})

	if len(points) != 100 {
		t.Fatalf("expected 100 points, got %d", len(points))
	}
	for i, pt := range points {
		if pt.Size != p.DotBaseSize {
			t.Errorf("point %d size = %v, want %v", i, pt.Size, p.DotBaseSize)
		}
		if pt.DisplayX != pt.OriginX || pt.DisplayY != pt.OriginY {
			t.Errorf("point %d display (%v,%v) != origin (%v,%v)", i, pt.DisplayX, pt.DisplayY, pt.OriginX, pt.OriginY)
		}
	}

	// First dot sits at the bottom-right of the first tile.
	if points[0].OriginX != 30 || points[0].OriginY != 30 {
		t.Errorf("first point at (%v,%v), want (30,30)", points[0].OriginX, points[0].OriginY)
	}
}

func TestBuildFieldCountFormula(t *testing.T) {
	p := testParams()
	tests := []struct {
		w, h float64
		want int
	}{
		{0, 0, 0},
		{31, 500, 0},
		{32, 32, 1},
		{100, 70, 3 * 2},
		{1280, 800, 40 * 25},
		{1919, 1079, 59 * 33},
	}
	for _, tt := range tests {
		got := len(BuildField(p, Dimensions{Width: tt.w, Height: tt.h}))
		if got != tt.want {
			t.Errorf("BuildField(%vx%v) = %d points, want %d", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestNewWave(t *testing.T) {
	p := testParams()

	strong := NewWave(p, 10, 20, 500, 600, false)
	if strong.MaxRadius != 500+120*1.5 {
		t.Errorf("strong MaxRadius = %v", strong.MaxRadius)
	}
	if strong.EasingRadius != 720 {
		t.Errorf("EasingRadius = %v, want 720", strong.EasingRadius)
	}
	if strong.AreaOfEffect != 120 || strong.Strength != 1 || !strong.ShowHalo || strong.Kind != WaveStrong {
		t.Errorf("unexpected strong wave: %+v", strong)
	}
	if strong.CrestRadius != 0 {
		t.Errorf("CrestRadius = %v, want 0", strong.CrestRadius)
	}

	weak := NewWave(p, 10, 20, 500, 600, true)
	if weak.MaxRadius != 620 {
		t.Errorf("weak MaxRadius = %v, want 620", weak.MaxRadius)
	}
	if weak.AreaOfEffect != 20 || weak.Strength != 0.5 || weak.ShowHalo || weak.Kind != WaveWeak {
		t.Errorf("unexpected weak wave: %+v", weak)
	}
	if weak.MaxRadius >= strong.MaxRadius {
		t.Error("strong waves should outlive weak waves from the same point")
	}
}

func TestWaveGrowAndExpire(t *testing.T) {
	p := testParams()
	w := NewWave(p, 0, 0, 95, 100, false)

	for steps := 0; steps < 1000; steps++ {
		before := w.CrestRadius
		next := w.Grow(p)
		if next.CrestRadius <= before {
			t.Fatalf("grow not monotonic: %v -> %v", before, next.CrestRadius)
		}
		if w.CrestRadius != before {
			t.Fatal("grow mutated receiver")
		}
		w = next
		if w.Expired() != (w.CrestRadius >= w.MaxRadius) {
			t.Fatalf("Expired() = %v at crest %v max %v", w.Expired(), w.CrestRadius, w.MaxRadius)
		}
		if w.Expired() {
			return
		}
	}
	t.Fatal("wave never expired")
}

func TestEasedCrest(t *testing.T) {
	p := testParams()
	w := Wave{CrestRadius: 50, MaxRadius: 400, EasingRadius: 200}
	if got := w.EasedCrest(p); got != 100 {
		t.Errorf("EasedCrest = %v, want 100", got)
	}

	// Progress past the easing radius saturates.
	w.CrestRadius = 300
	if got := w.EasedCrest(p); got != 400 {
		t.Errorf("EasedCrest saturated = %v, want 400", got)
	}
}

func TestRelationsBuild(t *testing.T) {
	points := []Point{{OriginX: 0, OriginY: 0}, {OriginX: 3, OriginY: 4}}
	waves := []Wave{{X: 0, Y: 0}, {X: 3, Y: 0}}

	rel := BuildRelations(points, waves)
	if err := rel.Check(points, waves); err != nil {
		t.Fatal(err)
	}
	if rel[1][0].Distance != 5 {
		t.Errorf("distance = %v, want 5", rel[1][0].Distance)
	}
	if math.Abs(rel[1][1].Angle-(-math.Pi/2)) > 1e-9 {
		t.Errorf("angle = %v, want -pi/2", rel[1][1].Angle)
	}
}

func TestRelationsShapeAfterInterleavedAddRemove(t *testing.T) {
	p := testParams()
	dims := Dimensions{Width: 320, Height: 192}
	points := BuildField(p, dims)
	var waves []Wave
	rel := BuildRelations(points, waves)

	add := func(x, y float64) {
		w := NewWave(p, x, y, dims.FurthestCornerDistance(x, y), dims.Diagonal(), false)
		waves = append(waves, w)
		rel = rel.AddWave(points, w)
	}
	remove := func(i int) {
		waves = append(waves[:i], waves[i+1:]...)
		rel = rel.RemoveWave(i)
	}

	ops := []func(){
		func() { add(10, 10) },
		func() { add(100, 50) },
		func() { add(300, 180) },
		func() { remove(1) },
		func() { add(5, 150) },
		func() { remove(0) },
		func() { remove(1) },
		func() { add(160, 96) },
		func() { add(50, 50) },
		func() { remove(1) },
	}

	for step, op := range ops {
		op()
		if err := rel.Check(points, waves); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		// Every surviving column must still describe the wave at its index.
		for i, pt := range points {
			for j, w := range waves {
				want := relate(pt, w)
				if rel[i][j] != want {
					t.Fatalf("step %d: rel[%d][%d] = %+v, want %+v", step, i, j, rel[i][j], want)
				}
			}
		}
	}

	rows, cols := rel.Shape()
	if rows != len(points) || cols != len(waves) {
		t.Errorf("Shape() = %dx%d, want %dx%d", rows, cols, len(points), len(waves))
	}
}

func TestRelationsCheckDetectsMismatch(t *testing.T) {
	points := []Point{{}, {}}
	waves := []Wave{{}}
	rel := BuildRelations(points, nil)
	if err := rel.Check(points, waves); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Check = %v, want ErrShapeMismatch", err)
	}
	if err := BuildRelations(points[:1], waves).Check(points, waves); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Check rows = %v, want ErrShapeMismatch", err)
	}
}

func TestUpdateNoWavesIsExact(t *testing.T) {
	p := testParams()
	points := BuildField(p, Dimensions{Width: 320, Height: 320})

	// Dirty the display state first.
	for i := range points {
		points[i].DisplayX += 3.7
		points[i].DisplayY -= 1.1
		points[i].Size = 6
	}

	Update(p, points, nil, BuildRelations(points, nil))

	for i, pt := range points {
		if pt.DisplayX != pt.OriginX || pt.DisplayY != pt.OriginY || pt.Size != p.DotBaseSize {
			t.Fatalf("point %d not reset: %+v", i, pt)
		}
	}
}

func TestUpdateDisplacesAwayFromWave(t *testing.T) {
	p := testParams()
	points := []Point{
		{OriginX: 100, OriginY: 50}, // on the crest
		{OriginX: 400, OriginY: 50}, // far outside the band
	}
	waves := []Wave{{X: 0, Y: 50, CrestRadius: 100, MaxRadius: 1000, EasingRadius: 1000, AreaOfEffect: 20, Strength: 1}}
	rel := BuildRelations(points, waves)

	var f Field
	f.Update(p, points, waves, rel)

	// On the crest: magnitude 0.1 * 1 * 20 * 1 = 2 outward, size 2 + 4 = 6,
	// re-centered by (6-2)/2 = 2.
	got := points[0]
	if got.Size != 6 {
		t.Errorf("size = %v, want 6", got.Size)
	}
	if math.Abs(got.DisplayX-100) > 1e-9 {
		t.Errorf("DisplayX = %v, want 100", got.DisplayX)
	}
	if math.Abs(got.DisplayY-48) > 1e-9 {
		t.Errorf("DisplayY = %v, want 48", got.DisplayY)
	}

	far := points[1]
	if far.DisplayX != far.OriginX || far.DisplayY != far.OriginY || far.Size != p.DotBaseSize {
		t.Errorf("untouched point moved: %+v", far)
	}
}

func TestUpdateClampsSize(t *testing.T) {
	p := testParams()
	points := []Point{{OriginX: 100, OriginY: 0}}
	var waves []Wave
	for i := 0; i < 5; i++ {
		waves = append(waves, Wave{X: 0, Y: 0, CrestRadius: 100, MaxRadius: 1000, EasingRadius: 1000, AreaOfEffect: 20, Strength: 1})
	}
	Update(p, points, waves, BuildRelations(points, waves))

	if points[0].Size != p.DotMaxSize {
		t.Errorf("size = %v, want clamp at %v", points[0].Size, p.DotMaxSize)
	}
}

func TestUpdateIdempotent(t *testing.T) {
	p := testParams()
	dims := Dimensions{Width: 640, Height: 480}
	points := BuildField(p, dims)
	waves := []Wave{
		NewWave(p, 320, 240, dims.FurthestCornerDistance(320, 240), dims.Diagonal(), false),
		NewWave(p, 100, 100, dims.FurthestCornerDistance(100, 100), dims.Diagonal(), true),
	}
	for i := range waves {
		for s := 0; s < 12; s++ {
			waves[i] = waves[i].Grow(p)
		}
	}
	rel := BuildRelations(points, waves)

	var f Field
	f.Update(p, points, waves, rel)
	first := append([]Point(nil), points...)
	f.Update(p, points, waves, rel)

	for i := range points {
		if points[i] != first[i] {
			t.Fatalf("point %d differs between calls: %+v vs %+v", i, first[i], points[i])
		}
	}

	moved := 0
	for _, pt := range points {
		if pt.DisplayX != pt.OriginX || pt.DisplayY != pt.OriginY {
			moved++
		}
	}
	if moved == 0 {
		t.Error("expected the waves to move some points")
	}
}

func TestStrongWaveExpiresAndLeavesCache(t *testing.T) {
	p := testParams()
	dims := Dimensions{Width: 320, Height: 320}
	points := BuildField(p, dims)
	cx, cy := dims.Center()

	w := NewWave(p, cx, cy, dims.FurthestCornerDistance(cx, cy), dims.Diagonal(), false)
	waves := []Wave{w}
	rel := BuildRelations(points, waves)

	n := int(math.Ceil(w.MaxRadius / p.CrestVelocity))
	var f Field
	var expired []Wave
	for i := 0; i < n; i++ {
		f.Update(p, points, waves, rel)
		var gone []Wave
		waves, rel, gone = GrowAll(p, waves, rel)
		expired = append(expired, gone...)
		if err := rel.Check(points, waves); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}

	if len(waves) != 0 {
		t.Fatalf("expected wave to expire after %d steps, %d active", n, len(waves))
	}
	if len(expired) != 1 || expired[0].Kind != WaveStrong {
		t.Errorf("expired = %+v", expired)
	}
	if _, cols := rel.Shape(); cols != 0 {
		t.Errorf("cache still has %d columns", cols)
	}

	// With the wave gone every point returns exactly to rest.
	f.Update(p, points, waves, rel)
	for i, pt := range points {
		if pt.DisplayX != pt.OriginX || pt.DisplayY != pt.OriginY || pt.Size != p.DotBaseSize {
			t.Fatalf("point %d did not settle: %+v", i, pt)
		}
	}
}

func TestGrowAllKeepsAlignment(t *testing.T) {
	p := testParams()
	points := []Point{{OriginX: 10, OriginY: 10}, {OriginX: 50, OriginY: 90}}
	waves := []Wave{
		{X: 1, Y: 1, CrestRadius: 95, MaxRadius: 100},  // expires
		{X: 2, Y: 2, CrestRadius: 0, MaxRadius: 100},   // survives
		{X: 3, Y: 3, CrestRadius: 99, MaxRadius: 100},  // expires
		{X: 4, Y: 4, CrestRadius: 50, MaxRadius: 1000}, // survives
	}
	rel := BuildRelations(points, waves)

	waves, rel, expired := GrowAll(p, waves, rel)
	if len(waves) != 2 || len(expired) != 2 {
		t.Fatalf("got %d active, %d expired", len(waves), len(expired))
	}
	if waves[0].X != 2 || waves[1].X != 4 {
		t.Errorf("wrong survivors: %+v", waves)
	}
	for i, pt := range points {
		for j, w := range waves {
			if rel[i][j] != relate(pt, w) {
				t.Errorf("rel[%d][%d] misaligned", i, j)
			}
		}
	}
}

func TestDimensionsHelpers(t *testing.T) {
	d := Dimensions{Width: 300, Height: 400}
	if d.Diagonal() != 500 {
		t.Errorf("Diagonal = %v", d.Diagonal())
	}
	if got := d.FurthestCornerDistance(0, 0); got != 500 {
		t.Errorf("FurthestCornerDistance(0,0) = %v", got)
	}
	if got := d.FurthestCornerDistance(300, 400); got != 500 {
		t.Errorf("FurthestCornerDistance(300,400) = %v", got)
	}
	if got := d.FurthestCornerDistance(150, 200); got != 250 {
		t.Errorf("FurthestCornerDistance(center) = %v", got)
	}
	if !d.Contains(0, 400) || d.Contains(-1, 10) {
		t.Error("Contains wrong")
	}
}
