package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/gridwave/grid"
)

func TestComputeLifetimeStats(t *testing.T) {
	tests := []struct {
		name           string
		values         []float64
		mean, p50, p90 float64
	}{
		{"empty", nil, 0, 0, 0},
		{"single", []float64{40}, 40, 40, 40},
		{"unsorted", []float64{30, 10, 20}, 20, 20, 30},
		{"even", []float64{10, 20, 30, 40}, 25, 20, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, p50, p90 := ComputeLifetimeStats(tt.values)
			if math.Abs(mean-tt.mean) > 1e-9 || math.Abs(p50-tt.p50) > 1e-9 || math.Abs(p90-tt.p90) > 1e-9 {
				t.Errorf("got (%v, %v, %v), want (%v, %v, %v)", mean, p50, p90, tt.mean, tt.p50, tt.p90)
			}
		})
	}
}

func TestComputeLifetimeStatsLeavesInput(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeLifetimeStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10)

	c.RecordInteraction()
	c.RecordSpawn(grid.WaveWeak)
	c.RecordSpawn(grid.WaveWeak)
	c.RecordSpawn(grid.WaveStrong)
	c.RecordSpawn(grid.WaveAuto)
	c.ObserveActive(4)
	c.ObserveActive(2)
	c.RecordExpire(50)
	c.RecordExpire(70)
	c.RecordIdle()

	if c.ShouldFlush(9) {
		t.Error("flush requested before window end")
	}
	if !c.ShouldFlush(10) {
		t.Fatal("flush not requested at window end")
	}

	s := c.Flush(10, 2, 100)
	if s.WeakSpawned != 2 || s.StrongSpawned != 1 || s.AutoSpawned != 1 {
		t.Errorf("spawn counts = %d/%d/%d", s.WeakSpawned, s.StrongSpawned, s.AutoSpawned)
	}
	if s.Expired != 2 || s.LifetimeMean != 60 {
		t.Errorf("expired = %d mean = %v", s.Expired, s.LifetimeMean)
	}
	if s.PeakActiveWaves != 4 || s.ActiveWaves != 2 || s.Points != 100 {
		t.Errorf("unexpected stats %+v", s)
	}
	if s.Interactions != 1 || s.Idles != 1 {
		t.Errorf("interactions/idles = %d/%d", s.Interactions, s.Idles)
	}

	next := c.Flush(20, 0, 100)
	if next.WindowStartFrame != 10 || next.WeakSpawned != 0 || next.Expired != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	// Peak carries the active count at the previous flush.
	if next.PeakActiveWaves != 2 {
		t.Errorf("peak = %d, want 2", next.PeakActiveWaves)
	}
}
