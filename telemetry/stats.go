package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated wave statistics for one frame window.
type WindowStats struct {
	WindowStartFrame int `csv:"-"`
	WindowEndFrame   int `csv:"window_end"`

	Points          int `csv:"points"`
	ActiveWaves     int `csv:"active_waves"`
	PeakActiveWaves int `csv:"peak_active_waves"`

	WeakSpawned   int `csv:"weak_spawned"`
	StrongSpawned int `csv:"strong_spawned"`
	AutoSpawned   int `csv:"auto_spawned"`
	Expired       int `csv:"expired"`

	Interactions int `csv:"interactions"`
	Idles        int `csv:"idles"`

	// Lifetime in frames of waves that expired in the window
	LifetimeMean float64 `csv:"lifetime_mean"`
	LifetimeP50  float64 `csv:"lifetime_p50"`
	LifetimeP90  float64 `csv:"lifetime_p90"`
}

// ComputeLifetimeStats returns the mean and the 50th and 90th percentiles
// of values. Empty input yields zeros.
func ComputeLifetimeStats(values []float64) (mean, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartFrame),
		slog.Int("window_end", s.WindowEndFrame),
		slog.Int("points", s.Points),
		slog.Int("active_waves", s.ActiveWaves),
		slog.Int("peak_active_waves", s.PeakActiveWaves),
		slog.Int("weak_spawned", s.WeakSpawned),
		slog.Int("strong_spawned", s.StrongSpawned),
		slog.Int("auto_spawned", s.AutoSpawned),
		slog.Int("expired", s.Expired),
		slog.Int("interactions", s.Interactions),
		slog.Int("idles", s.Idles),
		slog.Float64("lifetime_mean", s.LifetimeMean),
		slog.Float64("lifetime_p50", s.LifetimeP50),
		slog.Float64("lifetime_p90", s.LifetimeP90),
	)
}
