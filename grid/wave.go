package grid

import "github.com/pthm-cable/gridwave/geom"

// WaveKind records what triggered a wave.
type WaveKind uint8

const (
	WaveWeak   WaveKind = iota // Pointer drag
	WaveStrong                 // Pointer tap or release
	WaveAuto                   // Idle pulse
)

// String returns the kind name used in logs and CSV output.
func (k WaveKind) String() string {
	switch k {
	case WaveWeak:
		return "weak"
	case WaveStrong:
		return "strong"
	case WaveAuto:
		return "auto"
	}
	return "unknown"
}

// Wave is one expanding ring disturbance.
type Wave struct {
	X, Y         float64 // Trigger point, fixed for the wave's lifetime
	CrestRadius  float64 // Current ring radius
	MaxRadius    float64 // Radius at which the wave expires
	EasingRadius float64 // Normalizes growth so all waves look equally fast
	AreaOfEffect float64 // Half-width of the band around the crest that moves dots
	Strength     float64
	ShowHalo     bool
	Kind         WaveKind
}

// NewWave creates a wave at (x, y). furthestCorner is the distance from the
// trigger point to the farthest canvas corner; diagonal is the canvas diagonal.
func NewWave(p Params, x, y, furthestCorner, diagonal float64, weak bool) Wave {
	w := Wave{
		X:            x,
		Y:            y,
		EasingRadius: diagonal + p.CrestDecay,
	}
	if weak {
		w.MaxRadius = furthestCorner + p.CrestDecay*p.WeakDecayMultiplier
		w.AreaOfEffect = p.CrestDecay / p.WeakAreaDivisor
		w.Strength = p.StrengthWeak
		w.Kind = WaveWeak
	} else {
		w.MaxRadius = furthestCorner + p.CrestDecay*p.StrongDecayMultiplier
		w.AreaOfEffect = p.CrestDecay
		w.Strength = p.StrengthStrong
		w.ShowHalo = true
		w.Kind = WaveStrong
	}
	return w
}

// Grow returns a copy of the wave advanced by one frame.
func (w Wave) Grow(p Params) Wave {
	w.CrestRadius += p.CrestVelocity
	return w
}

// Expired reports whether the crest has reached the wave's maximum radius.
func (w Wave) Expired() bool {
	return w.CrestRadius >= w.MaxRadius
}

// EasedCrest returns the effective crest radius used for all distance
// comparisons against points and for the halo.
func (w Wave) EasedCrest(p Params) float64 {
	if w.EasingRadius <= 0 {
		return 0
	}
	return p.CrestEasing(geom.Clamp01(w.CrestRadius/w.EasingRadius)) * w.MaxRadius
}

// GrowAll advances every wave one frame and drops the expired ones from both
// waves and rel, returning the surviving waves, the pruned cache and the
// waves that expired. Removal walks backwards so column indices in rel keep
// matching wave indices.
func GrowAll(p Params, waves []Wave, rel Relations) ([]Wave, Relations, []Wave) {
	var expired []Wave
	for i := range waves {
		waves[i] = waves[i].Grow(p)
	}
	for i := len(waves) - 1; i >= 0; i-- {
		if !waves[i].Expired() {
			continue
		}
		expired = append(expired, waves[i])
		waves = append(waves[:i], waves[i+1:]...)
		rel = rel.RemoveWave(i)
	}
	return waves, rel, expired
}
