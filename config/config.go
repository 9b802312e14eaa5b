// Package config provides configuration loading and access for the grid simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/gridwave/easing"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all grid configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Grid        GridConfig        `yaml:"grid"`
	Wave        WaveConfig        `yaml:"wave"`
	Interaction InteractionConfig `yaml:"interaction"`
	Theme       ThemeConfig       `yaml:"theme"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the standalone hosts.
type ScreenConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
	DPR       float64 `yaml:"dpr"` // Device pixel ratio applied to pointer coordinates
}

// GridConfig holds the dot lattice parameters.
type GridConfig struct {
	DotBaseSize           float64 `yaml:"dot_base_size"`
	DotMaxSize            float64 `yaml:"dot_max_size"`
	TileSize              float64 `yaml:"tile_size"`               // Lattice spacing in px
	DotPositionResistance float64 `yaml:"dot_position_resistance"` // Displacement scale
	DotSizeResistance     float64 `yaml:"dot_size_resistance"`     // Size growth scale
	DotSizeEasing         string  `yaml:"dot_size_easing"`
}

// WaveConfig holds wave growth and appearance parameters.
type WaveConfig struct {
	CrestVelocity         float64 `yaml:"crest_velocity"` // px per frame
	CrestDecay            float64 `yaml:"crest_decay"`    // Area of effect of a strong wave
	CrestEasing           string  `yaml:"crest_easing"`
	StrengthStrong        float64 `yaml:"strength_strong"`
	StrengthWeak          float64 `yaml:"strength_weak"`
	StrongDecayMultiplier float64 `yaml:"strong_decay_multiplier"` // MaxRadius margin = decay * this
	WeakDecayMultiplier   float64 `yaml:"weak_decay_multiplier"`
	WeakAreaDivisor       float64 `yaml:"weak_area_divisor"` // Weak AOE = decay / this
	PercEasing            string  `yaml:"perc_easing"`
	MaxOpacity            float64 `yaml:"max_opacity"`
	OpacityEasing         string  `yaml:"opacity_easing"`
}

// InteractionConfig holds pointer and idle timing parameters.
type InteractionConfig struct {
	MoveThrottleMs int    `yaml:"move_throttle_ms"` // Min spacing between drag waves
	TapThresholdMs int    `yaml:"tap_threshold_ms"` // Presses at most this long release a strong wave
	IdleMs         int    `yaml:"idle_ms"`
	PulseMinMs     int    `yaml:"pulse_min_ms"`
	PulseJitterMs  int    `yaml:"pulse_jitter_ms"`
	PulsePosition  string `yaml:"pulse_position"` // center | random
}

// ThemeConfig holds theme colors and transition parameters.
type ThemeConfig struct {
	Dark            ThemeColors `yaml:"dark"`
	Light           ThemeColors `yaml:"light"`
	SpringFrequency float64     `yaml:"spring_frequency"`
	SpringDamping   float64     `yaml:"spring_damping"`
	StateFile       string      `yaml:"state_file"` // Persisted theme choice (empty = not persisted)
}

// ThemeColors is a foreground/background hex pair.
type ThemeColors struct {
	Primary    string `yaml:"primary"`
	Background string `yaml:"background"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow    int     `yaml:"perf_window"`     // Frames averaged by the perf collector
	StatsWindow   int     `yaml:"stats_window"`    // Frames per wave stats window
	FrameBudgetMs float64 `yaml:"frame_budget_ms"` // Ticks slower than this are logged
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DotSizeEasing easing.Func
	CrestEasing   easing.Func
	PercEasing    easing.Func
	OpacityEasing easing.Func
}

// Pulse positions.
const (
	PulseCenter = "center"
	PulseRandom = "random"
)

// ErrInvalid is returned when a loaded config fails validation.
var ErrInvalid = errors.New("invalid config")

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return Parse(data)
}

// Parse merges the given YAML over the embedded defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Unmarshal into same struct - only overwrites fields present in file
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived resolves easing names into functions.
func (c *Config) computeDerived() error {
	resolve := func(field, name string) (easing.Func, error) {
		fn, err := easing.ByName(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, field, err)
		}
		return fn, nil
	}

	var err error
	if c.Derived.DotSizeEasing, err = resolve("grid.dot_size_easing", c.Grid.DotSizeEasing); err != nil {
		return err
	}
	if c.Derived.CrestEasing, err = resolve("wave.crest_easing", c.Wave.CrestEasing); err != nil {
		return err
	}
	if c.Derived.PercEasing, err = resolve("wave.perc_easing", c.Wave.PercEasing); err != nil {
		return err
	}
	if c.Derived.OpacityEasing, err = resolve("wave.opacity_easing", c.Wave.OpacityEasing); err != nil {
		return err
	}
	return nil
}

// validate rejects values the grid cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Grid.TileSize <= 0:
		return fmt.Errorf("%w: grid.tile_size must be positive, got %v", ErrInvalid, c.Grid.TileSize)
	case c.Grid.DotBaseSize <= 0:
		return fmt.Errorf("%w: grid.dot_base_size must be positive, got %v", ErrInvalid, c.Grid.DotBaseSize)
	case c.Grid.DotMaxSize < c.Grid.DotBaseSize:
		return fmt.Errorf("%w: grid.dot_max_size %v below dot_base_size %v", ErrInvalid, c.Grid.DotMaxSize, c.Grid.DotBaseSize)
	case c.Wave.CrestVelocity <= 0:
		return fmt.Errorf("%w: wave.crest_velocity must be positive, got %v", ErrInvalid, c.Wave.CrestVelocity)
	case c.Wave.CrestDecay <= 0:
		return fmt.Errorf("%w: wave.crest_decay must be positive, got %v", ErrInvalid, c.Wave.CrestDecay)
	case c.Wave.WeakAreaDivisor <= 0:
		return fmt.Errorf("%w: wave.weak_area_divisor must be positive, got %v", ErrInvalid, c.Wave.WeakAreaDivisor)
	case c.Interaction.PulsePosition != PulseCenter && c.Interaction.PulsePosition != PulseRandom:
		return fmt.Errorf("%w: interaction.pulse_position must be %q or %q, got %q",
			ErrInvalid, PulseCenter, PulseRandom, c.Interaction.PulsePosition)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
