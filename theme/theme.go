// Package theme holds the dark and light color themes the grid is drawn
// with. Switching themes springs the colors toward the new palette instead
// of cutting over, and the chosen theme can be persisted across runs.
package theme

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/gridwave/config"
)

// Name identifies a theme.
type Name string

const (
	Dark  Name = "dark"
	Light Name = "light"
)

// ErrUnknownTheme is returned for theme names other than dark and light.
var ErrUnknownTheme = errors.New("unknown theme")

// Palette is the pair of colors one theme draws with.
type Palette struct {
	Primary    colorful.Color // Dots and halos
	Background colorful.Color
}

// channels are L, a, b of the primary color then L, a, b of the background.
const channels = 6

// Theme tracks the selected theme and the animated colors moving toward it.
type Theme struct {
	palettes  map[Name]Palette
	current   Name
	statePath string

	spring harmonica.Spring
	step   time.Duration
	last   time.Time
	pos    [channels]float64
	vel    [channels]float64
	target [channels]float64
}

// New builds a theme from cfg, animating at fps steps per second. If
// cfg.StateFile names an existing state file, the persisted theme is
// selected; otherwise the dark theme is.
func New(cfg config.ThemeConfig, fps int) (*Theme, error) {
	if fps <= 0 {
		fps = 60
	}
	dark, err := parsePalette(cfg.Dark)
	if err != nil {
		return nil, fmt.Errorf("dark theme: %w", err)
	}
	light, err := parsePalette(cfg.Light)
	if err != nil {
		return nil, fmt.Errorf("light theme: %w", err)
	}

	t := &Theme{
		palettes:  map[Name]Palette{Dark: dark, Light: light},
		current:   Dark,
		statePath: cfg.StateFile,
		spring:    harmonica.NewSpring(harmonica.FPS(fps), cfg.SpringFrequency, cfg.SpringDamping),
		step:      time.Second / time.Duration(fps),
	}

	if t.statePath != "" {
		name, err := loadState(t.statePath)
		if err != nil {
			return nil, err
		}
		if name != "" {
			t.current = name
		}
	}

	t.target = t.targetFor(t.current)
	t.pos = t.target
	return t, nil
}

func parsePalette(c config.ThemeColors) (Palette, error) {
	primary, err := colorful.Hex(c.Primary)
	if err != nil {
		return Palette{}, fmt.Errorf("primary %q: %w", c.Primary, err)
	}
	bg, err := colorful.Hex(c.Background)
	if err != nil {
		return Palette{}, fmt.Errorf("background %q: %w", c.Background, err)
	}
	return Palette{Primary: primary, Background: bg}, nil
}

func (t *Theme) targetFor(name Name) [channels]float64 {
	p := t.palettes[name]
	var v [channels]float64
	v[0], v[1], v[2] = p.Primary.Lab()
	v[3], v[4], v[5] = p.Background.Lab()
	return v
}

// Current returns the selected theme.
func (t *Theme) Current() Name {
	return t.current
}

// Set selects a theme and persists the choice if a state file is configured.
func (t *Theme) Set(name Name) error {
	if _, ok := t.palettes[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	t.current = name
	t.target = t.targetFor(name)
	if t.statePath == "" {
		return nil
	}
	return saveState(t.statePath, name)
}

// Toggle switches between dark and light.
func (t *Theme) Toggle() error {
	if t.current == Dark {
		return t.Set(Light)
	}
	return t.Set(Dark)
}

// Advance steps the color springs up to now. Steps are fixed size so the
// animation is the same at any frame rate; at most one second is caught up.
func (t *Theme) Advance(now time.Time) {
	if t.last.IsZero() || now.Before(t.last) {
		t.last = now
		return
	}
	n := int(now.Sub(t.last) / t.step)
	if n <= 0 {
		return
	}
	if limit := int(time.Second / t.step); n > limit {
		n = limit
		t.last = now
	} else {
		t.last = t.last.Add(time.Duration(n) * t.step)
	}

	for ; n > 0 && !t.Settled(); n-- {
		for i := range t.pos {
			t.pos[i], t.vel[i] = t.spring.Update(t.pos[i], t.vel[i], t.target[i])
		}
	}
	if t.Settled() {
		t.pos = t.target
		t.vel = [channels]float64{}
	}
}

// Settled reports whether the animated colors have reached the target.
func (t *Theme) Settled() bool {
	const eps = 1e-3
	for i := range t.pos {
		if math.Abs(t.pos[i]-t.target[i]) > eps || math.Abs(t.vel[i]) > eps {
			return false
		}
	}
	return true
}

// DotColor advances the animation to now and returns the primary color.
func (t *Theme) DotColor(now time.Time) color.RGBA {
	t.Advance(now)
	return toRGBA(colorful.Lab(t.pos[0], t.pos[1], t.pos[2]))
}

// BackgroundColor returns the animated background color as of the last
// Advance.
func (t *Theme) BackgroundColor() color.RGBA {
	return toRGBA(colorful.Lab(t.pos[3], t.pos[4], t.pos[5]))
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
