package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"ascii-donut/internal/anim"
	"ascii-donut/internal/render"
	"ascii-donut/internal/torus"
)

// ErrInvalid marks a configuration precondition violation.
var ErrInvalid = errors.New("invalid configuration")

// Display names accepted by Config.Display.
const (
	DisplayANSI    = "ansi"
	DisplayTcell   = "tcell"
	DisplayTermbox = "termbox"
	DisplayTea     = "tea"
)

// Displays lists the supported local display surfaces.
var Displays = []string{DisplayANSI, DisplayTcell, DisplayTermbox, DisplayTea}

// Config holds the torus geometry, camera, shading and driver settings.
type Config struct {
	Preset string

	R1 float64 // tube radius
	N1 int     // samples around the tube
	R2 float64 // ring radius
	N2 int     // samples around the ring
	K1 float64 // field of view scale
	K2 float64 // camera distance

	Ramp string // glyphs darkest first

	FPS    int
	Step   float64
	Ratio  float64
	Frames uint64 // 0 plays forever

	Addr    string
	HostKey string
	Display string
	Color   bool
}

// Default returns the reference configuration.
func Default() Config {
	c, _ := FromPreset(PresetReference)
	return c
}

// Schedule returns the animation schedule.
func (c Config) Schedule() anim.Schedule {
	return anim.Schedule{Step: c.Step, Ratio: c.Ratio, Limit: c.Frames}
}

// GlyphRamp parses the configured ramp.
func (c Config) GlyphRamp() (render.GlyphRamp, error) {
	return render.NewGlyphRamp(c.Ramp)
}

// Sampler returns the torus sampler for this configuration.
func (c Config) Sampler() *torus.Sampler {
	return torus.NewSampler(c.R1, c.N1, c.R2, c.N2)
}

// Projector returns the camera projection.
func (c Config) Projector() render.Projector {
	return render.NewProjector(c.K1, c.K2)
}

// Pipeline builds the per-frame pipeline for a width x height viewport.
func (c Config) Pipeline(width, height int) (*render.Pipeline, error) {
	ramp, err := c.GlyphRamp()
	if err != nil {
		return nil, fmt.Errorf("glyph ramp: %w", err)
	}
	r, err := render.NewRasterizer(width, height, ramp)
	if err != nil {
		return nil, fmt.Errorf("rasterizer: %w", err)
	}
	return render.NewPipeline(c.Sampler(), c.Projector(), r), nil
}

// Validate reports every violated precondition.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.R1 <= 0 {
		bad("tube radius %v must be positive", c.R1)
	}
	if c.R2 <= 0 {
		bad("ring radius %v must be positive", c.R2)
	}
	if c.N1 <= 0 {
		bad("tube resolution %d must be positive", c.N1)
	}
	if c.N2 <= 0 {
		bad("ring resolution %d must be positive", c.N2)
	}
	if c.K2 <= c.R1+c.R2 {
		bad("camera distance %v must exceed the torus extent %v", c.K2, c.R1+c.R2)
	}
	if c.K1 <= 0 {
		bad("field of view %v must be positive", c.K1)
	}
	if c.FPS <= 0 {
		bad("frame rate %d must be positive", c.FPS)
	}
	if _, err := c.GlyphRamp(); err != nil {
		bad("glyph ramp %q: %v", c.Ramp, err)
	}
	if c.Display != "" && !knownDisplay(c.Display) {
		bad("unknown display %q (want one of %s)", c.Display, strings.Join(Displays, ", "))
	}

	return errors.Join(errs...)
}

func knownDisplay(name string) bool {
	for _, d := range Displays {
		if d == name {
			return true
		}
	}
	return false
}

// ApplyEnv overrides fields from environment variables read with getenv:
// DONUT_PRESET replaces the whole geometry, then PORT, DONUT_FPS,
// DONUT_RAMP and DONUT_DISPLAY override single fields.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if name := getenv("DONUT_PRESET"); name != "" {
		p, err := FromPreset(name)
		if err != nil {
			return err
		}
		p.Addr, p.HostKey, p.Display, p.Color = c.Addr, c.HostKey, c.Display, c.Color
		*c = p
	}
	if port := getenv("PORT"); port != "" {
		c.Addr = ":" + port
	}
	if fps := getenv("DONUT_FPS"); fps != "" {
		n, err := strconv.Atoi(fps)
		if err != nil {
			return fmt.Errorf("DONUT_FPS %q: %w", fps, err)
		}
		c.FPS = n
	}
	if ramp := getenv("DONUT_RAMP"); ramp != "" {
		c.Ramp = ramp
	}
	if d := getenv("DONUT_DISPLAY"); d != "" {
		c.Display = d
	}
	return nil
}

// Preset names.
const (
	PresetReference = "reference"
	PresetClassic   = "classic"
	PresetCoarse    = "coarse"
)

var presets = map[string]Config{
	PresetReference: {
		R1: 1, N1: 150, R2: 2, N2: 150,
		K1: 70, K2: 5,
		Ramp: render.DefaultRamp,
		FPS:  anim.DefaultFPS, Step: 0.1, Ratio: 0.2, Frames: 200,
	},
	// Andy Sloane's donut.c: A += 0.07, B += 0.03 per frame.
	PresetClassic: {
		R1: 1, N1: 90, R2: 2, N2: 315,
		K1: 70, K2: 5,
		Ramp: ".,-~:;=!*#$@",
		FPS:  30, Step: 0.07, Ratio: 0.03 / 0.07,
	},
	// Fewer samples for slow links.
	PresetCoarse: {
		R1: 1, N1: 40, R2: 2, N2: 60,
		K1: 70, K2: 5,
		Ramp: render.DefaultRamp,
		FPS:  12, Step: 0.1, Ratio: 0.2,
	},
}

// FromPreset returns the named preset with driver defaults filled in.
func FromPreset(name string) (Config, error) {
	p, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: unknown preset %q (want one of %s)",
			ErrInvalid, name, strings.Join(PresetNames(), ", "))
	}
	p.Preset = name
	p.Addr = ":2222"
	p.HostKey = "host_key"
	p.Display = DisplayANSI
	p.Color = true
	return p, nil
}

// PresetNames lists the presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
