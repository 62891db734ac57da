package field

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid field config")

// Config is the per-instance configuration of a particle field. It is read once
// at construction and never mutated by the engine.
type Config struct {
	// Particle pool
	ParticleCount int `yaml:"particle_count"`
	// Density, when positive, overrides ParticleCount with floor(w*h/Density)
	// on every reinitialisation.
	Density    float64    `yaml:"density,omitempty"`
	Speed      Range      `yaml:"speed"`
	Size       Range      `yaml:"size"`
	Opacity    Range      `yaml:"opacity"`
	Palette    []Color    `yaml:"palette"`
	Glow       float64    `yaml:"glow,omitempty"`
	Axis       Axis       `yaml:"axis,omitempty"`
	EdgePolicy EdgePolicy `yaml:"edge_policy"`

	Pulse       PulseConfig      `yaml:"pulse"`
	Connections ConnectionConfig `yaml:"connections"`
	Shapes      ShapeConfig      `yaml:"shapes"`
	Pointer     PointerConfig    `yaml:"pointer"`
	Grid        GridConfig       `yaml:"grid"`
	Organic     OrganicConfig    `yaml:"organic"`
	Ripples     RippleConfig     `yaml:"ripples"`
	FlowLines   FlowConfig       `yaml:"flow_lines"`
	Turbulence  TurbulenceConfig `yaml:"turbulence"`
}

// PulseConfig animates particle size and opacity.
type PulseConfig struct {
	Mode             PulseMode `yaml:"mode,omitempty"`
	Speed            Range     `yaml:"speed"`
	SizeAmplitude    float64   `yaml:"size_amplitude"`
	OpacityAmplitude float64   `yaml:"opacity_amplitude"`
	// Chance is the per-frame probability that an idle spark starts pulsing.
	Chance float64 `yaml:"chance,omitempty"`
	// Life bounds a spark's pulse in frames.
	Life Range `yaml:"life"`
	// AudioGain scales pulse amplitude by (1 + level*AudioGain).
	AudioGain float64 `yaml:"audio_gain,omitempty"`
}

// ConnectionConfig drives the pairwise line pass. Distance 0 disables it.
type ConnectionConfig struct {
	Distance   float64 `yaml:"distance"`
	MaxOpacity float64 `yaml:"max_opacity"`
	Width      float64 `yaml:"width"`
	Color      Color   `yaml:"color"`
}

// ShapeConfig drives the decorative polygon overlay. Count 0 or no kinds disables it.
type ShapeConfig struct {
	Count         int         `yaml:"count"`
	Kinds         []ShapeKind `yaml:"kinds"`
	Size          Range       `yaml:"size"`
	Speed         Range       `yaml:"speed"`
	Opacity       Range       `yaml:"opacity"`
	RotationSpeed Range       `yaml:"rotation_speed"`
	// Margin is how far past the edge a shape travels before wrapping.
	// Zero means the shape's own half-size.
	Margin float64 `yaml:"margin,omitempty"`
	Width  float64 `yaml:"width"`
	Color  Color   `yaml:"color"`
}

// PointerConfig drives attraction toward the cursor.
type PointerConfig struct {
	Enabled       bool    `yaml:"enabled"`
	CaptureRadius float64 `yaml:"capture_radius"`
	Gain          float64 `yaml:"gain"`
	Damping       float64 `yaml:"damping"`
	MinSpeed      float64 `yaml:"min_speed"`
	Jitter        float64 `yaml:"jitter"`
	// Halo draws a faint ring at the pointer when it is over the canvas.
	Halo bool `yaml:"halo"`
}

// GridConfig drives the shimmering background grid.
type GridConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Spacing     float64 `yaml:"spacing"`
	LineWidth   float64 `yaml:"line_width"`
	BaseOpacity float64 `yaml:"base_opacity"`
	Amplitude   float64 `yaml:"amplitude"`
	Dots        bool    `yaml:"dots"`
	Color       Color   `yaml:"color"`
}

// OrganicConfig drives the chaos/forming/growth population.
type OrganicConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Count    int     `yaml:"count"`
	GridSize float64 `yaml:"grid_size"`
	// AwaitStart holds particles in chaos until Field.Start is called.
	AwaitStart    bool         `yaml:"await_start,omitempty"`
	Growth        GrowthPolicy `yaml:"growth"`
	RecycleChance float64      `yaml:"recycle_chance,omitempty"`
	Color         Color        `yaml:"color"`
}

// RippleConfig drives concentric rings expanding from fixed relative centres.
type RippleConfig struct {
	// Centers are fractions of the canvas size.
	Centers []Point `yaml:"centers"`
	Rings   int     `yaml:"rings"`
	Speed   float64 `yaml:"speed"`
	Period  float64 `yaml:"period"`
	Color   Color   `yaml:"color"`
}

// FlowConfig drives horizontal lines sweeping down the canvas.
type FlowConfig struct {
	Count   int     `yaml:"count"`
	Speed   float64 `yaml:"speed"`
	Spacing float64 `yaml:"spacing"`
	Opacity float64 `yaml:"opacity"`
	Color   Color   `yaml:"color"`
}

// TurbulenceConfig adds a Perlin-noise drift force. Strength 0 disables it.
type TurbulenceConfig struct {
	Strength float64 `yaml:"strength"`
	Scale    float64 `yaml:"scale"`
	// MaxSpeed caps the speed turbulence can push a particle to. Zero means
	// the top of the particle speed range.
	MaxSpeed float64 `yaml:"max_speed,omitempty"`
	Seed     int64   `yaml:"seed,omitempty"`
}

// DefaultConfig returns a modest bouncing field with connections, similar to
// the thinking background.
func DefaultConfig() Config {
	return Config{
		ParticleCount: 80,
		Speed:         R(0, 0.15),
		Size:          R(1, 3),
		Opacity:       R(0.1, 0.1),
		Palette:       []Color{RGBA(0, 0, 0, 1)},
		EdgePolicy:    EdgeBounce,
		Connections: ConnectionConfig{
			Distance:   150,
			MaxOpacity: 0.1,
			Width:      1,
			Color:      RGBA(0, 0, 0, 1),
		},
		Pointer: PointerConfig{
			Enabled:       true,
			CaptureRadius: 200,
			Gain:          0.05,
		},
	}
}

// withDefaults fills tuning constants that a zero value would break.
// Ranges and counts are left alone; a zero speed means a still field.
func (c Config) withDefaults() Config {
	if c.EdgePolicy == "" {
		c.EdgePolicy = EdgeBounce
	}
	if len(c.Palette) == 0 {
		c.Palette = []Color{RGBA(0, 0, 0, 1)}
	}
	if c.Connections.Width <= 0 {
		c.Connections.Width = 1
	}
	if c.Shapes.Width <= 0 {
		c.Shapes.Width = 1
	}
	if c.Pointer.Damping == 0 {
		c.Pointer.Damping = 0.99
	}
	if c.Pointer.MinSpeed == 0 {
		c.Pointer.MinSpeed = 0.1
	}
	if c.Pointer.Jitter == 0 {
		c.Pointer.Jitter = 0.01
	}
	if c.Grid.Spacing <= 0 {
		c.Grid.Spacing = 50
	}
	if c.Grid.LineWidth <= 0 {
		c.Grid.LineWidth = 0.5
	}
	if c.Organic.GridSize <= 0 {
		c.Organic.GridSize = 60
	}
	if c.Organic.Growth == "" {
		c.Organic.Growth = GrowthRecycle
	}
	if c.Ripples.Period <= 0 {
		c.Ripples.Period = 300
	}
	if c.FlowLines.Spacing <= 0 {
		c.FlowLines.Spacing = 200
	}
	if c.Turbulence.Scale <= 0 {
		c.Turbulence.Scale = 0.005
	}
	if c.Turbulence.MaxSpeed <= 0 {
		c.Turbulence.MaxSpeed = math.Max(c.Speed.Max, c.Turbulence.Strength)
	}
	if c.Pulse.Mode == PulseSpark && c.Pulse.Life.Max <= 0 {
		c.Pulse.Life = R(100, 200)
	}
	return c
}

// Validate reports the first structural problem in the configuration.
func (c Config) Validate() error {
	switch {
	case c.ParticleCount < 0:
		return fmt.Errorf("%w: particle_count %d is negative", ErrInvalidConfig, c.ParticleCount)
	case c.Density < 0:
		return fmt.Errorf("%w: density %g is negative", ErrInvalidConfig, c.Density)
	case c.Speed.Min < 0 || c.Speed.Max < c.Speed.Min:
		return fmt.Errorf("%w: speed range [%g, %g]", ErrInvalidConfig, c.Speed.Min, c.Speed.Max)
	case c.Size.Min < 0 || c.Size.Max < c.Size.Min:
		return fmt.Errorf("%w: size range [%g, %g]", ErrInvalidConfig, c.Size.Min, c.Size.Max)
	case c.Opacity.Min < 0 || c.Opacity.Max < c.Opacity.Min || c.Opacity.Max > 1:
		return fmt.Errorf("%w: opacity range [%g, %g]", ErrInvalidConfig, c.Opacity.Min, c.Opacity.Max)
	case c.Connections.Distance < 0:
		return fmt.Errorf("%w: connection distance %g is negative", ErrInvalidConfig, c.Connections.Distance)
	case c.Shapes.Count < 0:
		return fmt.Errorf("%w: shape count %d is negative", ErrInvalidConfig, c.Shapes.Count)
	case c.Pointer.Enabled && c.Pointer.CaptureRadius <= 0:
		return fmt.Errorf("%w: pointer capture radius must be positive", ErrInvalidConfig)
	case c.Pointer.Damping < 0 || c.Pointer.Damping > 1:
		return fmt.Errorf("%w: pointer damping %g outside [0, 1]", ErrInvalidConfig, c.Pointer.Damping)
	case c.Organic.Count < 0:
		return fmt.Errorf("%w: organic count %d is negative", ErrInvalidConfig, c.Organic.Count)
	case c.Organic.RecycleChance < 0 || c.Organic.RecycleChance > 1:
		return fmt.Errorf("%w: recycle chance %g outside [0, 1]", ErrInvalidConfig, c.Organic.RecycleChance)
	case c.Turbulence.Strength < 0 || c.Turbulence.MaxSpeed < 0:
		return fmt.Errorf("%w: turbulence strength %g, max speed %g", ErrInvalidConfig, c.Turbulence.Strength, c.Turbulence.MaxSpeed)
	case c.Pulse.Chance < 0 || c.Pulse.Chance > 1:
		return fmt.Errorf("%w: pulse chance %g outside [0, 1]", ErrInvalidConfig, c.Pulse.Chance)
	}
	switch c.EdgePolicy {
	case "", EdgeBounce, EdgeWrap:
	default:
		return fmt.Errorf("%w: unknown edge policy %q", ErrInvalidConfig, c.EdgePolicy)
	}
	switch c.Pulse.Mode {
	case PulseNone, PulseSine, PulseSpark:
	default:
		return fmt.Errorf("%w: unknown pulse mode %q", ErrInvalidConfig, c.Pulse.Mode)
	}
	switch c.Axis {
	case AxisFree, AxisSplit:
	default:
		return fmt.Errorf("%w: unknown axis %q", ErrInvalidConfig, c.Axis)
	}
	switch c.Organic.Growth {
	case "", GrowthRecycle, GrowthPerpetual:
	default:
		return fmt.Errorf("%w: unknown growth policy %q", ErrInvalidConfig, c.Organic.Growth)
	}
	for _, k := range c.Shapes.Kinds {
		if !k.valid() {
			return fmt.Errorf("%w: unknown shape kind %q", ErrInvalidConfig, k)
		}
	}
	return nil
}
