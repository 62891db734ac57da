package field

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

const (
	// minRadius keeps arc radii positive; a zero radius draws nothing.
	minRadius = 0.1
	// minOpacity keeps freshly seeded particles visible.
	minOpacity = 0.01
	twoPi      = 2 * math.Pi
)

// Point is a canvas-space coordinate.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Range is an inclusive [Min, Max] interval used for random seeding.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// R is shorthand for Range{Min: lo, Max: hi}.
func R(lo, hi float64) Range { return Range{Min: lo, Max: hi} }

// sample returns a uniform value in the range.
func (r Range) sample(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// signed samples a magnitude from the range and gives it a random sign.
func (r Range) signed(rng *rand.Rand) float64 {
	v := r.sample(rng)
	if rng.Intn(2) == 0 {
		return -v
	}
	return v
}

// Color is a non-premultiplied RGBA colour that reads and writes as #rrggbb or #rrggbbaa.
type Color color.NRGBA

// RGBA builds an opaque-or-translucent colour from 8-bit channels and a 0-1 alpha.
func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: uint8(math.Round(clamp01(a) * 255))}
}

// NRGBA returns the colour as the standard library type.
func (c Color) NRGBA() color.NRGBA { return color.NRGBA(c) }

// WithAlpha scales the colour's own alpha by a and returns the result.
func (c Color) WithAlpha(a float64) color.NRGBA {
	out := color.NRGBA(c)
	out.A = uint8(math.Round(float64(c.A) * clamp01(a)))
	return out
}

func (c Color) MarshalText() ([]byte, error) {
	if c.A == 255 {
		return []byte(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)), nil
	}
	return []byte(fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(strings.TrimSpace(string(text)), "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", string(text))
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("color %q: %w", string(text), err)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	*c = Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return nil
}

// EdgePolicy governs what happens when a particle reaches the canvas boundary.
type EdgePolicy string

const (
	EdgeBounce EdgePolicy = "bounce"
	EdgeWrap   EdgePolicy = "wrap"
)

// ShapeKind selects the outline drawn for a decorative shape.
type ShapeKind string

const (
	ShapeCircle   ShapeKind = "circle"
	ShapeSquare   ShapeKind = "square"
	ShapeTriangle ShapeKind = "triangle"
	ShapeHexagon  ShapeKind = "hexagon"
	ShapeDiamond  ShapeKind = "diamond"
	ShapeStar     ShapeKind = "star"
)

// AllShapeKinds lists every supported kind in a stable order.
var AllShapeKinds = []ShapeKind{ShapeCircle, ShapeSquare, ShapeTriangle, ShapeHexagon, ShapeDiamond, ShapeStar}

func (k ShapeKind) valid() bool {
	for _, known := range AllShapeKinds {
		if k == known {
			return true
		}
	}
	return false
}

// PulseMode selects how particle size and opacity animate.
type PulseMode string

const (
	PulseNone PulseMode = ""
	// PulseSine oscillates every particle continuously from its own phase.
	PulseSine PulseMode = "sine"
	// PulseSpark lets a few particles flare for a bounded lifetime.
	PulseSpark PulseMode = "spark"
)

// Axis constrains initial drift.
type Axis string

const (
	AxisFree Axis = ""
	// AxisSplit moves each particle along a single, randomly chosen axis.
	AxisSplit Axis = "split"
)

// GrowthPolicy decides what an organic particle does after leaving the top of the canvas.
type GrowthPolicy string

const (
	GrowthRecycle   GrowthPolicy = "recycle"
	GrowthPerpetual GrowthPolicy = "perpetual"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
