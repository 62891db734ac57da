package field

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Ambient draws the time-driven decorations that own no particles: expanding
// ripples and sweeping flow lines.
type Ambient struct {
	ripples RippleConfig
	flow    FlowConfig
}

func NewAmbient(ripples RippleConfig, flow FlowConfig) Ambient {
	return Ambient{ripples: ripples, flow: flow}
}

// RippleRadius is the radius of ring i around centre c at time t.
func (a Ambient) RippleRadius(c, i int, t float64) float64 {
	r := math.Mod(t*a.ripples.Speed+float64(i)*80+float64(c)*40, a.ripples.Period)
	return math.Max(minRadius, r)
}

// RippleOpacity fades a ring as it grows.
func (a Ambient) RippleOpacity(radius float64) float64 {
	return math.Max(0, 0.1-radius/3000)
}

// FlowY is the vertical position of flow line i at time t.
func (a Ambient) FlowY(i int, height, t float64) float64 {
	span := height + 2*a.flow.Spacing
	return math.Mod(t*a.flow.Speed+float64(i)*a.flow.Spacing, span) - a.flow.Spacing
}

func (a Ambient) Render(s Surface, width, height, t float64) {
	if width <= 0 || height <= 0 {
		return
	}
	for i := 0; i < a.flow.Count; i++ {
		op := a.flow.Opacity - float64(i)*0.01
		if op <= 0 {
			continue
		}
		y := a.FlowY(i, height, t)
		s.StrokeLine(0, y, width, y, 1, a.flow.Color.WithAlpha(op))
	}
	for ci, c := range a.ripples.Centers {
		cx, cy := c.X*width, c.Y*height
		for i := 0; i < a.ripples.Rings; i++ {
			r := a.RippleRadius(ci, i, t)
			if op := a.RippleOpacity(r); op > 0 {
				s.StrokeCircle(cx, cy, r, 1, a.ripples.Color.WithAlpha(op))
			}
		}
	}
}

// Turbulence pushes particles along a slowly evolving Perlin flow field.
type Turbulence struct {
	cfg   TurbulenceConfig
	noise *perlin.Perlin
}

func NewTurbulence(cfg TurbulenceConfig) *Turbulence {
	return &Turbulence{cfg: cfg, noise: perlin.NewPerlin(2, 2, 3, cfg.Seed)}
}

// Push adds a force of the configured strength along the noise angle at p.
// Turbulence never takes a particle above MaxSpeed, or above its speed before
// the push when that was already higher.
func (tb *Turbulence) Push(p *Particle, t float64) {
	n := tb.noise.Noise3D(p.X*tb.cfg.Scale, p.Y*tb.cfg.Scale, t*0.1)
	if !finite(n) {
		return
	}
	before := math.Hypot(p.VX, p.VY)
	angle := (n + 1) * math.Pi
	sin, cos := math.Sincos(angle)
	p.VX += cos * tb.cfg.Strength
	p.VY += sin * tb.cfg.Strength

	limit := math.Max(tb.cfg.MaxSpeed, before)
	if v := math.Hypot(p.VX, p.VY); v > limit {
		scale := limit / v
		p.VX *= scale
		p.VY *= scale
	}
}
