package field

import (
	"math"
	"math/rand"
)

// sparkSeedChance is the share of particles that start a spark field already pulsing.
const sparkSeedChance = 0.05

// Particle is a single drifting point. Velocities are in px/frame.
type Particle struct {
	X, Y       float64
	VX, VY     float64
	Radius     float64
	Opacity    float64
	Color      Color
	Phase      float64
	PulseSpeed float64

	// spark pulsing
	Life    float64
	MaxLife float64
	Pulsing bool
}

// ParticleField owns and advances one pool of particles.
type ParticleField struct {
	cfg           Config
	rng           *rand.Rand
	width, height float64
	particles     []Particle

	pointer    *PointerAttraction
	turbulence *Turbulence

	// amplitude scales pulse size and opacity; audio level feeds it.
	amplitude float64
}

func NewParticleField(cfg Config, rng *rand.Rand) *ParticleField {
	return &ParticleField{cfg: cfg, rng: rng, amplitude: 1}
}

// Count returns how many particles a canvas of the given size receives.
func (pf *ParticleField) Count(width, height float64) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	if pf.cfg.Density > 0 {
		return int(math.Floor(width * height / pf.cfg.Density))
	}
	return pf.cfg.ParticleCount
}

// Initialize discards the pool and seeds a fresh one for the given canvas size.
func (pf *ParticleField) Initialize(width, height float64) {
	pf.width, pf.height = width, height
	n := pf.Count(width, height)
	pf.particles = make([]Particle, n)
	for i := range pf.particles {
		pf.particles[i] = pf.seed()
	}
}

func (pf *ParticleField) seed() Particle {
	cfg, rng := pf.cfg, pf.rng
	p := Particle{
		X:       rng.Float64() * pf.width,
		Y:       rng.Float64() * pf.height,
		VX:      cfg.Speed.signed(rng),
		VY:      cfg.Speed.signed(rng),
		Radius:  math.Max(minRadius, cfg.Size.sample(rng)),
		Opacity: math.Max(minOpacity, clamp01(cfg.Opacity.sample(rng))),
		Color:   cfg.Palette[rng.Intn(len(cfg.Palette))],
	}
	if cfg.Axis == AxisSplit {
		if rng.Intn(2) == 0 {
			p.VY = 0
		} else {
			p.VX = 0
		}
	}
	switch cfg.Pulse.Mode {
	case PulseSine:
		p.Phase = rng.Float64() * twoPi
		p.PulseSpeed = cfg.Pulse.Speed.sample(rng)
	case PulseSpark:
		p.Life = rng.Float64() * 100
		p.MaxLife = cfg.Pulse.Life.sample(rng)
		p.Pulsing = rng.Float64() < sparkSeedChance
	}
	return p
}

// Particles exposes the live pool. Callers must not retain it across a reinitialisation.
func (pf *ParticleField) Particles() []Particle { return pf.particles }

// SetAmplitude scales pulse amplitude; 1 is the configured strength.
func (pf *ParticleField) SetAmplitude(a float64) {
	if !finite(a) || a < 0 {
		a = 0
	}
	pf.amplitude = a
}

// Step advances every particle by one frame.
func (pf *ParticleField) Step(t float64) {
	for i := range pf.particles {
		p := &pf.particles[i]
		if pf.pointer != nil {
			pf.pointer.Attract(p)
		}
		if pf.turbulence != nil {
			pf.turbulence.Push(p, t)
		}

		p.X += p.VX
		p.Y += p.VY
		if pf.cfg.EdgePolicy == EdgeWrap {
			p.X = wrap(p.X, pf.width)
			p.Y = wrap(p.Y, pf.height)
		} else {
			p.X, p.VX = bounce(p.X, p.VX, pf.width)
			p.Y, p.VY = bounce(p.Y, p.VY, pf.height)
		}

		if pf.pointer != nil {
			pf.pointer.Settle(p)
		}
		pf.advancePulse(p)
	}
}

func (pf *ParticleField) advancePulse(p *Particle) {
	switch pf.cfg.Pulse.Mode {
	case PulseSine:
		p.Phase = math.Mod(p.Phase+p.PulseSpeed, twoPi)
	case PulseSpark:
		p.Life++
		if p.Pulsing {
			if p.Life > p.MaxLife {
				p.Pulsing = false
				p.Life = 0
			}
		} else if pf.rng.Float64() < pf.cfg.Pulse.Chance {
			p.Pulsing = true
			p.Life = 0
		}
	}
}

// pulse returns the current 0-centred (sine) or 0..1 (spark) pulse term.
func (pf *ParticleField) pulse(p *Particle) float64 {
	switch pf.cfg.Pulse.Mode {
	case PulseSine:
		return math.Sin(p.Phase) * pf.amplitude
	case PulseSpark:
		if p.Pulsing {
			return (math.Sin(p.Life*0.02) + 1) / 2 * pf.amplitude
		}
	}
	return 0
}

// RenderRadius is the radius drawn this frame, never below minRadius.
func (pf *ParticleField) RenderRadius(p *Particle) float64 {
	r := p.Radius + pf.pulse(p)*pf.cfg.Pulse.SizeAmplitude
	if !finite(r) || r < minRadius {
		return minRadius
	}
	return r
}

// RenderAlpha is the opacity drawn this frame, clamped to [0, 1].
func (pf *ParticleField) RenderAlpha(p *Particle) float64 {
	a := p.Opacity + pf.pulse(p)*pf.cfg.Pulse.OpacityAmplitude
	if !finite(a) {
		return 0
	}
	return clamp01(a)
}

func (pf *ParticleField) Render(s Surface) {
	for i := range pf.particles {
		p := &pf.particles[i]
		r, a := pf.RenderRadius(p), pf.RenderAlpha(p)
		if a == 0 {
			continue
		}
		c := p.Color.WithAlpha(a)
		if pf.cfg.Glow > 0 {
			s.Glow(p.X, p.Y, r, pf.cfg.Glow, c)
		}
		s.FillCircle(p.X, p.Y, r, c)
	}
}

// bounce reflects pos back inside [0, limit] and points vel away from the edge
// it crossed, so the sign changes once per crossing.
func bounce(pos, vel, limit float64) (float64, float64) {
	switch {
	case pos < 0:
		pos, vel = -pos, math.Abs(vel)
	case pos > limit:
		pos, vel = 2*limit-pos, -math.Abs(vel)
	}
	if pos < 0 {
		pos = 0
	} else if pos > limit {
		pos = limit
	}
	return pos, vel
}

// wrap maps pos into [0, limit).
func wrap(pos, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	if pos >= 0 && pos < limit {
		return pos
	}
	pos = math.Mod(pos, limit)
	if pos < 0 {
		pos += limit
	}
	if pos >= limit {
		pos = 0
	}
	return pos
}
