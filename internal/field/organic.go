package field

import (
	"math"
	"math/rand"
)

// OrganicState is a particle's phase in the chaos, forming, growth cycle.
type OrganicState int

const (
	StateChaos OrganicState = iota
	StateForming
	StateGrowth
)

func (s OrganicState) String() string {
	switch s {
	case StateChaos:
		return "chaos"
	case StateForming:
		return "forming"
	case StateGrowth:
		return "growth"
	default:
		return "unknown"
	}
}

// Tuning for the organic cycle, in px/frame.
const (
	organicSpring    = 0.0005
	organicDamping   = 0.96
	organicDockPos   = 1.0
	organicDockSpeed = 0.1
	organicRise      = 0.1
	organicAlign     = 0.1
	organicExit      = 10.0
	organicTrail     = 10.0
)

// OrganicParticle drifts at random, then settles on a grid target and grows upward.
type OrganicParticle struct {
	X, Y             float64
	VX, VY           float64
	TargetX, TargetY float64
	Size             float64
	Opacity          float64
	State            OrganicState
	Timer            float64
}

// OrganicField runs the one stateful population: particles that find order.
type OrganicField struct {
	cfg           OrganicConfig
	rng           *rand.Rand
	width, height float64
	particles     []OrganicParticle
	started       bool
}

func NewOrganicField(cfg OrganicConfig, rng *rand.Rand) *OrganicField {
	return &OrganicField{cfg: cfg, rng: rng, started: !cfg.AwaitStart}
}

func (of *OrganicField) Enabled() bool { return of.cfg.Enabled && of.cfg.Count > 0 }

// Start releases particles held in chaos when AwaitStart is set.
func (of *OrganicField) Start() { of.started = true }

func (of *OrganicField) Started() bool { return of.started }

func (of *OrganicField) Particles() []OrganicParticle { return of.particles }

func (of *OrganicField) Initialize(width, height float64) {
	of.width, of.height = width, height
	of.particles = nil
	if !of.Enabled() || width <= 0 || height <= 0 {
		return
	}
	g := of.cfg.GridSize
	cols := int(math.Ceil(width / g))
	rows := int(math.Ceil(height / g))
	of.particles = make([]OrganicParticle, of.cfg.Count)
	for i := range of.particles {
		col, row := of.rng.Intn(cols), of.rng.Intn(rows)
		of.particles[i] = OrganicParticle{
			X:       of.rng.Float64() * width,
			Y:       of.rng.Float64() * height,
			TargetX: float64(col)*g + g/2,
			TargetY: float64(row)*g + g/2,
			VX:      (of.rng.Float64() - 0.5) * 0.5,
			VY:      (of.rng.Float64() - 0.5) * 0.5,
			Size:    of.rng.Float64()*1.5 + 0.5,
			Opacity: of.rng.Float64()*0.3 + 0.1,
			State:   StateChaos,
			Timer:   of.rng.Float64()*200 + 100,
		}
	}
}

func (of *OrganicField) Step() {
	for i := range of.particles {
		of.stepOne(&of.particles[i])
	}
}

func (of *OrganicField) stepOne(p *OrganicParticle) {
	switch p.State {
	case StateChaos:
		p.X += p.VX
		p.Y += p.VY
		p.X, p.VX = bounce(p.X, p.VX, of.width)
		p.Y, p.VY = bounce(p.Y, p.VY, of.height)
		if p.Timer > 0 {
			p.Timer--
		}
		if p.Timer <= 0 && of.started {
			p.State = StateForming
		}

	case StateForming:
		dx, dy := p.TargetX-p.X, p.TargetY-p.Y
		p.VX = (p.VX + dx*organicSpring) * organicDamping
		p.VY = (p.VY + dy*organicSpring) * organicDamping
		p.X += p.VX
		p.Y += p.VY
		if math.Abs(dx) < organicDockPos && math.Abs(dy) < organicDockPos && math.Abs(p.VX) < organicDockSpeed {
			p.State = StateGrowth
		}

	case StateGrowth:
		p.Y -= organicRise
		p.X += (p.TargetX - p.X) * organicAlign
		if p.Y < -organicExit {
			p.Y = of.height + organicExit
			of.exitTop(p)
		}
	}
}

func (of *OrganicField) exitTop(p *OrganicParticle) {
	if of.cfg.Growth == GrowthPerpetual && of.rng.Float64() >= of.cfg.RecycleChance {
		return
	}
	p.State = StateChaos
	p.Timer = of.rng.Float64() * 100
}

func (of *OrganicField) Render(s Surface) {
	for i := range of.particles {
		p := &of.particles[i]
		a := p.Opacity
		if p.State == StateForming {
			a *= 1.5
		}
		a = clamp01(a)
		s.FillCircle(p.X, p.Y, math.Max(minRadius, p.Size), of.cfg.Color.WithAlpha(a))
		if p.State == StateGrowth {
			s.StrokeLine(p.X, p.Y, p.X, p.Y+organicTrail, 1, of.cfg.Color.WithAlpha(a*0.5))
		}
	}
}
