package field

import (
	"math"
	"math/rand"
)

// offCanvas is where the pointer rests until it is first seen.
var offCanvas = Point{X: -1000, Y: -1000}

// PointerState is the last known pointer position. Last write wins.
type PointerState struct {
	X, Y float64
}

// NewPointerState returns a pointer parked far off-canvas, so nothing is attracted at rest.
func NewPointerState() *PointerState {
	return &PointerState{X: offCanvas.X, Y: offCanvas.Y}
}

func (ps *PointerState) Move(x, y float64) {
	if !finite(x) || !finite(y) {
		return
	}
	ps.X, ps.Y = x, y
}

// Leave parks the pointer off-canvas again.
func (ps *PointerState) Leave() { ps.X, ps.Y = offCanvas.X, offCanvas.Y }

// Inside reports whether the pointer lies on a canvas of the given size.
func (ps *PointerState) Inside(width, height float64) bool {
	return ps.X >= 0 && ps.X < width && ps.Y >= 0 && ps.Y < height
}

// PointerAttraction biases particle velocity toward the pointer.
type PointerAttraction struct {
	cfg   PointerConfig
	state *PointerState
	rng   *rand.Rand
}

func NewPointerAttraction(cfg PointerConfig, state *PointerState, rng *rand.Rand) *PointerAttraction {
	return &PointerAttraction{cfg: cfg, state: state, rng: rng}
}

// Strength is the force magnitude at distance d: gain at 0, falling linearly
// to zero at the capture radius and beyond.
func (pa *PointerAttraction) Strength(d float64) float64 {
	r := pa.cfg.CaptureRadius
	if r <= 0 || d >= r || !finite(d) {
		return 0
	}
	if d < 0 {
		d = 0
	}
	return pa.cfg.Gain * (r - d) / r
}

// Force returns the velocity change for a particle at (x, y). A particle sitting
// exactly on the pointer has no direction and receives none.
func (pa *PointerAttraction) Force(x, y float64) (fx, fy float64) {
	dx, dy := pa.state.X-x, pa.state.Y-y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return 0, 0
	}
	s := pa.Strength(d)
	if s == 0 {
		return 0, 0
	}
	return dx / d * s, dy / d * s
}

// Attract applies the pointer force to p's velocity.
func (pa *PointerAttraction) Attract(p *Particle) {
	fx, fy := pa.Force(p.X, p.Y)
	p.VX += fx
	p.VY += fy
}

// Settle damps p's velocity and nudges near-stationary components so nothing stops.
func (pa *PointerAttraction) Settle(p *Particle) {
	p.VX *= pa.cfg.Damping
	p.VY *= pa.cfg.Damping
	if math.Abs(p.VX) < pa.cfg.MinSpeed {
		p.VX += (pa.rng.Float64() - 0.5) * pa.cfg.Jitter
	}
	if math.Abs(p.VY) < pa.cfg.MinSpeed {
		p.VY += (pa.rng.Float64() - 0.5) * pa.cfg.Jitter
	}
}

// Render draws the pointer halo, if configured and the pointer is on the canvas.
func (pa *PointerAttraction) Render(s Surface, width, height float64, c Color) {
	if !pa.cfg.Halo || !pa.state.Inside(width, height) {
		return
	}
	s.StrokeCircle(pa.state.X, pa.state.Y, 12, 1, c.WithAlpha(0.25))
	s.FillCircle(pa.state.X, pa.state.Y, 2, c.WithAlpha(0.4))
}
