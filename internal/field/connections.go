package field

import "math"

// ConnectionRenderer draws a fading line between every pair of nearby
// particles. It holds no state; pairs are recomputed every frame.
type ConnectionRenderer struct {
	cfg ConnectionConfig
}

func NewConnectionRenderer(cfg ConnectionConfig) ConnectionRenderer {
	return ConnectionRenderer{cfg: cfg}
}

func (cr ConnectionRenderer) Enabled() bool { return cr.cfg.Distance > 0 && cr.cfg.MaxOpacity > 0 }

// Opacity is the line opacity at distance d: linear falloff reaching zero at the threshold.
func (cr ConnectionRenderer) Opacity(d float64) float64 {
	if cr.cfg.Distance <= 0 || d >= cr.cfg.Distance || !finite(d) {
		return 0
	}
	return cr.cfg.MaxOpacity * (1 - d/cr.cfg.Distance)
}

func (cr ConnectionRenderer) Render(s Surface, particles []Particle) {
	if !cr.Enabled() {
		return
	}
	for i := 0; i < len(particles); i++ {
		a := &particles[i]
		for j := i + 1; j < len(particles); j++ {
			b := &particles[j]
			op := cr.Opacity(math.Hypot(a.X-b.X, a.Y-b.Y))
			if op <= 0 {
				continue
			}
			s.StrokeLine(a.X, a.Y, b.X, b.Y, cr.cfg.Width, cr.cfg.Color.WithAlpha(op))
		}
	}
}
