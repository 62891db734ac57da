package field

import "math"

// Grid shimmer constants.
const (
	gridCoordFreq = 0.01
	gridRowSpeed  = 0.5
	gridColSpeed  = 0.3
	dotBaseRadius = 1.5
	dotMinRadius  = 0.5
)

// GridRenderer draws the time-modulated background grid. It is a pure function
// of time and canvas size.
type GridRenderer struct {
	cfg GridConfig
}

func NewGridRenderer(cfg GridConfig) GridRenderer { return GridRenderer{cfg: cfg} }

// RowOpacity is the opacity of the horizontal line at y.
func (g GridRenderer) RowOpacity(y, t float64) float64 {
	return math.Max(0, g.cfg.BaseOpacity+math.Sin(y*gridCoordFreq+t*gridRowSpeed)*g.cfg.Amplitude)
}

// ColumnOpacity is the opacity of the vertical line at x.
func (g GridRenderer) ColumnOpacity(x, t float64) float64 {
	return math.Max(0, g.cfg.BaseOpacity+math.Sin(x*gridCoordFreq+t*gridColSpeed)*g.cfg.Amplitude)
}

// Dot returns the radius and opacity of the intersection at (x, y). Both breathe
// with the normalised distance from the canvas centre.
func (g GridRenderer) Dot(x, y, width, height, t float64) (radius, opacity float64) {
	nx := (x - width/2) / width
	ny := (y - height/2) / height
	d := math.Sqrt(nx*nx + ny*ny)
	radius = math.Max(dotMinRadius, dotBaseRadius+math.Sin(d*12+t*2)*0.8)
	opacity = clamp01(0.15 + math.Sin(d*10+t)*0.08)
	return radius, opacity
}

func (g GridRenderer) Render(s Surface, width, height, t float64) {
	if !g.cfg.Enabled || width <= 0 || height <= 0 {
		return
	}
	step := g.cfg.Spacing
	for y := 0.0; y < height; y += step {
		if a := g.RowOpacity(y, t); a > 0 {
			s.StrokeLine(0, y, width, y, g.cfg.LineWidth, g.cfg.Color.WithAlpha(a))
		}
	}
	for x := 0.0; x < width; x += step {
		if a := g.ColumnOpacity(x, t); a > 0 {
			s.StrokeLine(x, 0, x, height, g.cfg.LineWidth, g.cfg.Color.WithAlpha(a))
		}
	}
	if !g.cfg.Dots {
		return
	}
	for x := 0.0; x < width; x += step {
		for y := 0.0; y < height; y += step {
			r, a := g.Dot(x, y, width, height, t)
			s.FillCircle(x, y, r, g.cfg.Color.WithAlpha(a))
		}
	}
}
