package field

import (
	"math"
	"math/rand"
)

// Shape is a large decorative outline with its own drift and spin.
type Shape struct {
	X, Y          float64
	VX, VY        float64
	Size          float64
	Rotation      float64
	RotationSpeed float64
	Opacity       float64
	Kind          ShapeKind
}

// ShapeOverlay owns the decorative polygon population.
type ShapeOverlay struct {
	cfg           ShapeConfig
	rng           *rand.Rand
	width, height float64
	shapes        []Shape
}

func NewShapeOverlay(cfg ShapeConfig, rng *rand.Rand) *ShapeOverlay {
	return &ShapeOverlay{cfg: cfg, rng: rng}
}

func (so *ShapeOverlay) Enabled() bool { return so.cfg.Count > 0 && len(so.cfg.Kinds) > 0 }

func (so *ShapeOverlay) Initialize(width, height float64) {
	so.width, so.height = width, height
	so.shapes = so.shapes[:0]
	if !so.Enabled() || width <= 0 || height <= 0 {
		return
	}
	so.shapes = make([]Shape, so.cfg.Count)
	for i := range so.shapes {
		so.shapes[i] = Shape{
			X:             so.rng.Float64() * width,
			Y:             so.rng.Float64() * height,
			VX:            so.cfg.Speed.signed(so.rng),
			VY:            so.cfg.Speed.signed(so.rng),
			Size:          math.Max(2*minRadius, so.cfg.Size.sample(so.rng)),
			Rotation:      so.rng.Float64() * twoPi,
			RotationSpeed: so.cfg.RotationSpeed.signed(so.rng),
			Opacity:       clamp01(so.cfg.Opacity.sample(so.rng)),
			Kind:          so.cfg.Kinds[so.rng.Intn(len(so.cfg.Kinds))],
		}
	}
}

func (so *ShapeOverlay) Shapes() []Shape { return so.shapes }

// margin is how far a shape may leave the canvas before it wraps.
func (so *ShapeOverlay) margin(s *Shape) float64 {
	if so.cfg.Margin > 0 {
		return so.cfg.Margin
	}
	return s.Size / 2
}

func (so *ShapeOverlay) Step() {
	for i := range so.shapes {
		s := &so.shapes[i]
		s.X += s.VX
		s.Y += s.VY
		s.Rotation = math.Mod(s.Rotation+s.RotationSpeed, twoPi)
		if s.Rotation < 0 {
			s.Rotation += twoPi
		}

		m := so.margin(s)
		if s.X < -m {
			s.X = so.width + m
		} else if s.X > so.width+m {
			s.X = -m
		}
		if s.Y < -m {
			s.Y = so.height + m
		} else if s.Y > so.height+m {
			s.Y = -m
		}
	}
}

func (so *ShapeOverlay) Render(surf Surface) {
	for i := range so.shapes {
		s := &so.shapes[i]
		if s.Opacity <= 0 {
			continue
		}
		c := so.cfg.Color.WithAlpha(s.Opacity)
		half := math.Max(minRadius, s.Size/2)
		if s.Kind == ShapeCircle {
			surf.StrokeCircle(s.X, s.Y, half, so.cfg.Width, c)
			continue
		}
		surf.StrokePolygon(Outline(s.Kind, s.X, s.Y, half, s.Rotation), so.cfg.Width, c)
	}
}

// Outline returns the vertices of a kind's path around (cx, cy), rotated by rot.
// Circles have no vertices and return nil.
func Outline(kind ShapeKind, cx, cy, half, rot float64) []Point {
	var local []Point
	switch kind {
	case ShapeSquare:
		local = []Point{{-half, -half}, {half, -half}, {half, half}, {-half, half}}
	case ShapeTriangle:
		local = []Point{{0, -half}, {-half, half}, {half, half}}
	case ShapeDiamond:
		local = []Point{{0, -half}, {half, 0}, {0, half}, {-half, 0}}
	case ShapeHexagon:
		local = make([]Point, 6)
		for i := range local {
			a := float64(i) * math.Pi / 3
			local[i] = Point{math.Cos(a) * half, math.Sin(a) * half}
		}
	case ShapeStar:
		local = make([]Point, 10)
		for i := range local {
			a := float64(i) * math.Pi / 5
			r := half
			if i%2 == 1 {
				r = half * 0.5
			}
			local[i] = Point{math.Cos(a) * r, math.Sin(a) * r}
		}
	default:
		return nil
	}
	sin, cos := math.Sincos(rot)
	for i, p := range local {
		local[i] = Point{
			X: cx + p.X*cos - p.Y*sin,
			Y: cy + p.X*sin + p.Y*cos,
		}
	}
	return local
}
