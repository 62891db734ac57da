package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/backdrop/internal/field"
)

// glowLayers is how many widening translucent discs make up a glow.
const glowLayers = 4

// surface adapts the ebiten screen to field.Surface. It is rebound to the
// screen image at the start of every Draw.
type surface struct {
	img *ebiten.Image
	bg  color.NRGBA
}

func (s *surface) bind(img *ebiten.Image) { s.img = img }

func (s *surface) Size() (float64, float64) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *surface) Clear() { s.img.Fill(s.bg) }

func (s *surface) FillCircle(x, y, r float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), c, true)
}

// Glow stacks discs from r+blur down to r, each faint, so alpha accumulates
// toward the centre like a canvas shadow blur.
func (s *surface) Glow(x, y, r, blur float64, c color.NRGBA) {
	if c.A == 0 || blur <= 0 {
		return
	}
	layer := c
	layer.A = uint8(max(1, int(c.A)/(glowLayers*2)))
	for i := glowLayers; i >= 1; i-- {
		radius := r + blur*float64(i)/glowLayers
		vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(radius), layer, true)
	}
}

func (s *surface) StrokeCircle(x, y, r, width float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	vector.StrokeCircle(s.img, float32(x), float32(y), float32(r), float32(width), c, true)
}

func (s *surface) StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	vector.StrokeLine(s.img, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), c, true)
}

func (s *surface) StrokePolygon(pts []field.Point, width float64, c color.NRGBA) {
	if c.A == 0 || len(pts) < 2 {
		return
	}
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		vector.StrokeLine(s.img, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), c, true)
	}
}
