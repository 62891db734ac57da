package game

import (
	"image/color"

	"github.com/iburimskiy/backdrop/internal/field"
)

var (
	_ field.Surface = (*surface)(nil)
	_ field.Surface = (*countingSurface)(nil)
)

// countingSurface stands in for the ebiten screen in tests.
type countingSurface struct {
	w, h   float64
	clears int
	draws  int
}

func (s *countingSurface) Size() (float64, float64) { return s.w, s.h }

func (s *countingSurface) Clear() { s.clears++ }

func (s *countingSurface) FillCircle(_, _, _ float64, _ color.NRGBA) { s.draws++ }

func (s *countingSurface) Glow(_, _, _, _ float64, _ color.NRGBA) { s.draws++ }

func (s *countingSurface) StrokeCircle(_, _, _, _ float64, _ color.NRGBA) { s.draws++ }

func (s *countingSurface) StrokeLine(_, _, _, _, _ float64, _ color.NRGBA) { s.draws++ }

func (s *countingSurface) StrokePolygon(_ []field.Point, _ float64, _ color.NRGBA) { s.draws++ }
