package field

import "image/color"

type drawOp struct {
	kind  string
	x, y  float64
	r     float64
	alpha uint8
}

// recordingSurface captures draw calls for assertions.
type recordingSurface struct {
	w, h   float64
	ops    []drawOp
	clears int
}

func newRecordingSurface(w, h float64) *recordingSurface {
	return &recordingSurface{w: w, h: h}
}

func (s *recordingSurface) Size() (float64, float64) { return s.w, s.h }
func (s *recordingSurface) Clear()                   { s.clears++; s.ops = s.ops[:0] }

func (s *recordingSurface) FillCircle(x, y, r float64, c color.NRGBA) {
	s.ops = append(s.ops, drawOp{kind: "fill", x: x, y: y, r: r, alpha: c.A})
}

func (s *recordingSurface) Glow(x, y, r, blur float64, c color.NRGBA) {
	s.ops = append(s.ops, drawOp{kind: "glow", x: x, y: y, r: r, alpha: c.A})
}

func (s *recordingSurface) StrokeCircle(x, y, r, width float64, c color.NRGBA) {
	s.ops = append(s.ops, drawOp{kind: "circle", x: x, y: y, r: r, alpha: c.A})
}

func (s *recordingSurface) StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA) {
	s.ops = append(s.ops, drawOp{kind: "line", x: x1, y: y1, alpha: c.A})
}

func (s *recordingSurface) StrokePolygon(pts []Point, width float64, c color.NRGBA) {
	s.ops = append(s.ops, drawOp{kind: "polygon", r: float64(len(pts)), alpha: c.A})
}

func (s *recordingSurface) count(kind string) int {
	n := 0
	for _, op := range s.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}
