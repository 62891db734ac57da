package field

import "image/color"

// Surface is the 2D drawing target handed to the engine each frame. Colours
// are non-premultiplied; implementations must treat a zero alpha as a no-op.
type Surface interface {
	// Size reports the current drawable size. It is read at the top of every frame.
	Size() (width, height float64)
	Clear()
	FillCircle(x, y, r float64, c color.NRGBA)
	// Glow paints a soft halo of the given blur radius around a circle.
	Glow(x, y, r, blur float64, c color.NRGBA)
	StrokeCircle(x, y, r, width float64, c color.NRGBA)
	StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA)
	// StrokePolygon outlines a closed path through pts.
	StrokePolygon(pts []Point, width float64, c color.NRGBA)
}
