package headless

import (
	"image/color"
	"sync"

	"github.com/iburimskiy/backdrop/internal/field"
)

// Counts tallies draw calls by primitive.
type Counts struct {
	Clears   int
	Fills    int
	Glows    int
	Circles  int
	Lines    int
	Polygons int
}

// Total is the number of primitives drawn, excluding clears.
func (c Counts) Total() int {
	return c.Fills + c.Glows + c.Circles + c.Lines + c.Polygons
}

// Recorder is a field.Surface that draws nothing and counts everything.
type Recorder struct {
	mu            sync.Mutex
	width, height float64
	counts        Counts
}

func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height}
}

// Resize changes the size reported to the next frame.
func (r *Recorder) Resize(width, height float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
}

func (r *Recorder) Counts() Counts {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts
}

func (r *Recorder) Size() (float64, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *Recorder) Clear() { r.add(func(c *Counts) { c.Clears++ }) }

func (r *Recorder) FillCircle(_, _, _ float64, _ color.NRGBA) {
	r.add(func(c *Counts) { c.Fills++ })
}

func (r *Recorder) Glow(_, _, _, _ float64, _ color.NRGBA) {
	r.add(func(c *Counts) { c.Glows++ })
}

func (r *Recorder) StrokeCircle(_, _, _, _ float64, _ color.NRGBA) {
	r.add(func(c *Counts) { c.Circles++ })
}

func (r *Recorder) StrokeLine(_, _, _, _, _ float64, _ color.NRGBA) {
	r.add(func(c *Counts) { c.Lines++ })
}

func (r *Recorder) StrokePolygon(_ []field.Point, _ float64, _ color.NRGBA) {
	r.add(func(c *Counts) { c.Polygons++ })
}

func (r *Recorder) add(fn func(*Counts)) {
	r.mu.Lock()
	fn(&r.counts)
	r.mu.Unlock()
}
