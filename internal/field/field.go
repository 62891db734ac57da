// Package field implements the animated particle-field backgrounds: a particle
// pool with connections, a decorative shape overlay, pointer attraction, a
// shimmering grid, the organic chaos/forming/growth population and ambient
// ripples. A Field is owned by exactly one host instance and is not safe for
// concurrent use; the host serialises pointer, resize and frame callbacks.
package field

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Field drives every subsystem of one mounted background.
type Field struct {
	cfg Config
	log *zap.Logger
	rng *rand.Rand

	width, height float64

	particles   *ParticleField
	connections ConnectionRenderer
	shapes      *ShapeOverlay
	grid        GridRenderer
	organic     *OrganicField
	ambient     Ambient
	pointer     *PointerAttraction
	pointerPos  *PointerState
	haloColor   Color

	frames uint64
	resets uint64
}

// Option customises a Field at construction.
type Option func(*Field)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(f *Field) {
		if l != nil {
			f.log = l
		}
	}
}

// WithRand sets the random source. Tests use a fixed seed.
func WithRand(rng *rand.Rand) Option {
	return func(f *Field) {
		if rng != nil {
			f.rng = rng
		}
	}
}

// New validates cfg and builds a Field. Pools are seeded on the first frame
// or Resize, once the canvas size is known.
func New(cfg Config, opts ...Option) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	f := &Field{
		cfg:        cfg,
		log:        zap.NewNop(),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		pointerPos: NewPointerState(),
		haloColor:  cfg.Connections.Color,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.particles = NewParticleField(cfg, f.rng)
	f.connections = NewConnectionRenderer(cfg.Connections)
	f.shapes = NewShapeOverlay(cfg.Shapes, f.rng)
	f.grid = NewGridRenderer(cfg.Grid)
	f.organic = NewOrganicField(cfg.Organic, f.rng)
	f.ambient = NewAmbient(cfg.Ripples, cfg.FlowLines)
	if cfg.Pointer.Enabled {
		f.pointer = NewPointerAttraction(cfg.Pointer, f.pointerPos, f.rng)
		f.particles.pointer = f.pointer
	}
	if cfg.Turbulence.Strength > 0 {
		f.particles.turbulence = NewTurbulence(cfg.Turbulence)
	}
	return f, nil
}

// MustNew is New for configurations known to be valid, such as built-in presets.
func MustNew(cfg Config, opts ...Option) *Field {
	f, err := New(cfg, opts...)
	if err != nil {
		panic(fmt.Sprintf("field: %v", err))
	}
	return f
}

func (f *Field) Config() Config { return f.cfg }

func (f *Field) Size() (width, height float64) { return f.width, f.height }

// Resize fully regenerates every pool for the new canvas size. Pools are never
// rescaled in place.
func (f *Field) Resize(width, height float64) {
	if !finite(width) || !finite(height) || width < 0 || height < 0 {
		width, height = 0, 0
	}
	f.width, f.height = width, height
	f.particles.Initialize(width, height)
	f.shapes.Initialize(width, height)
	f.organic.Initialize(width, height)
	f.resets++
	f.log.Debug("Field reinitialised",
		zap.Float64("width", width),
		zap.Float64("height", height),
		zap.Int("particles", len(f.particles.Particles())),
		zap.Int("shapes", len(f.shapes.Shapes())),
		zap.Int("organic", len(f.organic.Particles())))
}

// MovePointer records the latest pointer position.
func (f *Field) MovePointer(x, y float64) { f.pointerPos.Move(x, y) }

// LeavePointer parks the pointer off-canvas; used when the cursor leaves or on touch.
func (f *Field) LeavePointer() { f.pointerPos.Leave() }

func (f *Field) Pointer() PointerState { return *f.pointerPos }

// Start releases organic particles held by AwaitStart.
func (f *Field) Start() {
	if !f.organic.Started() {
		f.log.Debug("Organic formation started")
	}
	f.organic.Start()
}

// SetLevel feeds an external 0..1 intensity, typically audio loudness, into
// pulse amplitude.
func (f *Field) SetLevel(level float64) {
	f.particles.SetAmplitude(1 + clamp01(level)*f.cfg.Pulse.AudioGain)
}

// Step advances every subsystem by one frame at time t (seconds).
func (f *Field) Step(t float64) {
	f.particles.Step(t)
	f.shapes.Step()
	f.organic.Step()
}

// Draw paints the current state without advancing it.
func (f *Field) Draw(s Surface, t float64) {
	if s == nil {
		return
	}
	w, h := f.width, f.height
	s.Clear()
	f.grid.Render(s, w, h, t)
	f.ambient.Render(s, w, h, t)
	f.connections.Render(s, f.particles.Particles())
	f.particles.Render(s)
	f.organic.Render(s)
	f.shapes.Render(s)
	if f.pointer != nil {
		f.pointer.Render(s, w, h, f.haloColor)
	}
}

// Frame is one animation tick: read the surface size, reinitialise on change,
// advance and draw. A nil surface or an empty canvas does nothing.
func (f *Field) Frame(s Surface, now time.Duration) {
	if s == nil {
		return
	}
	w, h := s.Size()
	if w <= 0 || h <= 0 || !finite(w) || !finite(h) {
		return
	}
	if w != f.width || h != f.height {
		f.Resize(w, h)
	}
	t := now.Seconds()
	f.Step(t)
	f.Draw(s, t)
	f.frames++
}

// Stats summarises the work done so far.
type Stats struct {
	Frames    uint64
	Resets    uint64
	Particles int
	Shapes    int
	Organic   int
}

func (f *Field) Stats() Stats {
	return Stats{
		Frames:    f.frames,
		Resets:    f.resets,
		Particles: len(f.particles.Particles()),
		Shapes:    len(f.shapes.Shapes()),
		Organic:   len(f.organic.Particles()),
	}
}

// ParticleField exposes the particle pool, mostly for inspection.
func (f *Field) ParticleField() *ParticleField { return f.particles }

func (f *Field) Shapes() *ShapeOverlay { return f.shapes }

func (f *Field) Organic() *OrganicField { return f.organic }
