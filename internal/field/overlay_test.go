package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionRenderer_OpacityFalloff(t *testing.T) {
	cr := NewConnectionRenderer(ConnectionConfig{Distance: 150, MaxOpacity: 0.1})

	assert.InDelta(t, 0.1, cr.Opacity(0), 1e-12)
	assert.Greater(t, cr.Opacity(20), cr.Opacity(80))
	assert.Greater(t, cr.Opacity(80), cr.Opacity(149))
	assert.Greater(t, cr.Opacity(149), 0.0)
	assert.Zero(t, cr.Opacity(150))
	assert.Zero(t, cr.Opacity(400))
	assert.Zero(t, cr.Opacity(math.NaN()))
}

func TestConnectionRenderer_RenderPairs(t *testing.T) {
	cr := NewConnectionRenderer(ConnectionConfig{Distance: 100, MaxOpacity: 1, Width: 1, Color: RGBA(0, 0, 0, 1)})
	particles := []Particle{
		{X: 0, Y: 0},
		{X: 50, Y: 0},
		{X: 0, Y: 99},
		{X: 500, Y: 500},
	}

	s := newRecordingSurface(600, 600)
	cr.Render(s, particles)
	// (0,1) at 50, (0,2) at 99, (1,2) at ~111 is out of range.
	assert.Equal(t, 2, s.count("line"))
}

func TestConnectionRenderer_DisabledAtZeroDistance(t *testing.T) {
	cr := NewConnectionRenderer(ConnectionConfig{Distance: 0, MaxOpacity: 1})
	s := newRecordingSurface(100, 100)
	cr.Render(s, []Particle{{X: 1, Y: 1}, {X: 2, Y: 2}})
	assert.False(t, cr.Enabled())
	assert.Empty(t, s.ops)
}

func shapeConfig() ShapeConfig {
	return ShapeConfig{
		Count:         12,
		Kinds:         AllShapeKinds,
		Size:          R(15, 75),
		Speed:         R(0, 0.05),
		Opacity:       R(0.02, 0.1),
		RotationSpeed: R(0.001, 0.003),
		Width:         1.5,
		Color:         RGBA(120, 120, 120, 0.6),
	}
}

func TestShapeOverlay_Rotation(t *testing.T) {
	so := NewShapeOverlay(shapeConfig(), newTestRand())
	so.Initialize(800, 600)
	s := &so.Shapes()[0]
	s.RotationSpeed = 0.01
	s.VX, s.VY = 0, 0
	initial := s.Rotation

	for i := 0; i < 100; i++ {
		so.Step()
	}
	want := math.Mod(initial+1.0, twoPi)
	diff := math.Abs(s.Rotation - want)
	diff = math.Min(diff, twoPi-diff)
	assert.InDelta(t, 0, diff, 1e-9)
}

func TestShapeOverlay_WrapsPastMargin(t *testing.T) {
	so := NewShapeOverlay(shapeConfig(), newTestRand())
	so.Initialize(800, 600)
	s := &so.Shapes()[0]
	s.Size = 40
	s.X, s.Y = 810, 300
	s.VX, s.VY = 5, 0

	so.Step() // 815: still within the 20px margin
	assert.Equal(t, 815.0, s.X)
	so.Step() // 820: on the margin
	assert.Equal(t, 820.0, s.X)
	so.Step() // 825: past it, teleported to the far side
	assert.Equal(t, -20.0, s.X)

	s.X, s.VX = -15, -6
	so.Step()
	assert.Equal(t, 820.0, s.X)
}

func TestShapeOverlay_ExplicitMargin(t *testing.T) {
	cfg := shapeConfig()
	cfg.Margin = 50
	so := NewShapeOverlay(cfg, newTestRand())
	so.Initialize(800, 600)
	s := &so.Shapes()[0]
	s.X, s.Y, s.VX, s.VY = 300, 649, 0, 2
	so.Step()
	assert.Equal(t, -50.0, s.Y)
}

func TestShapeOverlay_DisabledWithoutKinds(t *testing.T) {
	cfg := shapeConfig()
	cfg.Kinds = nil
	so := NewShapeOverlay(cfg, newTestRand())
	so.Initialize(800, 600)
	assert.Empty(t, so.Shapes())
}

func TestShapeOverlay_RenderOutlines(t *testing.T) {
	so := NewShapeOverlay(shapeConfig(), newTestRand())
	so.Initialize(800, 600)

	s := newRecordingSurface(800, 600)
	so.Render(s)
	circles := 0
	for _, sh := range so.Shapes() {
		if sh.Kind == ShapeCircle {
			circles++
		}
	}
	assert.Equal(t, circles, s.count("circle"))
	assert.Equal(t, len(so.Shapes())-circles, s.count("polygon"))
}

func TestOutline_Vertices(t *testing.T) {
	tests := []struct {
		kind ShapeKind
		n    int
	}{
		{ShapeSquare, 4},
		{ShapeTriangle, 3},
		{ShapeDiamond, 4},
		{ShapeHexagon, 6},
		{ShapeStar, 10},
		{ShapeCircle, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			pts := Outline(tt.kind, 100, 100, 10, 0.7)
			require.Len(t, pts, tt.n)
			for _, p := range pts {
				d := math.Hypot(p.X-100, p.Y-100)
				assert.LessOrEqual(t, d, 10*math.Sqrt2+1e-9)
				assert.Greater(t, d, 0.0)
			}
		})
	}
}

func TestOutline_RotationPreservesShape(t *testing.T) {
	a := Outline(ShapeDiamond, 0, 0, 10, 0)
	b := Outline(ShapeDiamond, 0, 0, 10, math.Pi/2)
	// A quarter turn maps the diamond onto itself with vertices shifted by one.
	for i := range a {
		j := (i + 1) % len(a)
		assert.InDelta(t, a[j].X, b[i].X, 1e-9)
		assert.InDelta(t, a[j].Y, b[i].Y, 1e-9)
	}
}

func TestPointerAttraction_StrengthBoundary(t *testing.T) {
	pa := NewPointerAttraction(PointerConfig{CaptureRadius: 200, Gain: 0.05}, NewPointerState(), newTestRand())

	assert.Equal(t, 0.05, pa.Strength(0))
	assert.Zero(t, pa.Strength(200))
	assert.Zero(t, pa.Strength(250))
	assert.InDelta(t, 0.025, pa.Strength(100), 1e-12)
}

func TestPointerAttraction_ForceDirection(t *testing.T) {
	ps := NewPointerState()
	ps.Move(100, 100)
	pa := NewPointerAttraction(PointerConfig{CaptureRadius: 200, Gain: 0.05}, ps, newTestRand())

	fx, fy := pa.Force(0, 100)
	assert.InDelta(t, 0.05*0.5, fx, 1e-12)
	assert.Zero(t, fy)

	fx, fy = pa.Force(100, 100)
	assert.Zero(t, fx, "no direction at zero distance")
	assert.Zero(t, fy)
	assert.False(t, math.IsNaN(fx) || math.IsNaN(fy))
}

func TestPointerState_DefaultsOffCanvas(t *testing.T) {
	ps := NewPointerState()
	pa := NewPointerAttraction(PointerConfig{CaptureRadius: 200, Gain: 0.05}, ps, newTestRand())

	assert.False(t, ps.Inside(1920, 1080))
	for _, xy := range [][2]float64{{0, 0}, {1919, 0}, {0, 1079}, {960, 540}} {
		fx, fy := pa.Force(xy[0], xy[1])
		assert.Zero(t, fx)
		assert.Zero(t, fy)
	}

	ps.Move(math.NaN(), 3)
	assert.Equal(t, -1000.0, ps.X, "non-finite moves are ignored")
	ps.Move(10, 10)
	assert.True(t, ps.Inside(100, 100))
	ps.Leave()
	assert.False(t, ps.Inside(100, 100))
}

func TestPointerAttraction_SettleKeepsMoving(t *testing.T) {
	cfg := PointerConfig{CaptureRadius: 200, Gain: 0.05, Damping: 0.99, MinSpeed: 0.1, Jitter: 0.01}
	pa := NewPointerAttraction(cfg, NewPointerState(), newTestRand())

	p := &Particle{VX: 1, VY: 0}
	pa.Settle(p)
	assert.InDelta(t, 0.99, p.VX, 1e-12)
	assert.NotZero(t, p.VY, "a stalled component is re-seeded")
	assert.LessOrEqual(t, math.Abs(p.VY), 0.005)
}

func TestGridRenderer_Shimmer(t *testing.T) {
	g := NewGridRenderer(GridConfig{Enabled: true, Spacing: 50, LineWidth: 0.5, BaseOpacity: 0.04, Amplitude: 0.02, Dots: true})

	assert.InDelta(t, 0.04, g.RowOpacity(0, 0), 1e-12)
	assert.NotEqual(t, g.RowOpacity(100, 0), g.RowOpacity(100, 1.5))
	for y := 0.0; y < 1000; y += 7 {
		assert.GreaterOrEqual(t, g.RowOpacity(y, y/3), 0.0)
		assert.GreaterOrEqual(t, g.ColumnOpacity(y, y/5), 0.0)
	}

	r, a := g.Dot(400, 300, 800, 600, 0)
	assert.InDelta(t, 1.5, r, 1e-12, "centre dot at t=0")
	assert.InDelta(t, 0.15, a, 1e-12)

	s := newRecordingSurface(200, 100)
	g.Render(s, 200, 100, 2)
	assert.Equal(t, 2+4, s.count("line"))
	assert.Equal(t, 4*2, s.count("fill"))
}

func TestGridRenderer_Disabled(t *testing.T) {
	g := NewGridRenderer(GridConfig{Spacing: 50})
	s := newRecordingSurface(200, 100)
	g.Render(s, 200, 100, 0)
	assert.Empty(t, s.ops)
}

func TestAmbient_Ripples(t *testing.T) {
	a := NewAmbient(RippleConfig{Centers: []Point{{0.3, 0.2}}, Rings: 4, Speed: 30, Period: 300}, FlowConfig{})

	assert.InDelta(t, minRadius, a.RippleRadius(0, 0, 0), 1e-12)
	assert.InDelta(t, 80, a.RippleRadius(0, 1, 0), 1e-12)
	assert.InDelta(t, 30, a.RippleRadius(0, 0, 1), 1e-12)
	assert.Less(t, a.RippleOpacity(200), a.RippleOpacity(10))
	assert.Zero(t, a.RippleOpacity(400))

	s := newRecordingSurface(800, 600)
	a.Render(s, 800, 600, 1)
	assert.Equal(t, 4, s.count("circle"))
}

func TestAmbient_FlowLinesSweep(t *testing.T) {
	a := NewAmbient(RippleConfig{Period: 300}, FlowConfig{Count: 5, Speed: 25, Spacing: 200, Opacity: 0.06})

	assert.InDelta(t, -200, a.FlowY(0, 600, 0), 1e-12)
	assert.InDelta(t, -175, a.FlowY(0, 600, 1), 1e-12)
	assert.InDelta(t, -200, a.FlowY(0, 600, 40), 1e-9, "wraps after height+2*spacing")

	s := newRecordingSurface(800, 600)
	a.Render(s, 800, 600, 3)
	// Opacity 0.06 - i*0.01 reaches zero at i=6, so all five draw.
	assert.Equal(t, 5, s.count("line"))
}
