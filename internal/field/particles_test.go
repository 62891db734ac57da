package field

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRand() *rand.Rand { return rand.New(rand.NewSource(42)) }

func plainConfig() Config {
	cfg := Config{
		ParticleCount: 50,
		Speed:         R(0.1, 0.5),
		Size:          R(0, 3),
		Opacity:       R(0, 0.4),
		Palette:       []Color{RGBA(10, 20, 30, 1), RGBA(200, 200, 200, 0.4)},
		EdgePolicy:    EdgeBounce,
	}
	return cfg.withDefaults()
}

func TestParticleField_InitializeInvariants(t *testing.T) {
	sizes := []struct {
		name string
		w, h float64
	}{
		{"Desktop", 1280, 720},
		{"Tiny", 1, 1},
		{"Tall", 320, 2000},
	}

	for _, tt := range sizes {
		t.Run(tt.name, func(t *testing.T) {
			pf := NewParticleField(plainConfig(), newTestRand())
			pf.Initialize(tt.w, tt.h)
			require.Len(t, pf.Particles(), 50)
			for _, p := range pf.Particles() {
				assert.GreaterOrEqual(t, p.X, 0.0)
				assert.Less(t, p.X, tt.w)
				assert.GreaterOrEqual(t, p.Y, 0.0)
				assert.Less(t, p.Y, tt.h)
				assert.Greater(t, p.Radius, 0.0)
				assert.Greater(t, p.Opacity, 0.0)
				assert.Contains(t, plainConfig().Palette, p.Color)
			}
		})
	}
}

func TestParticleField_ZeroSizeCanvasHasNoParticles(t *testing.T) {
	pf := NewParticleField(plainConfig(), newTestRand())
	pf.Initialize(0, 600)
	assert.Empty(t, pf.Particles())
	pf.Step(0)
	pf.Render(newRecordingSurface(0, 600))
}

func TestParticleField_DensityCount(t *testing.T) {
	cfg := plainConfig()
	cfg.Density = 50000
	pf := NewParticleField(cfg, newTestRand())
	pf.Initialize(1000, 1000)
	assert.Len(t, pf.Particles(), 20)

	pf.Initialize(500, 500)
	assert.Len(t, pf.Particles(), 5, "density is re-evaluated on reinitialisation")
}

func TestParticleField_ZeroSpeedDoesNotDrift(t *testing.T) {
	cfg := plainConfig()
	cfg.ParticleCount = 10
	cfg.Speed = R(0, 0)
	pf := NewParticleField(cfg, newTestRand())
	pf.Initialize(800, 600)

	initial := append([]Particle(nil), pf.Particles()...)
	for i := 0; i < 100; i++ {
		pf.Step(float64(i) / 60)
	}
	for i, p := range pf.Particles() {
		assert.Equal(t, initial[i].X, p.X)
		assert.Equal(t, initial[i].Y, p.Y)
	}
}

func TestParticleField_AxisSplit(t *testing.T) {
	cfg := plainConfig()
	cfg.Axis = AxisSplit
	pf := NewParticleField(cfg, newTestRand())
	pf.Initialize(800, 600)
	for _, p := range pf.Particles() {
		assert.True(t, p.VX == 0 || p.VY == 0, "particle moves on one axis: %+v", p)
	}
}

func TestBounce_FlipsOncePerCrossing(t *testing.T) {
	pf := NewParticleField(plainConfig(), newTestRand())
	pf.Initialize(100, 100)
	p := &pf.Particles()[0]
	p.X, p.Y = 99.5, 50
	p.VX, p.VY = 2, 0

	flips := 0
	prev := p.VX
	for i := 0; i < 20; i++ {
		pf.Step(0)
		if math.Signbit(p.VX) != math.Signbit(prev) {
			flips++
		}
		prev = p.VX
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.LessOrEqual(t, p.X, 100.0)
	}
	assert.Equal(t, 1, flips)
	assert.Equal(t, -2.0, p.VX)
}

func TestBounce_FarOutsideStaysInside(t *testing.T) {
	pos, vel := bounce(-350, -400, 100)
	assert.Equal(t, 100.0, pos)
	assert.Equal(t, 400.0, vel)

	pos, vel = bounce(105, 3, 100)
	assert.Equal(t, 95.0, pos)
	assert.Equal(t, -3.0, vel)
}

func TestWrap_AllEdges(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		vx, vy float64
		wantX  float64
		wantY  float64
	}{
		{"Right", 799.5, 300, 1, 0, 0.5, 300},
		{"Left", 0.5, 300, -1, 0, 799.5, 300},
		{"Bottom", 400, 599.5, 0, 1, 400, 0.5},
		{"Top", 400, 0.5, 0, -1, 400, 599.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := plainConfig()
			cfg.EdgePolicy = EdgeWrap
			pf := NewParticleField(cfg, newTestRand())
			pf.Initialize(800, 600)
			p := &pf.Particles()[0]
			p.X, p.Y, p.VX, p.VY = tt.x, tt.y, tt.vx, tt.vy

			pf.Step(0)
			assert.InDelta(t, tt.wantX, p.X, 1e-9)
			assert.InDelta(t, tt.wantY, p.Y, 1e-9)
			assert.Equal(t, tt.vx, p.VX, "velocity unchanged")
			assert.Equal(t, tt.vy, p.VY, "velocity unchanged")
		})
	}
}

func TestParticleField_RenderClampContract(t *testing.T) {
	cfg := plainConfig()
	cfg.Size = R(0.1, 0.5)
	cfg.Opacity = R(0.01, 0.05)
	cfg.Pulse = PulseConfig{Mode: PulseSine, Speed: R(0.01, 0.03), SizeAmplitude: 0.8, OpacityAmplitude: 0.1}
	pf := NewParticleField(cfg, newTestRand())
	pf.SetAmplitude(5)
	pf.Initialize(400, 300)

	s := newRecordingSurface(400, 300)
	for frame := 0; frame < 500; frame++ {
		pf.Step(float64(frame) / 60)
		for i := range pf.Particles() {
			p := &pf.Particles()[i]
			r, a := pf.RenderRadius(p), pf.RenderAlpha(p)
			require.GreaterOrEqual(t, r, minRadius)
			require.GreaterOrEqual(t, a, 0.0)
			require.LessOrEqual(t, a, 1.0)
		}
		s.Clear()
		pf.Render(s)
		for _, op := range s.ops {
			require.GreaterOrEqual(t, op.r, minRadius)
		}
	}
}

func TestParticleField_SparkPulse(t *testing.T) {
	cfg := plainConfig()
	cfg.Pulse = PulseConfig{Mode: PulseSpark, SizeAmplitude: 1, OpacityAmplitude: 0.1, Chance: 1, Life: R(10, 10)}
	pf := NewParticleField(cfg.withDefaults(), newTestRand())
	pf.Initialize(200, 200)

	p := &pf.Particles()[0]
	p.Pulsing, p.Life = false, 0
	pf.Step(0)
	assert.True(t, p.Pulsing, "chance 1 always starts a pulse")

	for i := 0; i < 11; i++ {
		pf.Step(0)
	}
	assert.False(t, p.Pulsing, "pulse ends after its life")
	assert.Equal(t, p.Radius, pf.RenderRadius(p))
}

func TestParticleField_GlowDrawnBeforeFill(t *testing.T) {
	cfg := plainConfig()
	cfg.ParticleCount = 3
	cfg.Glow = 4
	pf := NewParticleField(cfg, newTestRand())
	pf.Initialize(100, 100)

	s := newRecordingSurface(100, 100)
	pf.Render(s)
	require.Len(t, s.ops, 6)
	for i := 0; i < len(s.ops); i += 2 {
		assert.Equal(t, "glow", s.ops[i].kind)
		assert.Equal(t, "fill", s.ops[i+1].kind)
	}
}

func TestTurbulence_SpeedStaysBounded(t *testing.T) {
	cfg := Config{
		ParticleCount: 50,
		Speed:         R(0, 0.1),
		Size:          R(0.5, 2.5),
		Opacity:       R(0.05, 0.2),
		EdgePolicy:    EdgeBounce,
		Turbulence:    TurbulenceConfig{Strength: 0.002, Scale: 0.004, Seed: 1},
	}
	f := newTestField(t, cfg)
	f.Resize(1280, 720)

	// Seeded components each reach 0.1, so a diagonal start may be faster than the cap.
	limit := 0.1*math.Sqrt2 + 1e-9
	for frame := 0; frame < 20000; frame++ {
		f.Step(float64(frame) / 60)
		if frame%1000 != 999 {
			continue
		}
		for i, p := range f.ParticleField().Particles() {
			require.LessOrEqual(t, math.Hypot(p.VX, p.VY), limit, "particle %d at frame %d", i, frame)
		}
	}
}

func TestTurbulence_PushRespectsCap(t *testing.T) {
	tb := NewTurbulence(TurbulenceConfig{Strength: 0.01, Scale: 0.005, MaxSpeed: 0.05})
	p := &Particle{X: 300, Y: 200}
	for i := 0; i < 1000; i++ {
		tb.Push(p, float64(i)/60)
		p.X += p.VX
		p.Y += p.VY
	}
	assert.LessOrEqual(t, math.Hypot(p.VX, p.VY), 0.05+1e-9)
	assert.Positive(t, math.Hypot(p.VX, p.VY), "turbulence still moves a resting particle")

	fast := &Particle{X: 10, Y: 10, VX: 0.3}
	tb.Push(fast, 0)
	assert.LessOrEqual(t, math.Hypot(fast.VX, fast.VY), 0.3+1e-9, "a push never speeds up an already fast particle")
}
