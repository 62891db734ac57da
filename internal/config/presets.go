package config

import (
	"fmt"
	"sort"

	"github.com/iburimskiy/backdrop/internal/field"
)

var (
	black = field.RGBA(0, 0, 0, 1)
	paper = field.RGBA(0xfa, 0xf9, 0xf6, 1)
	white = field.RGBA(0xff, 0xff, 0xff, 1)
)

func lightPalette() []field.Color {
	return []field.Color{
		field.RGBA(209, 209, 209, 0.4),
		field.RGBA(225, 219, 214, 0.4),
		field.RGBA(226, 226, 226, 0.4),
		field.RGBA(249, 246, 242, 0.4),
		field.RGBA(240, 240, 240, 0.4),
	}
}

// presets reproduces each of the site's section backgrounds.
var presets = map[string]func() Scene{
	"thinking": func() Scene {
		return Scene{
			Name:       "thinking",
			Background: white,
			Field: field.Config{
				ParticleCount: 80,
				Speed:         field.R(0, 0.15),
				Size:          field.R(1, 3),
				Opacity:       field.R(0.1, 0.1),
				Palette:       []field.Color{black},
				EdgePolicy:    field.EdgeBounce,
				Connections:   field.ConnectionConfig{Distance: 150, MaxOpacity: 0.1, Width: 1, Color: black},
				Pointer: field.PointerConfig{
					Enabled:       true,
					CaptureRadius: 200,
					Gain:          0.05,
					Damping:       0.99,
					MinSpeed:      0.1,
					Jitter:        0.01,
					Halo:          true,
				},
			},
		}
	},
	"spark": func() Scene {
		return Scene{
			Name:       "spark",
			Background: white,
			Field: field.Config{
				Density:    50000,
				Speed:      field.R(0, 0.025),
				Size:       field.R(0.5, 2),
				Opacity:    field.R(0.03, 0.03),
				Palette:    []field.Color{black},
				EdgePolicy: field.EdgeWrap,
				Pulse: field.PulseConfig{
					Mode:             field.PulseSpark,
					SizeAmplitude:    1,
					OpacityAmplitude: 0.1,
					Chance:           0.002,
					Life:             field.R(100, 200),
					AudioGain:        3,
				},
			},
		}
	},
	"structure": func() Scene {
		return Scene{
			Name:       "structure",
			Background: white,
			Field: field.Config{
				Density:     25000,
				Speed:       field.R(0, 0.2),
				Size:        field.R(0.5, 2),
				Opacity:     field.R(0.15, 0.15),
				Palette:     []field.Color{black},
				Axis:        field.AxisSplit,
				EdgePolicy:  field.EdgeWrap,
				Connections: field.ConnectionConfig{Distance: 100, MaxOpacity: 0.08, Width: 0.5, Color: black},
			},
		}
	},
	"organic": func() Scene {
		return Scene{
			Name:       "organic",
			Background: paper,
			Field: field.Config{
				Organic: field.OrganicConfig{
					Enabled:  true,
					Count:    120,
					GridSize: 60,
					Growth:   field.GrowthRecycle,
					Color:    black,
				},
			},
		}
	},
	"about": func() Scene {
		return Scene{
			Name:       "about",
			Background: paper,
			Field: field.Config{
				ParticleCount: 80,
				Speed:         field.R(0, 0.125),
				Size:          field.R(0.5, 3),
				Opacity:       field.R(0.1, 0.4),
				Palette:       lightPalette(),
				Glow:          4,
				EdgePolicy:    field.EdgeBounce,
				Pulse: field.PulseConfig{
					Mode:             field.PulseSine,
					Speed:            field.R(0.01, 0.03),
					SizeAmplitude:    0.8,
					OpacityAmplitude: 0.1,
					AudioGain:        2,
				},
				Connections: field.ConnectionConfig{Distance: 150, MaxOpacity: 0.06, Width: 0.8, Color: field.RGBA(180, 180, 180, 1)},
				Shapes: field.ShapeConfig{
					Count:         20,
					Kinds:         append([]field.ShapeKind(nil), field.AllShapeKinds...),
					Size:          field.R(15, 75),
					Speed:         field.R(0, 0.05),
					Opacity:       field.R(0.02, 0.1),
					RotationSpeed: field.R(0, 0.001),
					Margin:        50,
					Width:         1.5,
					Color:         field.RGBA(120, 120, 120, 0.6),
				},
				Grid: field.GridConfig{
					Enabled:     true,
					Spacing:     50,
					LineWidth:   0.5,
					BaseOpacity: 0.04,
					Amplitude:   0.02,
					Dots:        true,
					Color:       black,
				},
				Ripples: field.RippleConfig{
					Centers: []field.Point{{X: 0.3, Y: 0.2}, {X: 0.7, Y: 0.8}, {X: 0.8, Y: 0.3}},
					Rings:   4,
					Speed:   30,
					Period:  300,
					Color:   field.RGBA(200, 200, 200, 1),
				},
				FlowLines: field.FlowConfig{Count: 5, Speed: 25, Spacing: 200, Opacity: 0.06, Color: field.RGBA(190, 190, 190, 1)},
			},
		}
	},
	"hero": func() Scene {
		return Scene{
			Name:       "hero",
			Background: white,
			Field: field.Config{
				ParticleCount: 30,
				Speed:         field.R(0, 0.075),
				Size:          field.R(0.5, 1.5),
				Opacity:       field.R(0.03, 0.13),
				Palette:       lightPalette(),
				Glow:          2,
				EdgePolicy:    field.EdgeWrap,
				Shapes: field.ShapeConfig{
					Count:         8,
					Kinds:         []field.ShapeKind{field.ShapeTriangle, field.ShapeSquare},
					Size:          field.R(15, 45),
					Speed:         field.R(0, 0.04),
					Opacity:       field.R(0.02, 0.08),
					RotationSpeed: field.R(0, 0.0005),
					Width:         1,
					Color:         field.RGBA(100, 100, 100, 0.4),
				},
				FlowLines: field.FlowConfig{Count: 3, Speed: 15, Spacing: 500, Opacity: 0.04, Color: field.RGBA(190, 190, 190, 1)},
			},
		}
	},
	"work": func() Scene {
		return Scene{
			Name:       "work",
			Background: paper,
			Field: field.Config{
				ParticleCount: 60,
				Speed:         field.R(0, 0.15),
				Size:          field.R(1, 4),
				Opacity:       field.R(0.1, 0.5),
				Palette:       lightPalette(),
				Glow:          3,
				EdgePolicy:    field.EdgeBounce,
				Pulse: field.PulseConfig{
					Mode:             field.PulseSine,
					Speed:            field.R(0.01, 0.03),
					SizeAmplitude:    0.5,
					OpacityAmplitude: 0.1,
				},
				Shapes: field.ShapeConfig{
					Count:         15,
					Kinds:         []field.ShapeKind{field.ShapeCircle, field.ShapeSquare, field.ShapeTriangle, field.ShapeDiamond},
					Size:          field.R(20, 70),
					Speed:         field.R(0, 0.075),
					Opacity:       field.R(0.03, 0.13),
					RotationSpeed: field.R(0, 0.0015),
					Margin:        50,
					Width:         1,
					Color:         field.RGBA(130, 130, 130, 0.6),
				},
				Grid: field.GridConfig{
					Enabled:     true,
					Spacing:     80,
					LineWidth:   0.5,
					BaseOpacity: 0.03,
					Amplitude:   0.01,
					Color:       black,
				},
			},
		}
	},
	"multi": func() Scene {
		return Scene{
			Name:       "multi",
			Background: white,
			Field: field.Config{
				ParticleCount: 50,
				Speed:         field.R(0, 0.1),
				Size:          field.R(0.5, 2.5),
				Opacity:       field.R(0.05, 0.2),
				Palette:       lightPalette(),
				EdgePolicy:    field.EdgeBounce,
				Connections:   field.ConnectionConfig{Distance: 120, MaxOpacity: 0.05, Width: 0.5, Color: field.RGBA(160, 160, 160, 1)},
				Shapes: field.ShapeConfig{
					Count:         6,
					Kinds:         []field.ShapeKind{field.ShapeCircle, field.ShapeHexagon, field.ShapeDiamond},
					Size:          field.R(20, 60),
					Speed:         field.R(0, 0.05),
					Opacity:       field.R(0.03, 0.11),
					RotationSpeed: field.R(0, 0.001),
					Width:         1,
					Color:         field.RGBA(120, 120, 120, 0.6),
				},
				Turbulence: field.TurbulenceConfig{Strength: 0.002, Scale: 0.004},
			},
		}
	},
}

// Preset returns a fresh copy of a named scene.
func Preset(name string) (Scene, error) {
	build, ok := presets[name]
	if !ok {
		return Scene{}, fmt.Errorf("unknown preset %q (have %v)", name, PresetNames())
	}
	return build(), nil
}

// PresetNames lists the built-in scenes in alphabetical order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
