package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/backdrop/internal/field"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720

	VisualRingSize  = 8192
	SmoothingFactor = 0.6

	// Audio level analysis
	LevelWindow   = 2048
	LevelCompress = 0.3

	TargetFPS = 60
)

// Scene is a named background: a canvas colour under a particle field.
type Scene struct {
	Name       string       `yaml:"name"`
	Background field.Color  `yaml:"background"`
	Field      field.Config `yaml:"field"`
}

// DefaultScene is the thinking background used when nothing else is chosen.
func DefaultScene() Scene {
	s, _ := Preset("thinking")
	return s
}

func (s Scene) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scene: name is required")
	}
	if err := s.Field.Validate(); err != nil {
		return fmt.Errorf("scene %s: %w", s.Name, err)
	}
	return nil
}

// Load reads and validates a scene from a YAML file. See Parse for how missing
// fields are filled.
func Load(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("failed to read scene: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML scene. Sections left out stay off: a scene without
// pointer or connections has neither. The background defaults to white and
// engine tuning constants take their usual defaults.
func Parse(data []byte) (Scene, error) {
	s := Scene{Background: white}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scene{}, fmt.Errorf("failed to parse scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Scene{}, err
	}
	return s, nil
}

// Save writes the scene as YAML, creating parent directories as needed.
func (s Scene) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create scene directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write scene: %w", err)
	}
	return nil
}
