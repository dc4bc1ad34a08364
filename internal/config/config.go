package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gomeasure/pkg/measure"
	"github.com/philipparndt/gomeasure/pkg/pick"
)

const configFileName = "gomeasure.yaml"

// Label backend names accepted in the config file.
const (
	BackendOverlay  = "overlay"
	BackendTextMesh = "textmesh"
)

// Config represents the tool configuration from gomeasure.yaml.
type Config struct {
	Measure MeasureConfig `yaml:"measure"`
	Viewer  ViewerConfig  `yaml:"viewer"`
}

// MeasureConfig tunes the measurement session.
type MeasureConfig struct {
	PointCapacity   int     `yaml:"point_capacity"`
	ClickDebounceMS int     `yaml:"click_debounce_ms"`
	MaxHitDistance  float64 `yaml:"max_hit_distance"`
	LabelBackend    string  `yaml:"label_backend"`
}

// ViewerConfig tunes the interactive window.
type ViewerConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Font   string `yaml:"font"`
}

// Default returns the configuration used when no gomeasure.yaml exists.
func Default() *Config {
	return &Config{
		Measure: MeasureConfig{
			PointCapacity:   measure.DefaultPointCapacity,
			ClickDebounceMS: int(measure.DefaultClickDebounce / time.Millisecond),
			MaxHitDistance:  pick.DefaultMaxDistance,
			LabelBackend:    BackendOverlay,
		},
		Viewer: ViewerConfig{
			Width:  1400,
			Height: 900,
		},
	}
}

// Find walks up from the current working directory looking for gomeasure.yaml.
// Returns the path of the file, or an error if no parent directory has one.
func Find() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, configFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found in any parent directory of %s", configFileName, cwd)
		}
		dir = parent
	}
}

// Load reads and parses a gomeasure.yaml file. Fields absent from the
// file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.Measure.PointCapacity < 1 {
		return fmt.Errorf("'measure.point_capacity' must be at least 1, got %d", c.Measure.PointCapacity)
	}
	if c.Measure.MaxHitDistance <= 0 {
		return fmt.Errorf("'measure.max_hit_distance' must be positive, got %v", c.Measure.MaxHitDistance)
	}
	switch c.Measure.LabelBackend {
	case BackendOverlay, BackendTextMesh:
	default:
		return fmt.Errorf("'measure.label_backend' must be %q or %q, got %q",
			BackendOverlay, BackendTextMesh, c.Measure.LabelBackend)
	}
	if c.Viewer.Width < 1 || c.Viewer.Height < 1 {
		return fmt.Errorf("'viewer.width' and 'viewer.height' must be positive, got %dx%d",
			c.Viewer.Width, c.Viewer.Height)
	}
	return nil
}

// SessionConfig converts the file representation into session tunables.
// A zero or negative click_debounce_ms disables the debounce.
func (c *Config) SessionConfig() measure.Config {
	cfg := measure.DefaultConfig()
	cfg.PointCapacity = c.Measure.PointCapacity
	cfg.MaxHitDistance = c.Measure.MaxHitDistance
	if c.Measure.ClickDebounceMS <= 0 {
		cfg.ClickDebounce = -1
	} else {
		cfg.ClickDebounce = time.Duration(c.Measure.ClickDebounceMS) * time.Millisecond
	}
	return cfg
}
