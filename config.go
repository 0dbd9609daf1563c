package sprite

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("sprite: invalid config")

// Config describes an application built on the engine. It is usually read
// from a YAML file:
//
//	name: demo
//	width: 1280
//	height: 720
//	dev: true
//	clear_color: "#1e1e2e"
//	batch:
//	  integerize: true
//	  filter: linear
type Config struct {
	// Name is the application name.
	Name string `yaml:"name"`

	// Width and Height are the back buffer size in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Dev enables development-mode diagnostics.
	Dev bool `yaml:"dev"`

	// ClearColor is a hex color used to clear the back buffer each frame.
	ClearColor string `yaml:"clear_color"`

	// Batch holds defaults for batch engines created from this config.
	Batch BatchConfig `yaml:"batch"`
}

// BatchConfig holds batch engine defaults.
type BatchConfig struct {
	// Integerize snaps sprite and text positions to whole pixels.
	Integerize bool `yaml:"integerize"`

	// Filter is the default sampler filter: "nearest" or "linear".
	Filter string `yaml:"filter"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Name:       "sprite",
		Width:      1280,
		Height:     720,
		ClearColor: "#000000",
		Batch: BatchConfig{
			Filter: "linear",
		},
	}
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("sprite: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("sprite: load config: %w", err)
	}
	return ParseConfig(data)
}

// Validate checks the config for values the engine cannot run with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	switch c.Batch.Filter {
	case "", "nearest", "linear":
	default:
		return fmt.Errorf("%w: unknown filter %q", ErrInvalidConfig, c.Batch.Filter)
	}
	return nil
}

// Clear returns ClearColor parsed as a Color.
func (c Config) Clear() Color {
	return Hex(c.ClearColor)
}
