// Package config loads the cardsheet YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/cardsheet/pkg/card"
	"github.com/Dicklesworthstone/cardsheet/pkg/logging"
)

// Config is the full program configuration. Every key is optional.
type Config struct {
	Panel    PanelConfig    `yaml:"panel"`
	Terminal TerminalConfig `yaml:"terminal"`
	Keyboard KeyboardConfig `yaml:"keyboard"`
	Content  ContentConfig  `yaml:"content"`
	Log      LogConfig      `yaml:"log"`
}

// PanelConfig holds the card geometry constants.
type PanelConfig struct {
	CollapseHeight float64 `yaml:"collapse_height"`
	CornerRadius   float64 `yaml:"corner_radius"`
}

// TerminalConfig maps layout units onto terminal cells.
type TerminalConfig struct {
	// UnitsPerRow is how many layout units one terminal row represents.
	UnitsPerRow float64 `yaml:"units_per_row"`
	FPS         int     `yaml:"fps"`
}

// KeyboardConfig tunes the synthetic gestures keys produce.
type KeyboardConfig struct {
	Velocity    float64 `yaml:"velocity"`
	SwipeFrames int     `yaml:"swipe_frames"`
}

// ContentConfig selects the panel content.
type ContentConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// LogConfig controls the structured log file.
type LogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Path    string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Panel: PanelConfig{
			CollapseHeight: card.DefaultCollapseHeight,
			CornerRadius:   card.DefaultCornerRadius,
		},
		Terminal: TerminalConfig{
			UnitsPerRow: 16,
			FPS:         60,
		},
		Keyboard: KeyboardConfig{
			Velocity:    1500,
			SwipeFrames: 10,
		},
		Content: ContentConfig{
			Watch: true,
		},
		Log: LogConfig{
			Level: "info",
			Path:  "cardsheet.log",
		},
	}
}

// Load reads the configuration at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r over the defaults and validates the result.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Panel.CollapseHeight <= 0 {
		return fmt.Errorf("panel.collapse_height must be positive, got %v", c.Panel.CollapseHeight)
	}
	if c.Panel.CornerRadius < 0 {
		return fmt.Errorf("panel.corner_radius must not be negative, got %v", c.Panel.CornerRadius)
	}
	if c.Terminal.UnitsPerRow <= 0 {
		return fmt.Errorf("terminal.units_per_row must be positive, got %v", c.Terminal.UnitsPerRow)
	}
	if c.Terminal.FPS < 1 || c.Terminal.FPS > 240 {
		return fmt.Errorf("terminal.fps must be between 1 and 240, got %d", c.Terminal.FPS)
	}
	if c.Keyboard.Velocity <= 0 {
		return fmt.Errorf("keyboard.velocity must be positive, got %v", c.Keyboard.Velocity)
	}
	if c.Keyboard.SwipeFrames < 1 {
		return fmt.Errorf("keyboard.swipe_frames must be at least 1, got %d", c.Keyboard.SwipeFrames)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Enabled && c.Log.Path == "" {
		return fmt.Errorf("log.path is required when logging is enabled")
	}
	return nil
}

// CardOptions converts the panel section into controller options.
func (c Config) CardOptions(log logging.Log) card.Options {
	return card.Options{
		CollapseHeight: c.Panel.CollapseHeight,
		CornerRadius:   c.Panel.CornerRadius,
		Logger:         log,
	}
}
