// Package config provides configuration loading and management for the
// slice renderer. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Slice parameters
	Slice struct {
		// Orientation is the plane normal in world coordinates
		Orientation []float64 `yaml:"orientation"`

		// Location is a world-space point; only its component along the
		// orientation is used
		Location []float64 `yaml:"location"`

		// Unit is the world-space unit ("m", "cm", "mm"); empty means inferred
		Unit string `yaml:"unit"`

		// Resolution is the in-plane sample spacing in the chosen unit;
		// zero means 1 mm converted into that unit
		Resolution float64 `yaml:"resolution"`

		// Method is the interpolation method: nearest, linear, or cubic
		Method string `yaml:"method"`
	} `yaml:"slice"`

	// Render parameters
	Render struct {
		// MaskStyle selects mask blending: opacity or colormix
		MaskStyle string `yaml:"maskStyle"`

		// Colormap is the data colormap: gray or hot
		Colormap string `yaml:"colormap"`

		// Scale is the number of output pixels per sample cell
		Scale int `yaml:"scale"`

		// JPEGQuality controls the JPEG encoder
		JPEGQuality int `yaml:"jpegQuality"`
	} `yaml:"render"`

	// Output parameters
	Output struct {
		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default slice parameters
	cfg.Slice.Orientation = []float64{0, 0, 1}
	cfg.Slice.Method = "nearest"

	// Set default render parameters
	cfg.Render.MaskStyle = "opacity"
	cfg.Render.Colormap = "gray"
	cfg.Render.Scale = 1
	cfg.Render.JPEGQuality = 90

	// Set default output parameters
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
