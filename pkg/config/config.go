// Package config loads workshop defaults (fit tolerance, floor grid
// dimensions) from a YAML file. Absent fields keep their defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fennwick/torq/pkg/grid"
	"github.com/fennwick/torq/pkg/tool"
)

// Config is the root of the YAML document.
type Config struct {
	Tolerance ToleranceConfig `yaml:"tolerance"`
	Grid      GridConfig      `yaml:"grid"`
}

// ToleranceConfig mirrors tool.Tolerance.
type ToleranceConfig struct {
	Rel float64 `yaml:"rel"`
	Abs float64 `yaml:"abs"`
}

// GridConfig mirrors grid.Grid.
type GridConfig struct {
	XTiles   int `yaml:"x_tiles"`
	YTiles   int `yaml:"y_tiles"`
	TileSize int `yaml:"tile_size"`
}

// Default returns the configuration used when no file is given: the
// default fit tolerance and the 20x15 grid of 40px tiles from the
// original floor demo.
func Default() Config {
	return Config{
		Tolerance: ToleranceConfig{Rel: tool.Default.Rel, Abs: tool.Default.Abs},
		Grid:      GridConfig{XTiles: 20, YTiles: 15, TileSize: 40},
	}
}

// Parse unmarshals YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Tolerance.Rel < 0 || cfg.Tolerance.Abs < 0 {
		return Config{}, fmt.Errorf("tolerance values must not be negative")
	}
	if cfg.Grid.XTiles <= 0 || cfg.Grid.YTiles <= 0 || cfg.Grid.TileSize <= 0 {
		return Config{}, fmt.Errorf("grid dimensions must be positive")
	}
	return cfg, nil
}

// Load reads and parses a YAML config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// ToolTolerance converts to the tool package type.
func (c Config) ToolTolerance() tool.Tolerance {
	return tool.Tolerance{Rel: c.Tolerance.Rel, Abs: c.Tolerance.Abs}
}

// FloorGrid converts to the grid package type.
func (c Config) FloorGrid() grid.Grid {
	return grid.Grid{XTiles: c.Grid.XTiles, YTiles: c.Grid.YTiles, TileSize: c.Grid.TileSize}
}
