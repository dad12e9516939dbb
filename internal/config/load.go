package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when loaded values cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that costs and timings are usable by the search and clock.
func (c *Config) Validate() error {
	p := c.Pathfinding
	if p.StraightCost <= 0 || p.DiagonalCost <= 0 {
		return fmt.Errorf("%w: step costs must be positive (straight=%d, diagonal=%d)",
			ErrInvalidConfig, p.StraightCost, p.DiagonalCost)
	}
	if p.OccupiedPenalty < 0 {
		return fmt.Errorf("%w: occupied_penalty must not be negative", ErrInvalidConfig)
	}
	if p.MaxCost <= 0 {
		return fmt.Errorf("%w: max_cost must be positive", ErrInvalidConfig)
	}
	if p.HeuristicScale < 0 {
		return fmt.Errorf("%w: heuristic_scale must not be negative", ErrInvalidConfig)
	}
	if c.Clock.WrapTicks < 0 {
		return fmt.Errorf("%w: wrap_ticks must not be negative", ErrInvalidConfig)
	}
	if c.Movement.WalkSpeed <= 0 || c.Movement.TileSize <= 0 {
		return fmt.Errorf("%w: walk_speed and tile_size must be positive", ErrInvalidConfig)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./manamap.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Manamap")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Manamap")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "manamap")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "manamap")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
