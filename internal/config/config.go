// Package config handles map and pathfinding configuration loading.
package config

// Config holds all settings.
type Config struct {
	Pathfinding PathfindingConfig `yaml:"pathfinding"`
	Overlay     OverlayConfig     `yaml:"overlay"`
	Clock       ClockConfig       `yaml:"clock"`
	Movement    MovementConfig    `yaml:"movement"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// PathfindingConfig holds search cost settings.
type PathfindingConfig struct {
	StraightCost    int `yaml:"straight_cost"`    // Orthogonal step
	DiagonalCost    int `yaml:"diagonal_cost"`    // Diagonal step (~10*sqrt(2))
	OccupiedPenalty int `yaml:"occupied_penalty"` // Extra cost for stepping onto an occupied cell
	MaxCost         int `yaml:"max_cost"`         // Steps whose accumulated cost exceeds this are dropped
	HeuristicScale  int `yaml:"heuristic_scale"`  // Manhattan distance multiplier
}

// OverlayConfig holds ambient overlay settings.
type OverlayConfig struct {
	// Detail 0 disables overlays, 1 draws only the first, 2+ draws all.
	Detail int `yaml:"detail"`
}

// ClockConfig holds frame tick settings.
type ClockConfig struct {
	WrapTicks int `yaml:"wrap_ticks"`
}

// MovementConfig holds walking settings.
type MovementConfig struct {
	WalkSpeed int `yaml:"walk_speed"` // Ticks to cross one tile
	TileSize  int `yaml:"tile_size"`  // Pixels per tile
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Pathfinding: PathfindingConfig{
			StraightCost:    10,
			DiagonalCost:    14,
			OccupiedPenalty: 30,
			MaxCost:         200,
			HeuristicScale:  10,
		},
		Overlay: OverlayConfig{
			Detail: 2,
		},
		Clock: ClockConfig{
			WrapTicks: 10000,
		},
		Movement: MovementConfig{
			WalkSpeed: 15,
			TileSize:  32,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
