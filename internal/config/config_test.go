package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	p := cfg.Pathfinding
	if p.StraightCost != 10 {
		t.Errorf("expected straight cost 10, got %d", p.StraightCost)
	}
	if p.DiagonalCost != 14 {
		t.Errorf("expected diagonal cost 14, got %d", p.DiagonalCost)
	}
	if p.OccupiedPenalty != 30 {
		t.Errorf("expected occupied penalty 30, got %d", p.OccupiedPenalty)
	}
	if p.MaxCost != 200 {
		t.Errorf("expected max cost 200, got %d", p.MaxCost)
	}
	if p.HeuristicScale != 10 {
		t.Errorf("expected heuristic scale 10, got %d", p.HeuristicScale)
	}

	if cfg.Clock.WrapTicks != 10000 {
		t.Errorf("expected wrap ticks 10000, got %d", cfg.Clock.WrapTicks)
	}
	if cfg.Overlay.Detail != 2 {
		t.Errorf("expected overlay detail 2, got %d", cfg.Overlay.Detail)
	}
	if cfg.Movement.TileSize != 32 {
		t.Errorf("expected tile size 32, got %d", cfg.Movement.TileSize)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
pathfinding:
  occupied_penalty: 50
  max_cost: 400

overlay:
  detail: 1

clock:
  wrap_ticks: 0

logging:
  level: "debug"
  log_file: "map.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Pathfinding.OccupiedPenalty != 50 {
		t.Errorf("expected penalty 50, got %d", cfg.Pathfinding.OccupiedPenalty)
	}
	if cfg.Pathfinding.MaxCost != 400 {
		t.Errorf("expected max cost 400, got %d", cfg.Pathfinding.MaxCost)
	}
	// Unset keys keep their defaults
	if cfg.Pathfinding.StraightCost != 10 {
		t.Errorf("expected straight cost to stay 10, got %d", cfg.Pathfinding.StraightCost)
	}
	if cfg.Overlay.Detail != 1 {
		t.Errorf("expected detail 1, got %d", cfg.Overlay.Detail)
	}
	if cfg.Clock.WrapTicks != 0 {
		t.Errorf("expected unbounded clock, got wrap %d", cfg.Clock.WrapTicks)
	}
	if cfg.Logging.LogFile != "map.log" {
		t.Errorf("expected log file 'map.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
pathfinding:
  max_cost: lots
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero straight cost", func(c *Config) { c.Pathfinding.StraightCost = 0 }},
		{"negative diagonal cost", func(c *Config) { c.Pathfinding.DiagonalCost = -1 }},
		{"negative penalty", func(c *Config) { c.Pathfinding.OccupiedPenalty = -5 }},
		{"zero max cost", func(c *Config) { c.Pathfinding.MaxCost = 0 }},
		{"negative heuristic", func(c *Config) { c.Pathfinding.HeuristicScale = -1 }},
		{"negative wrap", func(c *Config) { c.Clock.WrapTicks = -1 }},
		{"zero walk speed", func(c *Config) { c.Movement.WalkSpeed = 0 }},
		{"zero tile size", func(c *Config) { c.Movement.TileSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSaveTo(t *testing.T) {
	savePath := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	cfg := Default()
	cfg.Pathfinding.MaxCost = 320
	cfg.Logging.Level = "warn"

	if err := cfg.SaveTo(savePath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, savePath); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Pathfinding.MaxCost != 320 {
		t.Errorf("expected max cost 320, got %d", loaded.Pathfinding.MaxCost)
	}
	if loaded.Logging.Level != "warn" {
		t.Errorf("expected level 'warn', got %s", loaded.Logging.Level)
	}
}

func TestSaveFoundByLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)
	t.Setenv("APPDATA", tmpDir)
	t.Chdir(tmpDir)

	cfg := Default()
	cfg.Overlay.Detail = 1
	path, err := cfg.Save()
	if err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
	if path != filepath.Join(ConfigDir(), "config.yaml") {
		t.Errorf("expected save under ConfigDir, got %s", path)
	}

	if found := findConfigFile(); found != path {
		t.Errorf("expected findConfigFile to return %s, got %q", path, found)
	}
	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Overlay.Detail != 1 {
		t.Errorf("expected detail 1, got %d", loaded.Overlay.Detail)
	}
}

func TestConfigDir(t *testing.T) {
	if ConfigDir() == "" {
		t.Error("ConfigDir returned empty string")
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)
	t.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "manamap.yaml")
	if err := os.WriteFile(configPath, []byte("overlay:\n  detail: 0\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find manamap.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "detail flag",
			setup: func() { *flagDetail = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Overlay.Detail != 0 {
					t.Errorf("expected detail 0, got %d", cfg.Overlay.Detail)
				}
			},
			teardown: func() { *flagDetail = -1 },
		},
		{
			name:  "max cost flag",
			setup: func() { *flagMaxCost = 500 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Pathfinding.MaxCost != 500 {
					t.Errorf("expected max cost 500, got %d", cfg.Pathfinding.MaxCost)
				}
			},
			teardown: func() { *flagMaxCost = 0 },
		},
		{
			name:  "log file flag",
			setup: func() { *flagLogFile = "trace.log" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "trace.log" {
					t.Errorf("expected log file trace.log, got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() { *flagLogFile = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
pathfinding:
  max_cost: 300
  occupied_penalty: 40
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagMaxCost = 600
	defer func() {
		*flagConfig = ""
		*flagMaxCost = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Pathfinding.MaxCost != 600 {
		t.Errorf("expected max cost 600 from flag, got %d", cfg.Pathfinding.MaxCost)
	}
	if cfg.Pathfinding.OccupiedPenalty != 40 {
		t.Errorf("expected penalty 40 from file, got %d", cfg.Pathfinding.OccupiedPenalty)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("pathfinding:\n  straight_cost: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
