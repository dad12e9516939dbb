package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagDetail  = flag.Int("detail", -1, "Overlay detail level (0-2)")
	flagMaxCost = flag.Int("max-cost", 0, "Pathfinding cost ceiling")
	flagLogFile = flag.String("log-file", "", "Write logs to this file")
	flagSave    = flag.Bool("save-config", false, "Write the effective config to the config directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagDetail >= 0 {
		cfg.Overlay.Detail = *flagDetail
	}
	if *flagMaxCost > 0 {
		cfg.Pathfinding.MaxCost = *flagMaxCost
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
