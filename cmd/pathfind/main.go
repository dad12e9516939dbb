// pathfind runs a path query over a YAML map scenario and prints the result.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Faultbox/manamap/internal/config"
	"github.com/Faultbox/manamap/internal/logger"
)

func main() {
	flag.Usage = printUsage
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			logger.Error("failed to save config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", path))
		if flag.NArg() == 0 {
			return
		}
	}

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	if err := run(cfg, flag.Arg(0)); err != nil {
		logger.Error("pathfind failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, path string) error {
	s, err := loadScenario(path)
	if err != nil {
		return err
	}
	m, mgr, walker, err := s.build(cfg)
	if err != nil {
		return err
	}
	overlays := m.InitializeOverlays(s)
	logger.Sugar.Debugf("scenario %s: %dx%d, %d beings, %d overlays",
		path, m.Width(), m.Height(), mgr.Count(), overlays)

	res, err := m.Search(s.From.X, s.From.Y, s.To.X, s.To.Y)
	if err != nil {
		return err
	}

	ticks := 0
	if s.Walk && len(res.Path) > 0 {
		// One walk period per step, plus one to settle.
		limit := (len(res.Path) + 1) * cfg.Movement.WalkSpeed
		if ticks, err = walk(m, mgr, walker, s.To, limit); err != nil {
			return err
		}
	}

	name := s.Map.Name
	if name == "" {
		name = path
	}
	fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top,
		renderGrid(gridRows(m, mgr, res.Path, s.From, s.To)),
		" ",
		renderSummary(name, res, ticks, drawOverlays(m, cfg.Overlay.Detail), overlays),
	))
	return nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `pathfind - run a path query over a map scenario

Usage:
  pathfind [flags] <scenario.yaml>
  pathfind -save-config [flags]

Flags:`)
	flag.PrintDefaults()
}
