package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/manamap/internal/config"
	"github.com/Faultbox/manamap/internal/entity"
	"github.com/Faultbox/manamap/internal/world"
)

// Scenario is a map plus the beings standing on it and a query to run.
type Scenario struct {
	Map    world.Description `yaml:"map"`
	Beings []BeingDesc       `yaml:"beings"`
	From   world.Point       `yaml:"from"`
	To     world.Point       `yaml:"to"`
	Walk   bool              `yaml:"walk"` // Simulate the walker following the path

	// Images sizes the textures named by overlay properties.
	Images map[string]ImageDesc `yaml:"images"`
}

// ImageDesc gives the pixel size of a named image.
type ImageDesc struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// sizedImage stands in for a texture; the CLI never rasterises.
type sizedImage struct {
	w, h int
}

func (i sizedImage) Width() int  { return i.w }
func (i sizedImage) Height() int { return i.h }

// Image implements world.ImageSource.
func (s *Scenario) Image(name string) (world.Image, bool) {
	d, ok := s.Images[name]
	if !ok {
		return nil, false
	}
	return sizedImage{w: d.Width, h: d.Height}, true
}

// BeingDesc places one entity on the map.
type BeingDesc struct {
	ID   uint32 `yaml:"id"`
	Type string `yaml:"type"`
	Name string `yaml:"name"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

// walkerID is reserved for the entity that follows the path.
const walkerID = 0

func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return parseScenario(data)
}

func parseScenario(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", world.ErrInvalidDescription, err)
	}
	return &s, nil
}

func parseType(name string) (entity.Type, error) {
	switch strings.ToLower(name) {
	case "player":
		return entity.TypePlayer, nil
	case "", "monster":
		return entity.TypeMonster, nil
	case "npc":
		return entity.TypeNPC, nil
	case "portal", "warp":
		return entity.TypePortal, nil
	default:
		return 0, fmt.Errorf("unknown being type %q", name)
	}
}

func costsFromConfig(p config.PathfindingConfig) world.Costs {
	return world.Costs{
		Straight:        p.StraightCost,
		Diagonal:        p.DiagonalCost,
		OccupiedPenalty: p.OccupiedPenalty,
		Max:             p.MaxCost,
		HeuristicScale:  p.HeuristicScale,
	}
}

// build creates the map and registers every being, including the walker
// standing on From.
func (s *Scenario) build(cfg *config.Config) (*world.Map, *entity.Manager, *entity.Entity, error) {
	mgr := entity.NewManager()
	m, err := s.Map.Build(
		world.WithCosts(costsFromConfig(cfg.Pathfinding)),
		world.WithOccupancy(mgr),
		world.WithClock(world.NewClock(cfg.Clock.WrapTicks)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	walker := entity.New(walkerID, entity.TypePlayer, s.From.X, s.From.Y,
		cfg.Movement.WalkSpeed, cfg.Movement.TileSize)
	walker.Name = "walker"
	if err := mgr.SetPlayer(walker); err != nil {
		return nil, nil, nil, err
	}
	if err := walker.SetMap(m); err != nil {
		return nil, nil, nil, err
	}

	for _, b := range s.Beings {
		if b.ID == walkerID {
			return nil, nil, nil, fmt.Errorf("being id %d is reserved for the walker", walkerID)
		}
		if !m.Contains(b.X, b.Y) {
			return nil, nil, nil, fmt.Errorf("being %d at (%d,%d): %w", b.ID, b.X, b.Y, world.ErrOutOfBounds)
		}
		typ, err := parseType(b.Type)
		if err != nil {
			return nil, nil, nil, err
		}
		e := entity.New(b.ID, typ, b.X, b.Y, cfg.Movement.WalkSpeed, cfg.Movement.TileSize)
		e.Name = b.Name
		if err := mgr.Add(e); err != nil {
			return nil, nil, nil, err
		}
		if err := e.SetMap(m); err != nil {
			return nil, nil, nil, err
		}
	}
	return m, mgr, walker, nil
}

// walk drives the walker along its path on the map clock and returns the
// ticks taken. limit bounds the simulation.
func walk(m *world.Map, mgr *entity.Manager, walker *entity.Entity, to world.Point, limit int) (int, error) {
	if err := walker.SetDestination(to.X, to.Y); err != nil {
		return 0, err
	}
	ticks := 0
	for walker.Action == entity.ActionWalk && ticks < limit {
		m.Clock().Tick(1)
		mgr.Logic()
		m.SortSprites()
		ticks++
	}
	return ticks, nil
}
