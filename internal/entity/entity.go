// Package entity implements map-anchored beings (players, monsters, NPCs,
// portals) and the registry that answers cell occupancy queries.
package entity

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/manamap/internal/logger"
	"github.com/Faultbox/manamap/internal/world"
)

// Entity errors.
var (
	ErrUnknownEntity   = errors.New("unknown entity")
	ErrDuplicateEntity = errors.New("entity already registered")
	ErrNoMap           = errors.New("entity is not on a map")
)

// Type represents the category of an entity.
type Type uint8

const (
	TypePlayer Type = iota
	TypeMonster
	TypeNPC
	TypePortal // Never blocks movement
)

// String returns a human-readable type name.
func (t Type) String() string {
	switch t {
	case TypePlayer:
		return "Player"
	case TypeMonster:
		return "Monster"
	case TypeNPC:
		return "NPC"
	case TypePortal:
		return "Portal"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// Direction constants for 8-way movement.
const (
	DirS  = 0 // South
	DirSW = 1 // Southwest
	DirW  = 2 // West
	DirNW = 3 // Northwest
	DirN  = 4 // North
	DirNE = 5 // Northeast
	DirE  = 6 // East
	DirSE = 7 // Southeast
)

// Action is what an entity is currently doing.
type Action uint8

const (
	ActionStand Action = iota
	ActionWalk
	ActionDead
)

// Entity is a being standing on a map cell.
type Entity struct {
	ID   uint32
	Name string

	Direction int // 0-7: S, SW, W, NW, N, NE, E, SE
	Action    Action
	Image     world.Image // Optional; drawn at the entity's pixel position

	typ  Type
	x, y int

	// Movement
	walkSpeed int // Ticks to cross one tile
	tileSize  int // Pixels per tile
	walkTime  int // Tick at which the current step started
	path      world.Path

	m        *world.Map
	token    *world.SpriteToken
	registry *Manager
}

// New creates an entity at cell (x, y). walkSpeed is in ticks per tile.
func New(id uint32, t Type, x, y, walkSpeed, tileSize int) *Entity {
	return &Entity{
		ID:        id,
		typ:       t,
		Direction: DirS,
		x:         x,
		y:         y,
		walkSpeed: max(walkSpeed, 1),
		tileSize:  max(tileSize, 1),
	}
}

// Cell returns the entity's current cell.
func (e *Entity) Cell() (x, y int) {
	return e.x, e.y
}

// Type returns the entity category.
func (e *Entity) Type() Type {
	return e.typ
}

// SetType changes the category. The registry re-indexes the entity, since
// the category decides whether it occupies its cell.
func (e *Entity) SetType(t Type) {
	if e.typ == t {
		return
	}
	if e.registry != nil {
		e.registry.unindex(e, e.x, e.y)
	}
	e.typ = t
	if e.registry != nil {
		e.registry.index(e, e.x, e.y)
	}
}

// BlocksMovement reports whether other beings path around this one.
func (e *Entity) BlocksMovement() bool {
	return e.typ != TypePortal
}

// Map returns the map the entity is on, or nil.
func (e *Entity) Map() *world.Map {
	return e.m
}

// SetMap moves the entity's sprite from its previous map to m. nil detaches.
func (e *Entity) SetMap(m *world.Map) error {
	if e.m != nil {
		if err := e.m.RemoveSprite(e.token); err != nil {
			return fmt.Errorf("detaching entity %d: %w", e.ID, err)
		}
		e.token = nil
	}

	e.m = m
	e.path = nil
	if m != nil {
		e.token = m.AddSprite(e)
	}
	return nil
}

// SetCell teleports the entity, dropping any path it was following.
func (e *Entity) SetCell(x, y int) {
	e.path = nil
	e.Action = ActionStand
	e.moveTo(x, y)
}

// SetDestination plans a path from the current cell on the entity's map.
// An unreachable destination leaves the entity standing.
func (e *Entity) SetDestination(destX, destY int) error {
	if e.m == nil {
		return ErrNoMap
	}
	path, err := e.m.FindPath(e.x, e.y, destX, destY)
	if err != nil {
		return fmt.Errorf("entity %d path to (%d,%d): %w", e.ID, destX, destY, err)
	}
	if len(path) == 0 {
		logger.Named("entity").Debug("destination unreachable",
			zap.Uint32("id", e.ID), zap.Int("x", destX), zap.Int("y", destY))
	}
	e.SetPath(path)
	return nil
}

// SetPath replaces the remaining waypoints. A standing entity starts its
// first step immediately.
func (e *Entity) SetPath(path world.Path) {
	e.path = path
	if e.Action != ActionWalk && e.Action != ActionDead {
		e.NextStep()
		if e.m != nil {
			e.walkTime = e.m.Clock().Now()
		}
	}
}

// Path returns the waypoints not yet stepped onto.
func (e *Entity) Path() world.Path {
	return e.path
}

// ClearPath drops the remaining waypoints; the current step still finishes.
func (e *Entity) ClearPath() {
	e.path = nil
}

// NextStep moves onto the next waypoint and faces it. With no waypoints
// left the entity stands.
func (e *Entity) NextStep() {
	if len(e.path) == 0 {
		e.Action = ActionStand
		return
	}

	node := e.path[0]
	e.path = e.path[1:]

	e.Direction = directionTo(node.X-e.x, node.Y-e.y, e.Direction)
	e.moveTo(node.X, node.Y)
	e.Action = ActionWalk
	if e.m != nil {
		e.walkTime = e.m.Clock().Advance(e.walkTime, e.walkSpeed)
	}
}

// Logic advances movement on the map clock: once a step has taken
// walkSpeed ticks the next waypoint is taken.
func (e *Entity) Logic() {
	if e.m == nil || e.Action != ActionWalk {
		return
	}
	if e.m.Clock().Elapsed(e.walkTime) >= e.walkSpeed {
		e.NextStep()
	}
}

// PixelX returns the horizontal draw position including the walk offset.
func (e *Entity) PixelX() int {
	return e.x*e.tileSize + e.xOffset()
}

// PixelY returns the vertical draw position including the walk offset.
// It is the depth key of the sprite list.
func (e *Entity) PixelY() int {
	return e.y*e.tileSize + e.yOffset()
}

// Draw implements world.Sprite.
func (e *Entity) Draw(r world.Renderer, offsetX, offsetY int) {
	if e.Image == nil {
		return
	}
	r.DrawImage(e.Image,
		e.PixelX()+offsetX,
		e.PixelY()+offsetY+e.tileSize-e.Image.Height())
}

func (e *Entity) xOffset() int {
	if e.Action != ActionWalk || e.Direction == DirN || e.Direction == DirS {
		return 0
	}
	offset := e.stepOffset()
	if e.Direction == DirW || e.Direction == DirNW || e.Direction == DirSW {
		offset = -offset
	}
	return offset
}

func (e *Entity) yOffset() int {
	if e.Action != ActionWalk || e.Direction == DirE || e.Direction == DirW {
		return 0
	}
	offset := e.stepOffset()
	if e.Direction == DirN || e.Direction == DirNW || e.Direction == DirNE {
		offset = -offset
	}
	return offset
}

// stepOffset is the distance still to cover to the target cell, measured
// from the target and therefore never positive.
func (e *Entity) stepOffset() int {
	if e.m == nil {
		return 0
	}
	offset := e.m.Clock().Elapsed(e.walkTime)*e.tileSize/e.walkSpeed - e.tileSize
	return min(offset, 0)
}

func (e *Entity) moveTo(x, y int) {
	oldX, oldY := e.x, e.y
	e.x, e.y = x, y
	if e.registry != nil {
		e.registry.relocate(e, oldX, oldY)
	}
}

// directionTo maps a step delta to a facing; a zero delta keeps current.
func directionTo(dx, dy, current int) int {
	switch {
	case dx > 0 && dy > 0:
		return DirSE
	case dx > 0 && dy < 0:
		return DirNE
	case dx > 0:
		return DirE
	case dx < 0 && dy > 0:
		return DirSW
	case dx < 0 && dy < 0:
		return DirNW
	case dx < 0:
		return DirW
	case dy > 0:
		return DirS
	case dy < 0:
		return DirN
	default:
		return current
	}
}
