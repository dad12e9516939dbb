package entity

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/Faultbox/manamap/internal/logger"
	"github.com/Faultbox/manamap/internal/world"
)

// Manager is the registry of live entities. It keeps a cell index of
// blocking entities so occupancy queries are O(1).
type Manager struct {
	entities map[uint32]*Entity
	cells    map[world.Point]mapset.Set[uint32]
	player   *Entity
}

// NewManager creates an empty registry.
func NewManager() *Manager {
	return &Manager{
		entities: make(map[uint32]*Entity),
		cells:    make(map[world.Point]mapset.Set[uint32]),
	}
}

// Add registers an entity.
func (m *Manager) Add(e *Entity) error {
	if _, ok := m.entities[e.ID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateEntity, e.ID)
	}
	if e.registry != nil && e.registry != m {
		return fmt.Errorf("%w: %d belongs to another registry", ErrDuplicateEntity, e.ID)
	}
	m.entities[e.ID] = e
	e.registry = m
	m.index(e, e.x, e.y)

	logger.Named("entity").Debug("entity added",
		zap.Uint32("id", e.ID), zap.Stringer("type", e.typ),
		zap.Int("x", e.x), zap.Int("y", e.y))
	return nil
}

// Remove unregisters an entity and detaches it from its map.
func (m *Manager) Remove(id uint32) error {
	e, ok := m.entities[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEntity, id)
	}
	m.unindex(e, e.x, e.y)
	delete(m.entities, id)
	e.registry = nil
	if m.player == e {
		m.player = nil
	}
	return e.SetMap(nil)
}

// Get returns an entity by ID, or nil.
func (m *Manager) Get(id uint32) *Entity {
	return m.entities[id]
}

// SetPlayer registers the local player.
func (m *Manager) SetPlayer(e *Entity) error {
	if err := m.Add(e); err != nil {
		return err
	}
	m.player = e
	return nil
}

// Player returns the local player.
func (m *Manager) Player() *Entity {
	return m.player
}

// All returns all entities in no particular order.
func (m *Manager) All() []*Entity {
	result := make([]*Entity, 0, len(m.entities))
	for _, e := range m.entities {
		result = append(result, e)
	}
	return result
}

// Count returns the number of registered entities.
func (m *Manager) Count() int {
	return len(m.entities)
}

// At returns the IDs of blocking entities on (x, y).
func (m *Manager) At(x, y int) []uint32 {
	set, ok := m.cells[world.Point{X: x, Y: y}]
	if !ok {
		return nil
	}
	ids := make([]uint32, 0, set.Size())
	set.Each(func(id uint32) {
		ids = append(ids, id)
	})
	return ids
}

// IsOccupied implements world.Occupancy. Portals are never indexed.
func (m *Manager) IsOccupied(x, y int) bool {
	set, ok := m.cells[world.Point{X: x, Y: y}]
	return ok && set.Size() > 0
}

// Logic advances every entity's movement.
func (m *Manager) Logic() {
	for _, e := range m.entities {
		e.Logic()
	}
}

// Clear removes all entities except the player.
func (m *Manager) Clear() error {
	for id, e := range m.entities {
		if e == m.player {
			continue
		}
		if err := m.Remove(id); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) relocate(e *Entity, oldX, oldY int) {
	m.unindex(e, oldX, oldY)
	m.index(e, e.x, e.y)
}

func (m *Manager) index(e *Entity, x, y int) {
	if !e.BlocksMovement() {
		return
	}
	key := world.Point{X: x, Y: y}
	set, ok := m.cells[key]
	if !ok {
		set = mapset.New[uint32]()
		m.cells[key] = set
	}
	set.Put(e.ID)
}

func (m *Manager) unindex(e *Entity, x, y int) {
	key := world.Point{X: x, Y: y}
	set, ok := m.cells[key]
	if !ok {
		return
	}
	set.Remove(e.ID)
	if set.Size() == 0 {
		delete(m.cells, key)
	}
}
