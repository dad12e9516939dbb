// Package world implements the tile map model: layered tiles, collision,
// path searches over per-cell scratch state, sprite depth ordering and
// ambient overlays.
package world

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/zyedidia/generic/list"
)

// Map errors.
var (
	ErrInvalidDimensions = errors.New("invalid map dimensions")
	ErrOutOfBounds       = errors.New("coordinates out of bounds")
	ErrInvalidLayer      = errors.New("invalid tile layer")
	ErrStaleToken        = errors.New("sprite token is not registered")
)

// Tile layers. Layers below LayerCollision hold images; the collision layer
// only toggles walkability and is never stored.
const (
	LayerGround    = 0
	LayerFringe    = 1
	LayerOver      = 2
	LayerCollision = 3

	imageLayers = 3
)

// Costs configures the path search.
type Costs struct {
	Straight        int // Orthogonal step
	Diagonal        int // Diagonal step
	OccupiedPenalty int // Added when stepping onto an occupied cell
	Max             int // Steps reaching a higher Gcost are dropped
	HeuristicScale  int // Manhattan distance multiplier
}

// DefaultCosts returns the classic 10/14 cost model with a 200 ceiling.
func DefaultCosts() Costs {
	return Costs{
		Straight:        10,
		Diagonal:        14,
		OccupiedPenalty: 30,
		Max:             200,
		HeuristicScale:  10,
	}
}

// Option configures a Map at construction.
type Option func(*Map)

// WithCosts overrides the search cost model.
func WithCosts(c Costs) Option {
	return func(m *Map) { m.costs = c }
}

// WithOccupancy sets the blocking-entity query used for soft step costs.
func WithOccupancy(o Occupancy) Option {
	return func(m *Map) { m.occupancy = o }
}

// WithClock sets the tick source for overlay timing.
func WithClock(c *Clock) Option {
	return func(m *Map) { m.clock = c }
}

// Map is a tile map with collision data and pathfinding scratch state.
// It is not safe for concurrent use; searches share the MetaTile array.
type Map struct {
	width         int
	height        int
	tileWidth     int
	tileHeight    int
	maxTileHeight int

	metaTiles  *Layers[MetaTile]
	tiles      *Layers[Image]
	tilesets   []*Tileset
	properties map[string]string

	costs        Costs
	occupancy    Occupancy
	onClosedList int
	onOpenList   int

	sprites     *list.List[Sprite]
	spriteCount int

	overlays       []*AmbientOverlay
	clock          *Clock
	lastTick       int
	lastScrollX    float64
	lastScrollY    float64
	overlaysPrimed bool
}

// NewMap creates a map of width x height cells. All cells start unwalkable
// until collision data is applied.
func NewMap(width, height, tileWidth, tileHeight int, opts ...Option) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if tileWidth <= 0 || tileHeight <= 0 {
		return nil, fmt.Errorf("%w: tile size %dx%d", ErrInvalidDimensions, tileWidth, tileHeight)
	}

	metaTiles, err := NewLayers[MetaTile](width, height, 1)
	if err != nil {
		return nil, err
	}
	tiles, err := NewLayers[Image](width, height, imageLayers)
	if err != nil {
		return nil, err
	}

	m := &Map{
		width:         width,
		height:        height,
		tileWidth:     tileWidth,
		tileHeight:    tileHeight,
		maxTileHeight: tileHeight,
		metaTiles:     metaTiles,
		tiles:         tiles,
		properties:    make(map[string]string),
		costs:         DefaultCosts(),
		onClosedList:  1,
		onOpenList:    2,
		sprites:       list.New[Sprite](),
		clock:         NewClock(DefaultWrapTicks),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.lastTick = m.clock.Now()
	return m, nil
}

// Width returns the number of columns.
func (m *Map) Width() int { return m.width }

// Height returns the number of rows.
func (m *Map) Height() int { return m.height }

// TileWidth returns the tile width in pixels.
func (m *Map) TileWidth() int { return m.tileWidth }

// TileHeight returns the tile height in pixels.
func (m *Map) TileHeight() int { return m.tileHeight }

// MaxTileHeight returns the tallest tile height across all tilesets.
func (m *Map) MaxTileHeight() int { return m.maxTileHeight }

// Costs returns the search cost model.
func (m *Map) Costs() Costs { return m.costs }

// Clock returns the tick source driving overlay updates.
func (m *Map) Clock() *Clock { return m.clock }

// Contains reports whether (x, y) is a valid cell.
func (m *Map) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

// AddTileset registers a tileset, keeping the list ordered by first gid.
func (m *Map) AddTileset(ts *Tileset) {
	i, _ := slices.BinarySearchFunc(m.tilesets, ts.FirstGid, func(t *Tileset, gid int) int {
		return t.FirstGid - gid
	})
	m.tilesets = slices.Insert(m.tilesets, i, ts)

	if ts.TileHeight > m.maxTileHeight {
		m.maxTileHeight = ts.TileHeight
	}
}

// Tilesets returns the registered tilesets ordered by first gid.
func (m *Map) Tilesets() []*Tileset {
	return m.tilesets
}

// TilesetWithGid returns the tileset containing gid, or nil.
func (m *Map) TilesetWithGid(gid int) *Tileset {
	for _, ts := range m.tilesets {
		if ts.Contains(gid) {
			return ts
		}
	}
	return nil
}

// TileWithGid returns the image for gid, or nil when no tileset holds it.
func (m *Map) TileWithGid(gid int) Image {
	ts := m.TilesetWithGid(gid)
	if ts == nil {
		return nil
	}
	return ts.Get(gid - ts.FirstGid)
}

// SetTileWithGid applies a global tile id. On the collision layer the cell
// is walkable when the gid is unknown or is the first tile of its set; on
// image layers the resolved image is stored.
func (m *Map) SetTileWithGid(x, y, layer, gid int) error {
	switch {
	case layer == LayerCollision:
		ts := m.TilesetWithGid(gid)
		return m.SetWalkable(x, y, ts == nil || gid-ts.FirstGid == 0)
	case layer >= 0 && layer < imageLayers:
		return m.SetTile(x, y, layer, m.TileWithGid(gid))
	default:
		return fmt.Errorf("%w: %d", ErrInvalidLayer, layer)
	}
}

// TileAt returns the image at (x, y) on an image layer; nil means empty.
func (m *Map) TileAt(x, y, layer int) (Image, error) {
	if layer < 0 || layer >= imageLayers {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLayer, layer)
	}
	return m.tiles.At(x, y, layer)
}

// SetTile stores an image at (x, y) on an image layer.
func (m *Map) SetTile(x, y, layer int, img Image) error {
	if layer < 0 || layer >= imageLayers {
		return fmt.Errorf("%w: %d", ErrInvalidLayer, layer)
	}
	return m.tiles.Set(x, y, layer, img)
}

// IsWalkable reports static passability. Cells outside the map never are.
func (m *Map) IsWalkable(x, y int) bool {
	t, err := m.metaTiles.Ref(x, y, 0)
	if err != nil {
		return false
	}
	return t.Walkable
}

// SetWalkable changes static passability of a cell.
func (m *Map) SetWalkable(x, y int, walkable bool) error {
	t, err := m.metaTiles.Ref(x, y, 0)
	if err != nil {
		return err
	}
	t.Walkable = walkable
	return nil
}

// SetAllWalkable sets passability of every cell.
func (m *Map) SetAllWalkable(walkable bool) {
	m.metaTiles.Each(func(_, _, _ int, t *MetaTile) {
		t.Walkable = walkable
	})
}

// MetaTileAt exposes the scratch state of a cell.
func (m *Map) MetaTileAt(x, y int) (*MetaTile, error) {
	return m.metaTiles.Ref(x, y, 0)
}

// SetProperty stores a map property.
func (m *Map) SetProperty(name, value string) {
	m.properties[name] = value
}

// HasProperty reports whether a property is set.
func (m *Map) HasProperty(name string) bool {
	_, ok := m.properties[name]
	return ok
}

// Property returns a property value or "".
func (m *Map) Property(name string) string {
	return m.properties[name]
}

// FloatProperty returns a property parsed as a float, or 0.
func (m *Map) FloatProperty(name string) float64 {
	v, err := strconv.ParseFloat(m.properties[name], 64)
	if err != nil {
		return 0
	}
	return v
}
