package world

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDescription is returned for map descriptions that cannot be built.
var ErrInvalidDescription = errors.New("invalid map description")

// Description is the data a map loader hands over: dimensions, tilesets,
// gid layers, collision and properties.
type Description struct {
	Name       string            `yaml:"name"`
	Width      int               `yaml:"width"`
	Height     int               `yaml:"height"`
	TileWidth  int               `yaml:"tile_width"`
	TileHeight int               `yaml:"tile_height"`
	Properties map[string]string `yaml:"properties"`
	Tilesets   []TilesetDesc     `yaml:"tilesets"`
	Layers     []LayerDesc       `yaml:"layers"`
	Collision  []string          `yaml:"collision"` // One rune per cell: '#' blocked, anything else walkable
}

// TilesetDesc describes one tileset sheet.
type TilesetDesc struct {
	Image      string `yaml:"image"`
	FirstGid   int    `yaml:"first_gid"`
	TileWidth  int    `yaml:"tile_width"`
	TileHeight int    `yaml:"tile_height"`
	Count      int    `yaml:"count"`
}

// LayerDesc holds one layer of gids, row-major.
type LayerDesc struct {
	Index int     `yaml:"index"`
	Rows  [][]int `yaml:"rows"`
}

// ParseDescription decodes a YAML map description. Unknown keys are errors.
func ParseDescription(data []byte) (*Description, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var d Description
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescription, err)
	}
	return &d, nil
}

// ParseDescriptionFile reads and decodes a YAML map description from disk.
func ParseDescriptionFile(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map description: %w", err)
	}
	return ParseDescription(data)
}

// Build creates a Map from the description. Every cell starts walkable, as
// an empty collision gid would leave it; gid layers are applied in order and
// the ASCII collision rows last.
func (d *Description) Build(opts ...Option) (*Map, error) {
	tw, th := d.TileWidth, d.TileHeight
	if tw == 0 {
		tw = 32
	}
	if th == 0 {
		th = 32
	}

	m, err := NewMap(d.Width, d.Height, tw, th, opts...)
	if err != nil {
		return nil, err
	}
	m.SetAllWalkable(true)

	for name, value := range d.Properties {
		m.SetProperty(name, value)
	}

	for i, ts := range d.Tilesets {
		if ts.FirstGid <= 0 || ts.Count < 0 {
			return nil, fmt.Errorf("%w: tileset %d (%s) has first_gid %d, count %d",
				ErrInvalidDescription, i, ts.Image, ts.FirstGid, ts.Count)
		}
		w, h := ts.TileWidth, ts.TileHeight
		if w == 0 {
			w = tw
		}
		if h == 0 {
			h = th
		}
		m.AddTileset(NewSheetTileset(ts.Image, ts.FirstGid, w, h, ts.Count))
	}

	for _, layer := range d.Layers {
		if len(layer.Rows) > d.Height {
			return nil, fmt.Errorf("%w: layer %d has %d rows, map height is %d",
				ErrInvalidDescription, layer.Index, len(layer.Rows), d.Height)
		}
		for y, row := range layer.Rows {
			if len(row) > d.Width {
				return nil, fmt.Errorf("%w: layer %d row %d has %d cells, map width is %d",
					ErrInvalidDescription, layer.Index, y, len(row), d.Width)
			}
			for x, gid := range row {
				if err := m.SetTileWithGid(x, y, layer.Index, gid); err != nil {
					return nil, fmt.Errorf("layer %d at (%d,%d): %w", layer.Index, x, y, err)
				}
			}
		}
	}

	if len(d.Collision) > 0 {
		if len(d.Collision) != d.Height {
			return nil, fmt.Errorf("%w: collision has %d rows, map height is %d",
				ErrInvalidDescription, len(d.Collision), d.Height)
		}
		for y, line := range d.Collision {
			row := []rune(line)
			if len(row) != d.Width {
				return nil, fmt.Errorf("%w: collision row %d has %d cells, map width is %d",
					ErrInvalidDescription, y, len(row), d.Width)
			}
			for x, c := range row {
				if err := m.SetWalkable(x, y, c != '#'); err != nil {
					return nil, err
				}
			}
		}
	}

	return m, nil
}
