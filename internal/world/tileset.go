package world

// Image is a drawable owned by the rendering backend.
type Image interface {
	Width() int
	Height() int
}

// ImageSource resolves image names (tileset sheets, overlay textures).
type ImageSource interface {
	Image(name string) (Image, bool)
}

// TileImage is a backend-neutral handle for one tile cut from a tileset sheet.
type TileImage struct {
	Sheet string
	Index int
	W, H  int
}

// Width implements Image.
func (t TileImage) Width() int { return t.W }

// Height implements Image.
func (t TileImage) Height() int { return t.H }

// Tileset maps the global ids [FirstGid, FirstGid+Size()) to tile images.
type Tileset struct {
	Name       string
	FirstGid   int
	TileWidth  int
	TileHeight int
	tiles      []Image
}

// NewTileset creates a tileset from already cut tile images.
func NewTileset(name string, firstGid, tileWidth, tileHeight int, tiles []Image) *Tileset {
	return &Tileset{
		Name:       name,
		FirstGid:   firstGid,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		tiles:      tiles,
	}
}

// NewSheetTileset creates a tileset of count TileImage handles for a named sheet.
func NewSheetTileset(sheet string, firstGid, tileWidth, tileHeight, count int) *Tileset {
	tiles := make([]Image, count)
	for i := range tiles {
		tiles[i] = TileImage{Sheet: sheet, Index: i, W: tileWidth, H: tileHeight}
	}
	return NewTileset(sheet, firstGid, tileWidth, tileHeight, tiles)
}

// Size returns the number of tiles in the set.
func (t *Tileset) Size() int {
	return len(t.tiles)
}

// Contains reports whether gid falls in this tileset's range.
func (t *Tileset) Contains(gid int) bool {
	return t.FirstGid <= gid && gid-t.FirstGid < len(t.tiles)
}

// Get returns the tile at a local index, or nil when out of range.
func (t *Tileset) Get(index int) Image {
	if index < 0 || index >= len(t.tiles) {
		return nil
	}
	return t.tiles[index]
}
