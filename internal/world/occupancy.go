package world

// Occupancy answers whether a blocking entity currently stands on a cell.
// It is queried once per neighbor expansion, so implementations should be
// O(1) or O(log n).
type Occupancy interface {
	IsOccupied(x, y int) bool
}

// OccupancyFunc adapts a function to Occupancy.
type OccupancyFunc func(x, y int) bool

// IsOccupied implements Occupancy.
func (f OccupancyFunc) IsOccupied(x, y int) bool { return f(x, y) }

// Occupant is an entity that can be scanned for its cell.
type Occupant interface {
	Cell() (x, y int)
	BlocksMovement() bool
}

// ScanOccupancy returns an Occupancy that walks every live occupant per query.
// This is O(n) per neighbor expansion and only suitable for small entity
// counts; large registries should maintain a cell index instead.
func ScanOccupancy[T Occupant](live func() []T) Occupancy {
	return OccupancyFunc(func(x, y int) bool {
		for _, o := range live() {
			if !o.BlocksMovement() {
				continue
			}
			if ox, oy := o.Cell(); ox == x && oy == y {
				return true
			}
		}
		return false
	})
}

// SetOccupancy replaces the blocking-entity query. nil disables penalties.
func (m *Map) SetOccupancy(o Occupancy) {
	m.occupancy = o
}

// Occupied reports whether a blocking entity stands on (x, y).
func (m *Map) Occupied(x, y int) bool {
	if m.occupancy == nil {
		return false
	}
	return m.occupancy.IsOccupied(x, y)
}
