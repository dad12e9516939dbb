package world

// MetaTile holds the static passability of one cell plus the scratch state
// written by path searches. Search fields are never cleared between searches;
// whichList is compared against the map's current generation sentinels.
type MetaTile struct {
	Walkable bool

	Gcost int // Accumulated cost from the search origin
	Hcost int // Heuristic estimate to the destination
	Fcost int // Gcost + Hcost

	ParentX int
	ParentY int

	whichList int
}

// ListMarker returns the raw generation marker last written by a search.
func (t *MetaTile) ListMarker() int {
	return t.whichList
}
