package world

import (
	"fmt"
	"math"
	"slices"

	"github.com/zyedidia/generic/heap"
	"go.uber.org/zap"

	"github.com/Faultbox/manamap/internal/logger"
)

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Path is an ordered list of cells from (excluding) the origin to
// (including) the destination. An empty Path means no route.
type Path []Point

// Last returns the final waypoint.
func (p Path) Last() (Point, bool) {
	if len(p) == 0 {
		return Point{}, false
	}
	return p[len(p)-1], true
}

// Contains reports whether the path visits (x, y).
func (p Path) Contains(x, y int) bool {
	return slices.Contains(p, Point{X: x, Y: y})
}

// SearchResult is the outcome of one path search.
type SearchResult struct {
	Path     Path
	Cost     int // Gcost of the destination; 0 when no path was found
	Expanded int // Cells moved to the closed list
}

// location is an open-list entry. Costs are captured at push time so a later
// improvement to the same cell cannot disturb entries already in the heap;
// the improved cell is pushed again and the stale entry is skipped on pop.
type location struct {
	x, y  int
	fcost int
	hcost int
	seq   int
}

// lessLocation orders the open list by Fcost, then by Hcost so plateaus are
// resolved toward the destination, then by push order.
func lessLocation(a, b location) bool {
	if a.fcost != b.fcost {
		return a.fcost < b.fcost
	}
	if a.hcost != b.hcost {
		return a.hcost < b.hcost
	}
	return a.seq < b.seq
}

// FindPath searches for a path from the origin to the destination.
// Unreachable destinations yield an empty path and no error; coordinates
// outside the map yield ErrOutOfBounds.
func (m *Map) FindPath(startX, startY, destX, destY int) (Path, error) {
	res, err := m.Search(startX, startY, destX, destY)
	return res.Path, err
}

// Search runs a best-first search ordered by Fcost over the MetaTile array.
//
// The destination is exempt from the walkability test and is settled as
// soon as it is first discovered, so under occupancy penalties the result is
// a valid path but not necessarily the cheapest one.
func (m *Map) Search(startX, startY, destX, destY int) (SearchResult, error) {
	log := logger.Named("world")

	if !m.Contains(startX, startY) {
		log.Warn("path origin outside map", zap.Int("x", startX), zap.Int("y", startY))
		return SearchResult{}, fmt.Errorf("%w: origin (%d,%d)", ErrOutOfBounds, startX, startY)
	}
	if !m.Contains(destX, destY) {
		log.Warn("path destination outside map", zap.Int("x", destX), zap.Int("y", destY))
		return SearchResult{}, fmt.Errorf("%w: destination (%d,%d)", ErrOutOfBounds, destX, destY)
	}
	if startX == destX && startY == destY {
		return SearchResult{}, nil
	}

	open := heap.New[location](lessLocation)
	seq := 0

	start := m.cell(startX, startY)
	start.Gcost = 0
	start.Hcost = m.heuristic(startX, startY, destX, destY)
	start.Fcost = start.Hcost
	open.Push(location{x: startX, y: startY, fcost: start.Fcost, hcost: start.Hcost, seq: seq})

	found := false
	expanded := 0

search:
	for open.Size() > 0 {
		curr, _ := open.Pop()
		currTile := m.cell(curr.x, curr.y)

		// A duplicate entry for a cell already settled with a lower cost.
		if currTile.whichList == m.onClosedList {
			continue
		}
		currTile.whichList = m.onClosedList
		expanded++

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				x, y := curr.x+dx, curr.y+dy
				if (dx == 0 && dy == 0) || !m.Contains(x, y) {
					continue
				}

				isDest := x == destX && y == destY
				tile := m.cell(x, y)
				if tile.whichList == m.onClosedList || (!tile.Walkable && !isDest) {
					continue
				}

				// Diagonal steps may pass beings but not solid corners.
				if dx != 0 && dy != 0 {
					if !m.cell(curr.x, curr.y+dy).Walkable || !m.cell(curr.x+dx, curr.y).Walkable {
						continue
					}
				}

				g := currTile.Gcost + m.stepCost(dx, dy)
				if m.Occupied(x, y) {
					g += m.costs.OccupiedPenalty
				}
				if g > m.costs.Max {
					continue
				}

				if tile.whichList != m.onOpenList {
					tile.Hcost = m.heuristic(x, y, destX, destY)
					tile.ParentX, tile.ParentY = curr.x, curr.y
					tile.Gcost = g
					tile.Fcost = g + tile.Hcost

					if isDest {
						found = true
						break search
					}
					tile.whichList = m.onOpenList
					seq++
					open.Push(location{x: x, y: y, fcost: tile.Fcost, hcost: tile.Hcost, seq: seq})
				} else if g < tile.Gcost {
					tile.Gcost = g
					tile.Fcost = g + tile.Hcost
					tile.ParentX, tile.ParentY = curr.x, curr.y

					seq++
					open.Push(location{x: x, y: y, fcost: tile.Fcost, hcost: tile.Hcost, seq: seq})
				}
			}
		}
	}

	m.advanceGeneration()

	res := SearchResult{Expanded: expanded}
	if found {
		res.Path = m.tracePath(startX, startY, destX, destY)
		res.Cost = m.cell(destX, destY).Gcost
	}

	log.Debug("path search",
		zap.Int("from_x", startX), zap.Int("from_y", startY),
		zap.Int("to_x", destX), zap.Int("to_y", destY),
		zap.Bool("found", found),
		zap.Int("length", len(res.Path)),
		zap.Int("cost", res.Cost),
		zap.Int("expanded", expanded),
	)
	return res, nil
}

// Generation returns the current closed and open list sentinels.
func (m *Map) Generation() (closed, open int) {
	return m.onClosedList, m.onOpenList
}

// advanceGeneration retires the current sentinels so markers written by
// this search never match the next one. On overflow every marker is reset.
func (m *Map) advanceGeneration() {
	if m.onOpenList > math.MaxInt-2 || m.onClosedList > math.MaxInt-2 {
		m.metaTiles.Each(func(_, _, _ int, t *MetaTile) {
			t.whichList = 0
		})
		m.onClosedList, m.onOpenList = 1, 2
		return
	}
	m.onClosedList += 2
	m.onOpenList += 2
}

// tracePath follows parent links back from the destination.
func (m *Map) tracePath(startX, startY, destX, destY int) Path {
	var path Path
	x, y := destX, destY
	for steps := 0; (x != startX || y != startY) && steps < m.width*m.height; steps++ {
		path = append(path, Point{X: x, Y: y})
		t := m.cell(x, y)
		x, y = t.ParentX, t.ParentY
	}
	slices.Reverse(path)
	return path
}

func (m *Map) stepCost(dx, dy int) int {
	if dx == 0 || dy == 0 {
		return m.costs.Straight
	}
	return m.costs.Diagonal
}

// heuristic is the Manhattan distance scaled to step costs.
func (m *Map) heuristic(x, y, destX, destY int) int {
	return m.costs.HeuristicScale * (abs(x-destX) + abs(y-destY))
}

// cell returns the MetaTile at an already validated coordinate.
func (m *Map) cell(x, y int) *MetaTile {
	return &m.metaTiles.cells[m.metaTiles.index(x, y, 0)]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
