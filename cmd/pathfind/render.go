package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Faultbox/manamap/internal/entity"
	"github.com/Faultbox/manamap/internal/world"
)

var (
	gridStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240"))

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	cellStyles = map[rune]lipgloss.Style{
		'#': lipgloss.NewStyle().Foreground(lipgloss.Color("172")),
		'.': lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		'*': lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		'S': lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		'D': lipgloss.NewStyle().Foreground(lipgloss.Color("199")).Bold(true),
		'o': lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		'@': lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	}
)

// gridRows draws the collision layer with beings and the path on top, one
// rune per cell.
func gridRows(m *world.Map, mgr *entity.Manager, path world.Path, from, to world.Point) []string {
	portals := make(map[world.Point]bool)
	for _, e := range mgr.All() {
		if e.Type() == entity.TypePortal {
			x, y := e.Cell()
			portals[world.Point{X: x, Y: y}] = true
		}
	}

	rows := make([]string, m.Height())
	for y := range rows {
		var b strings.Builder
		for x := 0; x < m.Width(); x++ {
			p := world.Point{X: x, Y: y}
			switch {
			case p == from:
				b.WriteRune('S')
			case p == to:
				b.WriteRune('D')
			case path.Contains(x, y):
				b.WriteRune('*')
			case portals[p]:
				b.WriteRune('@')
			case mgr.IsOccupied(x, y):
				b.WriteRune('o')
			case !m.IsWalkable(x, y):
				b.WriteRune('#')
			default:
				b.WriteRune('.')
			}
		}
		rows[y] = b.String()
	}
	return rows
}

func renderGrid(rows []string) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, r := range row {
			b.WriteString(cellStyles[r].Render(string(r)))
		}
	}
	return gridStyle.Render(b.String())
}

// overlayCounter is a renderer that only counts overlay passes.
type overlayCounter struct {
	w, h  int
	drawn int
}

func (c *overlayCounter) Width() int                                       { return c.w }
func (c *overlayCounter) Height() int                                      { return c.h }
func (c *overlayCounter) DrawImage(world.Image, int, int)                  {}
func (c *overlayCounter) DrawImagePattern(world.Image, int, int, int, int) { c.drawn++ }

// drawOverlays runs one overlay frame at the map origin and reports how many
// overlays the detail level let through.
func drawOverlays(m *world.Map, detail int) int {
	c := &overlayCounter{w: m.Width() * m.TileWidth(), h: m.Height() * m.TileHeight()}
	m.DrawOverlay(c, 0, 0, detail)
	return c.drawn
}

func renderSummary(name string, res world.SearchResult, walkTicks, overlaysDrawn, overlays int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(name))
	b.WriteByte('\n')
	if len(res.Path) == 0 {
		b.WriteString("no path\n")
	} else {
		fmt.Fprintf(&b, "steps:    %d\n", len(res.Path))
		fmt.Fprintf(&b, "cost:     %d\n", res.Cost)
	}
	fmt.Fprintf(&b, "expanded: %d", res.Expanded)
	if walkTicks > 0 {
		fmt.Fprintf(&b, "\nwalked:   %d ticks", walkTicks)
	}
	if overlays > 0 {
		fmt.Fprintf(&b, "\noverlays: %d/%d", overlaysDrawn, overlays)
	}
	return summaryStyle.Render(b.String())
}
