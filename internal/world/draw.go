package world

// Renderer is the drawing backend. Coordinates are screen pixels.
type Renderer interface {
	Width() int
	Height() int
	DrawImage(img Image, x, y int)
	// DrawImagePattern tiles img over the w x h area starting at (x, y).
	DrawImagePattern(img Image, x, y, w, h int)
}

// Draw renders one tile layer of the visible window. On the fringe layer
// sprites are depth-sorted and interleaved with tile rows so that a sprite
// is drawn before any row lying below its feet.
func (m *Map) Draw(r Renderer, scrollX, scrollY, layer int) error {
	if layer < 0 || layer >= imageLayers {
		return ErrInvalidLayer
	}

	endPixelY := r.Height() + scrollY + m.tileHeight - 1

	fringe := layer == LayerFringe
	if fringe {
		m.SortSprites()
		// Tall tiles below the viewport can still reach into it.
		endPixelY += m.maxTileHeight - m.tileHeight
	}
	next := m.sprites.Front

	startX := max(scrollX/m.tileWidth, 0)
	startY := max(scrollY/m.tileHeight, 0)
	endX := min((r.Width()+scrollX+m.tileWidth-1)/m.tileWidth, m.width)
	endY := min(endPixelY/m.tileHeight, m.height)

	for y := startY; y < endY; y++ {
		if fringe {
			for next != nil && next.Value.PixelY() <= y*m.tileHeight-m.tileHeight {
				next.Value.Draw(r, -scrollX, -scrollY)
				next = next.Next
			}
		}

		for x := startX; x < endX; x++ {
			img := m.tiles.cells[m.tiles.index(x, y, layer)]
			if img == nil {
				continue
			}
			r.DrawImage(img,
				x*m.tileWidth-scrollX,
				y*m.tileHeight-scrollY+m.tileHeight-img.Height())
		}
	}

	if fringe {
		for ; next != nil; next = next.Next {
			next.Value.Draw(r, -scrollX, -scrollY)
		}
	}
	return nil
}
