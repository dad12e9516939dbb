package world

import (
	"cmp"
	"slices"

	"github.com/zyedidia/generic/list"
)

// Sprite is a drawable anchored to a map position.
type Sprite interface {
	// PixelY is the depth key; sprites lower on screen draw later.
	PixelY() int
	Draw(r Renderer, offsetX, offsetY int)
}

// SpriteToken identifies a registered sprite for O(1) removal. The map owns
// the list; the token never owns the sprite.
type SpriteToken struct {
	node  *list.Node[Sprite]
	owner *Map
}

// Sprite returns the registered sprite, or nil for a stale token.
func (t *SpriteToken) Sprite() Sprite {
	if t == nil || t.node == nil {
		return nil
	}
	return t.node.Value
}

// AddSprite registers a sprite in the depth list.
func (m *Map) AddSprite(s Sprite) *SpriteToken {
	node := &list.Node[Sprite]{Value: s}
	m.sprites.PushFrontNode(node)
	m.spriteCount++
	return &SpriteToken{node: node, owner: m}
}

// RemoveSprite unregisters the sprite behind tok. A token may be used once.
func (m *Map) RemoveSprite(tok *SpriteToken) error {
	if tok == nil || tok.node == nil || tok.owner != m {
		return ErrStaleToken
	}
	m.sprites.Remove(tok.node)
	tok.node = nil
	tok.owner = nil
	m.spriteCount--
	return nil
}

// SpriteCount returns the number of registered sprites.
func (m *Map) SpriteCount() int {
	return m.spriteCount
}

// SortSprites reorders the depth list by PixelY. Nodes are relinked rather
// than copied, so outstanding tokens remain valid.
func (m *Map) SortSprites() {
	nodes := make([]*list.Node[Sprite], 0, m.spriteCount)
	for n := m.sprites.Front; n != nil; n = n.Next {
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, func(a, b *list.Node[Sprite]) int {
		return cmp.Compare(a.Value.PixelY(), b.Value.PixelY())
	})

	m.sprites.Front, m.sprites.Back = nil, nil
	for _, n := range nodes {
		m.sprites.PushBackNode(n)
	}
}

// Sprites returns the registered sprites in current list order.
func (m *Map) Sprites() []Sprite {
	out := make([]Sprite, 0, m.spriteCount)
	for n := m.sprites.Front; n != nil; n = n.Next {
		out = append(out, n.Value)
	}
	return out
}
