package world

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

type drawCall struct {
	what string
	x, y int
}

type fakeRenderer struct {
	w, h  int
	calls []drawCall
}

func (r *fakeRenderer) Width() int  { return r.w }
func (r *fakeRenderer) Height() int { return r.h }

func (r *fakeRenderer) DrawImage(img Image, x, y int) {
	r.calls = append(r.calls, drawCall{what: fmt.Sprint(img), x: x, y: y})
}

func (r *fakeRenderer) DrawImagePattern(img Image, x, y, w, h int) {
	r.calls = append(r.calls, drawCall{what: fmt.Sprintf("pattern %v %dx%d", img, w, h), x: x, y: y})
}

type testSprite struct {
	name string
	y    int
}

func (s *testSprite) PixelY() int { return s.y }

func (s *testSprite) Draw(r Renderer, offsetX, offsetY int) {
	r.(*fakeRenderer).calls = append(r.(*fakeRenderer).calls,
		drawCall{what: "sprite " + s.name, x: offsetX, y: s.y + offsetY})
}

type namedImage struct {
	name string
	w, h int
}

func (i namedImage) Width() int     { return i.w }
func (i namedImage) Height() int    { return i.h }
func (i namedImage) String() string { return i.name }

func spriteNames(m *Map) []string {
	var names []string
	for _, s := range m.Sprites() {
		names = append(names, s.(*testSprite).name)
	}
	return names
}

func TestSprites_AddRemove(t *testing.T) {
	m := openGrid(t, 4, 4)

	a := &testSprite{name: "a", y: 10}
	b := &testSprite{name: "b", y: 20}
	c := &testSprite{name: "c", y: 30}
	ta := m.AddSprite(a)
	tb := m.AddSprite(b)
	tc := m.AddSprite(c)

	if m.SpriteCount() != 3 {
		t.Fatalf("expected 3 sprites, got %d", m.SpriteCount())
	}
	if tb.Sprite() != b {
		t.Error("token should reference its sprite")
	}

	if err := m.RemoveSprite(tb); err != nil {
		t.Fatalf("RemoveSprite: %v", err)
	}
	if got := spriteNames(m); len(got) != 2 || got[0] != "c" || got[1] != "a" {
		t.Errorf("expected [c a] after removing b, got %v", got)
	}

	if err := m.RemoveSprite(tb); !errors.Is(err, ErrStaleToken) {
		t.Errorf("expected ErrStaleToken on reuse, got %v", err)
	}
	if tb.Sprite() != nil {
		t.Error("stale token should not reference a sprite")
	}

	other := openGrid(t, 2, 2)
	if err := other.RemoveSprite(ta); !errors.Is(err, ErrStaleToken) {
		t.Errorf("expected ErrStaleToken for a foreign token, got %v", err)
	}

	if err := m.RemoveSprite(ta); err != nil {
		t.Fatalf("RemoveSprite: %v", err)
	}
	if err := m.RemoveSprite(tc); err != nil {
		t.Fatalf("RemoveSprite: %v", err)
	}
	if m.SpriteCount() != 0 || len(m.Sprites()) != 0 {
		t.Errorf("expected empty list, got %v", spriteNames(m))
	}
	if err := m.RemoveSprite(nil); !errors.Is(err, ErrStaleToken) {
		t.Errorf("expected ErrStaleToken for nil, got %v", err)
	}
}

func TestSprites_SortKeepsTokensValid(t *testing.T) {
	m := openGrid(t, 4, 4)

	s := []*testSprite{{"a", 50}, {"b", 10}, {"c", 30}, {"d", 20}}
	tokens := make([]*SpriteToken, len(s))
	for i, sp := range s {
		tokens[i] = m.AddSprite(sp)
	}

	m.SortSprites()
	if got := fmt.Sprint(spriteNames(m)); got != "[b d c a]" {
		t.Errorf("expected [b d c a], got %s", got)
	}

	// Depth changes between frames are picked up by the next sort.
	s[1].y = 100
	m.SortSprites()
	if got := fmt.Sprint(spriteNames(m)); got != "[d c a b]" {
		t.Errorf("expected [d c a b], got %s", got)
	}

	if err := m.RemoveSprite(tokens[2]); err != nil {
		t.Fatalf("RemoveSprite after sort: %v", err)
	}
	if got := fmt.Sprint(spriteNames(m)); got != "[d a b]" {
		t.Errorf("expected [d a b], got %s", got)
	}

	// Extreme depths must not overflow the comparison.
	s[0].y = math.MinInt
	s[3].y = math.MaxInt
	m.SortSprites()
	if got := fmt.Sprint(spriteNames(m)); got != "[a b d]" {
		t.Errorf("expected [a b d], got %s", got)
	}
}

func TestDraw_GroundLayer(t *testing.T) {
	m := openGrid(t, 4, 4)
	grass := namedImage{name: "grass", w: 32, h: 32}
	tree := namedImage{name: "tree", w: 32, h: 64}
	if err := m.SetTile(1, 0, LayerGround, grass); err != nil {
		t.Fatalf("SetTile: %v", err)
	}
	if err := m.SetTile(3, 3, LayerGround, tree); err != nil {
		t.Fatalf("SetTile: %v", err)
	}
	m.AddSprite(&testSprite{name: "ignored", y: 0})

	r := &fakeRenderer{w: 64, h: 64}
	if err := m.Draw(r, 0, 0, LayerGround); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	// Only the 2x2 window is visible and sprites are not drawn off the fringe layer.
	want := []drawCall{{what: "grass", x: 32, y: 0}}
	if fmt.Sprint(r.calls) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, r.calls)
	}

	r = &fakeRenderer{w: 64, h: 64}
	if err := m.Draw(r, 64, 64, LayerGround); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	// Tall tiles are bottom-aligned to their cell.
	want = []drawCall{{what: "tree", x: 32, y: 0}}
	if fmt.Sprint(r.calls) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, r.calls)
	}

	if err := m.Draw(r, 0, 0, LayerCollision); !errors.Is(err, ErrInvalidLayer) {
		t.Errorf("expected ErrInvalidLayer, got %v", err)
	}
}

func TestDraw_FringeInterleavesSprites(t *testing.T) {
	m := openGrid(t, 1, 4)
	wall := namedImage{name: "wall", w: 32, h: 32}
	for y := 0; y < 4; y++ {
		if err := m.SetTile(0, y, LayerFringe, wall); err != nil {
			t.Fatalf("SetTile: %v", err)
		}
	}

	m.AddSprite(&testSprite{name: "low", y: 64})
	m.AddSprite(&testSprite{name: "high", y: 0})
	m.AddSprite(&testSprite{name: "below", y: 500})

	r := &fakeRenderer{w: 32, h: 128}
	if err := m.Draw(r, 0, 0, LayerFringe); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	var order []string
	for _, c := range r.calls {
		order = append(order, fmt.Sprintf("%s@%d", c.what, c.y))
	}
	// A sprite at pixel y is drawn before the row starting at y + 32.
	want := "[wall@0 sprite high@0 wall@32 wall@64 sprite low@64 wall@96 sprite below@500]"
	if got := fmt.Sprint(order); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestDraw_FringeWindowReachesTallTiles(t *testing.T) {
	m := openGrid(t, 1, 4)
	tall := namedImage{name: "tall", w: 32, h: 96}
	m.AddTileset(NewTileset("tall", 1, 32, 96, []Image{tall}))
	if m.MaxTileHeight() != 96 {
		t.Fatalf("expected max tile height 96, got %d", m.MaxTileHeight())
	}

	// Row 2 lies below a one-row viewport but its tile reaches up into it.
	for _, layer := range []int{LayerGround, LayerFringe} {
		if err := m.SetTileWithGid(0, 2, layer, 1); err != nil {
			t.Fatalf("SetTileWithGid: %v", err)
		}
	}

	r := &fakeRenderer{w: 32, h: 32}
	if err := m.Draw(r, 0, 0, LayerGround); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(r.calls) != 0 {
		t.Errorf("expected nothing on the ground layer, got %v", r.calls)
	}

	r = &fakeRenderer{w: 32, h: 32}
	if err := m.Draw(r, 0, 0, LayerFringe); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	want := []drawCall{{what: "tall", x: 0, y: 0}}
	if fmt.Sprint(r.calls) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, r.calls)
	}
}
