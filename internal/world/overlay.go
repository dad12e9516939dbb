package world

import (
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/manamap/internal/logger"
)

// AmbientOverlay is a full-screen image that scrolls on its own and with
// the camera, scaled by a parallax factor.
type AmbientOverlay struct {
	image    Image
	parallax float64
	speedX   float64
	speedY   float64
	posX     float64
	posY     float64
}

// NewAmbientOverlay creates an overlay at offset (0, 0).
func NewAmbientOverlay(img Image, parallax, speedX, speedY float64) *AmbientOverlay {
	return &AmbientOverlay{
		image:    img,
		parallax: parallax,
		speedX:   speedX,
		speedY:   speedY,
	}
}

// Position returns the current scroll offset within the image.
func (o *AmbientOverlay) Position() (x, y float64) {
	return o.posX, o.posY
}

// Update advances self-scrolling by elapsed ticks and applies the camera
// delta scaled by parallax. The offset is wrapped into the image bounds.
func (o *AmbientOverlay) Update(elapsed int, dx, dy float64) {
	o.posX -= o.speedX * float64(elapsed) / 10
	o.posY -= o.speedY * float64(elapsed) / 10

	o.posX += dx * o.parallax
	o.posY += dy * o.parallax

	o.posX = wrapOffset(o.posX, float64(o.image.Width()))
	o.posY = wrapOffset(o.posY, float64(o.image.Height()))
}

// Draw tiles the overlay across a width x height viewport.
func (o *AmbientOverlay) Draw(r Renderer, width, height int) {
	px, py := int(o.posX), int(o.posY)
	r.DrawImagePattern(o.image, -px, -py, width+px, height+py)
}

func wrapOffset(v, size float64) float64 {
	if size <= 0 {
		return 0
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	return v
}

// AddOverlay appends an overlay to the draw stack.
func (m *Map) AddOverlay(o *AmbientOverlay) {
	m.overlays = append(m.overlays, o)
}

// Overlays returns the overlay stack in draw order.
func (m *Map) Overlays() []*AmbientOverlay {
	return m.overlays
}

// InitializeOverlays builds overlays from the overlay<i>image, scrollX,
// scrollY and parallax properties, stopping at the first missing image key.
// Images the source cannot resolve are skipped.
func (m *Map) InitializeOverlays(src ImageSource) int {
	log := logger.Named("world")
	added := 0
	for i := 0; m.HasProperty("overlay" + strconv.Itoa(i) + "image"); i++ {
		name := "overlay" + strconv.Itoa(i)

		imgName := m.Property(name + "image")
		img, ok := src.Image(imgName)
		if !ok || img == nil {
			log.Warn("overlay image not found", zap.String("image", imgName))
			continue
		}

		m.AddOverlay(NewAmbientOverlay(img,
			m.FloatProperty(name+"parallax"),
			m.FloatProperty(name+"scrollX"),
			m.FloatProperty(name+"scrollY"),
		))
		added++
	}
	return added
}

// UpdateOverlays advances every overlay by the ticks elapsed since the last
// update and the camera movement since then. The first call only records
// the camera position.
func (m *Map) UpdateOverlays(scrollX, scrollY float64) {
	if !m.overlaysPrimed {
		m.lastScrollX, m.lastScrollY = scrollX, scrollY
		m.overlaysPrimed = true
	}

	elapsed := m.clock.Elapsed(m.lastTick)
	dx := scrollX - m.lastScrollX
	dy := scrollY - m.lastScrollY

	for _, o := range m.overlays {
		o.Update(elapsed, dx, dy)
	}

	m.lastScrollX, m.lastScrollY = scrollX, scrollY
	m.lastTick = m.clock.Now()
}

// DrawOverlays draws the overlay stack. Detail 0 draws nothing, 1 only the
// first overlay, anything higher draws all of them.
func (m *Map) DrawOverlays(r Renderer, detail int) {
	if detail <= 0 {
		return
	}
	for _, o := range m.overlays {
		o.Draw(r, r.Width(), r.Height())
		if detail == 1 {
			break
		}
	}
}

// DrawOverlay updates and draws overlays in one step, skipping both when
// detail is 0.
func (m *Map) DrawOverlay(r Renderer, scrollX, scrollY float64, detail int) {
	if detail <= 0 {
		return
	}
	m.UpdateOverlays(scrollX, scrollY)
	m.DrawOverlays(r, detail)
}
