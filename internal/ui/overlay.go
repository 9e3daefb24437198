//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"window-frost/internal/render"
	"window-frost/internal/sims/frost"
)

var (
	seedColor  = color.RGBA{R: 120, G: 220, B: 255, A: 200}
	biasTint   = color.RGBA{R: 255, G: 120, B: 200, A: 255}
	rectColor  = color.RGBA{R: 255, G: 240, B: 120, A: 220}
	biasMinVal = float32(0.6)
	biasMaxVal = float32(1.4)
)

// Overlay draws optional debugging visuals over the frost view. Keys 1-3
// toggle the seed circles, the growth bias mask and the field rects of the
// heater and probes.
type Overlay struct {
	sim       *frost.Sim
	scale     float64
	showSeeds bool
	showBias  bool
	showRects bool

	maskImg *ebiten.Image
	maskBuf []byte
	maskFor *frost.Simulation
}

// NewOverlay creates an overlay for sim drawn at the given pixel scale.
func NewOverlay(sim *frost.Sim, scale float64) *Overlay {
	return &Overlay{sim: sim, scale: scale}
}

// Update polls the toggle keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		o.showSeeds = !o.showSeeds
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		o.showBias = !o.showBias
	}
	if inpututil.IsKeyJustPressed(ebiten.Key3) {
		o.showRects = !o.showRects
	}
}

// Draw renders the enabled layers over the view vp. heater and probes are
// field rects.
func (o *Overlay) Draw(screen *ebiten.Image, vp frost.Viewport, heater frost.Rect, probes []frost.Rect) {
	sim := o.sim.Simulation()
	size := sim.Size()
	if o.showBias {
		o.drawBias(screen, sim)
	}
	if o.showSeeds {
		scale := sim.Scale(vp)
		for _, sd := range sim.Seeds() {
			w := frost.FieldCellToWorld(int(sd.X), int(sd.Y), vp, scale, size.H)
			c := vp.WorldToViewport(w.Add(vp.Offset))
			vector.StrokeCircle(screen, float32(c.X), float32(c.Y), float32(float64(sd.Radius)*o.scale), 1, seedColor, true)
		}
	}
	if o.showRects {
		o.strokeRect(screen, heater, size.H)
		for _, r := range probes {
			o.strokeRect(screen, r, size.H)
		}
	}
}

// drawBias uploads the static growth bias once per simulation.
func (o *Overlay) drawBias(screen *ebiten.Image, sim *frost.Simulation) {
	size := sim.Size()
	if o.maskImg == nil || o.maskFor != sim {
		if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
			o.maskImg = ebiten.NewImage(size.W, size.H)
			o.maskBuf = make([]byte, 4*size.W*size.H)
		}
		render.FillMaskRGBA(o.maskBuf, sim.GrowthBias(), size.W, size.H, biasMinVal, biasMaxVal, biasTint)
		o.maskImg.WritePixels(o.maskBuf)
		o.maskFor = sim
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(o.scale, o.scale)
	screen.DrawImage(o.maskImg, op)
}

// strokeRect outlines a field rect; field row 0 is the bottom of the view.
func (o *Overlay) strokeRect(screen *ebiten.Image, r frost.Rect, fieldH int) {
	if r.Empty() {
		return
	}
	x := float32(float64(r.X) * o.scale)
	y := float32(float64(fieldH-r.Y-r.H) * o.scale)
	vector.StrokeRect(screen, x, y, float32(float64(r.W)*o.scale), float32(float64(r.H)*o.scale), 1, rectColor, false)
}
