//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"window-frost/internal/core"
)

var (
	panelColor   = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor   = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor   = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor     = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	buttonColor  = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	disabledBtn  = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	disabledText = color.RGBA{R: 120, G: 120, B: 130, A: 255}
)

const statusSpacing = 16

// HUD renders the parameter panel to the right of the frost view.
type HUD struct {
	sim      core.Sim
	width    int
	panel    *ebiten.Image
	controls *Controls
	status   Status
	offsetX  int
}

// NewHUD constructs a HUD for sim with the given panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	return &HUD{sim: sim, width: max(width, 0), controls: NewControls(sim, width)}
}

// Update refreshes values from the sim and handles clicks on the panel.
func (h *HUD) Update(offsetX int, st Status) {
	if h == nil {
		return
	}
	h.offsetX = offsetX
	h.status = st
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		h.controls.Refresh(provider.Parameters())
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx >= offsetX {
		h.controls.Click(mx-offsetX, my-h.controlsOffset())
	}
}

// controlsOffset shifts the control rows below the status block.
func (h *HUD) controlsOffset() int { return len(h.status.Lines()) * statusSpacing }

// Draw paints the panel at offsetX, height pixels tall.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, fmt.Sprintf("%s Controls", h.sim.Name()), face, panelPadding, y, titleColor)
	for _, line := range h.status.Lines() {
		y += statusSpacing
		text.Draw(h.panel, line, face, panelPadding, y, dimColor)
	}

	shift := h.controlsOffset()
	for i := range h.controls.states {
		s := &h.controls.states[i]
		base := s.top + shift + labelBaseline
		text.Draw(h.panel, s.control.Label, face, panelPadding, base, labelColor)

		valueColor := labelColor
		if !s.hasValue {
			valueColor = dimColor
		}
		minus := s.minusRect.Add(image.Pt(0, shift))
		plus := s.plusRect.Add(image.Pt(0, shift))
		w := text.BoundString(face, s.value).Dx()
		text.Draw(h.panel, s.value, face, minus.Min.X-buttonGap-w, base, valueColor)
		h.drawButton(minus, "-", h.controls.CanAdjust(i, -1))
		h.drawButton(plus, "+", h.controls.CanAdjust(i, 1))
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawButton(r image.Rectangle, label string, enabled bool) {
	bg, fg := buttonColor, labelColor
	if !enabled {
		bg, fg = disabledBtn, disabledText
	}
	vector.DrawFilledRect(h.panel, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), bg, false)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := r.Min.X + (r.Dx()-b.Dx())/2
	y := r.Min.Y + (r.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}
