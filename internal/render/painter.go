//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// FieldPainter uploads a quantized intensity grid into a single image, with
// grid row 0 at the bottom, and draws it scaled.
type FieldPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette []color.RGBA
}

// NewFieldPainter allocates a painter for a grid of size w*h.
func NewFieldPainter(w, h int) *FieldPainter {
	return &FieldPainter{
		w:       w,
		h:       h,
		img:     ebiten.NewImage(w, h),
		buf:     make([]byte, 4*w*h),
		palette: FrostPalette(),
	}
}

// Blit uploads cells into the painter image and draws it onto dst.
func (p *FieldPainter) Blit(dst *ebiten.Image, cells []uint8, scale float64) {
	if len(cells) != p.w*p.h {
		return
	}
	FillFlippedRGBA(p.buf, cells, p.w, p.h, p.palette)
	p.img.WritePixels(p.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	dst.DrawImage(p.img, op)
}

// Size returns the dimensions of the underlying image.
func (p *FieldPainter) Size() (int, int) { return p.w, p.h }
