package render

import "image/color"

// Endpoints of the frost gradient.
var (
	Glass = color.RGBA{R: 18, G: 28, B: 46, A: 255}
	Frost = color.RGBA{R: 226, G: 240, B: 255, A: 255}
)

// FrostPalette returns a 256-entry gradient from clear glass to full frost,
// indexed by the quantized cell intensity.
func FrostPalette() []color.RGBA {
	palette := make([]color.RGBA, 256)
	for i := range palette {
		palette[i] = Lerp(Glass, Frost, float64(i)/255)
	}
	return palette
}

// Lerp blends a toward b by t in [0, 1].
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	t = max(0, min(1, t))
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := min(int(c), last)
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// FillFlippedRGBA converts a w×h grid of cells into RGBA pixels with grid
// row 0 at the bottom of the image.
func FillFlippedRGBA(buf []byte, cells []uint8, w, h int, palette []color.RGBA) {
	if w <= 0 || h <= 0 || len(cells) < w*h || len(buf) < 4*w*h {
		return
	}
	for y := 0; y < h; y++ {
		src := cells[y*w : (y+1)*w]
		dst := buf[(h-1-y)*w*4 : (h-y)*w*4]
		fillPaletteRGBA(dst, src, palette)
	}
}

// FillMaskRGBA tints each pixel by where its value falls in [lo, hi], flipped
// vertically like FillFlippedRGBA. Values at lo are transparent; values at hi
// take the full tint alpha.
func FillMaskRGBA(buf []byte, values []float32, w, h int, lo, hi float32, tint color.RGBA) {
	if w <= 0 || h <= 0 || len(values) < w*h || len(buf) < 4*w*h || hi <= lo {
		return
	}
	for y := 0; y < h; y++ {
		row := (h - 1 - y) * w * 4
		for x := 0; x < w; x++ {
			t := (values[y*w+x] - lo) / (hi - lo)
			t = max(0, min(1, t))
			base := row + x*4
			a := float32(tint.A) * t
			// Premultiplied, as ebiten expects.
			buf[base+0] = uint8(float32(tint.R)*a/255 + 0.5)
			buf[base+1] = uint8(float32(tint.G)*a/255 + 0.5)
			buf[base+2] = uint8(float32(tint.B)*a/255 + 0.5)
			buf[base+3] = uint8(a + 0.5)
		}
	}
}
