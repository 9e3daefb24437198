package core

// FloatGrid stores a 2D grid of float32 cell values in row-major order.
type FloatGrid struct {
	W, H int
	data []float32
}

// NewFloatGrid allocates a grid with the given dimensions.
func NewFloatGrid(w, h int) *FloatGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &FloatGrid{W: w, H: h, data: make([]float32, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *FloatGrid) Cells() []float32 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *FloatGrid) Index(x, y int) int { return y*g.W + x }

// At returns the value at (x, y). Out-of-range coordinates read as zero.
func (g *FloatGrid) At(x, y int) float32 {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return 0
	}
	return g.data[g.Index(x, y)]
}

// Fill sets every cell to v.
func (g *FloatGrid) Fill(v float32) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clip intersects the half-open span [x0,x1)×[y0,y1) with the grid bounds. The
// returned span is empty (x0 >= x1 or y0 >= y1) when nothing overlaps.
func (g *FloatGrid) Clip(x0, y0, x1, y1 int) (int, int, int, int) {
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > g.W {
		x1 = g.W
	}
	if y1 > g.H {
		y1 = g.H
	}
	return x0, y0, x1, y1
}

// FillSpan sets every cell of the clipped span [x0,x1)×[y0,y1) to v.
func (g *FloatGrid) FillSpan(x0, y0, x1, y1 int, v float32) {
	x0, y0, x1, y1 = g.Clip(x0, y0, x1, y1)
	for y := y0; y < y1; y++ {
		row := g.data[y*g.W : y*g.W+g.W]
		for x := x0; x < x1; x++ {
			row[x] = v
		}
	}
}

// CountAtLeast reports how many cells of the clipped span hold a value >= min,
// together with the number of cells visited.
func (g *FloatGrid) CountAtLeast(x0, y0, x1, y1 int, min float32) (hits, total int) {
	x0, y0, x1, y1 = g.Clip(x0, y0, x1, y1)
	if x0 >= x1 || y0 >= y1 {
		return 0, 0
	}
	for y := y0; y < y1; y++ {
		row := g.data[y*g.W : y*g.W+g.W]
		for x := x0; x < x1; x++ {
			if row[x] >= min {
				hits++
			}
		}
	}
	return hits, (x1 - x0) * (y1 - y0)
}
