package frost

// Vec2 is a point or extent in world or viewport space.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Rect is an axis-aligned cell range of the field covering [X, X+W)×[Y, Y+H).
// Rects with a non-positive width or height are empty.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Intersect clips r to o. The result may be empty.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Area returns the number of cells r covers.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// WorldRect is a box in world space. Pos is the top-left corner; world Y grows
// upward, so the box spans [Pos.Y-Size.Y, Pos.Y] vertically.
type WorldRect struct {
	Pos  Vec2
	Size Vec2
}

// WorldRectFromCenter builds a box of the given size centered on c.
func WorldRectFromCenter(c, size Vec2) WorldRect {
	return WorldRect{Pos: Vec2{c.X - size.X/2, c.Y + size.Y/2}, Size: size}
}

// Center returns the midpoint of the box.
func (r WorldRect) Center() Vec2 {
	return Vec2{r.Pos.X + r.Size.X/2, r.Pos.Y - r.Size.Y/2}
}

// Viewport describes the window the world is presented through. World origin
// sits at the viewport center with Y up; viewport origin is the top-left
// corner with Y down. Offset is the camera shift added to world positions
// before projection.
type Viewport struct {
	Width, Height float64
	Offset        Vec2
}

// WorldToViewport projects a world point into viewport space.
func (v Viewport) WorldToViewport(p Vec2) Vec2 {
	return Vec2{p.X + v.Width/2, v.Height/2 - p.Y}
}

// ViewportToWorld is the inverse of WorldToViewport.
func (v Viewport) ViewportToWorld(p Vec2) Vec2 {
	return Vec2{p.X - v.Width/2, v.Height/2 - p.Y}
}

// Scale holds the field-cells-per-viewport-unit ratio on each axis.
type Scale struct {
	X, Y float64
}

// ScaleFor returns the ratio between a field of fieldW×fieldH cells and vp.
// A degenerate viewport yields a zero scale, which maps everything to empty
// rects.
func ScaleFor(fieldW, fieldH int, vp Viewport) Scale {
	if vp.Width <= 0 || vp.Height <= 0 {
		return Scale{}
	}
	return Scale{X: float64(fieldW) / vp.Width, Y: float64(fieldH) / vp.Height}
}

// MapWorldRectToField converts a world box into field cells. The box's
// lower-left corner is projected into viewport space, scaled, and flipped
// vertically: higher world Y lands on higher field rows.
func MapWorldRectToField(r WorldRect, vp Viewport, scale Scale, fieldH int) Rect {
	corner := vp.WorldToViewport(Vec2{r.Pos.X, r.Pos.Y - r.Size.Y}.Add(vp.Offset))
	sx := corner.X * scale.X
	sy := corner.Y * scale.Y
	return Rect{
		X: int(sx),
		Y: fieldH - int(sy),
		W: int(r.Size.X * scale.X),
		H: int(r.Size.Y * scale.Y),
	}
}

// FieldCellToWorld returns the world position of the center of cell (x, y)
// as drawn, with row 0 at the bottom of the viewport. A one-cell box centered
// there maps back to (x, y) through MapWorldRectToField.
func FieldCellToWorld(x, y int, vp Viewport, scale Scale, fieldH int) Vec2 {
	if scale.X == 0 || scale.Y == 0 {
		return Vec2{}
	}
	vx := (float64(x) + 0.5) / scale.X
	vy := (float64(fieldH-y) - 0.5) / scale.Y
	w := vp.ViewportToWorld(Vec2{vx, vy})
	return Vec2{w.X - vp.Offset.X, w.Y - vp.Offset.Y}
}
