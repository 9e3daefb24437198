package scene

import (
	"github.com/charmbracelet/harmonica"

	"window-frost/internal/sims/frost"
)

// Heater spring defaults: a critically damped spring that settles in roughly
// the time the game's 12/s lerp took.
const (
	DefaultHeaterFrequency = 12.0
	DefaultHeaterDamping   = 1.0
)

// Heater is a world-space box that eases toward a target point and wipes the
// frost underneath itself.
type Heater struct {
	Size frost.Vec2

	pos, vel frost.Vec2

	frequency, damping float64
	spring             harmonica.Spring
	springDT           float64
}

// NewHeater places a heater of the given size centered on start.
func NewHeater(start, size frost.Vec2) *Heater {
	return &Heater{
		Size:      size,
		pos:       start,
		frequency: DefaultHeaterFrequency,
		damping:   DefaultHeaterDamping,
	}
}

// SetSpring changes the easing spring. Non-positive values are ignored.
func (h *Heater) SetSpring(frequency, damping float64) {
	if frequency > 0 {
		h.frequency = frequency
	}
	if damping > 0 {
		h.damping = damping
	}
	h.springDT = 0
}

// Pos returns the heater center in world space.
func (h *Heater) Pos() frost.Vec2 { return h.pos }

// Teleport moves the heater without easing.
func (h *Heater) Teleport(p frost.Vec2) {
	h.pos = p
	h.vel = frost.Vec2{}
}

// Box returns the world box the heater covers.
func (h *Heater) Box() frost.WorldRect { return frost.WorldRectFromCenter(h.pos, h.Size) }

// MoveToward eases the heater toward target over dt seconds.
func (h *Heater) MoveToward(target frost.Vec2, dt float64) {
	if dt <= 0 {
		return
	}
	if dt != h.springDT {
		h.spring = harmonica.NewSpring(dt, h.frequency, h.damping)
		h.springDT = dt
	}
	h.pos.X, h.vel.X = h.spring.Update(h.pos.X, h.vel.X, target.X)
	h.pos.Y, h.vel.Y = h.spring.Update(h.pos.Y, h.vel.Y, target.Y)
}

// Melt clears the frost under the heater and returns the field rect it wiped.
func (h *Heater) Melt(sim *frost.Simulation, vp frost.Viewport) frost.Rect {
	r := sim.MapWorldRect(h.Box(), vp)
	sim.ClearRect(r)
	return r
}
