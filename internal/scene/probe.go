package scene

import "window-frost/internal/sims/frost"

// Transition is a change in a probe's frozen state between two polls.
type Transition int

const (
	Unchanged Transition = iota
	Froze
	Thawed
)

func (t Transition) String() string {
	switch t {
	case Froze:
		return "froze"
	case Thawed:
		return "thawed"
	default:
		return "unchanged"
	}
}

// Probe is a world-space box that watches whether the frost under it is
// frozen. A probe with a velocity drifts while thawed and stops while frozen,
// like the moving hazards it stands in for.
type Probe struct {
	Name     string
	Box      frost.WorldRect
	Velocity frost.Vec2

	frozen bool
}

// NewProbe returns a thawed probe covering box.
func NewProbe(name string, box frost.WorldRect) *Probe {
	return &Probe{Name: name, Box: box}
}

// Frozen reports the state seen by the last Poll.
func (p *Probe) Frozen() bool { return p.frozen }

// Poll samples the frost under the probe and reports how its state changed.
func (p *Probe) Poll(sim *frost.Simulation, vp frost.Viewport) Transition {
	now := sim.QueryRect(sim.MapWorldRect(p.Box, vp))
	was := p.frozen
	p.frozen = now
	switch {
	case now && !was:
		return Froze
	case !now && was:
		return Thawed
	default:
		return Unchanged
	}
}

// Drift moves a thawed probe by its velocity.
func (p *Probe) Drift(dt float64) {
	if p.frozen || dt <= 0 {
		return
	}
	p.Box.Pos.X += p.Velocity.X * dt
	p.Box.Pos.Y += p.Velocity.Y * dt
}
