// Package scene ties the frost field to the world objects that read and
// write it: a heater that wipes frost and probes that react to it.
package scene

import (
	"fmt"

	"window-frost/internal/sims/frost"
)

// Event records a probe transition observed during an update.
type Event struct {
	Probe      *Probe
	Transition Transition
}

// Scene owns one frost simulation, its heater and any number of probes.
type Scene struct {
	Sim      *frost.Simulation
	Heater   *Heater
	Probes   []*Probe
	Viewport frost.Viewport

	events []Event
}

// New builds a scene around sim with the heater centered in the world.
func New(sim *frost.Simulation, vp frost.Viewport, heaterSize frost.Vec2) *Scene {
	return &Scene{
		Sim:      sim,
		Heater:   NewHeater(frost.Vec2{}, heaterSize),
		Viewport: vp,
	}
}

// AddProbe registers a probe and returns it.
func (s *Scene) AddProbe(name string, box frost.WorldRect) *Probe {
	p := NewProbe(name, box)
	s.Probes = append(s.Probes, p)
	return p
}

// SpreadProbes replaces the probes with n square boxes of the given size
// spaced evenly along a line a third of the way up from the view center.
func (s *Scene) SpreadProbes(n int, size float64) {
	s.Probes = s.Probes[:0]
	for i := 0; i < n; i++ {
		x := s.Viewport.Width * (float64(i+1)/float64(n+1) - 0.5)
		box := frost.WorldRectFromCenter(frost.Vec2{X: x, Y: s.Viewport.Height / 6}, frost.Vec2{X: size, Y: size})
		s.AddProbe(fmt.Sprintf("probe-%d", i+1), box)
	}
}

// Update advances the frost by dt, eases the heater toward target, wipes the
// frost under it and polls every probe. The returned events are only valid
// until the next call.
func (s *Scene) Update(dt float64, target frost.Vec2) ([]Event, error) {
	if err := s.Sim.Advance(dt); err != nil {
		return nil, err
	}
	s.Heater.MoveToward(target, dt)
	s.Heater.Melt(s.Sim, s.Viewport)

	s.events = s.events[:0]
	for _, p := range s.Probes {
		if t := p.Poll(s.Sim, s.Viewport); t != Unchanged {
			s.events = append(s.events, Event{Probe: p, Transition: t})
		}
		p.Drift(dt)
	}
	return s.events, nil
}

// FrozenProbes counts the probes currently frozen.
func (s *Scene) FrozenProbes() int {
	n := 0
	for _, p := range s.Probes {
		if p.Frozen() {
			n++
		}
	}
	return n
}
