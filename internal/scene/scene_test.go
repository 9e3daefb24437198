package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"window-frost/internal/sims/frost"
)

var vp = frost.Viewport{Width: 256, Height: 256}

// staticSim returns a fully frosted field with no seeds, so only the heater
// changes it.
func staticSim(t *testing.T) *frost.Simulation {
	t.Helper()
	cfg := frost.DefaultConfig()
	cfg.Params.FrostCount = 0
	sim, err := frost.New(cfg)
	require.NoError(t, err)
	return sim
}

func TestHeaterMeltClearsMappedRect(t *testing.T) {
	sim := staticSim(t)
	h := NewHeater(frost.Vec2{}, frost.Vec2{X: 20, Y: 20})

	r := h.Melt(sim, vp)
	assert.Equal(t, frost.Rect{X: 59, Y: 59, W: 10, H: 10}, r)
	assert.Equal(t, float32(0), sim.At(59, 59))
	assert.Equal(t, float32(0), sim.At(68, 68))
	assert.Equal(t, float32(1), sim.At(69, 68))
	assert.Equal(t, float32(1), sim.At(58, 59))
}

func TestHeaterEasesTowardTarget(t *testing.T) {
	h := NewHeater(frost.Vec2{}, frost.Vec2{X: 10, Y: 10})
	target := frost.Vec2{X: 100, Y: -40}

	h.MoveToward(target, 1.0/60)
	first := h.Pos()
	assert.Greater(t, first.X, 0.0)
	assert.Less(t, first.X, 100.0, "the heater must not jump to the target")

	for i := 0; i < 120; i++ {
		h.MoveToward(target, 1.0/60)
		assert.LessOrEqual(t, h.Pos().X, 100.0+1e-6, "critically damped spring overshot")
	}
	assert.InDelta(t, 100, h.Pos().X, 0.01)
	assert.InDelta(t, -40, h.Pos().Y, 0.01)

	h.MoveToward(frost.Vec2{}, 0)
	assert.InDelta(t, 100, h.Pos().X, 0.01, "zero dt does not move")

	h.Teleport(frost.Vec2{X: 5, Y: 5})
	assert.Equal(t, frost.Vec2{X: 5, Y: 5}, h.Pos())
}

func TestProbeTransitions(t *testing.T) {
	sim := staticSim(t)
	p := NewProbe("spike", frost.WorldRectFromCenter(frost.Vec2{X: 40, Y: 40}, frost.Vec2{X: 16, Y: 16}))

	assert.Equal(t, Froze, p.Poll(sim, vp))
	assert.True(t, p.Frozen())
	assert.Equal(t, Unchanged, p.Poll(sim, vp))

	sim.ClearRect(sim.MapWorldRect(p.Box, vp))
	assert.Equal(t, Thawed, p.Poll(sim, vp))
	assert.False(t, p.Frozen())
	assert.Equal(t, Unchanged, p.Poll(sim, vp))
	assert.Equal(t, "thawed", Thawed.String())
}

func TestProbeDriftsOnlyWhileThawed(t *testing.T) {
	sim := staticSim(t)
	p := NewProbe("platform", frost.WorldRectFromCenter(frost.Vec2{}, frost.Vec2{X: 8, Y: 8}))
	p.Velocity = frost.Vec2{Y: -10}

	start := p.Box.Pos
	p.Drift(0.5)
	assert.Equal(t, start.Y-5, p.Box.Pos.Y)

	p.Poll(sim, vp)
	require.True(t, p.Frozen())
	p.Drift(0.5)
	assert.Equal(t, start.Y-5, p.Box.Pos.Y)
}

func TestSceneUpdateReportsTransitions(t *testing.T) {
	s := New(staticSim(t), vp, frost.Vec2{X: 24, Y: 24})
	under := s.AddProbe("under", frost.WorldRectFromCenter(frost.Vec2{}, frost.Vec2{X: 8, Y: 8}))
	far := s.AddProbe("far", frost.WorldRectFromCenter(frost.Vec2{X: 80, Y: 80}, frost.Vec2{X: 8, Y: 8}))

	events, err := s.Update(1.0/60, frost.Vec2{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Same(t, far, events[0].Probe)
	assert.Equal(t, Froze, events[0].Transition)
	assert.False(t, under.Frozen())
	assert.Equal(t, 1, s.FrozenProbes())

	var thawed bool
	for i := 0; i < 120 && !thawed; i++ {
		events, err = s.Update(1.0/60, frost.Vec2{X: 80, Y: 80})
		require.NoError(t, err)
		for _, e := range events {
			if e.Probe == far && e.Transition == Thawed {
				thawed = true
			}
		}
	}
	assert.True(t, thawed, "moving the heater over a probe thaws it")
	assert.Equal(t, 0, s.FrozenProbes())
}

func TestSceneUpdateRejectsBadStep(t *testing.T) {
	s := New(staticSim(t), vp, frost.Vec2{X: 4, Y: 4})
	_, err := s.Update(-1, frost.Vec2{})
	assert.ErrorIs(t, err, frost.ErrInvalidStep)
}

func TestSpreadProbes(t *testing.T) {
	s := New(staticSim(t), vp, frost.Vec2{X: 8, Y: 8})
	s.SpreadProbes(3, 6)
	require.Len(t, s.Probes, 3)
	assert.Equal(t, "probe-1", s.Probes[0].Name)
	assert.InDelta(t, -64, s.Probes[0].Box.Center().X, 1e-9)
	assert.InDelta(t, 0, s.Probes[1].Box.Center().X, 1e-9)
	assert.InDelta(t, 64, s.Probes[2].Box.Center().X, 1e-9)
	for _, p := range s.Probes {
		assert.InDelta(t, 256.0/6, p.Box.Center().Y, 1e-9)
		assert.Equal(t, frost.Vec2{X: 6, Y: 6}, p.Box.Size)
	}

	s.SpreadProbes(0, 6)
	assert.Empty(t, s.Probes)
}

func TestSetSpringIgnoresNonPositive(t *testing.T) {
	slow := NewHeater(frost.Vec2{}, frost.Vec2{X: 4, Y: 4})
	slow.SetSpring(2, 0)
	fast := NewHeater(frost.Vec2{}, frost.Vec2{X: 4, Y: 4})
	fast.SetSpring(-1, -1)

	target := frost.Vec2{X: 50}
	slow.MoveToward(target, 1.0/60)
	fast.MoveToward(target, 1.0/60)
	assert.Less(t, slow.Pos().X, fast.Pos().X, "a lower frequency eases more slowly")
	assert.Greater(t, slow.Pos().X, 0.0)
}
