package frost

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"window-frost/internal/noise"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 48
	cfg.Height = 40
	cfg.Seed = 5
	cfg.Params.FrostCount = 12
	cfg.Params.InitialSizeMin = 1
	cfg.Params.InitialSizeMax = 9
	cfg.Params.GrowSpeed = 3
	cfg.Params.FrostIncreaseSpeed = 0.4
	return cfg
}

// bareSim returns a simulation with no seeds and an empty field.
func bareSim(t *testing.T, w, h int) *Simulation {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Params.FrostCount = 0
	s, err := New(cfg)
	require.NoError(t, err)
	s.ClearRect(s.Bounds())
	return s
}

func TestNewStartsFullyFrosted(t *testing.T) {
	s, err := New(smallConfig())
	require.NoError(t, err)

	for i, v := range s.Field() {
		if v != 1 {
			t.Fatalf("cell %d = %f, want 1", i, v)
		}
	}
	assert.Equal(t, 1.0, s.FrozenFraction())
	assert.Len(t, s.Seeds(), 12)
}

func TestGeneratedLayersStayInRange(t *testing.T) {
	cfg := smallConfig()
	s, err := New(cfg)
	require.NoError(t, err)

	for i, v := range s.Jitter() {
		if v < 0 || v >= 1 {
			t.Fatalf("jitter %d = %f outside [0,1)", i, v)
		}
	}
	for i, v := range s.GrowthBias() {
		if v < 0.6 || v > 1.4 {
			t.Fatalf("growth bias %d = %f outside [0.6,1.4]", i, v)
		}
	}
	for i, sd := range s.Seeds() {
		assert.GreaterOrEqual(t, sd.X, float32(0), "seed %d", i)
		assert.Less(t, sd.X, float32(cfg.Width), "seed %d", i)
		assert.GreaterOrEqual(t, sd.Y, float32(0), "seed %d", i)
		assert.Less(t, sd.Y, float32(cfg.Height), "seed %d", i)
		assert.GreaterOrEqual(t, sd.Radius, float32(cfg.Params.InitialSizeMin), "seed %d", i)
		assert.LessOrEqual(t, sd.Radius, float32(cfg.Params.InitialSizeMax), "seed %d", i)
		assert.GreaterOrEqual(t, sd.Strength, float32(cfg.Params.InitialStrengthMin), "seed %d", i)
		assert.LessOrEqual(t, sd.Strength, float32(cfg.Params.InitialStrengthMax), "seed %d", i)
		assert.GreaterOrEqual(t, sd.GrowthBias, float32(0.8), "seed %d", i)
		assert.LessOrEqual(t, sd.GrowthBias, float32(1.2), "seed %d", i)
	}
}

func TestNewRejectsInvalidConfigWithoutBuilding(t *testing.T) {
	cfg := smallConfig()
	cfg.Params.InitialSizeMax = cfg.Params.InitialSizeMin - 1

	s, err := New(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Nil(t, s)
}

func TestSingleSeedScenario(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params = Params{
		GrowSpeed:          2,
		FrostCount:         1,
		InitialSizeMin:     0,
		InitialSizeMax:     10,
		FrostIncreaseSpeed: 1,
		InitialStrengthMin: 0.5,
		InitialStrengthMax: 0.5,
	}
	// Noise 0.5 puts the growth bias at exactly 1.0 everywhere.
	s, err := NewWithSources(cfg, Sources{Noise: noise.Constant(0.5)})
	require.NoError(t, err)
	s.seeds[0] = Seed{X: 64, Y: 64, Radius: 0, Strength: 0.5, GrowthBias: 1}
	for i := range s.jitter {
		s.jitter[i] = 1
	}
	s.ClearRect(s.Bounds())

	require.NoError(t, s.Advance(1))

	sd := s.Seeds()[0]
	assert.Equal(t, float32(2), sd.Radius)
	assert.Equal(t, float32(1), sd.Strength)
	assert.Equal(t, float32(1), s.At(64, 64))
	assert.InDelta(t, 0.5, s.At(65, 64), 1e-5)
	assert.InDelta(t, 0.5, s.At(64, 63), 1e-5)
	assert.Equal(t, float32(0), s.At(66, 64), "rim cells get zero falloff")
	assert.Equal(t, float32(0), s.At(67, 64))
	assert.Equal(t, float32(0), s.At(66, 66), "corner of bounding square lies outside the circle")
}

func TestRadiusAndStrengthSaturate(t *testing.T) {
	cfg := smallConfig()
	s, err := New(cfg)
	require.NoError(t, err)

	prev := s.Seeds()
	for i := 0; i < 200; i++ {
		require.NoError(t, s.Advance(0.1))
		cur := s.Seeds()
		for j := range cur {
			if cur[j].Radius < prev[j].Radius || cur[j].Strength < prev[j].Strength {
				t.Fatalf("seed %d shrank at step %d: %+v -> %+v", j, i, prev[j], cur[j])
			}
		}
		prev = cur
	}
	for j, sd := range prev {
		assert.Equal(t, float32(cfg.Params.InitialSizeMax), sd.Radius, "seed %d", j)
		assert.Equal(t, float32(1), sd.Strength, "seed %d", j)
	}
}

func TestFieldStaysSaturatedAndMonotonic(t *testing.T) {
	cfg := smallConfig()
	cfg.Params.FrostCount = 40
	s, err := New(cfg)
	require.NoError(t, err)
	s.ClearRect(s.Bounds())

	rng := rand.New(rand.NewPCG(11, 12))
	prev := slices.Clone(s.Field())
	for step := 0; step < 150; step++ {
		var cleared Rect
		if step%10 == 5 {
			cleared = Rect{
				X: rng.IntN(cfg.Width+10) - 5,
				Y: rng.IntN(cfg.Height+10) - 5,
				W: rng.IntN(20),
				H: rng.IntN(20),
			}
			s.ClearRect(cleared)
		}
		require.NoError(t, s.Advance(rng.Float64()*0.2))

		cur := s.Field()
		for i, v := range cur {
			if v < 0 || v > 1 {
				t.Fatalf("step %d: cell %d = %f outside [0,1]", step, i, v)
			}
			x, y := i%cfg.Width, i/cfg.Width
			inClear := x >= cleared.X && x < cleared.X+cleared.W && y >= cleared.Y && y < cleared.Y+cleared.H
			if !inClear && v < prev[i] {
				t.Fatalf("step %d: cell (%d,%d) decreased %f -> %f", step, x, y, prev[i], v)
			}
		}
		prev = slices.Clone(cur)
	}
	assert.Greater(t, s.FrozenFraction(), 0.0, "seeds should have frozen something")
}

func TestClearRectZeroesInsideOnly(t *testing.T) {
	s, err := New(smallConfig())
	require.NoError(t, err)
	require.NoError(t, s.Advance(0.5))
	before := slices.Clone(s.Field())

	r := Rect{X: 10, Y: 7, W: 6, H: 4}
	s.ClearRect(r)

	w := s.Size().W
	for i, v := range s.Field() {
		x, y := i%w, i/w
		inside := x >= 10 && x < 16 && y >= 7 && y < 11
		if inside && v != 0 {
			t.Fatalf("cell (%d,%d) = %f after clear, want 0", x, y, v)
		}
		if !inside && v != before[i] {
			t.Fatalf("cell (%d,%d) changed outside the cleared rect", x, y)
		}
	}
}

func TestClearRectClipsAndIgnoresDegenerate(t *testing.T) {
	s, err := New(smallConfig())
	require.NoError(t, err)
	w, h := s.Size().W, s.Size().H

	s.ClearRect(Rect{X: 4, Y: 4, W: 0, H: 10})
	s.ClearRect(Rect{X: 4, Y: 4, W: -3, H: 10})
	s.ClearRect(Rect{X: w + 5, Y: 0, W: 10, H: 10})
	assert.Equal(t, 1.0, s.FrozenFraction())

	s.ClearRect(Rect{X: -5, Y: h - 2, W: 7, H: 50})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			want := float32(1)
			if x < 2 && y >= h-2 {
				want = 0
			}
			if got := s.At(x, y); got != want {
				t.Fatalf("cell (%d,%d) = %f, want %f", x, y, got, want)
			}
		}
	}
}

func TestQueryRectThresholdBoundary(t *testing.T) {
	s := bareSim(t, 32, 32)
	r := Rect{X: 4, Y: 6, W: 10, H: 10}

	cells := s.field.Cells()
	n := 0
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if n < 90 {
				cells[y*32+x] = FrostedLevel
			} else {
				cells[y*32+x] = 0.5
			}
			n++
		}
	}
	assert.True(t, s.QueryRect(r), "exactly 90%% coverage must count as frozen")

	cells[r.Y*32+r.X] = 0.9499
	frac, ok := s.Coverage(r)
	require.True(t, ok)
	assert.InDelta(t, 0.89, frac, 1e-12)
	assert.False(t, s.QueryRect(r))
}

func TestQueryRectEdgeCases(t *testing.T) {
	s, err := New(smallConfig())
	require.NoError(t, err)
	w, h := s.Size().W, s.Size().H

	assert.True(t, s.QueryRect(s.Bounds()))
	assert.False(t, s.QueryRect(Rect{X: 3, Y: 3, W: 0, H: 5}), "zero width")
	assert.False(t, s.QueryRect(Rect{X: 3, Y: 3, W: 5, H: -1}), "negative height")
	assert.False(t, s.QueryRect(Rect{X: -20, Y: -20, W: 10, H: 10}), "fully outside")
	assert.False(t, s.QueryRect(Rect{X: w, Y: 0, W: 4, H: h}), "right of the field")
	assert.True(t, s.QueryRect(Rect{X: -5, Y: -5, W: 10, H: 10}), "partially outside is clipped")

	_, ok := s.Coverage(Rect{X: w + 1, Y: h + 1, W: 3, H: 3})
	assert.False(t, ok)
}

func TestAdvanceDeterministic(t *testing.T) {
	cfg := smallConfig()
	a, err := New(cfg)
	require.NoError(t, err)
	b, err := New(cfg)
	require.NoError(t, err)
	a.ClearRect(a.Bounds())
	b.ClearRect(b.Bounds())

	dts := []float64{0.016, 0.033, 0, 0.25, 0.016, 0.1}
	for i, dt := range dts {
		require.NoError(t, a.Advance(dt))
		require.NoError(t, b.Advance(dt))
		if !slices.Equal(a.Field(), b.Field()) {
			t.Fatalf("fields diverged at step %d", i)
		}
		if !slices.Equal(a.Seeds(), b.Seeds()) {
			t.Fatalf("seeds diverged at step %d", i)
		}
	}

	cfg.Seed++
	c, err := New(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a.Seeds()[0], c.Seeds()[0], "different seeds should place seeds differently")
}

func TestAdvanceZeroIsIdempotent(t *testing.T) {
	s, err := New(smallConfig())
	require.NoError(t, err)
	s.ClearRect(Rect{X: 0, Y: 0, W: 20, H: 20})
	require.NoError(t, s.Advance(0.2))

	field := slices.Clone(s.Field())
	seeds := s.Seeds()
	require.NoError(t, s.Advance(0))
	assert.Equal(t, field, s.Field())
	assert.Equal(t, seeds, s.Seeds())
	assert.InDelta(t, 0.2, s.Elapsed(), 1e-12)
}

func TestAdvanceRejectsInvalidSteps(t *testing.T) {
	s, err := New(smallConfig())
	require.NoError(t, err)
	s.ClearRect(s.Bounds())
	seeds := s.Seeds()

	for _, dt := range []float64{-0.01, math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := s.Advance(dt)
		require.Error(t, err, "dt=%v", dt)
		assert.True(t, errors.Is(err, ErrInvalidStep), "dt=%v", dt)
	}
	assert.Equal(t, seeds, s.Seeds())
	assert.Equal(t, 0.0, s.FrozenFraction())
}

func TestOverlappingSeedsAccumulate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 16, 16
	cfg.Params.FrostCount = 2
	cfg.Params.GrowSpeed = 0
	cfg.Params.FrostIncreaseSpeed = 0
	s, err := NewWithSources(cfg, Sources{Noise: noise.Constant(0.5)})
	require.NoError(t, err)
	for i := range s.jitter {
		s.jitter[i] = 1
	}
	s.seeds[0] = Seed{X: 8, Y: 8, Radius: 4, Strength: 0.2, GrowthBias: 1}
	s.seeds[1] = Seed{X: 8, Y: 8, Radius: 4, Strength: 0.2, GrowthBias: 1}
	s.ClearRect(s.Bounds())

	require.NoError(t, s.Advance(1))
	assert.InDelta(t, 0.4, s.At(8, 8), 1e-5)

	single := bareSim(t, 16, 16)
	single.jitter = s.jitter
	single.bias = s.bias
	single.seeds = []Seed{{X: 8, Y: 8, Radius: 4, Strength: 0.2, GrowthBias: 1}}
	single.cfg.Params.GrowSpeed = 0
	single.cfg.Params.FrostIncreaseSpeed = 0
	require.NoError(t, single.Advance(1))
	assert.InDelta(t, 0.2, single.At(8, 8), 1e-5)
}

func TestMeltRateDecaysField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 8, 8
	cfg.Params.FrostCount = 0
	cfg.Params.MeltRate = 0.25
	s, err := New(cfg)
	require.NoError(t, err)

	require.NoError(t, s.Advance(1))
	for i, v := range s.Field() {
		if v != 0.75 {
			t.Fatalf("cell %d = %f, want 0.75", i, v)
		}
	}
	require.NoError(t, s.Advance(10))
	assert.Equal(t, float32(0), s.At(3, 3), "melting never goes negative")
}

func TestSeedsWithZeroRadiusDepositNothing(t *testing.T) {
	s := bareSim(t, 8, 8)
	s.seeds = []Seed{{X: 4, Y: 4, Radius: 0, Strength: 1, GrowthBias: 1}}
	s.deposit(&s.seeds[0], 1)
	assert.Equal(t, 0.0, s.FrozenFraction())
}
