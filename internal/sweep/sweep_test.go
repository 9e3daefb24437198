package sweep

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"window-frost/internal/sims/frost"
)

func smallOptions() Options {
	base := frost.DefaultConfig()
	base.Width, base.Height = 32, 32
	base.Params.InitialSizeMin = 2
	base.Params.InitialSizeMax = 12
	return Options{Base: base, Steps: 90, DT: 0.1, Workers: 3}
}

func TestGridSets(t *testing.T) {
	g := Grid{GrowSpeeds: []float64{1, 2}, IncreaseSpeeds: []float64{0.1}, Counts: []int{4, 8, 16}}
	sets := g.Sets()
	require.Len(t, sets, 6)
	assert.Equal(t, ParamSet{GrowSpeed: 1, FrostIncreaseSpeed: 0.1, FrostCount: 4}, sets[0])
	assert.Equal(t, ParamSet{GrowSpeed: 2, FrostIncreaseSpeed: 0.1, FrostCount: 16}, sets[5])
	assert.Len(t, DefaultGrid().Sets(), 36)
}

func TestRunScenarioRefreezes(t *testing.T) {
	opts := smallOptions()
	res, err := RunScenario(context.Background(), opts.Base, ParamSet{GrowSpeed: 4, FrostIncreaseSpeed: 0.5, FrostCount: 40}, opts.Steps, opts.DT)
	require.NoError(t, err)
	require.Len(t, res.Coverage, opts.Steps)
	assert.Less(t, res.Coverage[0], frost.FrozenCoverage, "a wiped pane is not frozen after one step")
	for i := 1; i < len(res.Coverage); i++ {
		if res.Coverage[i] < res.Coverage[i-1] {
			t.Fatalf("coverage dropped at step %d: %v -> %v", i, res.Coverage[i-1], res.Coverage[i])
		}
	}
	assert.Equal(t, res.Coverage[len(res.Coverage)-1], res.FinalCoverage)
	if res.Reached() {
		assert.GreaterOrEqual(t, res.Coverage[res.FrozenStep-1], frost.FrozenCoverage)
	}
}

func TestRunScenarioWithoutSeedsNeverFreezes(t *testing.T) {
	opts := smallOptions()
	res, err := RunScenario(context.Background(), opts.Base, ParamSet{GrowSpeed: 1, FrostCount: 0}, 10, 0.1)
	require.NoError(t, err)
	assert.False(t, res.Reached())
	assert.Equal(t, 0.0, res.FinalCoverage)
}

func TestRunScenarioRejectsInvalidParams(t *testing.T) {
	opts := smallOptions()
	_, err := RunScenario(context.Background(), opts.Base, ParamSet{GrowSpeed: -1, FrostCount: 4}, 10, 0.1)
	assert.True(t, errors.Is(err, frost.ErrInvalidConfig))
}

func TestRunIsDeterministicAndSorted(t *testing.T) {
	opts := smallOptions()
	sets := Grid{GrowSpeeds: []float64{1, 4}, IncreaseSpeeds: []float64{0.2, 0.6}, Counts: []int{0, 30}}.Sets()

	first, err := Run(context.Background(), opts, sets)
	require.NoError(t, err)
	require.Len(t, first, len(sets))

	opts.Workers = 1
	second, err := Run(context.Background(), opts, sets)
	require.NoError(t, err)
	for i := range first {
		assert.Equal(t, first[i].Params, second[i].Params)
		assert.Equal(t, first[i].FrozenStep, second[i].FrozenStep)
		assert.Equal(t, first[i].FinalCoverage, second[i].FinalCoverage)
	}

	for i := 1; i < len(first); i++ {
		a, b := first[i-1], first[i]
		if !a.Reached() && b.Reached() {
			t.Fatalf("result %d froze but sorts after a run that never froze", i)
		}
		if a.Reached() && b.Reached() && a.FrozenStep > b.FrozenStep {
			t.Fatalf("results %d and %d out of order", i-1, i)
		}
	}
	last := first[len(first)-1]
	assert.Equal(t, 0, last.Params.FrostCount, "seedless runs never freeze")
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, smallOptions(), DefaultGrid().Sets())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunReportsScenarioErrors(t *testing.T) {
	sets := []ParamSet{{GrowSpeed: 1, FrostCount: 4}, {GrowSpeed: -2, FrostCount: 4}}
	_, err := Run(context.Background(), smallOptions(), sets)
	assert.True(t, errors.Is(err, frost.ErrInvalidConfig))
}

func TestRunValidatesOptions(t *testing.T) {
	opts := smallOptions()
	opts.Steps = 0
	_, err := Run(context.Background(), opts, DefaultGrid().Sets())
	assert.Error(t, err)

	opts = smallOptions()
	opts.DT = -1
	_, err = Run(context.Background(), opts, DefaultGrid().Sets())
	assert.Error(t, err)
}

func TestSortOrder(t *testing.T) {
	results := []Result{
		{Params: ParamSet{FrostCount: 1}, FinalCoverage: 0.5},
		{Params: ParamSet{FrostCount: 2}, FrozenStep: 40, FinalCoverage: 0.95},
		{Params: ParamSet{FrostCount: 3}, FinalCoverage: 0.7},
		{Params: ParamSet{FrostCount: 4}, FrozenStep: 10, FinalCoverage: 0.92},
	}
	Sort(results)
	var order []int
	for _, r := range results {
		order = append(order, r.Params.FrostCount)
	}
	assert.Equal(t, []int{4, 2, 3, 1}, order)
}
