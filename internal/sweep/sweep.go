// Package sweep runs frost simulations over a grid of growth parameters and
// measures how fast each one freezes the pane.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"window-frost/internal/sims/frost"
)

// ParamSet is one point of the sweep grid.
type ParamSet struct {
	GrowSpeed          float64
	FrostIncreaseSpeed float64
	FrostCount         int
}

func (p ParamSet) String() string {
	return fmt.Sprintf("grow=%.2f increase=%.3f count=%d", p.GrowSpeed, p.FrostIncreaseSpeed, p.FrostCount)
}

// Apply returns base with p's growth parameters.
func (p ParamSet) Apply(base frost.Config) frost.Config {
	cfg := base
	cfg.Params.GrowSpeed = p.GrowSpeed
	cfg.Params.FrostIncreaseSpeed = p.FrostIncreaseSpeed
	cfg.Params.FrostCount = p.FrostCount
	return cfg
}

// Grid lists the options swept on each axis.
type Grid struct {
	GrowSpeeds     []float64
	IncreaseSpeeds []float64
	Counts         []int
}

// DefaultGrid brackets the shipped growth parameters.
func DefaultGrid() Grid {
	return Grid{
		GrowSpeeds:     []float64{1, 2, 3, 4},
		IncreaseSpeeds: []float64{0.1, 0.15, 0.25},
		Counts:         []int{12, 24, 48},
	}
}

// Sets expands the cartesian product of the grid.
func (g Grid) Sets() []ParamSet {
	sets := make([]ParamSet, 0, len(g.GrowSpeeds)*len(g.IncreaseSpeeds)*len(g.Counts))
	for _, grow := range g.GrowSpeeds {
		for _, inc := range g.IncreaseSpeeds {
			for _, count := range g.Counts {
				sets = append(sets, ParamSet{GrowSpeed: grow, FrostIncreaseSpeed: inc, FrostCount: count})
			}
		}
	}
	return sets
}

// Options control a sweep run.
type Options struct {
	Base    frost.Config
	Steps   int
	DT      float64
	Workers int
}

// DefaultOptions runs one simulated minute at 30 ticks per second.
func DefaultOptions() Options {
	return Options{Base: frost.DefaultConfig(), Steps: 1800, DT: 1.0 / 30, Workers: runtime.NumCPU()}
}

func (o Options) validate() error {
	if o.Steps <= 0 {
		return fmt.Errorf("steps %d must be positive", o.Steps)
	}
	if o.DT <= 0 {
		return fmt.Errorf("dt %v must be positive", o.DT)
	}
	return nil
}

// Result is the outcome of one scenario.
type Result struct {
	Params        ParamSet
	FinalCoverage float64
	// FrozenStep is the first step (1-based) at which the whole pane counted
	// as frozen, or 0 if it never did.
	FrozenStep int
	// Coverage holds the frozen fraction after every step.
	Coverage []float64
}

// Reached reports whether the pane froze within the run.
func (r Result) Reached() bool { return r.FrozenStep > 0 }

// RunScenario wipes a fresh pane and lets it refreeze for steps ticks of dt.
func RunScenario(ctx context.Context, base frost.Config, params ParamSet, steps int, dt float64) (Result, error) {
	sim, err := frost.New(params.Apply(base))
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", params, err)
	}
	sim.ClearRect(sim.Bounds())

	res := Result{Params: params, Coverage: make([]float64, 0, steps)}
	for step := 0; step < steps; step++ {
		if step%64 == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		if err := sim.Advance(dt); err != nil {
			return Result{}, err
		}
		cov := sim.FrozenFraction()
		res.Coverage = append(res.Coverage, cov)
		if res.FrozenStep == 0 && cov >= frost.FrozenCoverage {
			res.FrozenStep = step + 1
		}
	}
	if n := len(res.Coverage); n > 0 {
		res.FinalCoverage = res.Coverage[n-1]
	}
	return res, nil
}

// Run evaluates every set on a pool of workers and returns the results sorted
// fastest-freezing first. The first scenario error cancels the rest.
func Run(ctx context.Context, opts Options, sets []ParamSet) ([]Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := opts.Base.Validate(); err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, max(len(sets), 1))

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan ParamSet)
	results := make(chan Result)
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				res, err := RunScenario(ctx, opts.Base, params, opts.Steps, opts.DT)
				if err != nil {
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					continue
				}
				select {
				case results <- res:
				case <-ctx.Done():
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, params := range sets {
			select {
			case jobs <- params:
			case <-ctx.Done():
				return
			}
		}
	}()

	all := make([]Result, 0, len(sets))
	for res := range results {
		all = append(all, res)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if len(all) < len(sets) {
		if err := parent.Err(); err != nil {
			return nil, err
		}
		return nil, context.Canceled
	}
	Sort(all)
	return all, nil
}

// Sort orders results by time to freeze, never-frozen runs last by coverage.
func Sort(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Reached() != b.Reached() {
			return a.Reached()
		}
		if a.Reached() && a.FrozenStep != b.FrozenStep {
			return a.FrozenStep < b.FrozenStep
		}
		if a.FinalCoverage != b.FinalCoverage {
			return a.FinalCoverage > b.FinalCoverage
		}
		return a.Params.String() < b.Params.String()
	})
}
