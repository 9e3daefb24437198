// Package frost simulates frost creeping over a window pane.
//
// A fixed pool of circular seeds grows over time and deposits intensity into a
// saturating W×H field. Gameplay asks whether a rectangle is frozen and wipes
// rectangles clean; everything else about the field is read-only to callers.
// A Simulation is not safe for concurrent use.
package frost

import (
	"errors"
	"fmt"
	"math"

	"window-frost/internal/core"
	"window-frost/internal/noise"
	pcore "window-frost/pkg/core"
)

// ErrInvalidStep is returned by Advance for negative or non-finite frame times.
var ErrInvalidStep = errors.New("frost: invalid time step")

const (
	// FrostedLevel is the intensity at which a cell counts as fully frosted.
	FrostedLevel float32 = 0.95
	// FrozenCoverage is the fraction of fully frosted cells a rect needs to be
	// reported frozen.
	FrozenCoverage = 0.9
)

// Growth bias is lerp(biasMin, biasMax, noise).
const (
	biasMin = 0.6
	biasMax = 1.4
)

// Random is the uniform source the procedural generation draws from.
// *math/rand/v2.Rand and *pkg/core.RNG both satisfy it.
type Random interface {
	Float32() float32
}

// Sources are the injected procedural inputs. Nil members are derived from
// the config seed.
type Sources struct {
	Random Random
	Noise  noise.Source
}

// Simulation owns the frost field, its static noise layers and the seed pool.
type Simulation struct {
	cfg Config

	field  *core.FloatGrid
	jitter []float32
	bias   []float32
	seeds  []Seed

	elapsed float64
}

// New validates cfg and builds a simulation seeded from cfg.Seed.
func New(cfg Config) (*Simulation, error) {
	return NewWithSources(cfg, Sources{})
}

// NewWithSources validates cfg and builds a simulation from the given sources.
// Nothing is allocated when cfg is invalid.
func NewWithSources(cfg Config, src Sources) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src.Random == nil {
		src.Random = pcore.NewRNG(cfg.Seed)
	}
	if src.Noise == nil {
		n, err := noise.New(cfg.Noise, cfg.Seed)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		src.Noise = n
	}

	w, h := cfg.Width, cfg.Height
	s := &Simulation{
		cfg:    cfg,
		field:  core.NewFloatGrid(w, h),
		jitter: make([]float32, w*h),
		bias:   make([]float32, w*h),
	}
	s.field.Fill(1)
	pcore.FillUniform(src.Random, s.jitter)
	s.seeds = spawnSeeds(src.Random, cfg.Params.FrostCount, w, h, cfg.Params)
	s.buildGrowthBias(src.Noise)
	return s, nil
}

func (s *Simulation) buildGrowthBias(n noise.Source) {
	w, h := s.cfg.Width, s.cfg.Height
	scale := s.cfg.NoiseScale
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float32(n.Noise(float64(x)*scale, float64(y)*scale))
			s.bias[y*w+x] = biasMin + (biasMax-biasMin)*v
		}
	}
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() Config { return s.cfg }

// Size reports the field dimensions.
func (s *Simulation) Size() core.Size { return core.Size{W: s.cfg.Width, H: s.cfg.Height} }

// Bounds returns the rect covering the whole field.
func (s *Simulation) Bounds() Rect { return Rect{W: s.cfg.Width, H: s.cfg.Height} }

// Field exposes the intensity grid in row-major order. Callers must not
// modify it.
func (s *Simulation) Field() []float32 { return s.field.Cells() }

// At returns the intensity of cell (x, y), zero outside the field.
func (s *Simulation) At(x, y int) float32 { return s.field.At(x, y) }

// Jitter exposes the static per-cell jitter layer. Callers must not modify it.
func (s *Simulation) Jitter() []float32 { return s.jitter }

// GrowthBias exposes the static growth bias layer. Callers must not modify it.
func (s *Simulation) GrowthBias() []float32 { return s.bias }

// Seeds returns a copy of the seed pool.
func (s *Simulation) Seeds() []Seed { return append([]Seed(nil), s.seeds...) }

// Elapsed returns the total simulated time in seconds.
func (s *Simulation) Elapsed() float64 { return s.elapsed }

// Advance ages every seed by dt seconds and deposits their frost. A zero dt is
// a no-op.
func (s *Simulation) Advance(dt float64) error {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidStep, dt)
	}
	if dt == 0 {
		return nil
	}
	s.elapsed += dt
	step := float32(dt)
	p := s.cfg.Params
	grow, inc, maxR := float32(p.GrowSpeed), float32(p.FrostIncreaseSpeed), float32(p.InitialSizeMax)

	// All seeds age before any of them deposits.
	for i := range s.seeds {
		s.seeds[i].age(grow, inc, maxR, step)
	}
	if p.MeltRate > 0 {
		s.melt(float32(p.MeltRate) * step)
	}
	for i := range s.seeds {
		s.deposit(&s.seeds[i], step)
	}
	return nil
}

func (s *Simulation) melt(loss float32) {
	keep := 1 - loss
	if keep < 0 {
		keep = 0
	}
	cells := s.field.Cells()
	for i := range cells {
		cells[i] *= keep
	}
}

// deposit adds one seed's contribution over its circular footprint.
func (s *Simulation) deposit(sd *Seed, dt float32) {
	r := sd.Radius
	if r <= 0 {
		return
	}
	w, h := s.cfg.Width, s.cfg.Height
	minX := int(max(0, sd.X-r))
	maxX := int(min(float32(w-1), sd.X+r))
	minY := int(max(0, sd.Y-r))
	maxY := int(min(float32(h-1), sd.Y+r))

	cells := s.field.Cells()
	r2 := r * r
	for y := minY; y <= maxY; y++ {
		dy := float32(y) - sd.Y
		for x := minX; x <= maxX; x++ {
			dx := float32(x) - sd.X
			d2 := dx*dx + dy*dy
			if d2 > r2 {
				continue
			}
			falloff := 1 - float32(math.Sqrt(float64(d2)))/r
			idx := y*w + x
			jitter := s.jitter[idx]*0.4 + 0.6
			zone := clamp01(s.bias[idx] + 0.1)
			v := falloff * sd.Strength * jitter * zone * sd.GrowthBias * dt
			if v <= 0 {
				continue
			}
			cells[idx] = min(1, cells[idx]+v)
		}
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Coverage returns the fraction of fully frosted cells inside r clipped to
// the field. ok is false when the clipped rect is empty.
func (s *Simulation) Coverage(r Rect) (frac float64, ok bool) {
	r = r.Intersect(s.Bounds())
	if r.Empty() {
		return 0, false
	}
	hits, _ := s.field.CountAtLeast(r.X, r.Y, r.X+r.W, r.Y+r.H, FrostedLevel)
	return float64(hits) / float64(r.Area()), true
}

// QueryRect reports whether r is frozen: at least FrozenCoverage of its cells
// inside the field are fully frosted. Empty rects are never frozen.
func (s *Simulation) QueryRect(r Rect) bool {
	frac, ok := s.Coverage(r)
	return ok && frac >= FrozenCoverage
}

// ClearRect wipes every cell of r inside the field to zero.
func (s *Simulation) ClearRect(r Rect) {
	r = r.Intersect(s.Bounds())
	if r.Empty() {
		return
	}
	s.field.FillSpan(r.X, r.Y, r.X+r.W, r.Y+r.H, 0)
}

// FrozenFraction returns the fully frosted share of the whole field.
func (s *Simulation) FrozenFraction() float64 {
	frac, _ := s.Coverage(s.Bounds())
	return frac
}

// Scale returns the field-per-viewport ratio for vp.
func (s *Simulation) Scale(vp Viewport) Scale {
	return ScaleFor(s.cfg.Width, s.cfg.Height, vp)
}

// MapWorldRect converts a world box seen through vp into field cells.
func (s *Simulation) MapWorldRect(r WorldRect, vp Viewport) Rect {
	return MapWorldRectToField(r, vp, s.Scale(vp), s.cfg.Height)
}
