// Package noise provides smooth 2D noise sources normalized to [0, 1).
//
// The frost simulation only depends on the Source interface; which algorithm
// sits behind it is a configuration choice.
package noise

import (
	"fmt"
	"math"
	"strings"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Source samples a smooth 2D noise function. Implementations must be pure and
// return values in [0, 1).
type Source interface {
	Noise(x, y float64) float64
}

// Constant returns the same value everywhere. Useful for degenerate setups and
// tests.
type Constant float64

// Noise returns c clamped to [0, 1).
func (c Constant) Noise(_, _ float64) float64 { return unit(float64(c)) }

// Kind names a noise algorithm.
type Kind string

const (
	KindSimplex Kind = "simplex"
	KindPerlin  Kind = "perlin"
)

// Known reports whether New accepts kind.
func Known(kind Kind) bool {
	switch Kind(strings.ToLower(string(kind))) {
	case "", KindSimplex, KindPerlin:
		return true
	}
	return false
}

// New returns the source registered under kind, seeded with seed.
func New(kind Kind, seed int64) (Source, error) {
	switch Kind(strings.ToLower(string(kind))) {
	case "", KindSimplex:
		return NewSimplex(seed), nil
	case KindPerlin:
		return NewPerlin(seed), nil
	default:
		return nil, fmt.Errorf("noise: unknown kind %q", kind)
	}
}

// Simplex is OpenSimplex noise normalized by the library to [0, 1].
type Simplex struct {
	n opensimplex.Noise
}

// NewSimplex returns a seeded OpenSimplex source.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{n: opensimplex.NewNormalized(seed)}
}

// Noise samples the field at (x, y).
func (s *Simplex) Noise(x, y float64) float64 {
	return unit(s.n.Eval2(x, y))
}

// Perlin is classic gradient noise remapped from [-1, 1].
type Perlin struct {
	p *perlin.Perlin
}

// Perlin parameters: alpha is the per-octave amplitude falloff, beta the
// frequency multiplier and octaves the number of summed layers.
const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 3
)

// NewPerlin returns a seeded Perlin source.
func NewPerlin(seed int64) *Perlin {
	return &Perlin{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}
}

// Noise samples the field at (x, y).
func (p *Perlin) Noise(x, y float64) float64 {
	return unit(p.p.Noise2D(x, y)*0.5 + 0.5)
}

var belowOne = math.Nextafter(1, 0)

// unit clamps v to [0, 1).
func unit(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v >= 1:
		return belowOne
	default:
		return v
	}
}
