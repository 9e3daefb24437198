package core

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownSim is returned by Lookup for names nobody registered.
var ErrUnknownSim = errors.New("unknown sim")

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim is the contract the viewers drive: a fixed-size grid that can be
// reseeded and exposes a byte-per-cell display buffer.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Cells() []uint8
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := sims[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownSim, name, Names())
	}
	return f, nil
}

// Names lists the registered sims in lexical order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
