package core

import (
	"errors"
	"slices"
	"testing"
)

type stubSim struct{ name string }

func (s stubSim) Name() string   { return s.name }
func (s stubSim) Size() Size     { return Size{W: 1, H: 1} }
func (s stubSim) Reset(int64)    {}
func (s stubSim) Cells() []uint8 { return []uint8{0} }

func TestRegistryLookup(t *testing.T) {
	Register("stub-test", func(map[string]string) (Sim, error) { return stubSim{name: "stub-test"}, nil })
	Register("", func(map[string]string) (Sim, error) { return nil, nil })
	Register("nil-factory", nil)

	f, err := Lookup("stub-test")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	sim, err := f(nil)
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if got := sim.Name(); got != "stub-test" {
		t.Fatalf("factory built %q", got)
	}
	if _, err := Lookup("nil-factory"); !errors.Is(err, ErrUnknownSim) {
		t.Fatalf("nil factory registered: %v", err)
	}
	if !slices.IsSorted(Names()) {
		t.Fatalf("Names not sorted: %v", Names())
	}
	if slices.Contains(Names(), "") {
		t.Fatal("empty name registered")
	}
}

func TestParameterControlClamp(t *testing.T) {
	c := ParameterControl{Min: 0, Max: 2, HasMin: true, HasMax: true}
	if got := c.Clamp(-1); got != 0 {
		t.Fatalf("Clamp(-1) = %v", got)
	}
	if got := c.Clamp(3); got != 2 {
		t.Fatalf("Clamp(3) = %v", got)
	}
	if got := (ParameterControl{}).Clamp(99); got != 99 {
		t.Fatalf("unbounded Clamp(99) = %v", got)
	}
}

func TestSnapshotFind(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{{Name: "g", Params: []Parameter{IntParam("n", "N", 3), FloatParam("f", "F", 0.25)}}}}
	if p, ok := snap.Find("f"); !ok || p.Value != "0.25" || p.Type != ParamTypeFloat {
		t.Fatalf("Find(f) = %+v, %v", p, ok)
	}
	if _, ok := snap.Find("missing"); ok {
		t.Fatal("Find(missing) succeeded")
	}
}
