package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(9), NewRNG(9)
	for i := 0; i < 100; i++ {
		if x, y := a.Float32(), b.Float32(); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
}

func TestFillUniform(t *testing.T) {
	buf := make([]float32, 256)
	FillUniform(NewRNG(1), buf)
	var sum float32
	for _, v := range buf {
		if v < 0 || v >= 1 {
			t.Fatalf("value %v outside [0,1)", v)
		}
		sum += v
	}
	if mean := sum / float32(len(buf)); mean < 0.35 || mean > 0.65 {
		t.Fatalf("mean %v implausible for a uniform source", mean)
	}
}
