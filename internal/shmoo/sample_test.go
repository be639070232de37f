package shmoo

import (
	"math"
	"testing"
)

func TestCleanSamples(t *testing.T) {
	t.Parallel()
	nan := math.NaN()
	inf := math.Inf(1)
	in := []Sample{
		{X: 1, Y: 2, Z: 3},
		{X: nan, Y: 2, Z: 3},
		{X: 1, Y: nan, Z: 3},
		{X: 1, Y: 2, Z: nan},
		{X: inf, Y: 2, Z: 3},
		{X: 4, Y: 5, Z: 6},
	}
	out := CleanSamples(in)
	if len(out) != 2 {
		t.Fatalf("kept %d samples, want 2", len(out))
	}
	if out[0] != (Sample{X: 1, Y: 2, Z: 3}) || out[1] != (Sample{X: 4, Y: 5, Z: 6}) {
		t.Errorf("kept %+v", out)
	}
}

func TestSampleBounds(t *testing.T) {
	t.Parallel()
	xMin, xMax, yMin, yMax, ok := sampleBounds([]Sample{
		{X: 3, Y: -1}, {X: -2, Y: 4}, {X: 0, Y: 0},
	})
	if !ok {
		t.Fatal("ok = false")
	}
	if xMin != -2 || xMax != 3 || yMin != -1 || yMax != 4 {
		t.Errorf("bounds = (%v..%v, %v..%v)", xMin, xMax, yMin, yMax)
	}
	if _, _, _, _, ok := sampleBounds(nil); ok {
		t.Error("empty input reported ok")
	}
}
