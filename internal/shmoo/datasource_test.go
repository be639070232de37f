package shmoo

import (
	"errors"
	"testing"
)

func threeColumnSource() *MemorySource {
	return NewMemorySource([]string{"vcore", "freq", "margin"}, map[string][]float64{
		"vcore":  {0.9, 1.0, 1.1},
		"freq":   {100, 200, 300},
		"margin": {1, 2, 3},
	})
}

func TestSelectColumns_Positional(t *testing.T) {
	t.Parallel()
	x, y, z, err := SelectColumns(threeColumnSource(), &RenderOptions{})
	if err != nil {
		t.Fatalf("SelectColumns: %v", err)
	}
	if x != "vcore" || y != "freq" || z != "margin" {
		t.Errorf("got (%q, %q, %q), want first three columns in order", x, y, z)
	}
}

func TestSelectColumns_Explicit(t *testing.T) {
	t.Parallel()
	opts := &RenderOptions{ZColumn: sptr("vcore"), XColumn: sptr("margin")}
	x, y, z, err := SelectColumns(threeColumnSource(), opts)
	if err != nil {
		t.Fatalf("SelectColumns: %v", err)
	}
	if x != "margin" || y != "freq" || z != "vcore" {
		t.Errorf("got (%q, %q, %q), want explicit margin/freq/vcore", x, y, z)
	}
}

func TestSelectColumns_MissingExplicitFallsBack(t *testing.T) {
	t.Parallel()
	opts := &RenderOptions{XColumn: sptr("nonexistent")}
	x, _, _, err := SelectColumns(threeColumnSource(), opts)
	if err != nil {
		t.Fatalf("SelectColumns: %v", err)
	}
	if x != "vcore" {
		t.Errorf("x = %q, want positional fallback vcore", x)
	}
}

func TestSelectColumns_InsufficientColumns(t *testing.T) {
	t.Parallel()
	src := NewMemorySource([]string{"a", "b"}, map[string][]float64{
		"a": {1}, "b": {2},
	})
	_, _, _, err := SelectColumns(src, &RenderOptions{})
	if !errors.Is(err, ErrInsufficientColumns) {
		t.Fatalf("err = %v, want ErrInsufficientColumns", err)
	}
}

func TestCollectSamples(t *testing.T) {
	t.Parallel()
	samples, err := CollectSamples(threeColumnSource(), "vcore", "freq", "margin")
	if err != nil {
		t.Fatalf("CollectSamples: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(samples))
	}
	if samples[1] != (Sample{X: 1.0, Y: 200, Z: 2}) {
		t.Errorf("samples[1] = %+v", samples[1])
	}
}

func TestCollectSamples_RaggedColumnsTruncated(t *testing.T) {
	t.Parallel()
	src := NewMemorySource([]string{"x", "y", "z"}, map[string][]float64{
		"x": {1, 2, 3, 4},
		"y": {10, 20},
		"z": {100, 200, 300},
	})
	samples, err := CollectSamples(src, "x", "y", "z")
	if err != nil {
		t.Fatalf("CollectSamples: %v", err)
	}
	if len(samples) != 2 {
		t.Errorf("got %d samples, want truncation to shortest column (2)", len(samples))
	}
}

func TestCollectSamples_UnknownColumn(t *testing.T) {
	t.Parallel()
	if _, err := CollectSamples(threeColumnSource(), "vcore", "freq", "nope"); err == nil {
		t.Error("unknown column accepted")
	}
}
