package shmoo

import (
	"errors"
	"math"
	"testing"
)

func TestBuildGrid_Regular(t *testing.T) {
	t.Parallel()
	// Full 2x2 Cartesian product.
	g, err := BuildGrid([]Sample{
		{X: 1, Y: 10, Z: 0.1},
		{X: 2, Y: 10, Z: 0.2},
		{X: 1, Y: 20, Z: 0.3},
		{X: 2, Y: 20, Z: 0.4},
	})
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	if !g.Regular() {
		t.Error("complete Cartesian product should classify as regular")
	}
	cols, rows := g.Dims()
	if cols != 2 || rows != 2 {
		t.Fatalf("expected 2x2 grid, got %dx%d", cols, rows)
	}
	if got := g.Z(1, 0); got != 0.2 {
		t.Errorf("Z(1,0) = %v, want 0.2", got)
	}
	if got := g.Z(0, 1); got != 0.3 {
		t.Errorf("Z(0,1) = %v, want 0.3", got)
	}
}

func TestBuildGrid_IrregularLeavesNaN(t *testing.T) {
	t.Parallel()
	// 2x2 axes but only 3 of the 4 combinations observed.
	g, err := BuildGrid([]Sample{
		{X: 1, Y: 10, Z: 0.1},
		{X: 2, Y: 10, Z: 0.2},
		{X: 1, Y: 20, Z: 0.3},
	})
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	if g.Regular() {
		t.Error("missing (2,20) combination should classify as irregular")
	}
	if got := g.Z(1, 1); !math.IsNaN(got) {
		t.Errorf("unobserved cell = %v, want NaN", got)
	}
}

func TestBuildGrid_AxesSortedUnique(t *testing.T) {
	t.Parallel()
	g, err := BuildGrid([]Sample{
		{X: 3, Y: 5, Z: 1},
		{X: 1, Y: 5, Z: 2},
		{X: 3, Y: 2, Z: 3},
		{X: 1, Y: 2, Z: 4},
		{X: 1, Y: 2, Z: 4}, // duplicate coordinate
	})
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	wantX := []float64{1, 3}
	wantY := []float64{2, 5}
	for i, v := range wantX {
		if g.XAxis[i] != v {
			t.Errorf("XAxis[%d] = %v, want %v", i, g.XAxis[i], v)
		}
	}
	for i, v := range wantY {
		if g.YAxis[i] != v {
			t.Errorf("YAxis[%d] = %v, want %v", i, g.YAxis[i], v)
		}
	}
}

func TestBuildGrid_LastSampleWinsCell(t *testing.T) {
	t.Parallel()
	g, err := BuildGrid([]Sample{
		{X: 1, Y: 1, Z: 5},
		{X: 2, Y: 1, Z: 6},
		{X: 1, Y: 2, Z: 7},
		{X: 2, Y: 2, Z: 8},
		{X: 1, Y: 1, Z: 9}, // re-measures (1,1)
	})
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	if got := g.Z(0, 0); got != 9 {
		t.Errorf("re-measured cell = %v, want the later value 9", got)
	}
}

func TestBuildGrid_InsufficientData(t *testing.T) {
	t.Parallel()
	_, err := BuildGrid([]Sample{{X: 1, Y: 1, Z: 1}, {X: 2, Y: 2, Z: 2}})
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestBuildGrid_DropsNonFiniteSamples(t *testing.T) {
	t.Parallel()
	nan := math.NaN()
	// Two rows are garbage; three valid remain, just enough to build.
	g, err := BuildGrid([]Sample{
		{X: nan, Y: 1, Z: 1},
		{X: 1, Y: 1, Z: nan},
		{X: 1, Y: 1, Z: 1},
		{X: 2, Y: 1, Z: 2},
		{X: 1, Y: 2, Z: 3},
	})
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	if got := g.Z(0, 0); got != 1 {
		t.Errorf("Z(0,0) = %v; NaN-valued sample must not overwrite the valid one", got)
	}
}

func TestGrid_ValueRange(t *testing.T) {
	t.Parallel()
	g, err := BuildGrid([]Sample{
		{X: 1, Y: 1, Z: -2},
		{X: 2, Y: 1, Z: 7},
		{X: 1, Y: 2, Z: 3},
	})
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	min, max, ok := g.ValueRange()
	if !ok {
		t.Fatal("ValueRange ok = false on a grid with values")
	}
	if min != -2 || max != 7 {
		t.Errorf("ValueRange = (%v, %v), want (-2, 7)", min, max)
	}
}

func TestGrid_ValueRangeAllNaN(t *testing.T) {
	t.Parallel()
	g := newDenseGrid([]float64{0, 1}, []float64{0, 1})
	if _, _, ok := g.ValueRange(); ok {
		t.Error("ValueRange ok = true on an all-NaN grid")
	}
}
