package shmoo

import (
	"math"
	"testing"
)

func fptr(v float64) *float64 { return &v }

func TestClassify_Disabled(t *testing.T) {
	t.Parallel()
	if c := Classify([]float64{1, 2, 3}, ThresholdSpec{}); c != nil {
		t.Fatalf("Classify with no bounds = %+v, want nil", c)
	}
}

func TestClassify_MinOnly(t *testing.T) {
	t.Parallel()
	c := Classify([]float64{1, 2, 3, 4}, ThresholdSpec{Min: fptr(2)})
	if c == nil {
		t.Fatal("Classify returned nil with a bound set")
	}
	if c.PassCount != 3 || c.FailCount != 1 || c.Total != 4 {
		t.Errorf("counts = %d/%d of %d, want 3/1 of 4", c.PassCount, c.FailCount, c.Total)
	}
	if math.Abs(c.PassRate-0.75) > 1e-12 {
		t.Errorf("PassRate = %v, want 0.75", c.PassRate)
	}
	// The passing value 2 sits exactly on the bound.
	if c.MinMargin != 0 {
		t.Errorf("MinMargin = %v, want 0", c.MinMargin)
	}
	// No max bound, so its margin stays zero.
	if c.MaxMargin != 0 {
		t.Errorf("MaxMargin = %v, want 0", c.MaxMargin)
	}
}

func TestClassify_BothBounds(t *testing.T) {
	t.Parallel()
	c := Classify([]float64{1, 3, 5, 7}, ThresholdSpec{Min: fptr(2), Max: fptr(6)})
	if c.PassCount != 2 || c.FailCount != 2 {
		t.Fatalf("counts = %d/%d, want 2/2", c.PassCount, c.FailCount)
	}
	// Passing values are 3 and 5: closest to min is 3 (margin 1), closest
	// to max is 5 (margin 1).
	if c.MinMargin != 1 {
		t.Errorf("MinMargin = %v, want 1", c.MinMargin)
	}
	if c.MaxMargin != 1 {
		t.Errorf("MaxMargin = %v, want 1", c.MaxMargin)
	}
}

func TestClassify_BoundaryValuesPass(t *testing.T) {
	t.Parallel()
	c := Classify([]float64{2, 6}, ThresholdSpec{Min: fptr(2), Max: fptr(6)})
	if c.PassCount != 2 {
		t.Errorf("boundary values must pass inclusively, got %d/%d", c.PassCount, c.Total)
	}
}

func TestClassify_NaNExcluded(t *testing.T) {
	t.Parallel()
	c := Classify([]float64{math.NaN(), 3, math.NaN()}, ThresholdSpec{Min: fptr(1)})
	if c.Total != 1 {
		t.Errorf("Total = %d, want 1 (NaN excluded)", c.Total)
	}
	if c.PassCount != 1 {
		t.Errorf("PassCount = %d, want 1", c.PassCount)
	}
}

func TestClassify_AllFailZeroMargins(t *testing.T) {
	t.Parallel()
	c := Classify([]float64{1, 2}, ThresholdSpec{Min: fptr(10)})
	if c.PassCount != 0 || c.FailCount != 2 {
		t.Fatalf("counts = %d/%d, want 0/2", c.PassCount, c.FailCount)
	}
	if c.MinMargin != 0 || c.MaxMargin != 0 {
		t.Errorf("margins = (%v, %v), want (0, 0) with no passing values", c.MinMargin, c.MaxMargin)
	}
	if c.PassRate != 0 {
		t.Errorf("PassRate = %v, want 0", c.PassRate)
	}
}
