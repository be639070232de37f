package shmoo

import "math"

// Sample is one observation of a 2D parameter sweep: two independent
// parameter values and one dependent measurement. Duplicate (X,Y) pairs are
// legal in raw input; grid building keeps the last duplicate and value
// annotation keeps the first (see grid.go and annotate.go).
type Sample struct {
	X float64
	Y float64
	Z float64
}

// minValidSamples is the smallest sample count that can produce a
// meaningful surface. Below this the render aborts with ErrInsufficientData.
const minValidSamples = 3

// CleanSamples returns the samples whose coordinates and value are all
// finite, preserving input order.
func CleanSamples(samples []Sample) []Sample {
	out := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if !finite(s.X) || !finite(s.Y) || !finite(s.Z) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// sampleBounds returns the bounding box of the sample coordinates.
// ok is false for an empty slice.
func sampleBounds(samples []Sample) (xMin, xMax, yMin, yMax float64, ok bool) {
	if len(samples) == 0 {
		return 0, 0, 0, 0, false
	}
	xMin, xMax = samples[0].X, samples[0].X
	yMin, yMax = samples[0].Y, samples[0].Y
	for _, s := range samples[1:] {
		xMin = math.Min(xMin, s.X)
		xMax = math.Max(xMax, s.X)
		yMin = math.Min(yMin, s.Y)
		yMax = math.Max(yMax, s.Y)
	}
	return xMin, xMax, yMin, yMax, true
}

// sampleValues extracts the Z values of a sample slice.
func sampleValues(samples []Sample) []float64 {
	zs := make([]float64, len(samples))
	for i, s := range samples {
		zs[i] = s.Z
	}
	return zs
}
