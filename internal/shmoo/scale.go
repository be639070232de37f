package shmoo

import "math"

// SafeFloor returns the substitute value used for non-positive entries ahead
// of a base-10 log transform: one tenth of the smallest strictly-positive
// value. When no positive value exists it falls back to the smallest nonzero
// absolute value, and finally to 1.0 when every value is exactly zero (or
// the input is empty).
func SafeFloor(values []float64) float64 {
	minPositive := math.Inf(1)
	for _, v := range values {
		if v > 0 && v < minPositive {
			minPositive = v
		}
	}
	if math.IsInf(minPositive, 1) {
		for _, v := range values {
			if a := math.Abs(v); a > 0 && a < minPositive {
				minPositive = a
			}
		}
	}
	if math.IsInf(minPositive, 1) {
		minPositive = 1.0
	}
	return minPositive / 10
}

// TransformLog applies a numerically safe base-10 logarithm to values that
// may include zero or negative entries. Every value at or below zero is
// replaced with the safe floor before taking the log, so the output contains
// no non-finite values. The floor is returned so threshold bounds can be
// passed through the identical transform. Reapplying the transform to
// already-transformed data is a usage error, not detected here.
func TransformLog(values []float64) (transformed []float64, floor float64) {
	floor = SafeFloor(values)
	transformed = make([]float64, len(values))
	for i, v := range values {
		if v <= 0 {
			v = floor
		}
		transformed[i] = math.Log10(v)
	}
	return transformed, floor
}

// TransformBound maps an externally supplied threshold bound through the
// same clamp-then-log transform as TransformLog so classification stays
// consistent with the transformed surface.
func TransformBound(bound, floor float64) float64 {
	return math.Log10(math.Max(bound, floor))
}
