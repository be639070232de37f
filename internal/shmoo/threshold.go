package shmoo

import "math"

// ThresholdSpec holds optional pass/fail bounds. A nil bound is absent.
// Classification is disabled when both bounds are absent.
type ThresholdSpec struct {
	Min *float64
	Max *float64
}

// Enabled reports whether at least one bound is set.
func (t ThresholdSpec) Enabled() bool { return t.Min != nil || t.Max != nil }

// transform maps both bounds through the safe-floor log transform.
func (t ThresholdSpec) transform(floor float64) ThresholdSpec {
	out := ThresholdSpec{}
	if t.Min != nil {
		v := TransformBound(*t.Min, floor)
		out.Min = &v
	}
	if t.Max != nil {
		v := TransformBound(*t.Max, floor)
		out.Max = &v
	}
	return out
}

// Classification summarizes threshold evaluation over a value set. Margins
// are the smallest distances from any passing value to the active bounds, a
// robustness indicator beyond the binary pass flag. A margin against an
// absent bound is zero.
type Classification struct {
	PassCount int     `json:"pass_count"`
	FailCount int     `json:"fail_count"`
	Total     int     `json:"total"`
	PassRate  float64 `json:"pass_rate"`
	MinMargin float64 `json:"min_margin"`
	MaxMargin float64 `json:"max_margin"`
}

// Classify evaluates values against the spec. It returns nil when the spec
// has neither bound set. NaN values are excluded from the evaluated total.
// A value passes when it is at or above Min (if set) and at or below Max
// (if set).
func Classify(values []float64, spec ThresholdSpec) *Classification {
	if !spec.Enabled() {
		return nil
	}

	c := &Classification{}
	minMargin := math.Inf(1)
	maxMargin := math.Inf(1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		c.Total++
		pass := (spec.Min == nil || v >= *spec.Min) && (spec.Max == nil || v <= *spec.Max)
		if !pass {
			c.FailCount++
			continue
		}
		c.PassCount++
		if spec.Min != nil {
			minMargin = math.Min(minMargin, v-*spec.Min)
		}
		if spec.Max != nil {
			maxMargin = math.Min(maxMargin, *spec.Max-v)
		}
	}

	if c.Total > 0 {
		c.PassRate = float64(c.PassCount) / float64(c.Total)
	}
	if c.PassCount > 0 && spec.Min != nil {
		c.MinMargin = minMargin
	}
	if c.PassCount > 0 && spec.Max != nil {
		c.MaxMargin = maxMargin
	}
	return c
}
