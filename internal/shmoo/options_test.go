package shmoo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sptr(s string) *string { return &s }

func TestRenderOptions_Defaults(t *testing.T) {
	t.Parallel()
	var o RenderOptions
	if got := o.GetInterpolation(); got != MethodNearest {
		t.Errorf("GetInterpolation = %v, want nearest", got)
	}
	if got := o.GetContourLevels(); got != 10 {
		t.Errorf("GetContourLevels = %d, want 10", got)
	}
	if got := o.GetMarkerSize(); got != 50 {
		t.Errorf("GetMarkerSize = %v, want 50", got)
	}
	if got := o.GetColormap(); got != "RdYlGn" {
		t.Errorf("GetColormap = %q, want RdYlGn", got)
	}
	if !o.GetShowColorbar() {
		t.Error("GetShowColorbar default = false, want true")
	}
	if !o.GetShowGridLines() {
		t.Error("GetShowGridLines default = false, want true")
	}
	if o.GetShowContours() || o.GetShowMarkers() || o.GetShowValues() || o.GetShowStatistics() || o.GetLogZScale() {
		t.Error("overlays must default to off")
	}
	spec, warns := o.GetThresholdSpec()
	if spec.Enabled() || len(warns) != 0 {
		t.Errorf("empty options produced spec %+v warns %v", spec, warns)
	}
}

func TestRenderOptions_MarkerSizeClamped(t *testing.T) {
	t.Parallel()
	small, large := 1.0, 999.0
	if got := (&RenderOptions{MarkerSize: &small}).GetMarkerSize(); got != 10 {
		t.Errorf("GetMarkerSize(1) = %v, want clamp to 10", got)
	}
	if got := (&RenderOptions{MarkerSize: &large}).GetMarkerSize(); got != 200 {
		t.Errorf("GetMarkerSize(999) = %v, want clamp to 200", got)
	}
}

func TestRenderOptions_UnknownInterpolationFallsBack(t *testing.T) {
	t.Parallel()
	o := RenderOptions{Interpolation: sptr("kriging")}
	if got := o.GetInterpolation(); got != MethodNearest {
		t.Errorf("GetInterpolation(kriging) = %v, want nearest fallback", got)
	}
}

func TestGetThresholdSpec_NonNumericIgnoredWithWarning(t *testing.T) {
	t.Parallel()
	o := RenderOptions{ThresholdMin: sptr("abc"), ThresholdMax: sptr("6.5")}
	spec, warns := o.GetThresholdSpec()
	if spec.Min != nil {
		t.Errorf("Min = %v, want nil for non-numeric input", *spec.Min)
	}
	if spec.Max == nil || *spec.Max != 6.5 {
		t.Errorf("Max = %v, want 6.5", spec.Max)
	}
	if len(warns) != 1 || !strings.Contains(warns[0], "threshold_min") {
		t.Errorf("warnings = %v, want one about threshold_min", warns)
	}
}

func TestGetThresholdSpec_WhitespaceTrimmed(t *testing.T) {
	t.Parallel()
	o := RenderOptions{ThresholdMin: sptr("  2.5 "), ThresholdMax: sptr("   ")}
	spec, warns := o.GetThresholdSpec()
	if spec.Min == nil || *spec.Min != 2.5 {
		t.Errorf("Min = %v, want 2.5", spec.Min)
	}
	if spec.Max != nil {
		t.Errorf("Max = %v, want nil for blank input", *spec.Max)
	}
	if len(warns) != 0 {
		t.Errorf("blank bound must not warn, got %v", warns)
	}
}

func TestRenderOptions_Validate(t *testing.T) {
	t.Parallel()
	bad := -3
	if err := (&RenderOptions{ContourLevels: &bad}).Validate(); err == nil {
		t.Error("negative contour_levels passed validation")
	}
	sz := 5.0
	if err := (&RenderOptions{MarkerSize: &sz}).Validate(); err == nil {
		t.Error("out-of-range marker_size passed validation")
	}
	if err := (&RenderOptions{Interpolation: sptr("spline")}).Validate(); err == nil {
		t.Error("unknown interpolation passed validation")
	}
	if err := (&RenderOptions{ThresholdMin: sptr("not a number")}).Validate(); err != nil {
		t.Errorf("non-numeric threshold must not fail validation: %v", err)
	}
}

func TestLoadRenderOptions(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.json")
	body := `{"interpolation":"cubic","threshold_min":"2","show_contours":true,"contour_levels":5}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadRenderOptions(path)
	if err != nil {
		t.Fatalf("LoadRenderOptions: %v", err)
	}
	if got := opts.GetInterpolation(); got != MethodCubic {
		t.Errorf("interpolation = %v, want cubic", got)
	}
	if got := opts.GetContourLevels(); got != 5 {
		t.Errorf("contour_levels = %d, want 5", got)
	}
	if !opts.GetShowContours() {
		t.Error("show_contours not loaded")
	}
	// Fields absent from the file keep their defaults.
	if got := opts.GetColormap(); got != "RdYlGn" {
		t.Errorf("colormap = %q, want default", got)
	}
}

func TestLoadRenderOptions_Rejections(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	txt := filepath.Join(dir, "preset.txt")
	if err := os.WriteFile(txt, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRenderOptions(txt); err == nil {
		t.Error("non-JSON extension accepted")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"contour_levels":-1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRenderOptions(bad); err == nil {
		t.Error("invalid option values accepted")
	}

	if _, err := LoadRenderOptions(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file accepted")
	}
}
