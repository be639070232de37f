package shmoo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// RenderOptions configures one render call. All fields are optional; the
// Get* accessors supply defaults for unset fields. The structure is never
// mutated by the pipeline, so one value can be shared across renders. The
// JSON schema doubles as an option-preset file format.
//
// Threshold bounds arrive as strings because they come from free-form UI
// entry fields; a bound that fails to parse is treated as absent so a typo
// degrades classification instead of failing the whole render.
type RenderOptions struct {
	XColumn *string `json:"x_column,omitempty"`
	YColumn *string `json:"y_column,omitempty"`
	ZColumn *string `json:"z_column,omitempty"`

	Interpolation *string `json:"interpolation,omitempty"` // none|nearest|bilinear|cubic
	ThresholdMin  *string `json:"threshold_min,omitempty"`
	ThresholdMax  *string `json:"threshold_max,omitempty"`
	LogZScale     *bool   `json:"log_z_scale,omitempty"`

	ShowContours  *bool `json:"show_contours,omitempty"`
	ContourLevels *int  `json:"contour_levels,omitempty"`

	ShowMarkers *bool    `json:"show_markers,omitempty"`
	MarkerSize  *float64 `json:"marker_size,omitempty"`

	ShowValues     *bool `json:"show_values,omitempty"`
	ShowStatistics *bool `json:"show_statistics,omitempty"`

	Colormap      *string `json:"colormap,omitempty"`
	ShowColorbar  *bool   `json:"show_colorbar,omitempty"`
	ShowGridLines *bool   `json:"show_grid_lines,omitempty"`
}

// LoadRenderOptions loads a RenderOptions preset from a JSON file. Fields
// omitted from the file keep their defaults, so partial presets are safe.
func LoadRenderOptions(path string) (*RenderOptions, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("options file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat options file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("options file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}

	opts := &RenderOptions{}
	if err := json.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("failed to parse options JSON: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return opts, nil
}

// Validate checks option values that have no graceful degradation path.
// Unparseable thresholds are deliberately not validation errors.
func (o *RenderOptions) Validate() error {
	if o.Interpolation != nil {
		if _, err := ParseMethod(*o.Interpolation); err != nil {
			return err
		}
	}
	if o.ContourLevels != nil && *o.ContourLevels <= 0 {
		return fmt.Errorf("contour_levels must be positive, got %d", *o.ContourLevels)
	}
	if o.MarkerSize != nil && (*o.MarkerSize < 10 || *o.MarkerSize > 200) {
		return fmt.Errorf("marker_size must be in [10,200], got %g", *o.MarkerSize)
	}
	return nil
}

// GetInterpolation returns the interpolation method or the default
// (nearest). Unknown strings fall back to nearest.
func (o *RenderOptions) GetInterpolation() Method {
	if o.Interpolation == nil {
		return MethodNearest
	}
	m, err := ParseMethod(*o.Interpolation)
	if err != nil {
		return MethodNearest
	}
	return m
}

// GetThresholdSpec parses the threshold bound strings. A bound that is
// absent, empty, or non-numeric is nil; warnings report dropped bounds.
func (o *RenderOptions) GetThresholdSpec() (ThresholdSpec, []string) {
	var spec ThresholdSpec
	var warnings []string
	parse := func(raw *string, name string) *float64 {
		if raw == nil {
			return nil
		}
		s := strings.TrimSpace(*raw)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("ignoring non-numeric %s %q", name, s))
			return nil
		}
		return &v
	}
	spec.Min = parse(o.ThresholdMin, "threshold_min")
	spec.Max = parse(o.ThresholdMax, "threshold_max")
	return spec, warnings
}

// GetLogZScale returns whether the safe-floor log transform is enabled.
func (o *RenderOptions) GetLogZScale() bool {
	return o.LogZScale != nil && *o.LogZScale
}

// GetShowContours returns whether contour lines are drawn.
func (o *RenderOptions) GetShowContours() bool {
	return o.ShowContours != nil && *o.ShowContours
}

// GetContourLevels returns the contour level count or the default.
func (o *RenderOptions) GetContourLevels() int {
	if o.ContourLevels == nil || *o.ContourLevels <= 0 {
		return 10
	}
	return *o.ContourLevels
}

// GetShowMarkers returns whether sample markers are drawn over the surface.
func (o *RenderOptions) GetShowMarkers() bool {
	return o.ShowMarkers != nil && *o.ShowMarkers
}

// GetMarkerSize returns the marker size clamped to [10,200], default 50.
// The value is matplotlib-style area in points squared; the renderer maps
// it to a glyph radius.
func (o *RenderOptions) GetMarkerSize() float64 {
	if o.MarkerSize == nil {
		return 50
	}
	v := *o.MarkerSize
	if v < 10 {
		return 10
	}
	if v > 200 {
		return 200
	}
	return v
}

// GetShowValues returns whether per-point value labels are drawn.
func (o *RenderOptions) GetShowValues() bool {
	return o.ShowValues != nil && *o.ShowValues
}

// GetShowStatistics returns whether the statistics text box is drawn.
func (o *RenderOptions) GetShowStatistics() bool {
	return o.ShowStatistics != nil && *o.ShowStatistics
}

// GetColormap returns the colormap name or the default diverging
// red-yellow-green scale.
func (o *RenderOptions) GetColormap() string {
	if o.Colormap == nil || *o.Colormap == "" {
		return "RdYlGn"
	}
	return *o.Colormap
}

// GetShowColorbar returns whether the colorbar legend is drawn. Default true.
func (o *RenderOptions) GetShowColorbar() bool {
	return o.ShowColorbar == nil || *o.ShowColorbar
}

// GetShowGridLines returns whether axis grid lines are drawn. Default true.
func (o *RenderOptions) GetShowGridLines() bool {
	return o.ShowGridLines == nil || *o.ShowGridLines
}
