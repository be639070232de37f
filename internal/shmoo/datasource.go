package shmoo

import "fmt"

// DataSource exposes named numeric columns from a tabular snapshot. The
// source is read-only for the duration of one render call; mutating it
// mid-render is undefined behavior and must be prevented by the caller.
type DataSource interface {
	// Columns returns the numeric column names in source order.
	Columns() []string
	// Column returns the values of a named column, or ok=false when the
	// column does not exist.
	Column(name string) (values []float64, ok bool)
}

// MemorySource is an in-memory DataSource, the adapter used by CSV loading
// and tests.
type MemorySource struct {
	names  []string
	values map[string][]float64
}

// NewMemorySource builds a MemorySource from ordered column names and data.
func NewMemorySource(names []string, values map[string][]float64) *MemorySource {
	return &MemorySource{names: names, values: values}
}

// Columns returns the column names in insertion order.
func (m *MemorySource) Columns() []string { return m.names }

// Column returns a named column's values.
func (m *MemorySource) Column(name string) ([]float64, bool) {
	v, ok := m.values[name]
	return v, ok
}

// SelectColumns resolves the X, Y, Z column names for a render: explicit
// names from the options when present in the source, positional fallback to
// the first three numeric columns otherwise. Fewer than three numeric
// columns is a blocking ErrInsufficientColumns.
func SelectColumns(src DataSource, opts *RenderOptions) (x, y, z string, err error) {
	cols := src.Columns()
	if len(cols) < 3 {
		return "", "", "", ErrInsufficientColumns
	}

	pick := func(requested *string, fallback string) string {
		if requested == nil || *requested == "" {
			return fallback
		}
		if _, ok := src.Column(*requested); !ok {
			return fallback
		}
		return *requested
	}
	return pick(opts.XColumn, cols[0]), pick(opts.YColumn, cols[1]), pick(opts.ZColumn, cols[2]), nil
}

// CollectSamples zips three columns into samples. Columns of unequal length
// are truncated to the shortest, mirroring a ragged table edit in progress.
func CollectSamples(src DataSource, x, y, z string) ([]Sample, error) {
	xv, ok := src.Column(x)
	if !ok {
		return nil, fmt.Errorf("column %q not found", x)
	}
	yv, ok := src.Column(y)
	if !ok {
		return nil, fmt.Errorf("column %q not found", y)
	}
	zv, ok := src.Column(z)
	if !ok {
		return nil, fmt.Errorf("column %q not found", z)
	}

	n := len(xv)
	if len(yv) < n {
		n = len(yv)
	}
	if len(zv) < n {
		n = len(zv)
	}

	samples := make([]Sample, n)
	for i := 0; i < n; i++ {
		samples[i] = Sample{X: xv[i], Y: yv[i], Z: zv[i]}
	}
	return samples, nil
}
