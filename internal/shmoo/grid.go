package shmoo

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Grid is a dense matrix of Z values over sorted unique X and Y axis
// vectors. Cells with no measurement hold NaN. A Grid is regular when every
// (x,y) combination implied by the axis vectors was observed in the input,
// i.e. the matrix has no NaN cells.
//
// Grid implements gonum/plot's plotter.GridXYZ so it can feed heatmap and
// contour plotters directly.
type Grid struct {
	// XAxis and YAxis are the sorted unique parameter values.
	XAxis []float64
	YAxis []float64

	// Data has len(YAxis) rows and len(XAxis) columns.
	Data *mat.Dense

	regular bool
}

// BuildGrid classifies samples as a regular grid or an irregular point cloud
// and builds the dense value matrix. Samples with NaN coordinates or values
// are dropped first; if fewer than 3 valid samples remain it returns
// ErrInsufficientData. When a cell receives multiple samples the last one
// wins.
func BuildGrid(samples []Sample) (*Grid, error) {
	clean := CleanSamples(samples)
	if len(clean) < minValidSamples {
		return nil, ErrInsufficientData
	}

	xs := uniqueSorted(clean, func(s Sample) float64 { return s.X })
	ys := uniqueSorted(clean, func(s Sample) float64 { return s.Y })

	data := mat.NewDense(len(ys), len(xs), nil)
	for i := 0; i < len(ys); i++ {
		for j := 0; j < len(xs); j++ {
			data.Set(i, j, math.NaN())
		}
	}

	xIdx := indexOf(xs)
	yIdx := indexOf(ys)
	for _, s := range clean {
		data.Set(yIdx[s.Y], xIdx[s.X], s.Z)
	}

	g := &Grid{XAxis: xs, YAxis: ys, Data: data}
	g.regular = !g.hasNaN()
	return g, nil
}

// newDenseGrid returns a grid over the given axes with all cells NaN.
func newDenseGrid(xs, ys []float64) *Grid {
	data := mat.NewDense(len(ys), len(xs), nil)
	for i := range ys {
		for j := range xs {
			data.Set(i, j, math.NaN())
		}
	}
	return &Grid{XAxis: xs, YAxis: ys, Data: data}
}

// Regular reports whether the grid was built from a complete Cartesian
// product of its axis values.
func (g *Grid) Regular() bool { return g.regular }

// Dims returns the number of columns and rows, satisfying plotter.GridXYZ.
func (g *Grid) Dims() (c, r int) { return len(g.XAxis), len(g.YAxis) }

// X returns the x coordinate of column c.
func (g *Grid) X(c int) float64 { return g.XAxis[c] }

// Y returns the y coordinate of row r.
func (g *Grid) Y(r int) float64 { return g.YAxis[r] }

// Z returns the value at column c, row r. NaN marks an empty cell.
func (g *Grid) Z(c, r int) float64 { return g.Data.At(r, c) }

// ValueRange returns the minimum and maximum cell values, excluding NaN
// cells. ok is false when every cell is NaN.
func (g *Grid) ValueRange() (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	r, c := g.Data.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := g.Data.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			min = math.Min(min, v)
			max = math.Max(max, v)
			ok = true
		}
	}
	if !ok {
		return 0, 0, false
	}
	return min, max, true
}

func (g *Grid) hasNaN() bool {
	r, c := g.Data.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.IsNaN(g.Data.At(i, j)) {
				return true
			}
		}
	}
	return false
}

// uniqueSorted extracts the sorted set of unique values of one coordinate.
func uniqueSorted(samples []Sample, get func(Sample) float64) []float64 {
	seen := make(map[float64]struct{}, len(samples))
	out := make([]float64, 0, len(samples))
	for _, s := range samples {
		v := get(s)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}

func indexOf(vals []float64) map[float64]int {
	idx := make(map[float64]int, len(vals))
	for i, v := range vals {
		idx[v] = i
	}
	return idx
}
