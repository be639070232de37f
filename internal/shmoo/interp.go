package shmoo

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// Method selects how scattered samples are resampled onto a dense grid.
// The set is closed so dispatch stays exhaustively checkable.
type Method int

const (
	// MethodNone produces no dense grid; the renderer draws scatter markers.
	MethodNone Method = iota
	// MethodNearest assigns each cell the Z of its nearest sample. Blocky
	// and discontinuous by design.
	MethodNearest
	// MethodBilinear fits a local least-squares plane over the nearest
	// samples. Cells outside the convex hull of the input stay NaN.
	MethodBilinear
	// MethodCubic interpolates with a cubic (r³) radial basis function.
	// Sparse inputs fall back to bilinear rather than producing distorted
	// artifacts.
	MethodCubic
)

// cubicMinSamples is the sample count below which cubic interpolation falls
// back to bilinear. A tunable default, not a hard contract.
const cubicMinSamples = 16

// bilinearNeighbors is the number of nearest samples used for each local
// plane fit.
const bilinearNeighbors = 8

// ParseMethod maps an option string to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "none":
		return MethodNone, nil
	case "", "nearest":
		return MethodNearest, nil
	case "bilinear":
		return MethodBilinear, nil
	case "cubic":
		return MethodCubic, nil
	}
	return MethodNearest, fmt.Errorf("unknown interpolation method %q", s)
}

// String returns the option-string form of the method.
func (m Method) String() string {
	switch m {
	case MethodNone:
		return "none"
	case MethodNearest:
		return "nearest"
	case MethodBilinear:
		return "bilinear"
	case MethodCubic:
		return "cubic"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// Interpolate fills a cols×rows dense grid spanning the sample bounding box
// from scattered samples. For MethodNone it returns a nil grid and the
// caller must render scatter markers. Recoverable degradations (cubic
// falling back to bilinear) are reported as warnings; degenerate geometry
// returns ErrInterpolationUnavailable so the caller can fall back to plain
// scatter rendering.
func Interpolate(samples []Sample, cols, rows int, method Method) (*Grid, []string, error) {
	if method == MethodNone {
		return nil, nil, nil
	}
	clean := CleanSamples(samples)
	if len(clean) < minValidSamples {
		return nil, nil, ErrInsufficientData
	}
	if cols < 2 || rows < 2 {
		return nil, nil, fmt.Errorf("%w: target grid %dx%d too small", ErrInterpolationUnavailable, cols, rows)
	}

	xMin, xMax, yMin, yMax, _ := sampleBounds(clean)
	if xMin == xMax || yMin == yMax {
		return nil, nil, fmt.Errorf("%w: samples span a single %s value", ErrInterpolationUnavailable, degenerateAxis(xMin == xMax))
	}

	xs := make([]float64, cols)
	ys := make([]float64, rows)
	floats.Span(xs, xMin, xMax)
	floats.Span(ys, yMin, yMax)
	grid := newDenseGrid(xs, ys)

	var warnings []string
	switch method {
	case MethodNearest:
		interpNearest(clean, grid)
	case MethodBilinear, MethodCubic:
		hull := convexHull(clean)
		if len(hull) < 3 {
			return nil, nil, fmt.Errorf("%w: input points are collinear", ErrInterpolationUnavailable)
		}
		if method == MethodCubic && len(clean) < cubicMinSamples {
			warnings = append(warnings,
				fmt.Sprintf("cubic interpolation needs at least %d points, have %d; using bilinear", cubicMinSamples, len(clean)))
			method = MethodBilinear
		}
		if method == MethodCubic {
			if err := interpCubic(clean, grid, hull); err != nil {
				warnings = append(warnings, fmt.Sprintf("cubic solve failed (%v); using bilinear", err))
				interpBilinear(clean, grid, hull)
			}
		} else {
			interpBilinear(clean, grid, hull)
		}
	default:
		return nil, nil, fmt.Errorf("%w: method %v", ErrInterpolationUnavailable, method)
	}

	return grid, warnings, nil
}

func degenerateAxis(isX bool) string {
	if isX {
		return "X"
	}
	return "Y"
}

// treePoint adapts a sample to gonum's kd-tree.
type treePoint struct {
	x, y, z float64
}

func (p treePoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(treePoint)
	switch d {
	case 0:
		return p.x - q.x
	case 1:
		return p.y - q.y
	default:
		panic("illegal dimension")
	}
}

func (p treePoint) Dims() int { return 2 }

func (p treePoint) Distance(c kdtree.Comparable) float64 {
	q := c.(treePoint)
	dx, dy := p.x-q.x, p.y-q.y
	return dx*dx + dy*dy
}

// treePoints satisfies kdtree.Interface.
type treePoints []treePoint

func (p treePoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p treePoints) Len() int                              { return len(p) }
func (p treePoints) Slice(start, end int) kdtree.Interface { return p[start:end] }
func (p treePoints) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(pointPlane{treePoints: p, Dim: d}, kdtree.MedianOfMedians(pointPlane{treePoints: p, Dim: d}))
}

// pointPlane satisfies kdtree.SortSlicer over one dimension.
type pointPlane struct {
	treePoints
	kdtree.Dim
}

func (p pointPlane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.treePoints[i].x < p.treePoints[j].x
	case 1:
		return p.treePoints[i].y < p.treePoints[j].y
	default:
		panic("illegal dimension")
	}
}

func (p pointPlane) Slice(start, end int) kdtree.SortSlicer {
	return pointPlane{treePoints: p.treePoints[start:end], Dim: p.Dim}
}

func (p pointPlane) Swap(i, j int) {
	p.treePoints[i], p.treePoints[j] = p.treePoints[j], p.treePoints[i]
}

func buildTree(samples []Sample) *kdtree.Tree {
	pts := make(treePoints, len(samples))
	for i, s := range samples {
		pts[i] = treePoint{x: s.X, y: s.Y, z: s.Z}
	}
	return kdtree.New(pts, false)
}

// interpNearest assigns every cell the Z of its nearest sample by Euclidean
// distance. Defined everywhere, so no hull mask.
func interpNearest(samples []Sample, grid *Grid) {
	tree := buildTree(samples)
	for r, y := range grid.YAxis {
		for c, x := range grid.XAxis {
			got, _ := tree.Nearest(treePoint{x: x, y: y})
			grid.Data.Set(r, c, got.(treePoint).z)
		}
	}
}

// interpBilinear fits a least-squares plane through the nearest samples of
// each cell inside the convex hull. A cell coinciding with a sample takes
// the sample value exactly.
func interpBilinear(samples []Sample, grid *Grid, hull []Sample) {
	tree := buildTree(samples)
	k := bilinearNeighbors
	if k > len(samples) {
		k = len(samples)
	}

	for r, y := range grid.YAxis {
		for c, x := range grid.XAxis {
			if !insideHull(hull, x, y) {
				continue
			}

			keeper := kdtree.NewNKeeper(k)
			tree.NearestSet(keeper, treePoint{x: x, y: y})

			var near []treePoint
			exact := math.NaN()
			for _, cd := range keeper.Heap {
				if cd.Comparable == nil {
					continue
				}
				p := cd.Comparable.(treePoint)
				if cd.Dist == 0 {
					exact = p.z
				}
				near = append(near, p)
			}
			if !math.IsNaN(exact) {
				grid.Data.Set(r, c, exact)
				continue
			}
			if v, ok := fitPlane(near, x, y); ok {
				grid.Data.Set(r, c, v)
			}
		}
	}
}

// fitPlane solves z = a + b·x + c·y over the neighbor set by least squares
// and evaluates the plane at (x, y).
func fitPlane(near []treePoint, x, y float64) (float64, bool) {
	if len(near) < 3 {
		return 0, false
	}
	a := mat.NewDense(len(near), 3, nil)
	b := mat.NewVecDense(len(near), nil)
	for i, p := range near {
		a.Set(i, 0, 1)
		a.Set(i, 1, p.x)
		a.Set(i, 2, p.y)
		b.SetVec(i, p.z)
	}

	var coef mat.VecDense
	if err := coef.SolveVec(a, b); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return 0, false
		}
	}
	return coef.AtVec(0) + coef.AtVec(1)*x + coef.AtVec(2)*y, true
}

// interpCubic solves a global radial-basis system with the cubic kernel r³
// and evaluates it at every cell inside the hull. Exact at the sample
// coordinates. Returns an error when the system is singular.
func interpCubic(samples []Sample, grid *Grid, hull []Sample) error {
	n := len(samples)
	a := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)
	for i, si := range samples {
		for j, sj := range samples {
			a.Set(i, j, cubicKernel(si.X, si.Y, sj.X, sj.Y))
		}
		b.SetVec(i, si.Z)
	}

	var w mat.VecDense
	if err := w.SolveVec(a, b); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return err
		}
	}

	for r, y := range grid.YAxis {
		for c, x := range grid.XAxis {
			if !insideHull(hull, x, y) {
				continue
			}
			var v float64
			for i, s := range samples {
				v += w.AtVec(i) * cubicKernel(x, y, s.X, s.Y)
			}
			grid.Data.Set(r, c, v)
		}
	}
	return nil
}

func cubicKernel(x1, y1, x2, y2 float64) float64 {
	r := math.Hypot(x1-x2, y1-y2)
	return r * r * r
}

// convexHull computes the convex hull of the sample coordinates with the
// monotone chain algorithm, returned in counter-clockwise order. Collinear
// inputs yield fewer than 3 vertices.
func convexHull(samples []Sample) []Sample {
	pts := make([]Sample, len(samples))
	copy(pts, samples)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	// Drop exact coordinate duplicates.
	uniq := pts[:0]
	for i, p := range pts {
		if i > 0 && p.X == pts[i-1].X && p.Y == pts[i-1].Y {
			continue
		}
		uniq = append(uniq, p)
	}
	pts = uniq
	if len(pts) < 3 {
		return pts
	}

	cross := func(o, a, b Sample) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	var lower, upper []Sample
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

// insideHull tests point containment in a counter-clockwise convex polygon.
// Boundary points count as inside, with a small relative tolerance so cells
// on the bounding-box edge are not dropped to float noise.
func insideHull(hull []Sample, x, y float64) bool {
	if len(hull) < 3 {
		return false
	}
	const eps = 1e-9
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		cross := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
		scale := math.Abs(b.X-a.X) + math.Abs(b.Y-a.Y) + 1
		if cross < -eps*scale {
			return false
		}
	}
	return true
}
