package shmoo

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Point is a 2D coordinate in data space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polyline is one connected iso-value contour line.
type Polyline struct {
	Level  float64 `json:"level"`
	Points []Point `json:"points"`
}

// ContourLevels returns levelCount evenly spaced iso-values spanning the
// grid's NaN-excluded value range. It returns nil for an all-NaN or
// constant-value grid (iso-lines are meaningless on a flat surface) and for
// a non-positive level count.
func ContourLevels(g *Grid, levelCount int) []float64 {
	if g == nil || levelCount <= 0 {
		return nil
	}
	min, max, ok := g.ValueRange()
	if !ok || min == max {
		return nil
	}
	// Levels sit strictly inside the range, splitting it into levelCount+1
	// bands, so the extremes themselves are not drawn as lines.
	span := make([]float64, levelCount+2)
	floats.Span(span, min, max)
	return span[1 : levelCount+1]
}

// Contours extracts iso-value polylines from a dense grid at levelCount
// evenly spaced levels using marching squares. Cells with a NaN corner are
// skipped. Degenerate grids yield an empty set rather than an error.
func Contours(g *Grid, levelCount int) []Polyline {
	levels := ContourLevels(g, levelCount)
	if levels == nil {
		return nil
	}

	var out []Polyline
	for _, level := range levels {
		segs := marchingSquares(g, level)
		for _, line := range chainSegments(segs) {
			out = append(out, Polyline{Level: level, Points: line})
		}
	}
	return out
}

// segment is one contour crossing of a single grid cell.
type segment struct {
	a, b Point
}

// marchingSquares walks every 2x2 cell of the grid and emits the level
// crossings. The ambiguous saddle cases (5 and 10) are resolved by the cell
// center average, the common disambiguation.
func marchingSquares(g *Grid, level float64) []segment {
	cols, rows := g.Dims()
	var segs []segment
	for r := 0; r < rows-1; r++ {
		for c := 0; c < cols-1; c++ {
			// Corner values: bl, br, tr, tl in grid coordinates.
			bl := g.Z(c, r)
			br := g.Z(c+1, r)
			tr := g.Z(c+1, r+1)
			tl := g.Z(c, r+1)
			if math.IsNaN(bl) || math.IsNaN(br) || math.IsNaN(tr) || math.IsNaN(tl) {
				continue
			}

			idx := 0
			if bl >= level {
				idx |= 1
			}
			if br >= level {
				idx |= 2
			}
			if tr >= level {
				idx |= 4
			}
			if tl >= level {
				idx |= 8
			}
			if idx == 0 || idx == 15 {
				continue
			}

			x0, x1 := g.X(c), g.X(c+1)
			y0, y1 := g.Y(r), g.Y(r+1)
			lerp := func(va, vb, pa, pb float64) float64 {
				if va == vb {
					return (pa + pb) / 2
				}
				return pa + (level-va)/(vb-va)*(pb-pa)
			}
			bottom := Point{X: lerp(bl, br, x0, x1), Y: y0}
			top := Point{X: lerp(tl, tr, x0, x1), Y: y1}
			left := Point{X: x0, Y: lerp(bl, tl, y0, y1)}
			right := Point{X: x1, Y: lerp(br, tr, y0, y1)}

			switch idx {
			case 1, 14:
				segs = append(segs, segment{left, bottom})
			case 2, 13:
				segs = append(segs, segment{bottom, right})
			case 3, 12:
				segs = append(segs, segment{left, right})
			case 4, 11:
				segs = append(segs, segment{top, right})
			case 6, 9:
				segs = append(segs, segment{bottom, top})
			case 7, 8:
				segs = append(segs, segment{left, top})
			case 5, 10:
				center := (bl + br + tr + tl) / 4
				if (idx == 5) == (center >= level) {
					segs = append(segs, segment{left, top}, segment{bottom, right})
				} else {
					segs = append(segs, segment{left, bottom}, segment{top, right})
				}
			}
		}
	}
	return segs
}

// chainSegments joins cell-local segments sharing endpoints into polylines.
func chainSegments(segs []segment) [][]Point {
	type key struct{ x, y float64 }
	quant := func(p Point) key {
		return key{math.Round(p.X*1e9) / 1e9, math.Round(p.Y*1e9) / 1e9}
	}

	adj := make(map[key][]int)
	for i, s := range segs {
		adj[quant(s.a)] = append(adj[quant(s.a)], i)
		adj[quant(s.b)] = append(adj[quant(s.b)], i)
	}

	used := make([]bool, len(segs))
	takeNext := func(at key, self int) (int, bool) {
		for _, i := range adj[at] {
			if !used[i] && i != self {
				return i, true
			}
		}
		return 0, false
	}

	var lines [][]Point
	for start := range segs {
		if used[start] {
			continue
		}
		used[start] = true
		line := []Point{segs[start].a, segs[start].b}

		// Extend forward from b, then backward from a.
		for end := 0; end < 2; end++ {
			at := quant(line[len(line)-1])
			for {
				i, ok := takeNext(at, -1)
				if !ok {
					break
				}
				used[i] = true
				next := segs[i].b
				if quant(segs[i].b) == at {
					next = segs[i].a
				}
				line = append(line, next)
				at = quant(next)
			}
			// Reverse so the second pass extends the other end.
			for i, j := 0, len(line)-1; i < j; i, j = i+1, j-1 {
				line[i], line[j] = line[j], line[i]
			}
		}
		lines = append(lines, line)
	}
	return lines
}
