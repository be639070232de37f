package shmoo

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/shmoo.report/internal/monitoring"
)

// denseGridSize is the per-axis resolution of the interpolation target grid,
// matching the 100-point linspace of the original tooling.
const denseGridSize = 100

// RenderResult is the outcome of one render call: the finished drawable
// plot plus derived data for programmatic inspection. It is scoped to one
// call and holds no shared state.
type RenderResult struct {
	Plot *plot.Plot

	// Classification is nil when thresholding is disabled.
	Classification *Classification

	// StatsText is the statistics summary, threshold-based when
	// classification is enabled, descriptive otherwise. Descriptive
	// statistics report the raw measured values even under log scaling.
	StatsText string

	// Warnings lists the non-blocking degradations applied during the
	// render (interpolation fallbacks, ignored threshold bounds).
	Warnings []string

	// ScatterOnly is true when no dense grid was drawn.
	ScatterOnly bool

	// Grid is the dense grid behind the heatmap, nil for scatter renders.
	Grid *Grid

	// Samples are the cleaned samples, log-transformed when log_z_scale is
	// enabled.
	Samples []Sample

	XColumn string
	YColumn string
	ZColumn string
}

// Render runs the full pipeline over one data source snapshot: column
// selection, cleaning, grid classification, optional interpolation and log
// scaling, threshold classification, and drawing. It returns a blocking
// error only for insufficient columns or data; every other failure degrades
// the surface and lands in Warnings.
func Render(src DataSource, opts RenderOptions) (*RenderResult, error) {
	xCol, yCol, zCol, err := SelectColumns(src, &opts)
	if err != nil {
		return nil, err
	}
	raw, err := CollectSamples(src, xCol, yCol, zCol)
	if err != nil {
		return nil, err
	}

	clean := CleanSamples(raw)
	if len(clean) < minValidSamples {
		return nil, ErrInsufficientData
	}

	res := &RenderResult{XColumn: xCol, YColumn: yCol, ZColumn: zCol}

	spec, warns := opts.GetThresholdSpec()
	res.warn(warns...)

	// measured keeps the raw Z values; value labels and descriptive stats
	// report the measurement even when the surface is drawn in log space.
	measured := clean
	if opts.GetLogZScale() {
		transformed, floor := TransformLog(sampleValues(clean))
		scaled := make([]Sample, len(clean))
		for i, s := range clean {
			scaled[i] = Sample{X: s.X, Y: s.Y, Z: transformed[i]}
		}
		clean = scaled
		spec = spec.transform(floor)
	}
	res.Samples = clean

	grid, err := BuildGrid(clean)
	if err != nil {
		return nil, err
	}

	// Dense-or-scatter decision.
	var dense *Grid
	if grid.Regular() {
		dense = grid
	} else {
		method := opts.GetInterpolation()
		if method != MethodNone {
			g, iwarns, ierr := Interpolate(clean, denseGridSize, denseGridSize, method)
			res.warn(iwarns...)
			if ierr != nil {
				res.warn(fmt.Sprintf("%v; falling back to scatter rendering", ierr))
			} else {
				dense = g
			}
		}
	}
	res.Grid = dense
	res.ScatterOnly = dense == nil

	res.Classification = Classify(sampleValues(clean), spec)
	res.StatsText = statsText(res.Classification, sampleValues(measured))

	p := plot.New()
	p.Title.Text = "Shmoo Plot: " + zCol
	p.Title.Padding = vg.Points(8)
	p.X.Label.Text = xCol
	p.Y.Label.Text = yCol

	if opts.GetShowGridLines() {
		p.Add(plotter.NewGrid())
	}

	pal := Colormap(opts.GetColormap())
	passFail := spec.Enabled()

	if dense != nil {
		drawHeatmap(p, dense, pal, opts.GetShowColorbar(), spec)
		if opts.GetShowContours() {
			drawContours(p, dense, opts.GetContourLevels())
		}
		if opts.GetShowMarkers() {
			if err := addMarkers(p, clean); err != nil {
				return nil, err
			}
		}
	} else {
		if err := drawScatter(p, clean, pal, spec, passFail, opts); err != nil {
			return nil, err
		}
	}

	if opts.GetShowValues() {
		if err := addValueLabels(p, ValueLabels(measured)); err != nil {
			return nil, err
		}
	}
	if opts.GetShowStatistics() {
		if err := addStatsBox(p, clean, res.StatsText); err != nil {
			return nil, err
		}
	}

	res.Plot = p
	return res, nil
}

func (r *RenderResult) warn(msgs ...string) {
	for _, m := range msgs {
		monitoring.Logf("shmoo: %s", m)
		r.Warnings = append(r.Warnings, m)
	}
}

// SavePNG writes the finished plot to a PNG file at the given size in
// inches.
func (r *RenderResult) SavePNG(path string, widthIn, heightIn float64) error {
	return r.Plot.Save(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch, path)
}

// WritePNG streams the finished plot as PNG at the given size in inches.
func (r *RenderResult) WritePNG(w io.Writer, widthIn, heightIn float64) error {
	wt, err := r.Plot.WriterTo(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func drawHeatmap(p *plot.Plot, g *Grid, pal palette.Palette, colorbar bool, spec ThresholdSpec) {
	min, max, ok := g.ValueRange()
	if ok && min == max {
		// Flat surface: widen the color range so the map renders a single
		// mid-scale color instead of dividing by zero.
		min, max = min-0.5, max+0.5
	}
	if ok && spec.Min != nil && spec.Max != nil {
		// With both bounds set the surface reads as pass/fail regions: the
		// colormap collapses to three bands split at the bounds.
		pal = bandedPalette(pal, min, max, *spec.Min, *spec.Max)
	}

	h := plotter.NewHeatMap(g, pal)
	if ok {
		h.Min, h.Max = min, max
	}
	p.Add(h)
	if colorbar {
		addColorbarLegend(p, pal, h.Min, h.Max)
	}
}

// bandedPalette quantizes a colormap into three bands split at the
// threshold bounds over the value range [min,max]: below-minimum cells take
// the colormap's first color, passing cells its middle color, above-maximum
// cells its last color. The heatmap interpolates colors linearly over the
// range, so the band edges are realized by repeating the band color across
// every bin whose center falls inside the band.
func bandedPalette(pal palette.Palette, min, max, lo, hi float64) palette.Palette {
	base := pal.Colors()
	if len(base) == 0 || max <= min {
		return pal
	}
	first := base[0]
	mid := base[len(base)/2]
	last := base[len(base)-1]

	out := make(listPalette, colormapColors)
	step := (max - min) / float64(colormapColors)
	for i := range out {
		center := min + (float64(i)+0.5)*step
		switch {
		case center < lo:
			out[i] = first
		case center > hi:
			out[i] = last
		default:
			out[i] = mid
		}
	}
	return out
}

func drawContours(p *plot.Plot, g *Grid, levelCount int) {
	levels := ContourLevels(g, levelCount)
	if len(levels) == 0 {
		return // flat or empty grid; nothing to contour
	}
	c := plotter.NewContour(g, levels, listPalette{color.NRGBA{A: 0x80}})
	p.Add(c)
}

func drawScatter(p *plot.Plot, samples []Sample, pal palette.Palette, spec ThresholdSpec, passFail bool, opts RenderOptions) error {
	xys := make(plotter.XYs, len(samples))
	for i, s := range samples {
		xys[i] = plotter.XY{X: s.X, Y: s.Y}
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}

	radius := markerRadius(opts.GetMarkerSize())
	min, max := valueSpan(samples)
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		var col color.Color
		if passFail {
			v := samples[i].Z
			pass := (spec.Min == nil || v >= *spec.Min) && (spec.Max == nil || v <= *spec.Max)
			if pass {
				col = color.RGBA{G: 0xa0, A: 0xff}
			} else {
				col = color.RGBA{R: 0xd0, A: 0xff}
			}
		} else {
			col = paletteColor(pal, normalize(samples[i].Z, min, max))
		}
		return draw.GlyphStyle{Color: col, Radius: radius, Shape: draw.CircleGlyph{}}
	}
	p.Add(sc)

	if !passFail && opts.GetShowColorbar() {
		addColorbarLegend(p, pal, min, max)
	}
	return nil
}

// addMarkers overlays small black dots at the raw sample positions.
func addMarkers(p *plot.Plot, samples []Sample) error {
	xys := make(plotter.XYs, len(samples))
	for i, s := range samples {
		xys[i] = plotter.XY{X: s.X, Y: s.Y}
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("markers: %w", err)
	}
	sc.GlyphStyle = draw.GlyphStyle{
		Color:  color.RGBA{A: 0xb0},
		Radius: vg.Points(1.5),
		Shape:  draw.CircleGlyph{},
	}
	p.Add(sc)
	return nil
}

// addValueLabels draws one label per deduplicated sample position with a
// white underlay in four directions so the text stays legible on any cell
// color.
func addValueLabels(p *plot.Plot, labels []ValueLabel) error {
	if len(labels) == 0 {
		return nil
	}
	xys := make(plotter.XYs, len(labels))
	texts := make([]string, len(labels))
	for i, l := range labels {
		xys[i] = plotter.XY{X: l.X, Y: l.Y}
		texts[i] = l.Text
	}

	offsets := []vg.Point{
		{X: vg.Points(-0.7)}, {X: vg.Points(0.7)},
		{Y: vg.Points(-0.7)}, {Y: vg.Points(0.7)},
	}
	for _, off := range offsets {
		under, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
		if err != nil {
			return fmt.Errorf("labels: %w", err)
		}
		under.Offset = off
		for i := range under.TextStyle {
			under.TextStyle[i].Color = color.White
			under.TextStyle[i].XAlign = text.XCenter
		}
		p.Add(under)
	}

	over, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return fmt.Errorf("labels: %w", err)
	}
	for i := range over.TextStyle {
		over.TextStyle[i].Color = color.Black
		over.TextStyle[i].XAlign = text.XCenter
	}
	p.Add(over)
	return nil
}

// addStatsBox anchors the statistics text near the top-left corner of the
// data area.
func addStatsBox(p *plot.Plot, samples []Sample, stats string) error {
	xMin, xMax, _, yMax, ok := sampleBounds(samples)
	if !ok || stats == "" {
		return nil
	}
	x := xMin + 0.02*(xMax-xMin)
	lbl, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: x, Y: yMax}},
		Labels: []string{stats},
	})
	if err != nil {
		return fmt.Errorf("stats box: %w", err)
	}
	lbl.TextStyle[0].Color = color.Black
	lbl.TextStyle[0].YAlign = text.YTop
	p.Add(lbl)
	return nil
}

func addColorbarLegend(p *plot.Plot, pal palette.Palette, min, max float64) {
	thumbs := plotter.PaletteThumbnailers(pal)
	for i := len(thumbs) - 1; i >= 0; i-- {
		var name string
		switch i {
		case 0:
			name = fmt.Sprintf("%.3g", min)
		case len(thumbs) - 1:
			name = fmt.Sprintf("%.3g", max)
		}
		p.Legend.Add(name, thumbs[i])
	}
	p.Legend.Top = true
	p.Legend.XOffs = -vg.Points(5)
}

// statsText formats the statistics box content: pass/fail counts and
// margins when classification ran, a descriptive summary otherwise.
func statsText(c *Classification, values []float64) string {
	if c != nil {
		return fmt.Sprintf("Pass: %d/%d (%.1f%%)\nMin Margin: %.3f\nMax Margin: %.3f",
			c.PassCount, c.Total, c.PassRate*100, c.MinMargin, c.MaxMargin)
	}
	if len(values) == 0 {
		return ""
	}
	min, max := math.Inf(1), math.Inf(-1)
	var sum float64
	for _, v := range values {
		min = math.Min(min, v)
		max = math.Max(max, v)
		sum += v
	}
	return fmt.Sprintf("Points: %d\nMin: %.3f\nMax: %.3f\nMean: %.3f",
		len(values), min, max, sum/float64(len(values)))
}

// markerRadius maps the matplotlib-style marker area (points squared) to a
// glyph radius.
func markerRadius(size float64) vg.Length {
	return vg.Points(math.Sqrt(size) / 2)
}

func valueSpan(samples []Sample) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, s := range samples {
		min = math.Min(min, s.Z)
		max = math.Max(max, s.Z)
	}
	return min, max
}

func normalize(v, min, max float64) float64 {
	if max == min {
		return 0.5
	}
	return (v - min) / (max - min)
}

func paletteColor(pal palette.Palette, t float64) color.Color {
	cs := pal.Colors()
	if len(cs) == 0 {
		return color.Black
	}
	i := int(t * float64(len(cs)-1))
	if i < 0 {
		i = 0
	}
	if i >= len(cs) {
		i = len(cs) - 1
	}
	return cs[i]
}
