package monitor

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const echartsAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// handlePlotHTML renders an interactive HTML view of a run using go-echarts.
// The dense grid (regular or interpolated) is shown as a colored point per
// cell; scatter-only renders show the raw samples. A visual map colors
// points by Z.
func (ws *WebServer) handlePlotHTML(w http.ResponseWriter, r *http.Request) {
	res, ok := ws.renderRun(w, r)
	if !ok {
		return
	}

	var data []opts.ScatterData
	symbolSize := 10
	if res.Grid != nil {
		cols, rows := res.Grid.Dims()
		data = make([]opts.ScatterData, 0, cols*rows)
		for c := 0; c < cols; c++ {
			for row := 0; row < rows; row++ {
				z := res.Grid.Z(c, row)
				if z != z { // NaN cell
					continue
				}
				data = append(data, opts.ScatterData{Value: []interface{}{res.Grid.X(c), res.Grid.Y(row), z}})
			}
		}
		if cols > 30 || rows > 30 {
			symbolSize = 4
		}
	} else {
		data = make([]opts.ScatterData, 0, len(res.Samples))
		for _, s := range res.Samples {
			data = append(data, opts.ScatterData{Value: []interface{}{s.X, s.Y, s.Z}})
		}
	}

	var zMin, zMax float64
	if res.Grid != nil {
		zMin, zMax, _ = res.Grid.ValueRange()
	} else {
		for i, s := range res.Samples {
			if i == 0 || s.Z < zMin {
				zMin = s.Z
			}
			if i == 0 || s.Z > zMax {
				zMax = s.Z
			}
		}
	}
	if zMin == zMax {
		zMax = zMin + 1
	}

	subtitle := fmt.Sprintf("points=%d scatter_only=%v", len(data), res.ScatterOnly)
	if res.Classification != nil {
		subtitle += fmt.Sprintf(" pass=%d/%d (%.1f%%)",
			res.Classification.PassCount, res.Classification.Total, res.Classification.PassRate*100)
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Shmoo Plot", Theme: "dark", Width: "900px", Height: "900px", AssetsHost: echartsAssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: "Shmoo Plot: " + res.ZColumn, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: res.XColumn, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: res.YColumn, NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(zMin),
			Max:        float32(zMax),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}},
		}),
	)
	scatter.AddSeries("shmoo", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: symbolSize}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
