// Package monitor serves stored sweep runs over HTTP: JSON APIs for runs
// and classification results, a PNG endpoint for the gonum/plot surface,
// and an interactive go-echarts HTML view.
package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/banshee-data/shmoo.report/internal/monitoring"
	"github.com/banshee-data/shmoo.report/internal/shmoo"
	storage "github.com/banshee-data/shmoo.report/internal/shmoo/storage/sqlite"
	"github.com/banshee-data/shmoo.report/internal/version"
)

// WebServer exposes the shmoo rendering pipeline over HTTP.
type WebServer struct {
	store  *storage.Store
	server *http.Server
}

// NewWebServer creates a server bound to addr, backed by the given sweep
// store.
func NewWebServer(store *storage.Store, addr string) *WebServer {
	ws := &WebServer{store: store}
	ws.server = &http.Server{
		Addr:         addr,
		Handler:      ws.setupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return ws
}

func (ws *WebServer) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", ws.handleHealth)
	mux.HandleFunc("/api/runs", ws.handleRuns)
	mux.HandleFunc("/api/classification", ws.handleClassification)
	mux.HandleFunc("/plot.png", ws.handlePlotPNG)
	mux.HandleFunc("/plot", ws.handlePlotHTML)
	return mux
}

// Handler returns the route multiplexer, for embedding and tests.
func (ws *WebServer) Handler() http.Handler { return ws.server.Handler }

// Start serves until the context is cancelled.
func (ws *WebServer) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		monitoring.Logf("shmoo web server listening on %s", ws.server.Addr)
		errCh <- ws.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return ws.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (ws *WebServer) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "version": version.Version})
}

func (ws *WebServer) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	runs, err := ws.store.Runs()
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("list runs: %v", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

// handleClassification renders a run without drawing and returns the
// ClassificationResult for automated pass/fail reporting.
func (ws *WebServer) handleClassification(w http.ResponseWriter, r *http.Request) {
	res, ok := ws.renderRun(w, r)
	if !ok {
		return
	}
	if res.Classification == nil {
		ws.writeJSONError(w, http.StatusBadRequest, "classification disabled: no threshold bounds set")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		*shmoo.Classification
		Warnings []string `json:"warnings,omitempty"`
	}{res.Classification, res.Warnings})
}

// handlePlotPNG streams the gonum/plot surface for a run.
func (ws *WebServer) handlePlotPNG(w http.ResponseWriter, r *http.Request) {
	res, ok := ws.renderRun(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := res.WritePNG(w, 8, 6); err != nil {
		monitoring.Logf("stream png: %v", err)
	}
}

// renderRun resolves the run, parses render options from the query string,
// and runs the pipeline. On failure it writes the error response and
// returns ok=false.
func (ws *WebServer) renderRun(w http.ResponseWriter, r *http.Request) (*shmoo.RenderResult, bool) {
	if r.Method != http.MethodGet {
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return nil, false
	}
	runID := r.URL.Query().Get("run")
	if runID == "" {
		ws.writeJSONError(w, http.StatusBadRequest, "missing 'run' parameter")
		return nil, false
	}

	src, err := ws.store.DataSource(runID)
	if err != nil {
		ws.writeJSONError(w, http.StatusNotFound, fmt.Sprintf("load run: %v", err))
		return nil, false
	}

	opts := optionsFromQuery(r)
	res, err := shmoo.Render(src, opts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, shmoo.ErrInsufficientColumns) || errors.Is(err, shmoo.ErrInsufficientData) {
			status = http.StatusUnprocessableEntity
		}
		ws.writeJSONError(w, status, err.Error())
		return nil, false
	}
	return res, true
}

// optionsFromQuery maps query parameters onto RenderOptions. Unknown or
// malformed values degrade the same way they do everywhere else in the
// pipeline.
func optionsFromQuery(r *http.Request) shmoo.RenderOptions {
	q := r.URL.Query()
	var opts shmoo.RenderOptions

	strParam := func(name string) *string {
		if v := q.Get(name); v != "" {
			return &v
		}
		return nil
	}
	boolParam := func(name string) *bool {
		switch q.Get(name) {
		case "1", "true", "yes":
			v := true
			return &v
		case "0", "false", "no":
			v := false
			return &v
		}
		return nil
	}

	opts.XColumn = strParam("x")
	opts.YColumn = strParam("y")
	opts.ZColumn = strParam("z")
	opts.Interpolation = strParam("interpolation")
	opts.ThresholdMin = strParam("threshold_min")
	opts.ThresholdMax = strParam("threshold_max")
	opts.Colormap = strParam("colormap")
	opts.LogZScale = boolParam("log_z")
	opts.ShowContours = boolParam("contours")
	opts.ShowMarkers = boolParam("markers")
	opts.ShowValues = boolParam("values")
	opts.ShowStatistics = boolParam("stats")
	opts.ShowColorbar = boolParam("colorbar")
	opts.ShowGridLines = boolParam("grid_lines")

	if v := q.Get("contour_levels"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil && n > 0 {
			opts.ContourLevels = &n
		}
	}
	if v := q.Get("marker_size"); v != "" {
		var f float64
		if _, err := fmt.Sscanf(v, "%g", &f); err == nil {
			opts.MarkerSize = &f
		}
	}
	return opts
}
