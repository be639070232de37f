// Command shmoo renders a shmoo plot PNG from a CSV file or a stored sweep
// run and prints the derived statistics.
//
// Examples:
//
//	shmoo -input sweep.csv -o sweep.png -threshold-min 2 -contours
//	shmoo -db sweeps.db -import sweep.csv -name "vcore vs freq"
//	shmoo -db sweeps.db -run <run-id> -o sweep.png -interpolation cubic
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/banshee-data/shmoo.report/internal/shmoo"
	storage "github.com/banshee-data/shmoo.report/internal/shmoo/storage/sqlite"
	"github.com/banshee-data/shmoo.report/internal/version"
)

func main() {
	var (
		inputPath   = flag.String("input", "", "CSV file with at least 3 numeric columns")
		dbPath      = flag.String("db", "", "sweep store sqlite database")
		runID       = flag.String("run", "", "render a stored run by ID (requires -db)")
		importCSV   = flag.String("import", "", "import a CSV file into the sweep store (requires -db)")
		runName     = flag.String("name", "", "name for an imported run")
		migrations  = flag.String("migrations", "migrations", "migrations directory for the sweep store")
		listRuns    = flag.Bool("list", false, "list stored runs (requires -db)")
		output      = flag.String("o", "shmoo.png", "output PNG path")
		widthIn     = flag.Float64("width", 8, "output width in inches")
		heightIn    = flag.Float64("height", 6, "output height in inches")
		optionsPath = flag.String("options", "", "JSON options preset file")

		xCol          = flag.String("x", "", "X parameter column (default: first numeric column)")
		yCol          = flag.String("y", "", "Y parameter column (default: second numeric column)")
		zCol          = flag.String("z", "", "Z value column (default: third numeric column)")
		interpolation = flag.String("interpolation", "", "interpolation method: none, nearest, bilinear, cubic")
		thresholdMin  = flag.String("threshold-min", "", "minimum passing threshold")
		thresholdMax  = flag.String("threshold-max", "", "maximum passing threshold")
		logZ          = flag.Bool("log-z", false, "apply safe-floor log10 scaling to Z")
		contours      = flag.Bool("contours", false, "overlay contour lines")
		contourLevels = flag.Int("contour-levels", 0, "number of contour levels (default 10)")
		markers       = flag.Bool("markers", false, "show sample markers over the surface")
		markerSize    = flag.Float64("marker-size", 0, "marker size in [10,200] (default 50)")
		values        = flag.Bool("values", false, "annotate each point with its Z value")
		stats         = flag.Bool("stats", false, "draw the statistics text box")
		colormap      = flag.String("colormap", "", "colormap name (default RdYlGn)")
		noColorbar    = flag.Bool("no-colorbar", false, "hide the colorbar legend")
		noGrid        = flag.Bool("no-grid", false, "hide axis grid lines")

		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("shmoo %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if err := run(cliConfig{
		inputPath: *inputPath, dbPath: *dbPath, runID: *runID,
		importCSV: *importCSV, runName: *runName, migrations: *migrations,
		listRuns: *listRuns, output: *output,
		widthIn: *widthIn, heightIn: *heightIn, optionsPath: *optionsPath,
		opts: buildOptions(flagValues{
			xCol: *xCol, yCol: *yCol, zCol: *zCol,
			interpolation: *interpolation,
			thresholdMin:  *thresholdMin, thresholdMax: *thresholdMax,
			logZ: *logZ, contours: *contours, contourLevels: *contourLevels,
			markers: *markers, markerSize: *markerSize,
			values: *values, stats: *stats, colormap: *colormap,
			noColorbar: *noColorbar, noGrid: *noGrid,
		}),
	}); err != nil {
		log.Fatalf("shmoo: %v", err)
	}
}

type cliConfig struct {
	inputPath   string
	dbPath      string
	runID       string
	importCSV   string
	runName     string
	migrations  string
	listRuns    bool
	output      string
	widthIn     float64
	heightIn    float64
	optionsPath string
	opts        shmoo.RenderOptions
}

type flagValues struct {
	xCol, yCol, zCol           string
	interpolation              string
	thresholdMin, thresholdMax string
	logZ, contours             bool
	contourLevels              int
	markers                    bool
	markerSize                 float64
	values, stats              bool
	colormap                   string
	noColorbar, noGrid         bool
}

func run(cfg cliConfig) error {
	var store *storage.Store
	if cfg.dbPath != "" {
		var err error
		store, err = storage.Open(cfg.dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.MigrateUp(cfg.migrations); err != nil {
			return err
		}
	}

	switch {
	case cfg.listRuns:
		if store == nil {
			return fmt.Errorf("-list requires -db")
		}
		runs, err := store.Runs()
		if err != nil {
			return err
		}
		for _, r := range runs {
			fmt.Printf("%s  %-24s  %d samples  (%s, %s, %s)\n",
				r.RunID, r.Name, r.Samples, r.XName, r.YName, r.ZName)
		}
		return nil

	case cfg.importCSV != "":
		if store == nil {
			return fmt.Errorf("-import requires -db")
		}
		return importRun(store, cfg.importCSV, cfg.runName)
	}

	src, err := resolveSource(cfg, store)
	if err != nil {
		return err
	}

	opts := cfg.opts
	if cfg.optionsPath != "" {
		loaded, err := shmoo.LoadRenderOptions(cfg.optionsPath)
		if err != nil {
			return err
		}
		opts = *loaded
	}

	res, err := shmoo.Render(src, opts)
	if err != nil {
		return err
	}
	if err := res.SavePNG(cfg.output, cfg.widthIn, cfg.heightIn); err != nil {
		return fmt.Errorf("save %s: %w", cfg.output, err)
	}

	fmt.Printf("wrote %s\n", cfg.output)
	for _, w := range res.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	fmt.Println(res.StatsText)
	return nil
}

func resolveSource(cfg cliConfig, store *storage.Store) (shmoo.DataSource, error) {
	switch {
	case cfg.runID != "":
		if store == nil {
			return nil, fmt.Errorf("-run requires -db")
		}
		return store.DataSource(cfg.runID)
	case cfg.inputPath != "":
		f, err := os.Open(cfg.inputPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return loadCSV(f)
	}
	return nil, fmt.Errorf("no input: provide -input or -db with -run")
}

func importRun(store *storage.Store, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	src, err := loadCSV(f)
	if err != nil {
		return err
	}
	x, y, z, err := shmoo.SelectColumns(src, &shmoo.RenderOptions{})
	if err != nil {
		return err
	}
	samples, err := shmoo.CollectSamples(src, x, y, z)
	if err != nil {
		return err
	}
	if name == "" {
		name = path
	}

	runID, err := store.CreateRun(name, x, y, z)
	if err != nil {
		return err
	}
	if err := store.AddSamples(runID, samples); err != nil {
		return err
	}
	fmt.Printf("imported %d samples as run %s\n", len(samples), runID)
	return nil
}

// loadCSV reads a headed CSV file and keeps the columns whose every
// non-empty cell parses as a float. Unparseable cells in numeric columns
// become NaN and are cleaned downstream.
func loadCSV(r io.Reader) (*shmoo.MemorySource, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv needs a header row and at least one data row")
	}

	header := records[0]
	rows := records[1:]

	var names []string
	values := make(map[string][]float64, len(header))
	for col, name := range header {
		vals := make([]float64, len(rows))
		numeric := false
		ok := true
		for i, row := range rows {
			if col >= len(row) || row[col] == "" {
				vals[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(row[col], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
			numeric = true
		}
		if ok && numeric {
			names = append(names, name)
			values[name] = vals
		}
	}
	return shmoo.NewMemorySource(names, values), nil
}

func buildOptions(f flagValues) shmoo.RenderOptions {
	var opts shmoo.RenderOptions
	strOpt := func(v string) *string {
		if v == "" {
			return nil
		}
		return &v
	}
	boolOpt := func(v bool) *bool {
		if !v {
			return nil
		}
		return &v
	}

	opts.XColumn = strOpt(f.xCol)
	opts.YColumn = strOpt(f.yCol)
	opts.ZColumn = strOpt(f.zCol)
	opts.Interpolation = strOpt(f.interpolation)
	opts.ThresholdMin = strOpt(f.thresholdMin)
	opts.ThresholdMax = strOpt(f.thresholdMax)
	opts.Colormap = strOpt(f.colormap)
	opts.LogZScale = boolOpt(f.logZ)
	opts.ShowContours = boolOpt(f.contours)
	opts.ShowMarkers = boolOpt(f.markers)
	opts.ShowValues = boolOpt(f.values)
	opts.ShowStatistics = boolOpt(f.stats)
	if f.contourLevels > 0 {
		opts.ContourLevels = &f.contourLevels
	}
	if f.markerSize > 0 {
		opts.MarkerSize = &f.markerSize
	}
	if f.noColorbar {
		v := false
		opts.ShowColorbar = &v
	}
	if f.noGrid {
		v := false
		opts.ShowGridLines = &v
	}
	return opts
}
