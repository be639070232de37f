// Command shmoo-server serves stored sweep runs over HTTP: JSON run
// listings, pass/fail classification, PNG plots, and an interactive
// scatter view.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/banshee-data/shmoo.report/internal/monitoring"
	"github.com/banshee-data/shmoo.report/internal/shmoo/monitor"
	storage "github.com/banshee-data/shmoo.report/internal/shmoo/storage/sqlite"
	"github.com/banshee-data/shmoo.report/internal/version"
)

func main() {
	var (
		dbPath     = flag.String("db", "sweeps.db", "sweep store sqlite database")
		listenAddr = flag.String("listen", ":8080", "HTTP listen address")
		migrations = flag.String("migrations", "migrations", "migrations directory")
	)
	flag.Parse()

	store, err := storage.Open(*dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if err := store.MigrateUp(*migrations); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	monitoring.Logf("shmoo-server %s listening on %s (db %s)", version.Version, *listenAddr, *dbPath)
	ws := monitor.NewWebServer(store, *listenAddr)
	if err := ws.Start(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
