// Command measurekit serves the measurement API over a local sqlite
// database. State loads at startup and saves on shutdown; undo history
// lives only for the lifetime of the process.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fieldline-data/measurekit/internal/api"
	"github.com/fieldline-data/measurekit/internal/config"
	"github.com/fieldline-data/measurekit/internal/snap"
	"github.com/fieldline-data/measurekit/internal/store"
	"github.com/fieldline-data/measurekit/internal/store/sqlite"
	"github.com/fieldline-data/measurekit/internal/version"
)

var (
	configPath = flag.String("config", "", "Path to JSON config file (optional)")
	dbPath     = flag.String("db", "", "Path to sqlite database (overrides config)")
	listen     = flag.String("listen", "", "Listen address (overrides config)")
)

func main() {
	flag.Parse()
	log.Printf("measurekit %s (%s, built %s)", version.Version, version.GitSHA, version.BuildTime)

	cfg := &config.Config{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}
	databasePath := cfg.GetDatabasePath()
	if *dbPath != "" {
		databasePath = *dbPath
	}
	listenAddr := cfg.GetListen()
	if *listen != "" {
		listenAddr = *listen
	}

	db, err := sqlite.Open(databasePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	defaultPrecision := cfg.GetDefaultPrecision()
	st := store.New(store.Options{
		MaxHistory:       cfg.GetMaxHistory(),
		DefaultUnit:      cfg.GetDefaultUnit(),
		DefaultPrecision: &defaultPrecision,
		SnapTolerance:    cfg.GetSnapTolerance(),
	})

	persist := sqlite.NewPersistStore(db)
	ms, gs, set, err := persist.Load()
	if err != nil {
		log.Fatalf("failed to load persisted state: %v", err)
	}
	st.LoadState(ms, gs, set)
	log.Printf("loaded %d measurements, %d groups from %s", len(ms), len(gs), databasePath)

	snaps := snap.NewIndex()
	snaps.Build(nil, &snap.GridOptions{
		Spacing: cfg.GetGridSpacing(),
		Extent:  cfg.GetGridExtent(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:    listenAddr,
		Handler: api.LoggingMiddleware(api.NewServer(st, snaps).ServeMux()),
	}

	go func() {
		log.Printf("listening on %s", listenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	ms, gs = st.State()
	if err := persist.Save(ms, gs, st.Settings()); err != nil {
		log.Printf("failed to save state: %v", err)
		return
	}
	log.Printf("saved %d measurements, %d groups to %s", len(ms), len(gs), databasePath)
}
