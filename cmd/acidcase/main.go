// Command acidcase serves the acid-dosing business-case API and dashboard,
// or evaluates a single scenario file from the command line.
//
// Serve mode (default):
//
//	acidcase -listen :8080 -db acidcase.db
//
// One-shot mode:
//
//	acidcase -scenario case.json            # result JSON on stdout
//	acidcase -scenario case.json -out report.html
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mineralytics/acidcase/internal/api"
	"github.com/mineralytics/acidcase/internal/config"
	"github.com/mineralytics/acidcase/internal/db"
	"github.com/mineralytics/acidcase/internal/engine"
	"github.com/mineralytics/acidcase/internal/report"
)

var (
	listen        = flag.String("listen", ":8080", "Listen address for the API server")
	dbPath        = flag.String("db", "acidcase.db", "Path to the scenario database")
	scenarioPath  = flag.String("scenario", "", "Evaluate a scenario file and exit")
	outPath       = flag.String("out", "", "With -scenario: also write an HTML report to this path")
	migrateCmd    = flag.String("migrate", "", "Run a migration command (up, down, version, force) and exit")
	migrationsDir = flag.String("migrations", "migrations", "Path to the migrations directory")
	forceVersion  = flag.Int("force-version", -1, "With -migrate force: schema version to set")
)

func main() {
	flag.Parse()

	if *scenarioPath != "" {
		if err := runOnce(*scenarioPath, *outPath); err != nil {
			log.Fatalf("evaluation failed: %v", err)
		}
		return
	}

	store, err := db.New(*dbPath)
	if err != nil {
		log.Fatalf("failed to open scenario database: %v", err)
	}
	defer store.Close()

	if *migrateCmd != "" {
		if err := runMigrate(store, *migrateCmd, *migrationsDir); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		return
	}

	serve(store, *listen)
}

// runOnce evaluates a scenario file, prints the result record as JSON, and
// optionally writes the HTML report.
func runOnce(scenarioFile, reportFile string) error {
	scenario, err := config.Load(scenarioFile)
	if err != nil {
		return err
	}
	res := engine.Evaluate(scenario.Params())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if reportFile == "" {
		return nil
	}
	f, err := os.Create(reportFile)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()
	if err := report.RenderReport(f, res); err != nil {
		return err
	}
	log.Printf("report written to %s", reportFile)
	return nil
}

func runMigrate(store *db.DB, cmd, dir string) error {
	switch cmd {
	case "up":
		return store.MigrateUp(dir)
	case "down":
		return store.MigrateDown(dir)
	case "version":
		version, dirty, err := store.MigrateVersion(dir)
		if err != nil {
			return err
		}
		log.Printf("schema version %d (dirty=%v)", version, dirty)
		return nil
	case "force":
		if *forceVersion < 0 {
			return fmt.Errorf("-migrate force requires -force-version")
		}
		return store.MigrateForce(dir, *forceVersion)
	default:
		return fmt.Errorf("unknown migrate command %q (valid: up, down, version, force)", cmd)
	}
}

func serve(store *db.DB, addr string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:    addr,
		Handler: api.LoggingMiddleware(api.NewServer(store).ServeMux()),
	}

	go func() {
		log.Printf("serving business-case API on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
