// Command tda-play runs the scatter previews and cutoff sweeps described in a
// YAML configuration file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/tda.playground/internal/config"
	"github.com/banshee-data/tda.playground/internal/db"
	"github.com/banshee-data/tda.playground/internal/fsutil"
	"github.com/banshee-data/tda.playground/internal/monitoring"
	"github.com/banshee-data/tda.playground/internal/playground"
	"github.com/banshee-data/tda.playground/internal/tda/sweep"
	"github.com/banshee-data/tda.playground/internal/version"
)

var (
	configPath  = flag.String("c", "", "Path to the YAML run configuration (required)")
	logPath     = flag.String("l", "logs/default.log", "Log file path (empty logs to stderr only)")
	debug       = flag.Bool("d", false, "Enable debug logging")
	dbPath      = flag.String("db", "", "Record runs into this sqlite catalog")
	cutoffList  = flag.String("cutoffs", "", "Override cutoffs: comma-separated values (0.1,0.5) or range min:lim:step")
	listRuns    = flag.Bool("list-runs", false, "List runs recorded in -db and exit")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println("tda-play", version.String())
		return
	}

	closer, err := monitoring.Setup(*logPath, *debug)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var catalog *db.DB
	if *dbPath != "" {
		catalog, err = db.NewDB(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open catalog: %v", err)
		}
		defer catalog.Close()
	}

	if *listRuns {
		if catalog == nil {
			log.Fatal("-list-runs requires -db")
		}
		if err := printRuns(ctx, catalog); err != nil {
			log.Fatalf("Failed to list runs: %v", err)
		}
		return
	}

	if *configPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	runner := playground.NewRunner(fsutil.OSFileSystem{})
	if catalog != nil {
		runner.Catalog = catalog
	}
	if *cutoffList != "" {
		runner.Cutoffs, err = sweep.ParseCutoffList(*cutoffList)
		if err != nil {
			log.Fatalf("Invalid -cutoffs: %v", err)
		}
	}

	log.Printf("tda-play %s: %d runs from %s", version.Version, len(cfg.Runs), *configPath)
	outcomes, err := runner.Execute(ctx, cfg)
	if errors.Is(err, context.Canceled) {
		log.Printf("interrupted after %d runs", len(outcomes))
		return
	}
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}
	for _, out := range outcomes {
		log.Printf("%s: %d files", out.Name, len(out.Files))
	}
}

func printRuns(ctx context.Context, catalog *db.DB) error {
	runs, err := catalog.ListRuns(ctx)
	if err != nil {
		return err
	}
	for i := range runs {
		frames, err := catalog.FramesForRun(ctx, runs[i].ID)
		if err != nil {
			return err
		}
		fmt.Printf("%s frames=%d\n", runs[i].String(), len(frames))
	}
	return nil
}
