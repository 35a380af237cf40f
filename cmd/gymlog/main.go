package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/gymlog/internal/config"
	"github.com/claude/gymlog/internal/document"
	"github.com/claude/gymlog/internal/importer"
	"github.com/claude/gymlog/internal/models"
	"github.com/claude/gymlog/internal/storage"
	"github.com/claude/gymlog/internal/taxonomy"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: gymlog [-config config.yaml] [-o gym_data.json] [-sqlite gym.db] <file.md|dir>...\n")
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	outPath := flag.String("o", "", "output JSON path (overrides output.json)")
	sqlitePath := flag.String("sqlite", "", "also write a SQLite snapshot to this path")
	pattern := flag.String("pattern", "", "glob for files inside directory inputs (overrides input.pattern)")
	taxonomyPath := flag.String("taxonomy", "", "muscle-group taxonomy YAML (overrides taxonomy.file)")
	summary := flag.String("summary", "", "log training volume per week or month (requires -sqlite)")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *outPath != "" {
		cfg.Output.JSON = *outPath
	}
	if *sqlitePath != "" {
		cfg.Output.SQLite = *sqlitePath
	}
	if *pattern != "" {
		cfg.Input.Pattern = *pattern
	}
	if *taxonomyPath != "" {
		cfg.Taxonomy.File = *taxonomyPath
	}

	level, _ := cfg.Log.SlogLevel()
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	paths := flag.Args()
	if len(paths) == 0 {
		paths = cfg.Input.Paths
	}

	tax, err := taxonomy.FromFile(cfg.Taxonomy.File)
	if err != nil {
		log.Error("failed to load taxonomy", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	imp := importer.New(cfg.Input.Pattern, log)
	doc, stats, err := imp.Document(ctx, paths, tax)
	if errors.Is(err, importer.ErrNoInputs) {
		fmt.Fprintln(os.Stderr, "gymlog: no markdown file or directory among the given paths")
		usage()
		os.Exit(1)
	}
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}

	if err := writeJSONFile(cfg.Output.JSON, doc, log); err != nil {
		log.Error("failed to write output", "path", cfg.Output.JSON, "error", err)
		os.Exit(1)
	}

	if cfg.Output.SQLite != "" {
		counts, err := storage.Export(ctx, cfg.Output.SQLite, doc)
		if err != nil {
			log.Error("sqlite export failed", "path", cfg.Output.SQLite, "error", err)
			os.Exit(1)
		}
		log.Info("sqlite snapshot written",
			"path", cfg.Output.SQLite,
			"workouts", counts.Workouts,
			"sets", counts.Sets,
		)

		if *summary != "" {
			periods, err := storage.Summarize(ctx, cfg.Output.SQLite, *summary)
			if err != nil {
				log.Error("training summary failed", "error", err)
				os.Exit(1)
			}
			for _, p := range periods {
				log.Info("training volume",
					"period", p.Period,
					"sessions", p.Strength.Sessions,
					"sets", p.Strength.Sets,
					"reps", p.Strength.TotalReps,
					"tonnage_kg", p.Strength.TonnageKg,
					"muscle_groups", p.MuscleGroups,
				)
			}
		}
	} else if *summary != "" {
		log.Warn("-summary needs an SQLite snapshot, set -sqlite or output.sqlite")
	}

	log.Info("import stats",
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
		"workouts", len(doc.Workouts),
		"exercises", len(doc.Exercises),
		"sets", document.CountSets(doc),
	)
	if unmapped := document.Unmapped(doc); len(unmapped) > 0 {
		log.Warn("exercises without muscle group", "count", len(unmapped), "names", unmapped)
	}
}

func writeJSONFile(path string, doc *models.Document, log *slog.Logger) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := document.WriteJSON(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	log.Info("document written", "path", path)
	return nil
}
