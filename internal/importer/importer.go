package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/claude/gymlog/internal/document"
	"github.com/claude/gymlog/internal/ingest/markdown"
	"github.com/claude/gymlog/internal/models"
	"github.com/claude/gymlog/internal/taxonomy"
)

// DefaultPattern selects the markdown files of a directory input.
const DefaultPattern = "*.md"

// ErrNoInputs is returned when none of the given paths is a markdown file or a directory.
var ErrNoInputs = errors.New("no valid input paths")

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	WorkoutsParsed int

	SkippedPaths []string
}

// Importer reads markdown workout logs from files and directories.
type Importer struct {
	pattern string
	log     *slog.Logger
	stats   Stats
}

// New creates a new Importer. pattern is a doublestar glob applied inside
// directory inputs; an empty pattern means DefaultPattern.
func New(pattern string, log *slog.Logger) *Importer {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &Importer{pattern: pattern, log: log}
}

// Import resolves the given paths and parses every markdown file found, one
// at a time, concatenating their workouts in input order. Unusable paths and
// unreadable files are logged and skipped. ErrNoInputs is returned before any
// parsing when no path is usable.
func (imp *Importer) Import(ctx context.Context, paths []string) ([]models.Workout, *Stats, error) {
	imp.stats = Stats{}

	files, err := imp.resolve(paths)
	if err != nil {
		return nil, &imp.stats, err
	}

	var all []models.Workout
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return all, &imp.stats, err
		}
		workouts, err := imp.parseFile(f)
		if err != nil {
			imp.log.Warn("parse failed", "file", f, "error", err)
			imp.stats.FilesErrored++
			continue
		}
		imp.stats.FilesProcessed++
		imp.stats.WorkoutsParsed += len(workouts)
		all = append(all, workouts...)
	}
	return all, &imp.stats, nil
}

// Document imports the given paths and builds the output document.
func (imp *Importer) Document(ctx context.Context, paths []string, tax *taxonomy.Taxonomy) (*models.Document, *Stats, error) {
	workouts, stats, err := imp.Import(ctx, paths)
	if err != nil {
		return nil, stats, err
	}
	return document.Build(workouts, tax), stats, nil
}

// resolve expands directories and filters out anything that is not a
// markdown file. Files inside a directory are returned in lexical order.
func (imp *Importer) resolve(paths []string) ([]string, error) {
	var files []string
	valid := 0

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			imp.skip(p, err.Error())
			continue
		}

		if info.IsDir() {
			matches, err := doublestar.Glob(os.DirFS(p), imp.pattern, doublestar.WithFilesOnly())
			if err != nil {
				imp.skip(p, err.Error())
				continue
			}
			sort.Strings(matches)
			valid++
			for _, m := range matches {
				files = append(files, filepath.Join(p, filepath.FromSlash(m)))
			}
			continue
		}

		if !info.Mode().IsRegular() || filepath.Ext(p) != ".md" {
			imp.skip(p, "not a markdown file")
			continue
		}
		valid++
		files = append(files, p)
	}

	if valid == 0 {
		return nil, ErrNoInputs
	}
	return files, nil
}

func (imp *Importer) skip(path, reason string) {
	imp.log.Warn("skipping input", "path", path, "reason", reason)
	imp.stats.FilesSkipped++
	imp.stats.SkippedPaths = append(imp.stats.SkippedPaths, path)
}

func (imp *Importer) parseFile(path string) ([]models.Workout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	imp.log.Info("parsing", "file", path)
	workouts, err := markdown.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return workouts, nil
}
