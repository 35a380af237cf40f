package importer

import (
	"context"
	"log/slog"

	"github.com/claude/gymlog/internal/models"
	"github.com/claude/gymlog/internal/taxonomy"
)

// Source rebuilds the document from a fixed set of input paths on every call,
// so edits to the logs show up without a restart.
type Source struct {
	paths   []string
	pattern string
	tax     *taxonomy.Taxonomy
	log     *slog.Logger
}

// NewSource creates a Source over paths.
func NewSource(paths []string, pattern string, tax *taxonomy.Taxonomy, log *slog.Logger) *Source {
	return &Source{paths: paths, pattern: pattern, tax: tax, log: log}
}

// Document imports all paths and builds a fresh document.
func (s *Source) Document(ctx context.Context) (*models.Document, error) {
	doc, stats, err := New(s.pattern, s.log).Document(ctx, s.paths, s.tax)
	if err != nil {
		return nil, err
	}
	s.log.Debug("document rebuilt",
		"files", stats.FilesProcessed,
		"skipped", stats.FilesSkipped,
		"workouts", len(doc.Workouts),
	)
	return doc, nil
}
