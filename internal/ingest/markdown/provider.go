package markdown

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/claude/gymlog/internal/document"
	"github.com/claude/gymlog/internal/ingest"
	"github.com/claude/gymlog/internal/taxonomy"
)

// Provider turns a single markdown workout log into a document.
type Provider struct {
	tax *taxonomy.Taxonomy
	log *slog.Logger
}

// NewProvider creates a new markdown ingest provider.
func NewProvider(tax *taxonomy.Taxonomy, log *slog.Logger) *Provider {
	return &Provider{tax: tax, log: log}
}

// Ingest parses a markdown log and builds a document from it alone.
func (p *Provider) Ingest(ctx context.Context, r io.Reader) (*ingest.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	workouts, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing markdown: %w", err)
	}

	doc := document.Build(workouts, p.tax)
	result := &ingest.Result{
		WorkoutsParsed:    len(doc.Workouts),
		ExercisesSeen:     len(doc.Exercises),
		SetsParsed:        document.CountSets(doc),
		UnmappedExercises: document.Unmapped(doc),
		Document:          doc,
	}
	p.log.Debug("markdown ingested",
		"workouts", result.WorkoutsParsed,
		"exercises", result.ExercisesSeen,
		"sets", result.SetsParsed,
	)
	return result, nil
}
