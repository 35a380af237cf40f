package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/gymlog/internal/document"
	"github.com/claude/gymlog/internal/ingest/markdown"
	"github.com/claude/gymlog/internal/models"
	"github.com/claude/gymlog/internal/taxonomy"
)

// Source abstracts where MCP tools get their data. LocalSource (parses the
// configured logs in-process) and HTTPClient (remote gymlog-server) satisfy it.
type Source interface {
	Document(ctx context.Context) (*models.Document, error)
	Parse(ctx context.Context, text string) (*models.Document, error)
	Lookup(ctx context.Context, exercise string) (group string, ok bool, err error)
	MuscleGroups(ctx context.Context) ([]models.MuscleGroup, error)
	Progress(ctx context.Context, exercise string) ([]models.ProgressPoint, error)
}

// DocumentBuilder produces the document of the configured inputs.
// *importer.Source satisfies it.
type DocumentBuilder interface {
	Document(ctx context.Context) (*models.Document, error)
}

// LocalSource answers from local markdown logs.
type LocalSource struct {
	docs     DocumentBuilder
	provider *markdown.Provider
	tax      *taxonomy.Taxonomy
}

var (
	_ Source = (*LocalSource)(nil)
	_ Source = (*HTTPClient)(nil)
)

// NewLocalSource creates a LocalSource.
func NewLocalSource(docs DocumentBuilder, provider *markdown.Provider, tax *taxonomy.Taxonomy) *LocalSource {
	return &LocalSource{docs: docs, provider: provider, tax: tax}
}

func (s *LocalSource) Document(ctx context.Context) (*models.Document, error) {
	return s.docs.Document(ctx)
}

func (s *LocalSource) Parse(ctx context.Context, text string) (*models.Document, error) {
	result, err := s.provider.Ingest(ctx, strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	return result.Document, nil
}

func (s *LocalSource) Lookup(_ context.Context, exercise string) (string, bool, error) {
	group, ok := s.tax.Lookup(exercise)
	return group, ok, nil
}

func (s *LocalSource) MuscleGroups(_ context.Context) ([]models.MuscleGroup, error) {
	return s.tax.Groups(), nil
}

func (s *LocalSource) Progress(ctx context.Context, exercise string) ([]models.ProgressPoint, error) {
	doc, err := s.docs.Document(ctx)
	if err != nil {
		return nil, fmt.Errorf("building document: %w", err)
	}
	return document.Progress(doc, exercise), nil
}
