package importer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/claude/gymlog/internal/taxonomy"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// TestImportFilesAndDirectories verifies that explicit files and directory
// contents are parsed and concatenated, and that other paths are skipped.
func TestImportFilesAndDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "logs", "b.md"), "### 2024-02-01\n1. Жим\n\t1. 80 на 8\n")
	writeFile(t, filepath.Join(dir, "logs", "a.md"), "### 2024-01-01\n1. Жим\n\t1. 70 на 8\n")
	writeFile(t, filepath.Join(dir, "logs", "notes.txt"), "### 2024-01-05\n1. Жим\n\t1. 70 на 8\n")
	writeFile(t, filepath.Join(dir, "logs", "nested", "c.md"), "### 2024-03-01\n1. Жим\n\t1. 90 на 8\n")
	writeFile(t, filepath.Join(dir, "single.md"), "### 2023-12-01\n1. Махи\n\t1. 8 на 15\n")
	writeFile(t, filepath.Join(dir, "readme.txt"), "hello")

	imp := New("", discardLogger())
	workouts, stats, err := imp.Import(context.Background(), []string{
		filepath.Join(dir, "logs"),
		filepath.Join(dir, "single.md"),
		filepath.Join(dir, "readme.txt"),
		filepath.Join(dir, "missing.md"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantDates := []string{"2024-01-01", "2024-02-01", "2023-12-01"}
	if len(workouts) != len(wantDates) {
		t.Fatalf("workouts = %d, want %d", len(workouts), len(wantDates))
	}
	for i, w := range workouts {
		if w.Date != wantDates[i] {
			t.Errorf("workout %d = %s, want %s", i, w.Date, wantDates[i])
		}
	}
	if stats.FilesProcessed != 3 {
		t.Errorf("FilesProcessed = %d, want 3", stats.FilesProcessed)
	}
	if stats.FilesSkipped != 2 {
		t.Errorf("FilesSkipped = %d, want 2", stats.FilesSkipped)
	}
	if stats.WorkoutsParsed != 3 {
		t.Errorf("WorkoutsParsed = %d, want 3", stats.WorkoutsParsed)
	}
}

// TestImportRecursivePattern verifies that a doublestar pattern reaches nested files.
func TestImportRecursivePattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "### 2024-01-01\n1. Жим\n\t1. 70 на 8\n")
	writeFile(t, filepath.Join(dir, "2024", "feb.md"), "### 2024-02-01\n1. Жим\n\t1. 80 на 8\n")

	workouts, _, err := New("**/*.md", discardLogger()).Import(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(workouts) != 2 {
		t.Errorf("workouts = %d, want 2", len(workouts))
	}
}

// TestImportNoValidInputs verifies ErrNoInputs when nothing is usable.
func TestImportNoValidInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "readme.txt"), "hello")

	imp := New("", discardLogger())
	for _, paths := range [][]string{
		nil,
		{filepath.Join(dir, "missing.md")},
		{filepath.Join(dir, "readme.txt")},
	} {
		_, _, err := imp.Import(context.Background(), paths)
		if !errors.Is(err, ErrNoInputs) {
			t.Errorf("Import(%v) error = %v, want ErrNoInputs", paths, err)
		}
	}
}

// TestImportEmptyDirectoryIsValid verifies that a directory without markdown
// files is a valid input that contributes nothing.
func TestImportEmptyDirectoryIsValid(t *testing.T) {
	workouts, stats, err := New("", discardLogger()).Import(context.Background(), []string{t.TempDir()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(workouts) != 0 || stats.FilesProcessed != 0 {
		t.Errorf("workouts = %d, processed = %d, want 0, 0", len(workouts), stats.FilesProcessed)
	}
}

// TestImportCancelled verifies that a cancelled context stops before parsing.
func TestImportCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "### 2024-01-01\n1. Жим\n\t1. 70 на 8\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := New("", discardLogger()).Import(ctx, []string{dir})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

// TestDocumentSortsAcrossFiles verifies that the built document is date-sorted
// across all inputs combined.
func TestDocumentSortsAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "### 2024-05-01\n1. Жим\n\t1. 70 на 8\n")
	writeFile(t, filepath.Join(dir, "b.md"), "### 2024-01-01\n1. Жим\n\t1. 60 на 8\n")

	doc, _, err := New("", discardLogger()).Document(context.Background(), []string{dir}, taxonomy.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Workouts) != 2 || doc.Workouts[0].Date != "2024-01-01" {
		t.Errorf("workouts = %+v, want 2024-01-01 first", doc.Workouts)
	}
	if len(doc.Exercises) != 1 {
		t.Errorf("exercises = %d, want 1", len(doc.Exercises))
	}
}

// TestSourceRereadsInputs verifies that each Document call sees current file contents.
func TestSourceRereadsInputs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.md")
	writeFile(t, path, "### 2024-01-01\n1. Жим\n\t1. 70 на 8\n")

	src := NewSource([]string{dir}, "", taxonomy.Default(), discardLogger())
	doc, err := src.Document(context.Background())
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	if len(doc.Workouts) != 1 {
		t.Fatalf("workouts = %d, want 1", len(doc.Workouts))
	}

	writeFile(t, path, "### 2024-01-01\n1. Жим\n\t1. 70 на 8\n### 2024-01-03\n1. Присед\n\t1. 100 на 5\n")
	doc, err = src.Document(context.Background())
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if len(doc.Workouts) != 2 {
		t.Errorf("workouts = %d after edit, want 2", len(doc.Workouts))
	}
}
