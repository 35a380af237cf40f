package document

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/claude/gymlog/internal/models"
	"github.com/claude/gymlog/internal/taxonomy"
)

// Build assembles the output document: the muscle-group tree, the distinct
// exercises in first-seen order with their resolved groups, and the workouts
// sorted by date. The sort is stable, so same-day workouts keep input order.
// The workouts slice is not modified.
func Build(workouts []models.Workout, tax *taxonomy.Taxonomy) *models.Document {
	sorted := make([]models.Workout, len(workouts))
	copy(sorted, workouts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	seen := make(map[string]bool)
	exercises := []models.Exercise{}
	for _, w := range sorted {
		for _, e := range w.Entries {
			if seen[e.Exercise] {
				continue
			}
			seen[e.Exercise] = true
			ex := models.Exercise{Name: e.Exercise}
			if g, ok := tax.Lookup(e.Exercise); ok {
				ex.MuscleGroup = &g
			}
			exercises = append(exercises, ex)
		}
	}

	return &models.Document{
		MuscleGroups: tax.Groups(),
		Exercises:    exercises,
		Workouts:     sorted,
	}
}

// Unmapped returns the names of exercises without a muscle group.
func Unmapped(doc *models.Document) []string {
	var names []string
	for _, e := range doc.Exercises {
		if e.MuscleGroup == nil {
			names = append(names, e.Name)
		}
	}
	return names
}

// CountSets returns the total number of sets across all workouts.
func CountSets(doc *models.Document) int {
	n := 0
	for _, w := range doc.Workouts {
		for _, e := range w.Entries {
			n += len(e.Sets)
		}
	}
	return n
}

// WriteJSON encodes doc as indented JSON. Non-ASCII text is written as is.
func WriteJSON(w io.Writer, doc *models.Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return nil
}
