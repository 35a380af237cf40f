package ingest

import "github.com/claude/gymlog/internal/models"

// Result holds the outcome of an ingest operation.
type Result struct {
	WorkoutsParsed    int      `json:"workouts_parsed"`
	ExercisesSeen     int      `json:"exercises_seen"`
	SetsParsed        int      `json:"sets_parsed"`
	UnmappedExercises []string `json:"unmapped_exercises,omitempty"`

	Document *models.Document `json:"document"`
}
