package models

// Set is a single parsed set. Number is the 1-based ordinal of the set line
// within its exercise, counted before tokenization.
type Set struct {
	Number int     `json:"set_number"`
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	Note   *string `json:"note"`
}

// ExerciseEntry is one exercise performed in a workout.
type ExerciseEntry struct {
	Exercise string `json:"exercise"`
	Sets     []Set  `json:"sets"`
}

// Workout is a single training day.
type Workout struct {
	Date    string          `json:"date"`
	Entries []ExerciseEntry `json:"entries"`
}

// MuscleGroup is a node of the two-level muscle-group tree.
type MuscleGroup struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id"`
}

// Exercise is a distinct exercise name with its resolved muscle group, if any.
type Exercise struct {
	Name        string  `json:"name"`
	MuscleGroup *string `json:"muscle_group"`
}

// Document is the aggregate output of a conversion run.
type Document struct {
	MuscleGroups []MuscleGroup `json:"muscle_groups"`
	Exercises    []Exercise    `json:"exercises"`
	Workouts     []Workout     `json:"workouts"`
}

// ProgressPoint is the best set of one workout day by estimated one-rep max,
// plus the heaviest weight lifted that day.
type ProgressPoint struct {
	Date         string  `json:"date"`
	Weight       float64 `json:"weight"`
	Reps         int     `json:"reps"`
	Estimated1RM float64 `json:"estimated_1rm"`
	MaxWeight    float64 `json:"max_weight"`
}
