package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/claude/gymlog/internal/models"
)

// Counts holds the row count of each snapshot table.
type Counts struct {
	MuscleGroups     int64
	Exercises        int64
	Workouts         int64
	WorkoutExercises int64
	Sets             int64
}

// Export writes doc as a fresh SQLite file at path, replacing any existing
// file. Tables follow the companion app layout: muscle_groups, exercises,
// workouts, workout_exercises and sets.
func Export(ctx context.Context, path string, doc *models.Document) (*Counts, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("removing old snapshot: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating snapshot dir %s: %w", dir, err)
		}
	}
	if err := RunMigrations(path); err != nil {
		return nil, err
	}

	db, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := db.insertDocument(ctx, doc); err != nil {
		return nil, err
	}
	return db.Counts(ctx)
}

func (db *DB) insertDocument(ctx context.Context, doc *models.Document) error {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Top-level groups first so parent references resolve.
	groupIDs := make(map[string]int64, len(doc.MuscleGroups))
	for _, topLevel := range []bool{true, false} {
		for _, g := range doc.MuscleGroups {
			if (g.ParentID == nil) != topLevel {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO muscle_groups (id, name, parent_id) VALUES (?, ?, ?)`,
				g.ID, g.Name, g.ParentID); err != nil {
				return fmt.Errorf("inserting muscle group %q: %w", g.Name, err)
			}
			groupIDs[g.Name] = g.ID
		}
	}

	exerciseIDs := make(map[string]int64, len(doc.Exercises))
	for _, e := range doc.Exercises {
		var groupID sql.NullInt64
		if e.MuscleGroup != nil {
			if id, ok := groupIDs[*e.MuscleGroup]; ok {
				groupID = sql.NullInt64{Int64: id, Valid: true}
			}
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO exercises (name, muscle_group_id) VALUES (?, ?)`, e.Name, groupID)
		if err != nil {
			return fmt.Errorf("inserting exercise %q: %w", e.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("exercise id: %w", err)
		}
		exerciseIDs[e.Name] = id
	}

	for _, w := range doc.Workouts {
		res, err := tx.ExecContext(ctx, `INSERT INTO workouts (date) VALUES (?)`, w.Date)
		if err != nil {
			return fmt.Errorf("inserting workout %s: %w", w.Date, err)
		}
		workoutID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("workout id: %w", err)
		}

		for i, entry := range w.Entries {
			exerciseID, ok := exerciseIDs[entry.Exercise]
			if !ok {
				return fmt.Errorf("workout %s references unlisted exercise %q", w.Date, entry.Exercise)
			}
			res, err := tx.ExecContext(ctx,
				`INSERT INTO workout_exercises (workout_id, exercise_id, order_index) VALUES (?, ?, ?)`,
				workoutID, exerciseID, i)
			if err != nil {
				return fmt.Errorf("inserting entry %q of %s: %w", entry.Exercise, w.Date, err)
			}
			entryID, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("entry id: %w", err)
			}

			for _, s := range entry.Sets {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO sets (workout_exercise_id, set_number, weight, reps, note) VALUES (?, ?, ?, ?, ?)`,
					entryID, s.Number, s.Weight, s.Reps, s.Note); err != nil {
					return fmt.Errorf("inserting set %d of %q on %s: %w", s.Number, entry.Exercise, w.Date, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// Counts returns the number of rows in each snapshot table.
func (db *DB) Counts(ctx context.Context) (*Counts, error) {
	var c Counts
	for _, q := range []struct {
		table string
		dst   *int64
	}{
		{"muscle_groups", &c.MuscleGroups},
		{"exercises", &c.Exercises},
		{"workouts", &c.Workouts},
		{"workout_exercises", &c.WorkoutExercises},
		{"sets", &c.Sets},
	} {
		if err := db.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+q.table).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("counting %s: %w", q.table, err)
		}
	}
	return &c, nil
}
