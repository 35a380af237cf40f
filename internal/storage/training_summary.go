package storage

import (
	"context"
	"fmt"
)

// StrengthVolumeSummary holds aggregated set volume for a period.
type StrengthVolumeSummary struct {
	Sets              int     `json:"sets"`
	TotalReps         int     `json:"total_reps"`
	TonnageKg         float64 `json:"tonnage_kg"`
	Sessions          int     `json:"sessions"`
	AvgSetsPerSession float64 `json:"avg_sets_per_session"`
}

// TrainingSummaryPeriod holds strength volume for one period, keyed by the
// period's first day (YYYY-MM-DD).
type TrainingSummaryPeriod struct {
	Period       string                `json:"period"`
	Strength     StrengthVolumeSummary `json:"strength"`
	MuscleGroups map[string]int        `json:"muscle_group_sets,omitempty"`
}

// TrainingSummary aggregates the snapshot's sets per "week" (Monday start) or
// "month", oldest period first. Workouts whose date is not a valid
// YYYY-MM-DD are left out.
func (db *DB) TrainingSummary(ctx context.Context, bucket string) ([]TrainingSummaryPeriod, error) {
	period, err := periodExpr(bucket)
	if err != nil {
		return nil, err
	}

	result, err := db.strengthByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	groups, err := db.muscleGroupSets(ctx, period)
	if err != nil {
		return nil, err
	}
	for i := range result {
		result[i].MuscleGroups = groups[result[i].Period]
	}
	return result, nil
}

func (db *DB) strengthByPeriod(ctx context.Context, period string) ([]TrainingSummaryPeriod, error) {
	rows, err := db.db.QueryContext(ctx,
		`SELECT `+period+` AS period,
		        COUNT(s.id),
		        COALESCE(SUM(s.reps), 0),
		        COALESCE(SUM(s.weight * s.reps), 0),
		        COUNT(DISTINCT w.id)
		 FROM sets s
		 JOIN workout_exercises we ON we.id = s.workout_exercise_id
		 JOIN workouts w ON w.id = we.workout_id
		 WHERE `+period+` IS NOT NULL
		 GROUP BY period
		 ORDER BY period`)
	if err != nil {
		return nil, fmt.Errorf("querying strength summary: %w", err)
	}
	defer rows.Close()

	result := []TrainingSummaryPeriod{}
	for rows.Next() {
		var p TrainingSummaryPeriod
		sv := &p.Strength
		if err := rows.Scan(&p.Period, &sv.Sets, &sv.TotalReps, &sv.TonnageKg, &sv.Sessions); err != nil {
			return nil, fmt.Errorf("scanning strength summary: %w", err)
		}
		if sv.Sessions > 0 {
			sv.AvgSetsPerSession = float64(sv.Sets) / float64(sv.Sessions)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// muscleGroupSets counts sets per period and muscle group. Unmapped exercises are not counted.
func (db *DB) muscleGroupSets(ctx context.Context, period string) (map[string]map[string]int, error) {
	rows, err := db.db.QueryContext(ctx,
		`SELECT `+period+` AS period, mg.name, COUNT(s.id)
		 FROM sets s
		 JOIN workout_exercises we ON we.id = s.workout_exercise_id
		 JOIN workouts w ON w.id = we.workout_id
		 JOIN exercises e ON e.id = we.exercise_id
		 JOIN muscle_groups mg ON mg.id = e.muscle_group_id
		 WHERE `+period+` IS NOT NULL
		 GROUP BY period, mg.name`)
	if err != nil {
		return nil, fmt.Errorf("querying muscle group summary: %w", err)
	}
	defer rows.Close()

	out := make(map[string]map[string]int)
	for rows.Next() {
		var key, group string
		var sets int
		if err := rows.Scan(&key, &group, &sets); err != nil {
			return nil, fmt.Errorf("scanning muscle group summary: %w", err)
		}
		if out[key] == nil {
			out[key] = make(map[string]int)
		}
		out[key][group] = sets
	}
	return out, rows.Err()
}

// periodExpr returns the SQLite expression mapping w.date to its period start.
func periodExpr(bucket string) (string, error) {
	switch bucket {
	case "week":
		// 'weekday 0' moves to the coming Sunday (or stays), -6 days lands on Monday.
		return `date(w.date, 'weekday 0', '-6 days')`, nil
	case "month":
		return `date(w.date, 'start of month')`, nil
	default:
		return "", fmt.Errorf("unknown summary bucket %q (want week or month)", bucket)
	}
}

// Summarize opens an exported snapshot and returns its training summary.
func Summarize(ctx context.Context, path, bucket string) ([]TrainingSummaryPeriod, error) {
	db, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.TrainingSummary(ctx, bucket)
}
