package document

import (
	"strings"

	"github.com/claude/gymlog/internal/models"
)

// Epley1RM estimates a one-rep max as weight * (1 + reps/30).
func Epley1RM(weight float64, reps int) float64 {
	return weight * (1 + float64(reps)/30)
}

// Progress returns one point per date on which the exercise appears, holding
// the set with the highest estimated one-rep max. Workouts sharing a date (for
// example from two input files) are merged into one point. Names are compared
// case-insensitively. Ties keep the earliest set. Points follow the order of
// doc.Workouts, which Build sorts by date.
func Progress(doc *models.Document, exercise string) []models.ProgressPoint {
	want := strings.ToLower(strings.TrimSpace(exercise))
	points := []models.ProgressPoint{}
	byDate := make(map[string]int)

	for _, w := range doc.Workouts {
		for _, e := range w.Entries {
			if strings.ToLower(e.Exercise) != want {
				continue
			}
			for _, s := range e.Sets {
				rm := Epley1RM(s.Weight, s.Reps)
				idx, ok := byDate[w.Date]
				if !ok {
					byDate[w.Date] = len(points)
					points = append(points, models.ProgressPoint{
						Date:         w.Date,
						Weight:       s.Weight,
						Reps:         s.Reps,
						Estimated1RM: rm,
						MaxWeight:    s.Weight,
					})
					continue
				}
				p := &points[idx]
				if rm > p.Estimated1RM {
					p.Weight, p.Reps, p.Estimated1RM = s.Weight, s.Reps, rm
				}
				p.MaxWeight = max(p.MaxWeight, s.Weight)
			}
		}
	}
	return points
}
