package markdown

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/claude/gymlog/internal/models"
)

var (
	// dateHeaderRe matches: ### 2024-01-10
	dateHeaderRe = regexp.MustCompile(`^###\s*(\d{4}-\d{2}-\d{2})`)

	// exerciseHeaderRe matches an unindented ordinal line: 1. Жим
	exerciseHeaderRe = regexp.MustCompile(`^\d+\.\s*(.+)`)

	// setLineRe matches an indented ordinal line: "\t1. 80 на 8" or "    2. На 10"
	setLineRe = regexp.MustCompile(`^\s+\d+\.\s*(.+)`)
)

type state int

const (
	stateIdle     state = iota // no workout open
	stateWorkout               // workout open, no exercise
	stateExercise              // workout and exercise open
)

// parser holds the state of one document sweep. workout is meaningful only
// outside stateIdle; exercise, weight and setNum only in stateExercise.
type parser struct {
	state    state
	workouts []models.Workout
	workout  models.Workout
	exercise models.ExerciseEntry
	weight   float64
	setNum   int
}

// Parse reads a markdown workout log and returns its workouts in source order.
// Unparseable set lines are dropped; exercises without sets and workouts
// without exercises are discarded. Lines have no length limit.
func Parse(r io.Reader) ([]models.Workout, error) {
	br := bufio.NewReader(r)
	p := &parser{}
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			p.line(strings.TrimSuffix(line, "\n"))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	p.closeWorkout()
	return p.workouts, nil
}

func (p *parser) line(raw string) {
	line := strings.TrimRight(raw, " \t\r")

	if line == "" || strings.HasPrefix(strings.TrimLeft(line, " \t"), "[[") {
		return
	}

	if m := dateHeaderRe.FindStringSubmatch(line); m != nil {
		p.closeWorkout()
		p.workout = models.Workout{Date: m[1]}
		p.weight = 0
		p.state = stateWorkout
		return
	}

	if m := exerciseHeaderRe.FindStringSubmatch(line); m != nil {
		if p.state == stateIdle {
			return
		}
		p.closeExercise()
		p.exercise = models.ExerciseEntry{Exercise: strings.TrimSpace(m[1])}
		p.weight = 0
		p.setNum = 0
		p.state = stateExercise
		return
	}

	if m := setLineRe.FindStringSubmatch(line); m != nil {
		if p.state != stateExercise {
			return
		}
		// The ordinal advances even when the line is dropped below.
		p.setNum++
		vals, carry, ok := ParseSetLine(m[1], p.weight)
		p.weight = carry
		if !ok {
			return
		}
		p.exercise.Sets = append(p.exercise.Sets, models.Set{
			Number: p.setNum,
			Weight: vals.Weight,
			Reps:   vals.Reps,
			Note:   vals.Note,
		})
	}
}

// closeExercise appends the open exercise to its workout if it has sets.
func (p *parser) closeExercise() {
	if p.state != stateExercise {
		return
	}
	if len(p.exercise.Sets) > 0 {
		p.workout.Entries = append(p.workout.Entries, p.exercise)
	}
	p.exercise = models.ExerciseEntry{}
	p.state = stateWorkout
}

// closeWorkout closes the open exercise, then appends the open workout if it
// has entries.
func (p *parser) closeWorkout() {
	p.closeExercise()
	if p.state != stateWorkout {
		return
	}
	if len(p.workout.Entries) > 0 {
		p.workouts = append(p.workouts, p.workout)
	}
	p.workout = models.Workout{}
	p.state = stateIdle
}
