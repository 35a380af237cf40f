package document

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/claude/gymlog/internal/models"
	"github.com/claude/gymlog/internal/taxonomy"
)

func workout(date string, entries ...models.ExerciseEntry) models.Workout {
	return models.Workout{Date: date, Entries: entries}
}

func entry(name string, sets ...models.Set) models.ExerciseEntry {
	return models.ExerciseEntry{Exercise: name, Sets: sets}
}

func set(n int, weight float64, reps int) models.Set {
	return models.Set{Number: n, Weight: weight, Reps: reps}
}

// TestBuildSortsByDate verifies that workouts from several inputs end up in
// ascending date order, keeping input order for equal dates.
func TestBuildSortsByDate(t *testing.T) {
	in := []models.Workout{
		workout("2024-03-01", entry("Жим", set(1, 80, 8))),
		workout("2024-01-15", entry("Присед", set(1, 100, 5))),
		workout("2024-03-01", entry("Брусья", set(1, 0, 12))),
		workout("2023-12-31", entry("Жим", set(1, 70, 8))),
	}
	doc := Build(in, taxonomy.Default())

	wantDates := []string{"2023-12-31", "2024-01-15", "2024-03-01", "2024-03-01"}
	for i, w := range doc.Workouts {
		if w.Date != wantDates[i] {
			t.Errorf("workout %d date = %s, want %s", i, w.Date, wantDates[i])
		}
	}
	if doc.Workouts[2].Entries[0].Exercise != "Жим" || doc.Workouts[3].Entries[0].Exercise != "Брусья" {
		t.Error("same-day workouts lost their input order")
	}
	if in[0].Date != "2024-03-01" {
		t.Error("Build modified its input slice")
	}
}

// TestBuildExercises verifies deduplication, first-seen order and
// case-insensitive muscle-group resolution.
func TestBuildExercises(t *testing.T) {
	in := []models.Workout{
		workout("2024-01-02", entry("ЖИМ", set(1, 80, 8)), entry("Загадочное", set(1, 10, 10))),
		workout("2024-01-01", entry("Подтягивания", set(1, 0, 10))),
		workout("2024-01-03", entry("ЖИМ", set(1, 85, 5))),
	}
	doc := Build(in, taxonomy.Default())

	if len(doc.Exercises) != 3 {
		t.Fatalf("exercises = %d, want 3: %+v", len(doc.Exercises), doc.Exercises)
	}
	if doc.Exercises[0].Name != "Подтягивания" {
		t.Errorf("first exercise = %q, want Подтягивания (earliest date)", doc.Exercises[0].Name)
	}
	if doc.Exercises[1].Name != "ЖИМ" {
		t.Errorf("second exercise = %q, want ЖИМ with original casing", doc.Exercises[1].Name)
	}
	if g := doc.Exercises[1].MuscleGroup; g == nil || *g != "Грудь" {
		t.Errorf("ЖИМ muscle group = %v, want Грудь", g)
	}
	if doc.Exercises[2].MuscleGroup != nil {
		t.Errorf("Загадочное muscle group = %q, want nil", *doc.Exercises[2].MuscleGroup)
	}

	unmapped := Unmapped(doc)
	if len(unmapped) != 1 || unmapped[0] != "Загадочное" {
		t.Errorf("unmapped = %v, want [Загадочное]", unmapped)
	}
	if n := CountSets(doc); n != 4 {
		t.Errorf("CountSets = %d, want 4", n)
	}
}

// TestBuildEmpty verifies that an empty run still produces arrays, not nulls.
func TestBuildEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, Build(nil, taxonomy.Default())); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"exercises": []`) || !strings.Contains(out, `"workouts": []`) {
		t.Errorf("empty document should contain empty arrays:\n%s", out)
	}
}

// TestWriteJSONLayout verifies key names, indentation, explicit nulls and
// unescaped non-ASCII text.
func TestWriteJSONLayout(t *testing.T) {
	note := "тяжело"
	in := []models.Workout{
		workout("2024-01-10", entry("Жим", models.Set{Number: 1, Weight: 53.5, Reps: 8, Note: &note}, set(2, 53.5, 6))),
		workout("2024-01-11", entry("Непонятное", set(1, 10, 10))),
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, Build(in, taxonomy.Default())); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"{\n  \"muscle_groups\": [",
		`"name": "Грудь"`,
		`"parent_id": null`,
		`"parent_id": 2`,
		`"muscle_group": null`,
		`"exercise": "Жим"`,
		`"set_number": 1`,
		`"weight": 53.5`,
		`"note": "тяжело"`,
		`"note": null`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s", want)
		}
	}
	if strings.Contains(out, `\u04`) {
		t.Error("non-ASCII text was escaped")
	}

	var decoded models.Document
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.MuscleGroups) != 16 {
		t.Errorf("muscle groups = %d, want 16", len(decoded.MuscleGroups))
	}
}

// TestWriteJSONDeterministic verifies byte-identical output for identical input.
func TestWriteJSONDeterministic(t *testing.T) {
	in := []models.Workout{
		workout("2024-02-01", entry("Жим", set(1, 80, 8)), entry("Махи", set(1, 8, 15))),
		workout("2024-01-01", entry("Битка", set(1, 12.5, 10))),
	}
	var a, b bytes.Buffer
	if err := WriteJSON(&a, Build(in, taxonomy.Default())); err != nil {
		t.Fatal(err)
	}
	if err := WriteJSON(&b, Build(in, taxonomy.Default())); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("output differs between runs")
	}
}
