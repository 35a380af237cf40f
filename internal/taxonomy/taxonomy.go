package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"github.com/claude/gymlog/internal/models"
	"gopkg.in/yaml.v3"
)

// Taxonomy is an immutable exercise -> muscle-group lookup together with the
// muscle-group tree. Build one with Default or Load and share it freely.
type Taxonomy struct {
	groups    []models.MuscleGroup
	byName    map[string]models.MuscleGroup
	exercises map[string]string
}

// Group describes one muscle-group node in a taxonomy file.
type Group struct {
	ID       int64  `yaml:"id"`
	Name     string `yaml:"name"`
	ParentID *int64 `yaml:"parent_id"`
}

// File is the on-disk layout of a taxonomy override.
//
//	groups:
//	  - {id: 1, name: Грудь}
//	  - {id: 2, name: Спина}
//	  - {id: 3, name: Широчайшие, parent_id: 2}
//	exercises:
//	  жим: Грудь
//	  подтягивания: Широчайшие
type File struct {
	Groups    []Group           `yaml:"groups"`
	Exercises map[string]string `yaml:"exercises"`
}

// New validates the tree and mapping and returns a Taxonomy. Exercise keys are
// lower-cased and trimmed.
func New(groups []models.MuscleGroup, exercises map[string]string) (*Taxonomy, error) {
	t := &Taxonomy{
		groups:    make([]models.MuscleGroup, len(groups)),
		byName:    make(map[string]models.MuscleGroup, len(groups)),
		exercises: make(map[string]string, len(exercises)),
	}
	copy(t.groups, groups)

	byID := make(map[int64]models.MuscleGroup, len(groups))
	for _, g := range groups {
		if g.Name == "" {
			return nil, fmt.Errorf("muscle group %d has no name", g.ID)
		}
		if _, dup := byID[g.ID]; dup {
			return nil, fmt.Errorf("duplicate muscle group id %d", g.ID)
		}
		if _, dup := t.byName[g.Name]; dup {
			return nil, fmt.Errorf("duplicate muscle group name %q", g.Name)
		}
		byID[g.ID] = g
		t.byName[g.Name] = g
	}
	for _, g := range groups {
		if g.ParentID == nil {
			continue
		}
		parent, ok := byID[*g.ParentID]
		if !ok {
			return nil, fmt.Errorf("muscle group %q references unknown parent %d", g.Name, *g.ParentID)
		}
		if parent.ParentID != nil {
			return nil, fmt.Errorf("muscle group %q nests below sub-group %q", g.Name, parent.Name)
		}
	}

	for name, group := range exercises {
		if _, ok := t.byName[group]; !ok {
			return nil, fmt.Errorf("exercise %q maps to unknown muscle group %q", name, group)
		}
		t.exercises[normalize(name)] = group
	}
	return t, nil
}

// Load reads a taxonomy override from a YAML file.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing taxonomy file: %w", err)
	}
	groups := make([]models.MuscleGroup, 0, len(f.Groups))
	for _, g := range f.Groups {
		groups = append(groups, models.MuscleGroup{ID: g.ID, Name: g.Name, ParentID: g.ParentID})
	}
	t, err := New(groups, f.Exercises)
	if err != nil {
		return nil, fmt.Errorf("taxonomy file %s: %w", path, err)
	}
	return t, nil
}

// FromFile returns the taxonomy in path, or Default when path is empty.
func FromFile(path string) (*Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Lookup resolves an exercise name to its muscle group, ignoring case and
// surrounding whitespace.
func (t *Taxonomy) Lookup(exercise string) (string, bool) {
	g, ok := t.exercises[normalize(exercise)]
	return g, ok
}

// Group returns the node with the given name.
func (t *Taxonomy) Group(name string) (models.MuscleGroup, bool) {
	g, ok := t.byName[name]
	return g, ok
}

// Groups returns a copy of the muscle-group tree in declaration order.
func (t *Taxonomy) Groups() []models.MuscleGroup {
	out := make([]models.MuscleGroup, len(t.groups))
	copy(out, t.groups)
	return out
}

// Size returns the number of mapped exercise names.
func (t *Taxonomy) Size() int {
	return len(t.exercises)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
