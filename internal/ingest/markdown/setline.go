package markdown

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// noteRe matches a parenthesized annotation: 80 на 8 (тяжело)
	noteRe = regexp.MustCompile(`\(([^)]+)\)`)

	// weightRepsRe matches: 80 на 8, 49 45 на 16
	weightRepsRe = regexp.MustCompile(`(?i)^([\d\s]+?)\s*на\s*(\d+)`)

	// repsOnlyRe matches: На 10
	repsOnlyRe = regexp.MustCompile(`(?i)^на\s*(\d+)`)

	// bareRepsRe matches: 10
	bareRepsRe = regexp.MustCompile(`^(\d+)$`)
)

// SetValues is the outcome of tokenizing one set line.
type SetValues struct {
	Weight float64
	Reps   int
	Note   *string
}

// ParseSetLine tokenizes a set fragment (ordinal marker already removed).
// prevWeight is the weight carried from the previous set of the same exercise.
// It returns the parsed values, the weight to carry into the next call, and
// whether the fragment was understood. On failure the carried weight is
// returned unchanged.
func ParseSetLine(fragment string, prevWeight float64) (SetValues, float64, bool) {
	line := strings.TrimSpace(fragment)

	var note *string
	if m := noteRe.FindStringSubmatch(line); m != nil {
		n := strings.TrimSpace(m[1])
		note = &n
		line = strings.TrimSpace(noteRe.ReplaceAllString(line, ""))
	}
	line = strings.TrimRight(line, ".")

	if m := weightRepsRe.FindStringSubmatch(line); m != nil {
		weight, err := parseWeight(m[1])
		if err != nil {
			return SetValues{}, prevWeight, false
		}
		reps, err := strconv.Atoi(m[2])
		if err != nil {
			return SetValues{}, prevWeight, false
		}
		return SetValues{Weight: weight, Reps: reps, Note: note}, weight, true
	}

	if m := repsOnlyRe.FindStringSubmatch(line); m != nil {
		reps, err := strconv.Atoi(m[1])
		if err != nil {
			return SetValues{}, prevWeight, false
		}
		return SetValues{Weight: prevWeight, Reps: reps, Note: note}, prevWeight, true
	}

	if m := bareRepsRe.FindStringSubmatch(line); m != nil {
		reps, err := strconv.Atoi(m[1])
		if err != nil {
			return SetValues{}, prevWeight, false
		}
		return SetValues{Weight: prevWeight, Reps: reps, Note: note}, prevWeight, true
	}

	return SetValues{}, prevWeight, false
}

// parseWeight resolves a whitespace-separated weight group.
// "80" -> 80, "49 45" -> 49 + 4.5 = 53.5, "49 68" -> 49 + 6.8 = 55.8.
// The second token is always divided by ten regardless of its digit count.
// Tokens past the second are ignored.
func parseWeight(s string) (float64, error) {
	parts := strings.Fields(s)
	switch len(parts) {
	case 0:
		return 0, fmt.Errorf("empty weight")
	case 1:
		return parseToken(parts[0])
	default:
		whole, err := parseToken(parts[0])
		if err != nil {
			return 0, err
		}
		frac, err := parseToken(parts[1])
		if err != nil {
			return 0, err
		}
		return whole + frac/10, nil
	}
}

func parseToken(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing weight token %q: %w", s, err)
	}
	return f, nil
}
