package pattern

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultMinShapeValues is the number of distinct values that must share a
// shape before it is promoted to a candidate type. Requiring two avoids
// over-fitting to a single coincidental value.
const DefaultMinShapeValues = 2

// Shape is one discovered regular shape, e.g. digits "/" digits.
// Shapes are immutable after discovery.
type Shape struct {
	// Name is the human-readable shape name, e.g. "number/number" or
	// "letters-number". It appears in candidate keys and report messages.
	Name string

	// Pattern is the regular-expression source, e.g. `^\d+/\d+$`.
	Pattern string

	re *regexp.Regexp
}

// Match reports whether raw conforms to the shape.
func (s Shape) Match(raw string) bool {
	return s.re.MatchString(raw)
}

// ShapeSet is the immutable result of pass-1 shape discovery over a column.
// It is threaded into pass-2 classification as explicit context rather than
// shared mutable state, keeping inference reproducible and testable.
type ShapeSet struct {
	shapes []Shape
}

// EmptyShapeSet returns a ShapeSet with no discovered shapes.
// Classifying against it never yields a structured candidate.
func EmptyShapeSet() *ShapeSet {
	return &ShapeSet{}
}

// Shapes returns the discovered shapes in priority order (most matched
// values first).
func (ss *ShapeSet) Shapes() []Shape {
	return ss.shapes
}

// Len returns the number of discovered shapes.
func (ss *ShapeSet) Len() int {
	return len(ss.shapes)
}

// Find returns the first shape matching raw, or false if none match.
func (ss *ShapeSet) Find(raw string) (Shape, bool) {
	for _, s := range ss.shapes {
		if s.Match(raw) {
			return s, true
		}
	}
	return Shape{}, false
}

// DiscoverShapes scans the present values of a column once and promotes every
// shape signature shared by at least minValues distinct values. Values that
// already match a higher-priority base pattern (integer, float, date,
// boolean) are skipped: a column of plain integers must not also grow a
// "number" shape. Signatures consisting of a single bare token with no
// separator are likewise skipped, since they add nothing over the base
// classes (a bare "letters" shape would swallow every text column).
//
// The returned set orders shapes by descending distinct-value count, then by
// name for determinism.
func DiscoverShapes(values []string, minValues int) *ShapeSet {
	if minValues <= 0 {
		minValues = DefaultMinShapeValues
	}

	type stat struct {
		pattern  string
		distinct map[string]struct{}
	}
	stats := make(map[string]*stat)

	for _, raw := range values {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		if IsInteger(v) || IsFloat(v) || IsDate(v) || IsBoolean(v) {
			continue
		}

		name, patternSrc, ok := signature(v)
		if !ok {
			continue
		}

		st, exists := stats[name]
		if !exists {
			st = &stat{pattern: patternSrc, distinct: make(map[string]struct{})}
			stats[name] = st
		}
		st.distinct[v] = struct{}{}
	}

	shapes := make([]Shape, 0, len(stats))
	for name, st := range stats {
		if len(st.distinct) < minValues {
			continue
		}
		re, err := regexp.Compile(st.pattern)
		if err != nil {
			// Signature generation quotes all literals, so this should not
			// happen; skipping is safer than failing the whole column.
			continue
		}
		shapes = append(shapes, Shape{Name: name, Pattern: st.pattern, re: re})
	}

	counts := make(map[string]int, len(stats))
	for name, st := range stats {
		counts[name] = len(st.distinct)
	}
	sort.Slice(shapes, func(i, j int) bool {
		if counts[shapes[i].Name] != counts[shapes[j].Name] {
			return counts[shapes[i].Name] > counts[shapes[j].Name]
		}
		return shapes[i].Name < shapes[j].Name
	})

	return &ShapeSet{shapes: shapes}
}

// signature abstracts a value into a shape: digit runs become "number"
// (`\d+`), letter runs become "letters" (`[A-Za-z]+`), and everything else is
// kept as a literal separator. It returns ok=false for signatures that are a
// single bare token, which are not worth promoting.
func signature(v string) (name, patternSrc string, ok bool) {
	var nameB, patB strings.Builder
	patB.WriteString("^")

	tokens := 0
	hasSeparator := false

	runes := []rune(v)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case isDigit(r):
			for i < len(runes) && isDigit(runes[i]) {
				i++
			}
			nameB.WriteString("number")
			patB.WriteString(`\d+`)
			tokens++
		case isLetter(r):
			for i < len(runes) && isLetter(runes[i]) {
				i++
			}
			nameB.WriteString("letters")
			patB.WriteString(`[A-Za-z]+`)
			tokens++
		default:
			nameB.WriteRune(r)
			patB.WriteString(regexp.QuoteMeta(string(r)))
			hasSeparator = true
			i++
		}
	}
	patB.WriteString("$")

	// A lone "number" or "letters" token duplicates the base classes.
	if tokens <= 1 && !hasSeparator {
		return "", "", false
	}

	return nameB.String(), patB.String(), true
}
