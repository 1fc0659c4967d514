package normalize

import (
	"regexp"
	"strings"
)

// freeTextKeywords marks course names that are descriptive pages rather
// than class sections; such names are displayed as-is.
var freeTextKeywords = []string{
	"form", "handbook", "lounge", "orientation",
	"training", "program", "service", "consent", "student",
}

var (
	// bracketedPattern matches the registrar form
	// "[<term>_<CODE>_<SECTION>] - <free text>".
	bracketedPattern = regexp.MustCompile(`^\[([^\]_]+)_([^\]_]+)_([^\]_]+)\]`)

	// canonicalPattern matches an already-canonical "<CODE> - <SECTION>".
	canonicalPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]* - [A-Za-z0-9]+$`)

	// leadingCodePattern matches a leading letters-then-digits course code.
	leadingCodePattern = regexp.MustCompile(`^[A-Za-z]+[0-9]+`)
)

// CanonicalCourseLabel normalizes an upstream course name to
// "<CODE> - <SECTION>" when the name is recognizable as a class section.
// Rules apply strictly top to bottom:
//
//  1. bracketed registrar names yield the embedded code and section;
//  2. already-canonical names pass through, making the function idempotent;
//  3. descriptive names (multi-word, or containing a known keyword) are
//     returned unchanged;
//  4. anything else falls back to the leading letters+digits token, or
//     the first whitespace-delimited token when no code is recognizable.
func CanonicalCourseLabel(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return trimmed
	}

	if m := bracketedPattern.FindStringSubmatch(trimmed); m != nil {
		return m[2] + " - " + m[3]
	}

	if canonicalPattern.MatchString(trimmed) {
		return trimmed
	}

	if isFreeText(trimmed) {
		return trimmed
	}

	if code := leadingCodePattern.FindString(trimmed); code != "" {
		return code
	}

	return strings.Fields(trimmed)[0]
}

// isFreeText reports whether a course name reads as a descriptive page
// title rather than a section code.
func isFreeText(name string) bool {
	if len(strings.Fields(name)) > 1 {
		return true
	}

	lower := strings.ToLower(name)
	for _, kw := range freeTextKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}

	return false
}
