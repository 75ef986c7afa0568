package pattern

import (
	"regexp"
	"strings"
	"time"
)

// integerRe matches whole numbers: optional leading sign, digits only,
// no decimal point, no exponent. We match by shape rather than strconv so
// that arbitrarily large integers still classify as integers.
var integerRe = regexp.MustCompile(`^[+-]?\d+$`)

// floatRe matches decimal numbers, including exponent notation. Values that
// also satisfy integerRe are classified as integers by priority, so IsFloat
// excludes them explicitly. We deliberately do not use strconv.ParseFloat
// here: it accepts tokens like "NaN" and "Inf", which must classify as text.
var floatRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// dateLayouts pairs a structural pre-screen with the layout used to validate
// the value as a real calendar date. The pre-screen keeps time.Parse calls
// off the hot path for obviously non-date values. The same catalog is applied
// to every value within one inference run.
var dateLayouts = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), "2006-01-02"},
	{regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`), "2006/01/02"},
	{regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`), "01/02/2006"},
	{regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`), "01-02-2006"},
}

// booleanVocabulary is the fixed set of tokens recognized as booleans,
// matched case-insensitively.
//
// Single-letter tokens (t/f/y/n) and numeric flags (1/0) are deliberately
// excluded: single letters belong to the short-categorical class (a gender
// column of M/F must not split into boolean-vs-categorical votes), and
// numeric flags classify as integers per the integer-over-boolean tie-break.
var booleanVocabulary = map[string]struct{}{
	"true":  {},
	"false": {},
	"yes":   {},
	"no":    {},
}

// IsInteger reports whether s is a whole number.
func IsInteger(s string) bool {
	return integerRe.MatchString(s)
}

// IsFloat reports whether s is a decimal number that is not an integer.
func IsFloat(s string) bool {
	return !integerRe.MatchString(s) && floatRe.MatchString(s)
}

// IsNumeric reports whether s parses as any number (integer or float).
func IsNumeric(s string) bool {
	return integerRe.MatchString(s) || floatRe.MatchString(s)
}

// IsDate reports whether s matches the accepted date grammar and is a real
// calendar date (2025-02-30 is rejected).
func IsDate(s string) bool {
	for _, dl := range dateLayouts {
		if dl.re.MatchString(s) {
			if _, err := time.Parse(dl.layout, s); err == nil {
				return true
			}
		}
	}
	return false
}

// IsBoolean reports whether s is a boolean-vocabulary token.
func IsBoolean(s string) bool {
	_, ok := booleanVocabulary[strings.ToLower(s)]
	return ok
}

// IsShortCategorical reports whether s is a 1-3 character alphabetic code.
func IsShortCategorical(s string) bool {
	if len(s) == 0 || len(s) > 3 {
		return false
	}
	for _, r := range s {
		if !isLetter(r) {
			return false
		}
	}
	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
