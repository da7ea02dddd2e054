package rules

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	numericStringRegex = regexp.MustCompile(`^[0-9]+$`)
	alphanumericRegex  = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// NonEmpty fails for strings that are empty after trimming whitespace.
func NonEmpty(value string) error {
	if strings.TrimSpace(value) == "" {
		return violation("non_empty", ErrFieldRequired, "must not be empty", nil)
	}
	return nil
}

// Numeric fails unless value consists of ASCII digits only.
func Numeric(value string) error {
	if !numericStringRegex.MatchString(value) {
		return violation("numeric", ErrInvalidFormat, "must contain only digits",
			map[string]any{"value": value})
	}
	return nil
}

// Alphanumeric fails unless value consists of ASCII letters and digits only.
func Alphanumeric(value string) error {
	if !alphanumericRegex.MatchString(value) {
		return violation("alphanumeric", ErrInvalidFormat, "must contain only letters and digits",
			map[string]any{"value": value})
	}
	return nil
}

// MinLength counts runes, not bytes.
func MinLength(value string, minLen int) error {
	if n := utf8.RuneCountInString(value); n < minLen {
		return violation("min_length", ErrInvalidLength, "is too short",
			map[string]any{"min": minLen, "length": n})
	}
	return nil
}

// MaxLength counts runes, not bytes.
func MaxLength(value string, maxLen int) error {
	if n := utf8.RuneCountInString(value); n > maxLen {
		return violation("max_length", ErrInvalidLength, "is too long",
			map[string]any{"max": maxLen, "length": n})
	}
	return nil
}

// MatchesPattern fails when value does not match the regular expression.
// Compiled patterns are cached.
func MatchesPattern(value, pattern string) error {
	re, err := compilePattern(pattern)
	if err != nil {
		return violation("pattern", ErrInvalidValue, "has an invalid pattern",
			map[string]any{"pattern": pattern, "error": err.Error()})
	}
	if !re.MatchString(value) {
		return violation("pattern", ErrInvalidFormat, "does not match "+pattern,
			map[string]any{"pattern": pattern, "value": value})
	}
	return nil
}
