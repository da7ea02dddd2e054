package rules

import (
	"slices"
	"strings"
)

// OneOf fails unless value equals one of options.
func OneOf(value string, options []string) error {
	if !slices.Contains(options, value) {
		return violation("one_of", ErrInvalidValue, "must be one of "+strings.Join(options, ", "),
			map[string]any{"value": value, "options": options})
	}
	return nil
}

// NoneOf fails when value equals one of forbidden.
func NoneOf(value string, forbidden []string) error {
	if slices.Contains(forbidden, value) {
		return violation("none_of", ErrInvalidValue, "must not be "+value,
			map[string]any{"value": value, "forbidden": forbidden})
	}
	return nil
}
