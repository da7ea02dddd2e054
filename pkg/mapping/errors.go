package mapping

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrUnknownParameter is returned when a mapping binds a name the validator does not declare.
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrUnmappedParameter is returned when a required parameter has no binding.
	ErrUnmappedParameter = errors.New("required parameter not mapped")

	// ErrNilLocator is returned when a query mapping binds a parameter to a nil locator.
	ErrNilLocator = errors.New("nil locator")

	// ErrIterationLengthMismatch is returned by parallel mappings whose sequences cannot be zipped.
	ErrIterationLengthMismatch = errors.New("iteration length mismatch")

	// ErrNoArguments is returned by Param when the context carries no argument set.
	ErrNoArguments = errors.New("no arguments in context")
)

// ConfigError reports a mapping that does not fit its validator.
type ConfigError struct {
	Validator string
	Params    []string
	Err       error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("mapping for validator %q: %v: %s", e.Validator, e.Err, strings.Join(e.Params, ", "))
}

func (e *ConfigError) Unwrap() error { return e.Err }

// LengthMismatchError reports the resolved sequence length of every parameter
// of a parallel mapping that could not be zipped.
type LengthMismatchError struct {
	Validator string
	Lengths   map[string]int
}

func (e *LengthMismatchError) Error() string {
	names := slices.Sorted(maps.Keys(e.Lengths))
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, e.Lengths[name])
	}
	return fmt.Sprintf("validator %q: %v: all sequences must have the same length or be scalar (%s)",
		e.Validator, ErrIterationLengthMismatch, strings.Join(parts, ", "))
}

func (e *LengthMismatchError) Unwrap() error { return ErrIterationLengthMismatch }
