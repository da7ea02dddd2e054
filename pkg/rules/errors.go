package rules

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldRequired is wrapped when a value is empty.
	ErrFieldRequired = errors.New("field is required")

	// ErrInvalidLength is wrapped when a value has an invalid length.
	ErrInvalidLength = errors.New("invalid length")

	// ErrInvalidValue is wrapped when a value is not among the accepted ones.
	ErrInvalidValue = errors.New("invalid value")

	// ErrOutOfRange is wrapped when a numeric value is out of the allowed range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidFormat is wrapped when a value has an invalid format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidChecksum is wrapped when a check digit does not match.
	ErrInvalidChecksum = errors.New("invalid checksum")

	// ErrUnknownRule is returned by Catalog.Lookup for unregistered names.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrUnknownParameter is returned when a bound constant names no rule parameter.
	ErrUnknownParameter = errors.New("unknown rule parameter")

	// ErrDuplicateRule is returned by Catalog.Register for a name in use.
	ErrDuplicateRule = errors.New("rule already registered")
)

// Violation is the error returned by every rule in this package.
// TranslationKey and TranslationValues let callers render localized messages.
type Violation struct {
	Rule              string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any

	err error
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Rule, v.Message)
}

func (v *Violation) Unwrap() error { return v.err }

func violation(rule string, sentinel error, message string, values map[string]any) *Violation {
	return &Violation{
		Rule:              rule,
		Message:           message,
		TranslationKey:    "validation." + rule,
		TranslationValues: values,
		err:               sentinel,
	}
}
