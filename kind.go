package pvframework

import "fmt"

// Kind classifies a recorded finding.
type Kind string

const (
	// KindMissingValue is recorded when a required parameter resolved to no value.
	KindMissingValue Kind = "missing_value"
	// KindTypeMismatch is recorded when a value does not conform to the declared parameter type.
	KindTypeMismatch Kind = "type_mismatch"
	// KindFunctionRaised is recorded when the validator returned an error or panicked.
	KindFunctionRaised Kind = "function_raised"
)

func (k Kind) String() string { return string(k) }

// Mode decides whether findings of a registration fail the instance.
type Mode string

const (
	// ModeError findings count as failures.
	ModeError Mode = "error"
	// ModeWarning findings are reported but the instance still succeeds.
	ModeWarning Mode = "warning"
)

// ParseMode converts "error" or "warning" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeError, ModeWarning:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

func (m Mode) String() string { return string(m) }

// UnmarshalText lets Mode be read from environment variables and rule files.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
