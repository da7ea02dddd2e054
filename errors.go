package pvframework

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/pvframework/pkg/mapping"
)

var (
	// ErrNilMapping is returned when registering a nil mapping.
	ErrNilMapping = errors.New("pvframework: nil mapping")

	// ErrInvalidMode is returned for an unknown validation mode.
	ErrInvalidMode = errors.New("pvframework: invalid validation mode")

	// ErrTimeout is the cause recorded for invocations exceeding their registration timeout.
	ErrTimeout = errors.New("pvframework: validator timed out")
)

const instanceExcerptLen = 80

// ValidationError is one finding recorded during a validation run.
type ValidationError struct {
	ID        int
	Kind      Kind
	Mode      Mode
	Validator string
	Mapping   string
	// Location identifies where in the instance the arguments were found.
	Location string
	// Arguments is nil when a required value was missing.
	Arguments *mapping.ArgumentSet
	Cause     error
	Instance  any
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d, %s: %v", e.ID, e.Kind, e.Cause)
	fmt.Fprintf(&b, "\n\tInstance: %s", excerpt(e.Instance))
	fmt.Fprintf(&b, "\n\tError ID: %d", e.ID)
	fmt.Fprintf(&b, "\n\tError type: %s", e.Kind)
	fmt.Fprintf(&b, "\n\tValidator: %s", e.Validator)
	if e.Location != "" {
		fmt.Fprintf(&b, "\n\tLocation: %s", e.Location)
	}
	if e.Arguments == nil {
		b.WriteString("\n\tParameter information: No info")
	} else {
		b.WriteString("\n\tParameter information:\n")
		b.WriteString(e.Arguments.Format("\t\t"))
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// Failure reports whether the finding fails the instance.
func (e *ValidationError) Failure() bool { return e.Mode != ModeWarning }

func excerpt(instance any) string {
	s := fmt.Sprintf("%+v", instance)
	if utf8.RuneCountInString(s) <= instanceExcerptLen {
		return s
	}
	return string([]rune(s)[:instanceExcerptLen-3]) + "..."
}
