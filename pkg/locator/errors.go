package locator

import "errors"

var (
	// ErrMissingValue is reported for a branch whose member could not be resolved.
	ErrMissingValue = errors.New("value not provided")

	// ErrTypeMismatch is returned by RequiredField when the resolved value has another type.
	ErrTypeMismatch = errors.New("value has unexpected type")

	// ErrInvalidExpression is returned by Compile for malformed query expressions.
	ErrInvalidExpression = errors.New("invalid query expression")
)

// MissingValueError describes a member that could not be resolved.
type MissingValueError struct {
	// Location is the label the value would have had.
	Location string
	// Member is the name that failed to resolve.
	Member string
}

func (e *MissingValueError) Error() string {
	return e.Location + ": " + ErrMissingValue.Error()
}

func (e *MissingValueError) Unwrap() error {
	return ErrMissingValue
}
