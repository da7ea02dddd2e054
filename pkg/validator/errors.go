package validator

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidSignature is returned when a callable cannot be wrapped as a validator.
	ErrInvalidSignature = errors.New("invalid validator signature")

	// ErrTypeMismatch is returned when an argument does not conform to the declared parameter type.
	ErrTypeMismatch = errors.New("argument type mismatch")

	// ErrPanicked is matched by errors produced from recovered panics.
	ErrPanicked = errors.New("validator panicked")
)

// SignatureError describes why a callable was rejected.
type SignatureError struct {
	Validator string
	Reason    string
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("validator %q: %s: %s", e.Validator, ErrInvalidSignature.Error(), e.Reason)
}

func (e *SignatureError) Unwrap() error { return ErrInvalidSignature }

// ArgumentError is returned by Invoke when an argument cannot be passed to the callable.
type ArgumentError struct {
	Param    string
	Expected reflect.Type
	Value    any
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("parameter %q: %s: expected %s, got %T", e.Param, ErrTypeMismatch.Error(), e.Expected, e.Value)
}

func (e *ArgumentError) Unwrap() error { return ErrTypeMismatch }

// PanicError wraps a value recovered from a panicking validator.
type PanicError struct {
	Validator string
	Value     any
	Stack     []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("validator %q panicked: %v", e.Validator, e.Value)
}

// Unwrap exposes the panic value when it is an error, together with ErrPanicked.
func (e *PanicError) Unwrap() []error {
	if err, ok := e.Value.(error); ok {
		return []error{ErrPanicked, err}
	}
	return []error{ErrPanicked}
}
