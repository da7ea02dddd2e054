// Package validator wraps plain Go functions as validators.
//
// A validator is a function whose parameters are declared by name, in
// positional order, with Required or Optional descriptors. The descriptors
// are resolved once at construction and never change afterwards, so a
// Validator can be shared by any number of mappings and goroutines.
//
//	isNumeric := validator.MustNew("is_numeric", func(value string) error {
//		if _, err := strconv.Atoi(value); err != nil {
//			return fmt.Errorf("%q is not numeric", value)
//		}
//		return nil
//	}, validator.Required("value"))
//
// A function may take a leading context.Context. Such validators receive
// the context of the validation run and may block on I/O.
//
// # Failing
//
// A validator fails by returning a non-nil error or by panicking. Invoke
// recovers panics into *PanicError and never lets them escape.
//
// # Type conformance
//
// TypeChecker decides whether a provided value conforms to the declared
// parameter type before a call is made. Assignable is strict; Convertible
// also accepts numeric conversions and values of the same underlying kind.
package validator
