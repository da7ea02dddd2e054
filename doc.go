// Package pvframework validates in-memory data against a registry of
// validators.
//
// A validator is an ordinary Go function wrapped with package validator. A
// mapping from package mapping binds each of its parameters to a literal
// value, a dotted path or a locator query from package locator. The Manager
// keeps the registered mappings and, for every instance, resolves the
// argument sets, checks them and invokes the validators concurrently.
//
//	isNumeric := validator.MustNew("is_numeric", func(value string) error {
//		if _, err := strconv.Atoi(value); err != nil {
//			return fmt.Errorf("%q is not numeric", value)
//		}
//		return nil
//	}, validator.Required("value"))
//
//	m := pvframework.NewManager(pvframework.WithLogger(log))
//	byPath, _ := mapping.NewPath(isNumeric, map[string]string{"value": "customer.number"})
//	m.MustRegister(byPath)
//
//	res, err := m.Validate(ctx, order)
//	if err != nil {
//		// a mapping is misconfigured, e.g. mapping.ErrIterationLengthMismatch
//	}
//	for _, e := range res.Errors() {
//		fmt.Println(e.ID, e.Kind, e.Location, e.Cause)
//	}
//
// # Findings
//
// Every problem found in the data becomes a *ValidationError in the Result,
// never an error from Validate:
//
//   - KindMissingValue: a required parameter resolved to no value; the
//     validator is not called.
//   - KindTypeMismatch: a value does not conform to the declared parameter
//     type; the validator is not called.
//   - KindFunctionRaised: the validator returned an error or panicked.
//
// Registrations in ModeWarning report findings without failing the instance.
// Each finding carries a stable error ID derived from the validator name, the
// kind and the type of its cause, or the ID pinned with WithErrorID.
//
// # Concurrency
//
// All invocations of one run execute in their own goroutines and are joined
// before Validate returns. Findings are appended under a mutex. The Result is
// sealed afterwards, and its aggregates are computed once on first access.
// A validator that never returns blocks Validate unless the registration has
// a timeout.
package pvframework
