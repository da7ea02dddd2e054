// Package mapping binds the parameters of a validator to values.
//
// Four mappings are provided:
//
//   - Direct binds parameters to literal values.
//   - Path binds parameters to dotted member paths; one invocation per instance.
//   - Query binds parameters to locators and invokes the validator for the
//     full cross product of the resolved values.
//   - ParallelQuery binds parameters to locators and pairs the resolved values
//     positionally. Sequences of length one are broadcast; other differing
//     lengths fail with ErrIterationLengthMismatch.
//
// Every mapping checks its bindings against the validator when it is built:
// binding an undeclared name fails with ErrUnknownParameter and leaving a
// required parameter unbound fails with ErrUnmappedParameter. Unbound optional
// parameters take their default.
//
// Provide turns an instance into a list of provisions, one per planned
// invocation. A provision either carries an ArgumentSet or, when a required
// value is absent, the *locator.MissingValueError describing where it was
// expected.
//
// Context-aware validators can read their own argument set with Param:
//
//	func checkEmail(ctx context.Context, email string) error {
//		arg, err := mapping.Param(ctx, "email")
//		if err == nil && !arg.Provided {
//			return nil
//		}
//		// ...
//	}
package mapping
