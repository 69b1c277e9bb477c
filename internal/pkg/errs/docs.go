// Package errs provides the standardized error types used across the order
// pipeline. It implements a consistent pattern for error creation, formatting,
// and unwrapping.
//
// Three failure classes exist:
//   - Validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError.
//     The caller supplied bad input; no side effect has occurred.
//   - Not found: ObjectNotFoundError. A referenced object does not exist;
//     recoverable and informational.
//   - Infrastructure: InfrastructureError. The underlying store or transport
//     failed; wraps the original cause together with the operation and the
//     order id involved.
//
// Each error type follows the same pattern: a sentinel variable (for example
// ErrObjectNotFound), a struct carrying the details, constructors with and
// without a cause, and Error/Unwrap methods so errors.Is can classify a
// failure anywhere up the call stack without string matching.
package errs
