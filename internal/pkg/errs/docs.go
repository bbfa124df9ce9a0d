// Package errs provides standardized error types for the redemption application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - InvalidTransitionError: For illegal fulfillment status jumps
//   - ExternalCallError: For failed wallet/ledger calls, tagged with the call phase
//   - PersistenceError: For store writes that fail after an external call succeeded
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The phase carried by ExternalCallError is load-bearing: failures before
// broadcast are safe to retry, while failures at or after broadcast are
// ambiguous and must be reconciled before any retry is allowed.
package errs
