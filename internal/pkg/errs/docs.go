// Package errs provides standardized error types for the order service.
//
// Every error kind follows the same shape:
//   - a sentinel error variable (e.g. ErrValueIsRequired) usable with errors.Is
//   - a struct type carrying the offending parameter and an optional Cause
//   - constructors with and without cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Kinds:
//   - ObjectNotFoundError: an aggregate could not be located
//   - ValueIsInvalidError, ValueIsOutOfRangeError, ValueIsRequiredError: input validation
//   - VersionIsInvalidError: a malformed version token
//   - ConcurrencyConflictError: an optimistic-locking write lost the race
package errs
