package errs

import (
	"errors"
	"fmt"
)

var ErrConcurrencyConflict = errors.New("concurrency conflict")

// ConcurrencyConflictError is returned by persistence adapters when an aggregate
// was written by someone else after it had been read. ExpectedVersion is the
// version the caller held when it attempted the write.
//
// Callers are expected to re-read the aggregate and retry the whole operation
// against the fresh state; the error is never resolved below the application layer.
type ConcurrencyConflictError struct {
	ParamName       string
	ID              any
	ExpectedVersion int64
	Cause           error
}

func NewConcurrencyConflictError(paramName string, id any, expectedVersion int64) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{ParamName: paramName, ID: id, ExpectedVersion: expectedVersion}
}

func NewConcurrencyConflictErrorWithCause(
	paramName string, id any, expectedVersion int64, cause error,
) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{ParamName: paramName, ID: id, ExpectedVersion: expectedVersion, Cause: cause}
}

func (e *ConcurrencyConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %s was modified after version %d",
		ErrConcurrencyConflict, e.ParamName, sanitize(e.ID), e.ExpectedVersion)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}
