package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of the
// resource (e.g. settling an already settled remittance).
var ErrConflict = errors.New("conflicting state")

// ErrStorageUnavailable indicates that the underlying store could not be reached.
var ErrStorageUnavailable = errors.New("storage unavailable")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
// Repositories use it to surface storage failures without leaking driver details.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// PartialFailure reports a best-effort aggregate where some sub-reads failed.
// The overall result is still usable; Items lists what could not be read.
type PartialFailure struct {
	Items map[string]error
}

func (e *PartialFailure) Error() string {
	ids := make([]string, 0, len(e.Items))
	for id := range e.Items {
		ids = append(ids, id)
	}
	return fmt.Sprintf("partial failure for %d item(s): %s", len(e.Items), strings.Join(ids, ", "))
}

// NewPartialFailure creates a PartialFailure from a per-item error map.
func NewPartialFailure(items map[string]error) *PartialFailure {
	return &PartialFailure{Items: items}
}
