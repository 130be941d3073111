package apperror

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Domain error classes. Services return these as values; handlers map them
// to transport codes with errors.Is / errors.As.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateIdentity = errors.New("username or email already registered")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError reports malformed or missing caller input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func Validationf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PartialFailureError reports a multi-step write that committed its first
// step and failed a later one. OrphanUserID identifies the row left behind
// for a compensating delete.
type PartialFailureError struct {
	OrphanUserID uuid.UUID
	Step         string
	Err          error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("partial failure at %s, orphaned user %s: %v", e.Step, e.OrphanUserID, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

// StoreError wraps a record-store collaborator failure. It is the only
// class that carries an underlying cause across the domain boundary.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func Store(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

func NotFound(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}
