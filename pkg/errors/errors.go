package errors

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAuthHeader = errors.New("missing authorization header")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidRequest    = errors.New("attempt_id is required")
	ErrAttemptNotFound   = errors.New("test attempt not found")
	ErrTestNotFound      = errors.New("test not found")
	ErrAlreadySubmitted  = errors.New("test already submitted")
	ErrScoreCalculation  = errors.New("failed to calculate score")
	ErrPersistence       = errors.New("failed to save results")
)

// StoreError carries a store failure whose own message is reported to the caller.
type StoreError struct {
	Err error
}

func (e StoreError) Error() string {
	return e.Err.Error()
}

func (e StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(err error) error {
	return StoreError{Err: err}
}

// ValidationError describes a rejected request field.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s",
		e.Field, e.Value, e.Message)
}
