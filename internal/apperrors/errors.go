package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the actor is not allowed to perform the requested action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the operation lost a race against a concurrent update
// and the caller must re-observe the current state before retrying.
var ErrConflict = errors.New("conflict with concurrent update")

// ErrInsufficientCredits indicates a debit would drive a credit balance negative.
var ErrInsufficientCredits = errors.New("insufficient credits")

// ErrSelfExchange indicates a learner requested an exchange for their own skill.
var ErrSelfExchange = errors.New("cannot request an exchange for your own skill")

// ErrInvalidTransition indicates the requested status edge does not exist
// from the exchange's current status.
var ErrInvalidTransition = errors.New("invalid exchange status transition")

// ErrInternal indicates an unexpected failure that should not be exposed in detail.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying error with an HTTP-ish code and a message
// suitable for logging. Use errors.Is against the sentinel errors above for
// control flow; AppError carries context across layers.
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

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
