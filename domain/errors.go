package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeStorage      ErrorCode = "STORAGE"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error. UserID is optional and carried for
// audit correlation only; it is never part of the user-visible message.
type Error struct {
	Code    ErrorCode
	Message string
	UserID  string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// AuthFailure builds the single well-known authentication failure. The
// message shape is uniform across causes so callers cannot distinguish an
// unknown email from a wrong password.
func AuthFailure(message string) *Error {
	return &Error{Code: ErrCodeUnauthorized, Message: message}
}

// AuthFailureFor is AuthFailure with a userId attached for audit correlation.
func AuthFailureFor(userID, message string) *Error {
	return &Error{Code: ErrCodeUnauthorized, Message: message, UserID: userID}
}

// StorageFailure wraps an infrastructure error from the durable-storage
// collaborator. These are fatal: the facade logs them and re-returns them
// unchanged instead of reinterpreting them as authentication outcomes.
func StorageFailure(op string, err error) *Error {
	return &Error{Code: ErrCodeStorage, Message: fmt.Sprintf("storage: %s", op), Err: err}
}

// Common domain errors.
var (
	ErrUserNotFound       = NewError(ErrCodeNotFound, "user not found")
	ErrSessionNotFound    = NewError(ErrCodeNotFound, "session not found")
	ErrCredentialNotFound = NewError(ErrCodeNotFound, "credential not found")
	ErrInvalidCredentials = AuthFailure("invalid credentials")
	ErrMalformedToken     = AuthFailure("malformed token")
	ErrInvalidPayload     = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// IsFatal reports whether the error must propagate unchanged rather than be
// converted into an authentication outcome. Storage failures are fatal, as
// is anything that carries no domain classification at all.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var dErr *Error
	if !errors.As(err, &dErr) {
		return true
	}
	return dErr.Code == ErrCodeStorage || dErr.Code == ErrCodeInternal
}
