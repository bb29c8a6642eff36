// ABOUTME: Semantic error classification shared across the client
// ABOUTME: Maps HTTP failures to auth-expired, validation, network, or internal

package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failure so callers can decide between retrying,
// surfacing a message, or tearing down the session.
type ErrorCode string

const (
	ErrCodeAuthExpired ErrorCode = "AUTH_EXPIRED"
	ErrCodeValidation  ErrorCode = "VALIDATION"
	ErrCodeNetwork     ErrorCode = "NETWORK"
	ErrCodeInternal    ErrorCode = "INTERNAL"
)

// Error is the client error type carrying a semantic code plus an
// optional wrapped cause.
type Error struct {
	Code    ErrorCode
	Message string
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

// NewError builds a classified error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Common errors.
var (
	ErrAuthExpired    = NewError(ErrCodeAuthExpired, "session expired")
	ErrNoRefreshToken = NewError(ErrCodeAuthExpired, "no refresh token available")
)

// IsCode reports whether err carries the given classification.
func IsCode(err error, code ErrorCode) bool {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Code == code
	}
	return false
}

// UserMessage extracts text suitable for display: the server-supplied
// detail for validation errors, a connectivity hint for network errors,
// and the given fallback otherwise.
func UserMessage(err error, fallback string) string {
	var cerr *Error
	if !errors.As(err, &cerr) {
		return fallback
	}
	switch cerr.Code {
	case ErrCodeValidation:
		if cerr.Message != "" {
			return cerr.Message
		}
	case ErrCodeNetwork:
		return "Cannot reach the backend. Check your connection."
	case ErrCodeAuthExpired:
		return "Your session has expired. Please log in again."
	}
	return fallback
}
