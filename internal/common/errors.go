package common

import (
	"errors"
	"net/http"
)

// Error codes rendered in the error envelope.
const (
	CodeInvalidArgument  = "INVALID_ARGUMENT"
	CodeNotFound         = "NOT_FOUND"
	CodeInternal         = "INTERNAL"
	CodeInvalidState     = "INVALID_STATE"
	CodeIdempotentReplay = "IDEMPOTENT_REPLAY"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeRateLimited      = "RATE_LIMITED"
)

// AppError represents an error with an attached code and HTTP status.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WithDetails attaches structured details rendered in the error envelope.
func (e *AppError) WithDetails(details any) *AppError {
	if e != nil {
		e.Details = details
	}
	return e
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// InvalidArgument reports input that cannot be processed as submitted.
func InvalidArgument(message string, err error) *AppError {
	return NewAppError(CodeInvalidArgument, message, http.StatusBadRequest, err)
}

// NotFound reports a referenced record that does not exist.
func NotFound(message string, err error) *AppError {
	return NewAppError(CodeNotFound, message, http.StatusNotFound, err)
}

// Internal reports stored data or infrastructure that failed unexpectedly.
func Internal(message string, err error) *AppError {
	return NewAppError(CodeInternal, message, http.StatusInternalServerError, err)
}

// InvalidState reports a transition the current state does not allow.
func InvalidState(message string, err error) *AppError {
	return NewAppError(CodeInvalidState, message, http.StatusConflict, err)
}

// IsAppError checks whether the error is an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}
