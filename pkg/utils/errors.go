package utils

import (
	"errors"
	"net/http"
)

// ErrorKind classifies a failed operation. Every service error is exactly one kind;
// anything else surfaces as a generic internal error.
type ErrorKind string

const (
	KindForbidden         ErrorKind = "FORBIDDEN"
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindInvalidState      ErrorKind = "INVALID_STATE"
	KindInvalidTransition ErrorKind = "INVALID_TRANSITION"
	KindConflict          ErrorKind = "CONFLICT"
	KindValidation        ErrorKind = "VALIDATION"
)

// AppError carries an HTTP-style status code alongside a human-readable message.
type AppError struct {
	Kind    ErrorKind
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewForbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Code: http.StatusForbidden, Message: message}
}

func NewNotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: http.StatusNotFound, Message: message}
}

func NewInvalidState(message string) *AppError {
	return &AppError{Kind: KindInvalidState, Code: http.StatusBadRequest, Message: message}
}

func NewInvalidTransition(message string) *AppError {
	return &AppError{Kind: KindInvalidTransition, Code: http.StatusBadRequest, Message: message}
}

func NewConflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Code: http.StatusConflict, Message: message}
}

func NewValidation(message string) *AppError {
	return &AppError{Kind: KindValidation, Code: http.StatusBadRequest, Message: message}
}

// AsAppError unwraps err into an *AppError if it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
