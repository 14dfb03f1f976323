package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels wrapped by the constructors below, matched with errors.Is
var (
	ErrBadRequest  = errors.New("bad request")
	ErrConflict    = errors.New("resource conflict")
	ErrInternal    = errors.New("internal server error")
	ErrValidation  = errors.New("validation error")
	ErrUnavailable = errors.New("dependency unavailable")
)

// AppError is an error that knows how it is rendered at the HTTP edge
type AppError struct {
	Err        error             `json:"-"`
	Message    string            `json:"message"`
	Code       string            `json:"code"`
	StatusCode int               `json:"status_code"`
	Details    map[string]string `json:"details,omitempty"`
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

// New creates an AppError without a wrapped cause
func New(code string, message string, statusCode int) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: statusCode}
}

func newKind(kind error, code string, status int, message string) *AppError {
	return &AppError{Err: kind, Code: code, Message: message, StatusCode: status}
}

func BadRequest(message string) *AppError {
	return newKind(ErrBadRequest, "BAD_REQUEST", http.StatusBadRequest, message)
}

func Conflict(message string) *AppError {
	return newKind(ErrConflict, "CONFLICT", http.StatusConflict, message)
}

func Internal(message string) *AppError {
	return newKind(ErrInternal, "INTERNAL_ERROR", http.StatusInternalServerError, message)
}

// Validation reports per-field problems, keyed by lowercase field name
func Validation(details map[string]string) *AppError {
	appErr := newKind(ErrValidation, "VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	appErr.Details = details
	return appErr
}

// Unavailable reports that a backing store could not be reached. The cause stays
// in the error chain for logging; clients only see message.
func Unavailable(message string, cause error) *AppError {
	kind := ErrUnavailable
	if cause != nil {
		kind = fmt.Errorf("%w: %w", ErrUnavailable, cause)
	}
	return newKind(kind, "SERVICE_UNAVAILABLE", http.StatusServiceUnavailable, message)
}

// Is checks if the error matches a target error
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As attempts to convert an error to a specific type
func As(err error, target any) bool {
	return errors.As(err, target)
}
