// Package errors provides standardized domain errors with codes for the MacroFactor access layer.
//
// Usage:
//
//	// In clients - return typed errors
//	if resp.StatusCode == http.StatusNotFound {
//	    return errors.NotFoundf("document %s not found", path)
//	}
//
//	// In callers - check with errors.Is
//	if errors.Is(err, errors.ErrNotFound) {
//	    // treat as "no data for that bucket"
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeAuthentication Code = "AUTHENTICATION"
	CodeNotFound       Code = "NOT_FOUND"
	CodeTransport      Code = "TRANSPORT"
	CodeDecode         Code = "DECODE"
	CodeValidation     Code = "VALIDATION"
	CodeInternal       Code = "INTERNAL"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAuthentication:
		return http.StatusUnauthorized
	case CodeValidation:
		return http.StatusBadRequest
	case CodeTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`

	// Status and Body carry the upstream HTTP response for transport
	// and authentication failures; zero/empty otherwise.
	Status int    `json:"status,omitempty"`
	Body   string `json:"body,omitempty"`

	cause error // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Message, e.Status, e.Body)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Status:  e.Status,
		Body:    e.Body,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrAuthentication = &Error{Code: CodeAuthentication, Message: "authentication failed"}
	ErrNotFound       = &Error{Code: CodeNotFound, Message: "not found"}
	ErrTransport      = &Error{Code: CodeTransport, Message: "transport failure"}
	ErrDecode         = &Error{Code: CodeDecode, Message: "decode failure"}
	ErrValidation     = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInternal       = &Error{Code: CodeInternal, Message: "internal error"}
)

// Constructor functions for creating errors with custom messages.

// Authentication creates an authentication error.
func Authentication(msg string) *Error {
	return &Error{Code: CodeAuthentication, Message: msg}
}

// Authenticationf creates an authentication error with formatted message.
func Authenticationf(format string, args ...any) *Error {
	return &Error{Code: CodeAuthentication, Message: fmt.Sprintf(format, args...)}
}

// AuthenticationStatus creates an authentication error carrying an upstream response.
func AuthenticationStatus(msg string, status int, body string) *Error {
	return &Error{Code: CodeAuthentication, Message: msg, Status: status, Body: body}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Transport creates a transport error carrying the upstream status and body.
func Transport(msg string, status int, body string) *Error {
	return &Error{Code: CodeTransport, Message: msg, Status: status, Body: body}
}

// Transportf creates a transport error with formatted message.
func Transportf(format string, args ...any) *Error {
	return &Error{Code: CodeTransport, Message: fmt.Sprintf(format, args...)}
}

// Decode creates a decode error.
func Decode(msg string) *Error {
	return &Error{Code: CodeDecode, Message: msg}
}

// Decodef creates a decode error with formatted message.
func Decodef(format string, args ...any) *Error {
	return &Error{Code: CodeDecode, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Internalf creates an internal error with formatted message.
func Internalf(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
