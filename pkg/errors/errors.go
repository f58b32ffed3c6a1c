// Package errors provides structured error types for the mieza application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, CLI, and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The layout and net resolution engine reports exactly four failure kinds:
//   - UNKNOWN_COMPONENT_TYPE: the geometry registry has no template for a kind
//   - PIN_NOT_FOUND: the kind is known but the pin name is not on its template
//   - DANGLING_CONNECTION: a connection or net member names a missing component
//   - INVALID_ROTATION: a rotation outside {0, 90, 180, 270}
//
// The remaining codes cover the surfaces around the engine (parsing, config,
// rendering, caching).
//
// # Usage
//
//	err := errors.New(errors.ErrCodePinNotFound, "pin %q not found on %s", pin, kind)
//	if errors.Is(err, errors.ErrCodePinNotFound) {
//	    // Handle missing pin
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeParse, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Engine errors
	ErrCodeUnknownComponentType Code = "UNKNOWN_COMPONENT_TYPE"
	ErrCodePinNotFound          Code = "PIN_NOT_FOUND"
	ErrCodeDanglingConnection   Code = "DANGLING_CONNECTION"
	ErrCodeInvalidRotation      Code = "INVALID_ROTATION"

	// Input validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeParse              Code = "PARSE_ERROR"
	ErrCodeDuplicateComponent Code = "DUPLICATE_COMPONENT"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"
	ErrCodeInvalidTheme       Code = "INVALID_THEME"
	ErrCodeInvalidStyle       Code = "INVALID_STYLE"
	ErrCodeInvalidConfig      Code = "INVALID_CONFIG"
	ErrCodeInvalidPath        Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsInputError reports whether err carries a code caused by bad input rather
// than an internal failure. The API uses it to pick between 4xx and 5xx.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case ErrCodeUnknownComponentType, ErrCodePinNotFound, ErrCodeDanglingConnection,
		ErrCodeInvalidRotation, ErrCodeInvalidInput, ErrCodeParse, ErrCodeDuplicateComponent,
		ErrCodeInvalidFormat, ErrCodeInvalidTheme, ErrCodeInvalidStyle, ErrCodeInvalidConfig,
		ErrCodeInvalidPath:
		return true
	}
	return false
}
