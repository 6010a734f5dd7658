// Package errors provides structured error types for pixelforge.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the pipeline and the preview server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Every failure the build can report maps to one code:
//   - INVALID_*: malformed input (expressions, documents, flags)
//   - UNDEFINED_COLOUR / CIRCULAR_COLOUR_REFERENCE: palette resolution failures
//   - DEPENDENCY_CYCLE: the asset graph cannot be ordered
//   - MISSING_REFERENCE: a composite references something that was never rendered
//   - UNKNOWN_*: an unrecognised colour function or shader effect
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUndefinedColour, "undefined colour: $%s", name)
//	if errors.Is(err, errors.ErrCodeUndefinedColour) {
//	    // Handle lookup failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidDocument, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidExpression Code = "INVALID_EXPRESSION"
	ErrCodeInvalidDocument   Code = "INVALID_DOCUMENT"
	ErrCodeInvalidName       Code = "INVALID_NAME"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	// Colour resolution errors
	ErrCodeUndefinedColour         Code = "UNDEFINED_COLOUR"
	ErrCodeCircularColourReference Code = "CIRCULAR_COLOUR_REFERENCE"
	ErrCodeUnknownFunction         Code = "UNKNOWN_FUNCTION"

	// Build errors
	ErrCodeDependencyCycle  Code = "DEPENDENCY_CYCLE"
	ErrCodeMissingReference Code = "MISSING_REFERENCE"
	ErrCodeUnknownEffect    Code = "UNKNOWN_EFFECT"
	ErrCodeNotFound         Code = "NOT_FOUND"

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
// It unwraps the error chain (including joined errors) looking for an *Error
// with a matching code.
func Is(err error, code Code) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) && e.Code == code {
		return true
	}
	switch x := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range x.Unwrap() {
			if Is(inner, code) {
				return true
			}
		}
	case interface{ Unwrap() error }:
		return Is(x.Unwrap(), code)
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

// Flatten expands joined errors into their leaves, in order.
// A nil error yields nil; a plain error yields a one-element slice.
func Flatten(err error) []error {
	if err == nil {
		return nil
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, inner := range j.Unwrap() {
			out = append(out, Flatten(inner)...)
		}
		return out
	}
	return []error{err}
}

// Join combines errors like the standard library's errors.Join. Nil errors
// are discarded; if every error is nil, Join returns nil.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// As finds the first error in err's tree that matches target, like the
// standard library's errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
