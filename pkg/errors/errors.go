// Package errors provides structured error types for the orgchart application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling between the CLI and the render pipeline
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes map onto the failure classes of a render run:
//   - MALFORMED_INPUT: the input is not JSON or lacks data.organisationEntity
//   - MISSING_FIELD: an entity lacks a field the formatter or walker relies on
//   - RENDER_ENGINE: Graphviz failed to parse or rasterize the description
//   - INVALID_*: flag and configuration validation failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingField, "%s: missing name", path)
//	if errors.Is(err, errors.ErrCodeMissingField) {
//	    // Handle incomplete input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRenderEngine, origErr, "render png")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeMalformedInput Code = "MALFORMED_INPUT"
	ErrCodeMissingField   Code = "MISSING_FIELD"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

	// Validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidName   Code = "INVALID_NAME"

	// Rendering errors
	ErrCodeRenderEngine Code = "RENDER_ENGINE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// EngineError reports which Graphviz stage failed. The wrapped error carries
// the engine's own diagnostic text.
type EngineError struct {
	Stage string // "init", "parse" or "render"
	Err   error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return fmt.Sprintf("graphviz %s: %v", e.Stage, e.Err)
}

// Unwrap returns the engine's own error.
func (e *EngineError) Unwrap() error { return e.Err }

// Code returns the error code for this error type.
func (e *EngineError) Code() Code {
	return ErrCodeRenderEngine
}
