// Package errors provides structured error types for concatimg.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the library
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Every failure a concatenation can produce maps to one code:
//   - PATH_OPEN: an input file is missing or unreadable ([PathOpenError])
//   - DECODE: image data is malformed or unsupported ([DecodeError])
//   - INVALID_ARGUMENT: a caller-contract violation, e.g. zero columns
//   - OUT_OF_BOUNDS: a blit rectangle does not fit its canvas
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidArgument, "columns must be >= 1, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidArgument) {
//	    // Handle validation error
//	}
//
//	var perr *errors.PathOpenError
//	if stderrors.As(err, &perr) {
//	    fmt.Println("cannot open", perr.Path)
//	}
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
	ErrCodePathOpen        Code = "PATH_OPEN"
	ErrCodeDecode          Code = "DECODE"
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
	ErrCodeUnsupported     Code = "UNSUPPORTED_FORMAT"
	ErrCodeInvalidJob      Code = "INVALID_JOB"

	// Planning and compositing errors
	ErrCodeOutOfBounds Code = "OUT_OF_BOUNDS"

	// Output errors
	ErrCodeEncode Code = "ENCODE_ERROR"

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

// ErrorCode returns the error code.
func (e *Error) ErrorCode() Code {
	return e.Code
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

// coder is implemented by every error type in this package.
type coder interface {
	error
	ErrorCode() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain and inspects the outermost coded error.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	var c coder
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For coded errors, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	var p *PathOpenError
	if errors.As(err, &p) {
		return fmt.Sprintf("cannot open image %s: %v", p.Path, p.Cause)
	}
	var d *DecodeError
	if errors.As(err, &d) {
		return fmt.Sprintf("cannot decode image #%d (%s): %v", d.Index, d.Path, d.Cause)
	}
	return err.Error()
}

// PathOpenError reports an input file that could not be opened or read.
type PathOpenError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *PathOpenError) Error() string {
	return fmt.Sprintf("%s: open image %s: %v", ErrCodePathOpen, e.Path, e.Cause)
}

// Unwrap returns the underlying I/O error.
func (e *PathOpenError) Unwrap() error { return e.Cause }

// ErrorCode returns ErrCodePathOpen.
func (e *PathOpenError) ErrorCode() Code { return ErrCodePathOpen }

// DecodeError reports malformed or unsupported image data.
// Index is the position of the offending image in the caller's input order.
// Path is empty when the image did not come from a file.
type DecodeError struct {
	Index int
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: image #%d: %v", ErrCodeDecode, e.Index, e.Cause)
	}
	return fmt.Sprintf("%s: image #%d (%s): %v", ErrCodeDecode, e.Index, e.Path, e.Cause)
}

// Unwrap returns the codec error.
func (e *DecodeError) Unwrap() error { return e.Cause }

// ErrorCode returns ErrCodeDecode.
func (e *DecodeError) ErrorCode() Code { return ErrCodeDecode }

// InvalidArgument is shorthand for New(ErrCodeInvalidArgument, ...).
func InvalidArgument(format string, args ...any) *Error {
	return New(ErrCodeInvalidArgument, format, args...)
}

// OutOfBounds is shorthand for New(ErrCodeOutOfBounds, ...).
func OutOfBounds(format string, args ...any) *Error {
	return New(ErrCodeOutOfBounds, format, args...)
}
