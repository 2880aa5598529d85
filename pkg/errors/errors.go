// Package errors provides structured error types for pipviz.
//
// Errors carry a machine-readable [Code] next to the human-readable message,
// so the CLI can tell an operator mistake (bad flag, bad config) from a
// failing package manager or rendering engine.
//
// # Error Codes
//
//   - INVALID_*: input validation failures (flags, config, names)
//   - NOT_FOUND: a required executable or file is missing
//   - EXEC_FAILED: an external command exited unsuccessfully
//   - PARSE_FAILED: command output could not be decoded
//   - RENDER_FAILED: Graphviz or an output file failed
//   - INTERNAL_ERROR: anything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeExec, origErr, "pip list")
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
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidPackage Code = "INVALID_PACKAGE"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Missing executables or files
	ErrCodeNotFound Code = "NOT_FOUND"

	// External process errors
	ErrCodeExec  Code = "EXEC_FAILED"
	ErrCodeParse Code = "PARSE_FAILED"

	// Output errors
	ErrCodeRender Code = "RENDER_FAILED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// defaultHints suggest a next step for codes an operator can usually fix.
var defaultHints = map[Code]string{
	ErrCodeNotFound:      "install pip or name the executable with --pip",
	ErrCodeInvalidConfig: "see examples/pipviz.toml for the recognised keys",
	ErrCodeInvalidFormat: "use --format with svg, png, jpg or json",
	ErrCodeExec:          "rerun with --verbose to see the command output",
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
	Hint    string // Suggested fix; overrides the code's default hint
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

// WithHint sets the suggested fix and returns e.
func (e *Error) WithHint(format string, args ...any) *Error {
	e.Hint = fmt.Sprintf(format, args...)
	return e
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// find returns the outermost *Error in err's chain.
func find(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	e, ok := find(err)
	return ok && e.Code == code
}

// CodeOf extracts the error code from an error, or "" if err carries none.
func CodeOf(err error) Code {
	if e, ok := find(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message shown to the operator: the message and
// cause without the code prefix. Uncoded errors are returned as-is.
func UserMessage(err error) string {
	e, ok := find(err)
	if !ok {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// HintFor returns the suggested fix for err: its own hint if set, otherwise
// the default for its code. It returns "" when there is nothing to suggest.
func HintFor(err error) string {
	e, ok := find(err)
	if !ok {
		return ""
	}
	if e.Hint != "" {
		return e.Hint
	}
	return defaultHints[e.Code]
}
