package pitch

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code for analysis failures.
type Code string

// Error codes for the failure kinds the engine can surface. MALFORMED_INPUT
// is only ever attached to dropped rows at ingestion time; it never aborts
// a run.
const (
	CodeMalformedInput             Code = "MALFORMED_INPUT"
	CodeInsufficientUniqueCoords   Code = "INSUFFICIENT_UNIQUE_COORDS"
	CodeInsufficientColumnSpacings Code = "INSUFFICIENT_COLUMN_SPACINGS"
	CodeInvalidLayerSpec           Code = "INVALID_LAYER_SPEC"
	CodeInvalidConfig              Code = "INVALID_CONFIG"
	CodeInvalidPolicy              Code = "INVALID_POLICY"
)

// Error is a structured analysis error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
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

// NewError creates an Error with the given code and formatted message.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError wraps cause in an Error with the given code and message.
func WrapError(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// CodeOf extracts the Code from err, unwrapping as needed. Returns the empty
// Code when err carries no structured code.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
