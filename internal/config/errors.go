// Package config holds configuration errors, environment settings and scene
// file loading.
package config

import (
	"errors"
	"fmt"
)

// Code classifies a configuration error.
type Code string

const (
	CodeInvalidDimensions Code = "invalid_dimensions"
	CodeInvalidCount      Code = "invalid_count"
	CodeRingOrder         Code = "ring_order"
	CodeNonPositive       Code = "non_positive"
	CodeUnknownStyle      Code = "unknown_style"
	CodeOrphanBody        Code = "orphan_body"
	CodeInvalidRegistry   Code = "invalid_registry"
	CodeInvalidFile       Code = "invalid_file"
	CodeDuplicateName     Code = "duplicate_name"
)

// Error is a configuration error raised while building a scene.
// Scene construction aborts on the first one; nothing partial is returned.
type Error struct {
	Code    Code   // Machine-readable classification
	Field   string // Offending field, e.g. "bodies[2].orbitRadius"
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Field == "" {
		return "config: " + e.Message
	}
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Sentinels for errors.Is checks.
var (
	ErrInvalidDimensions = &Error{Code: CodeInvalidDimensions}
	ErrInvalidCount      = &Error{Code: CodeInvalidCount}
	ErrRingOrder         = &Error{Code: CodeRingOrder}
	ErrNonPositive       = &Error{Code: CodeNonPositive}
	ErrUnknownStyle      = &Error{Code: CodeUnknownStyle}
	ErrOrphanBody        = &Error{Code: CodeOrphanBody}
	ErrInvalidRegistry   = &Error{Code: CodeInvalidRegistry}
	ErrInvalidFile       = &Error{Code: CodeInvalidFile}
	ErrDuplicateName     = &Error{Code: CodeDuplicateName}
)

// Errorf creates a configuration error for field.
func Errorf(code Code, field, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a configuration error with an underlying cause.
func Wrap(code Code, field, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// IsConfigError reports whether err is (or wraps) a configuration error of any code.
func IsConfigError(err error) bool {
	var cerr *Error
	return errors.As(err, &cerr)
}

// AsError extracts the configuration error from err's chain.
func AsError(err error) (*Error, bool) {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr, true
	}
	return nil, false
}
