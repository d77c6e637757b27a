// Package errors is the coded error type shared by the harness packages.
// Tests assert on codes with IsErrorCode instead of matching messages.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode names a failure class
type ErrorCode string

const (
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Tool configuration or harness settings could not be read or decoded
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// A facts descriptor was malformed or named no known fixture
	ErrDescriptorInvalid ErrorCode = "DESCRIPTOR_INVALID"
	ErrFixtureNotFound   ErrorCode = "FIXTURE_NOT_FOUND"

	// The scratch workspace could not be recreated, or a capture block
	// left a foreign logger installed
	ErrWorkspace     ErrorCode = "WORKSPACE"
	ErrLoggerRestore ErrorCode = "LOGGER_RESTORE"

	// An evaluator failed during a conformance example; a case manifest
	// was unreadable
	ErrEvaluate ErrorCode = "EVALUATE"
	ErrManifest ErrorCode = "MANIFEST"
)

// HarnessError carries a code, a message, optional key/value details
// (paths, keys, platforms) and the underlying cause.
type HarnessError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error renders "[CODE] message: cause"
func (e *HarnessError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *HarnessError) Unwrap() error {
	return e.Wrapped
}

// Is matches any HarnessError carrying the same code
func (e *HarnessError) Is(target error) bool {
	var targetErr *HarnessError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New returns an error with no cause
func New(code ErrorCode, message string) *HarnessError {
	return &HarnessError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf is New with a format string
func Newf(code ErrorCode, format string, args ...interface{}) *HarnessError {
	return &HarnessError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap attaches code and message to err. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *HarnessError {
	if err == nil {
		return nil
	}
	return &HarnessError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf is Wrap with a format string
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *HarnessError {
	if err == nil {
		return nil
	}
	return &HarnessError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail records key=value on e and returns it for chaining
func (e *HarnessError) WithDetail(key string, value interface{}) *HarnessError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func (e *HarnessError) WithDetails(details map[string]interface{}) *HarnessError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode reports whether the first HarnessError in err's chain has code
func IsErrorCode(err error, code ErrorCode) bool {
	var harnessErr *HarnessError
	if errors.As(err, &harnessErr) {
		return harnessErr.Code == code
	}
	return false
}

// GetErrorCode returns err's code, ErrUnknown for foreign errors
func GetErrorCode(err error) ErrorCode {
	var harnessErr *HarnessError
	if errors.As(err, &harnessErr) {
		return harnessErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns err's details, nil for foreign errors
func GetErrorDetails(err error) map[string]interface{} {
	var harnessErr *HarnessError
	if errors.As(err, &harnessErr) {
		return harnessErr.Details
	}
	return nil
}
