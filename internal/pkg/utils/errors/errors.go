// Package errors is a drop-in replacement of the standard "errors" package.
// Each error created by this package carries a stack trace of the place where it was created.
// Errors can be composed into a MultiError or a NestedError and printed as a readable bullet list, see Format.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// New creates an error with a stack trace.
func New(message string) error {
	return &withStack{err: stdErrors.New(message), trace: callers()}
}

// Errorf creates a formatted error with a stack trace, the "%w" verb is supported.
func Errorf(format string, a ...any) error {
	return &withStack{err: fmt.Errorf(format, a...), trace: callers()}
}

// Wrap returns a new error with the message, the original error is available via Unwrap.
// Error() method returns only the new message, the original error is printed by Format with FormatWithUnwrap option.
func Wrap(err error, message string) error {
	return &wrappedError{msg: message, err: err, trace: callers()}
}

func Wrapf(err error, format string, a ...any) error {
	return &wrappedError{msg: fmt.Sprintf(format, a...), err: err, trace: callers()}
}

// WithStack adds a stack trace to an error from an external package.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	return &withStack{err: err, trace: callers()}
}

func Is(err, target error) bool {
	return stdErrors.Is(err, target)
}

func As(err error, target any) bool {
	return stdErrors.As(err, target)
}

func Unwrap(err error) error {
	return stdErrors.Unwrap(err)
}

type withStack struct {
	err   error
	trace StackTrace
}

func (e *withStack) Error() string {
	return e.err.Error()
}

func (e *withStack) Unwrap() error {
	return e.err
}

func (e *withStack) StackTrace() StackTrace {
	return e.trace
}

type wrappedError struct {
	msg   string
	err   error
	trace StackTrace
}

func (e *wrappedError) Error() string {
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.err
}

func (e *wrappedError) StackTrace() StackTrace {
	return e.trace
}
