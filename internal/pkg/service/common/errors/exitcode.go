package errors

import (
	"context"

	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

const (
	ExitCodeOK            = 0
	ExitCodeUnknown       = 1
	ExitCodeConfiguration = 2
	ExitCodeValidation    = 3
	ExitCodeIntegrity     = 4
	ExitCodeIO            = 5
	ExitCodeCanceled      = 130
)

type WithExitCode interface {
	ExitCode() int
}

type WithName interface {
	ErrorName() string
}

type WithUserMessage interface {
	ErrorUserMessage() string
}

// ExitCodeFrom maps an error to the process exit code.
func ExitCodeFrom(err error) int {
	if err == nil {
		return ExitCodeOK
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ExitCodeCanceled
	}

	var v WithExitCode
	if errors.As(err, &v) {
		return v.ExitCode()
	}

	return ExitCodeUnknown
}

// ErrorNameFrom returns name of the error type, or "unknown".
func ErrorNameFrom(err error) string {
	var v WithName
	if errors.As(err, &v) {
		return v.ErrorName()
	}
	return "unknown"
}

// UserMessageFrom returns a message for the end user.
func UserMessageFrom(err error) string {
	var v WithUserMessage
	if errors.As(err, &v) {
		return v.ErrorUserMessage()
	}
	return errors.Format(err, errors.FormatAsSentences())
}

func IsConfigurationError(err error) bool {
	var v ConfigurationError
	return errors.As(err, &v)
}

func IsValidationError(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

func IsIntegrityError(err error) bool {
	var v IntegrityError
	return errors.As(err, &v)
}

func IsIOError(err error) bool {
	var v IOError
	return errors.As(err, &v)
}
