package errors

import (
	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

// ConfigurationError is returned when an option is set to an unsupported value.
// It is always returned at the time the option is set, before any I/O.
type ConfigurationError struct {
	err error
}

func NewConfigurationError(err error) ConfigurationError {
	return ConfigurationError{err: err}
}

func (ConfigurationError) ErrorName() string {
	return "configuration"
}

func (ConfigurationError) ExitCode() int {
	return ExitCodeConfiguration
}

func (e ConfigurationError) Unwrap() error {
	return e.err
}

func (e ConfigurationError) Error() string {
	return e.err.Error()
}

func (e ConfigurationError) ErrorUserMessage() string {
	return errors.Format(e.err, errors.FormatAsSentences())
}
