package errors

import (
	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

// ValidationError is returned when the input records cannot be serialized,
// for example the set is empty or a record contains a composite attribute.
// No output is written if the error occurs.
type ValidationError struct {
	err error
}

func NewValidationError(err error) ValidationError {
	return ValidationError{err: err}
}

func (ValidationError) ErrorName() string {
	return "validation"
}

func (ValidationError) ExitCode() int {
	return ExitCodeValidation
}

func (e ValidationError) Unwrap() error {
	return e.err
}

func (e ValidationError) Error() string {
	return e.err.Error()
}

func (e ValidationError) ErrorUserMessage() string {
	return errors.Format(e.err, errors.FormatAsSentences())
}
