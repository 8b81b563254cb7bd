package errors

// IOError wraps a failure of the output sink.
// The message of the original error is kept unchanged, the original error is available via Unwrap.
// The content of the sink must be treated as incomplete.
type IOError struct {
	err error
}

func NewIOError(err error) IOError {
	return IOError{err: err}
}

func (IOError) ErrorName() string {
	return "io"
}

func (IOError) ExitCode() int {
	return ExitCodeIO
}

func (e IOError) Unwrap() error {
	return e.err
}

func (e IOError) Error() string {
	return e.err.Error()
}

func (e IOError) ErrorUserMessage() string {
	return "Cannot write output: " + e.err.Error()
}
