package log

import (
	"os"
	"path/filepath"

	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

// File is a log file defined by the --log-file flag.
// The log file is independent of the output filesystem, so it is opened directly by the os package.
type File struct {
	file *os.File
	path string
}

// NewLogFile opens the log file for appending, an empty path means no log file.
func NewLogFile(path string) (*File, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.PrefixErrorf(err, `cannot resolve log file path "%s"`, path)
	}

	// nolint: forbidigo
	file, err := os.OpenFile(absPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, errors.PrefixErrorf(err, `cannot open log file "%s"`, absPath)
	}

	return &File{file: file, path: absPath}, nil
}

func (f *File) File() *os.File {
	return f.file
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Close() error {
	if f == nil {
		return nil
	}
	if err := f.file.Close(); err != nil {
		return errors.Errorf(`cannot close log file "%s": %w`, f.path, err)
	}
	return nil
}
