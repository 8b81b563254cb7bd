package log

import (
	"strings"

	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// NewLogFormat parses the --log-format flag, an empty value means console.
// On invalid value Console is used as default with an error.
func NewLogFormat(format string) (LogFormat, error) {
	logFormat := LogFormat(strings.ToLower(strings.TrimSpace(format)))

	switch logFormat {
	case "":
		return LogFormatConsole, nil
	case LogFormatConsole, LogFormatJSON:
		return logFormat, nil
	default:
		return LogFormatConsole, errors.Errorf(`log format must be "console" or "json", found "%s"`, format)
	}
}
