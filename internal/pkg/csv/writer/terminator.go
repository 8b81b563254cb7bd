package writer

import (
	"strconv"
	"unicode/utf8"

	svcerrors "github.com/keboola/recordcsv/internal/pkg/service/common/errors"
	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

const (
	LF   = LineTerminator("\n")
	CRLF = LineTerminator("\r\n")

	DefaultLineTerminator = LF
	DefaultDelimiter      = ','
)

// LineTerminator ends each line, it is "\n" or "\r\n".
type LineTerminator string

// ParseLineTerminator accepts only the literal values "\n" and "\r\n".
func ParseLineTerminator(v string) (LineTerminator, error) {
	switch LineTerminator(v) {
	case LF, CRLF:
		return LineTerminator(v), nil
	default:
		return "", svcerrors.NewConfigurationError(errors.Errorf(`line terminator %s is not supported, expected "\n" or "\r\n"`, strconv.Quote(v)))
	}
}

// LineTerminatorFromName converts the configuration name "lf" or "crlf" to the LineTerminator.
func LineTerminatorFromName(name string) (LineTerminator, error) {
	switch name {
	case "lf":
		return LF, nil
	case "crlf":
		return CRLF, nil
	default:
		return "", svcerrors.NewConfigurationError(errors.Errorf(`line terminator "%s" is not supported, expected "lf" or "crlf"`, name))
	}
}

func (v LineTerminator) Name() string {
	if v == CRLF {
		return "crlf"
	}
	return "lf"
}

// ParseDelimiter accepts a single character, except line breaks.
func ParseDelimiter(v string) (rune, error) {
	r, size := utf8.DecodeRuneInString(v)
	if v == "" || size != len(v) || r == utf8.RuneError || r == '\n' || r == '\r' {
		return 0, svcerrors.NewConfigurationError(errors.Errorf(`delimiter %s is not supported, expected a single character`, strconv.Quote(v)))
	}
	return r, nil
}
