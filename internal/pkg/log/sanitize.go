package log

import (
	"strings"
)

var sanitizer = strings.NewReplacer("\r", `\r`, "\n", `\n`, "\t", `\t`) // nolint: gochecknoglobals

// Sanitize makes control characters visible, so a value can be printed in a single log line.
func Sanitize(in string) string {
	return sanitizer.Replace(in)
}
