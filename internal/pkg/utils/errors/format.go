package errors

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FormatConfig modifies the output of the Format function.
type FormatConfig struct {
	WithStack   bool
	WithUnwrap  bool
	AsSentences bool
}

type FormatOption func(c *FormatConfig)

// MessageFormatter formats each error message.
type MessageFormatter func(msg string, trace StackTrace, config FormatConfig) string

// PrefixFormatter formats a prefix followed by a list of errors.
type PrefixFormatter func(prefix string) string

// FormatWithStack adds the location where the error was created to each message.
func FormatWithStack() FormatOption {
	return func(c *FormatConfig) {
		c.WithStack = true
	}
}

// FormatWithUnwrap prints also errors wrapped by Wrap and Wrapf.
func FormatWithUnwrap() FormatOption {
	return func(c *FormatConfig) {
		c.WithUnwrap = true
	}
}

// FormatAsSentences capitalizes the first letter and adds a trailing dot to each message.
func FormatAsSentences() FormatOption {
	return func(c *FormatConfig) {
		c.AsSentences = true
	}
}

// Format error to a human-readable string. Multiple errors are printed as a bullet list.
func Format(err error, opts ...FormatOption) string {
	w := NewWriter(defaultMessageFormatter(), defaultPrefixFormatter(), opts...)
	w.WriteError(err)
	return w.String()
}

func defaultMessageFormatter() MessageFormatter {
	return func(msg string, trace StackTrace, config FormatConfig) string {
		if config.AsSentences {
			msg = asSentence(msg)
		}
		if config.WithStack {
			if location := trace.String(); location != "" {
				msg = fmt.Sprintf("%s [%s]", msg, location)
			}
		}
		return msg
	}
}

func defaultPrefixFormatter() PrefixFormatter {
	return func(prefix string) string {
		return strings.TrimRight(prefix, ".,:") + ":"
	}
}

func asSentence(msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return msg
	}

	first, size := utf8.DecodeRuneInString(msg)
	msg = string(unicode.ToUpper(first)) + msg[size:]

	last, _ := utf8.DecodeLastRuneInString(msg)
	if !strings.ContainsRune(".?!:", last) {
		msg += "."
	}
	return msg
}
