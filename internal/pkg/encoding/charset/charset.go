// Package charset resolves charset names to text encodings.
//
// Names are resolved by the IANA index first, for example "UTF-8", "ISO-8859-2", "windows-1250",
// and then by the WHATWG index, which knows more aliases, for example "utf8" or "latin2".
package charset

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

// Default is the charset used when no charset is configured.
const Default = "utf8"

// Charset is a resolved text encoding.
type Charset struct {
	name     string
	encoding encoding.Encoding
}

// Resolve finds the encoding by the name, an empty name means the platform default, it is UTF-8 in Go.
func Resolve(name string) (Charset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Charset{name: Default, encoding: unicode.UTF8}, nil
	}

	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return Charset{name: name, encoding: enc}, nil
	}

	if enc, err := htmlindex.Get(name); err == nil && enc != nil {
		return Charset{name: name, encoding: enc}, nil
	}

	return Charset{}, errors.Errorf(`charset "%s" is not supported`, name)
}

// MustResolve is intended for constants.
func MustResolve(name string) Charset {
	c, err := Resolve(name)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Charset) Name() string {
	return c.name
}

// IsUTF8 is true if the output bytes don't need any transformation.
func (c Charset) IsUTF8() bool {
	return c.encoding == nil || c.encoding == unicode.UTF8
}

// Encode converts UTF-8 string to bytes in the charset.
// A character that cannot be represented in the charset is an error.
func (c Charset) Encode(s string) ([]byte, error) {
	if c.IsUTF8() {
		return []byte(s), nil
	}
	out, _, err := transform.Bytes(c.encoding.NewEncoder(), []byte(s))
	if err != nil {
		return nil, errors.Errorf(`cannot encode value to charset "%s": %w`, c.name, err)
	}
	return out, nil
}
