// Package configmap maps a configuration structure to command line flags, ENVs and a configuration file.
//
// Each field tagged by the "configKey" tag is mapped, nested structures are mapped recursively,
// the path of a nested field is joined by a dot, for example "compression.gzipLevel".
// The field can optionally have the "configUsage" and the "configShorthand" tags.
// A nested structure tagged `configKey:",squash"` is mapped without its own key.
//
// The flag name is the path in kebab-case, for example "compression-gzip-level",
// the ENV name is the flag name in upper snake case with a prefix, for example "RECORDCSV_COMPRESSION_GZIP_LEVEL".
package configmap

import (
	"encoding"
	"reflect"
	"strings"

	"github.com/umisama/go-regexpcache"

	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

const (
	configKeyTag       = "configKey"
	configUsageTag     = "configUsage"
	configShorthandTag = "configShorthand"
	tagValuesSeparator = ","
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// Field is a leaf of the configuration structure.
type Field struct {
	Path      string
	FlagName  string
	Usage     string
	Shorthand string
	Value     reflect.Value
}

// Fields returns all mapped leaf fields of the structure, the order is the declaration order.
// The value must be a pointer to a structure, if the fields are going to be modified.
func Fields(v any) ([]Field, error) {
	value := reflect.ValueOf(v)
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, errors.Errorf(`type "%s" is not a struct or a pointer to a struct`, value.Type().String())
	}

	var out []Field
	collectFields(value, "", &out)
	return out, nil
}

func collectFields(value reflect.Value, prefix string, out *[]Field) {
	typ := value.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag, found := field.Tag.Lookup(configKeyTag)
		if !found {
			continue
		}

		parts := strings.Split(tag, tagValuesSeparator)
		key := parts[0]
		if key == "" && len(parts) == 2 && parts[1] == "squash" && field.Type.Kind() == reflect.Struct {
			// Fields of a squashed struct are mapped without the key
			collectFields(value.Field(i), prefix, out)
			continue
		}
		if key == "" || key == "-" {
			continue
		}

		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		fieldValue := value.Field(i)
		if field.Type.Kind() == reflect.Struct && !isTextType(field.Type) {
			collectFields(fieldValue, path, out)
			continue
		}

		*out = append(*out, Field{
			Path:      path,
			FlagName:  fieldToFlagName(path),
			Usage:     field.Tag.Get(configUsageTag),
			Shorthand: field.Tag.Get(configShorthandTag),
			Value:     fieldValue,
		})
	}
}

func isTextType(typ reflect.Type) bool {
	return reflect.PointerTo(typ).Implements(textUnmarshalerType)
}

// fieldToFlagName converts the config path to kebab-case, for example "compression.gzipLevel" -> "compression-gzip-level".
func fieldToFlagName(path string) string {
	name := regexpcache.MustCompile(`[A-Z]+`).ReplaceAllString(path, "-$0")
	name = regexpcache.MustCompile(`[-.\s]+`).ReplaceAllString(name, "-")
	return strings.ToLower(strings.Trim(name, "-"))
}
