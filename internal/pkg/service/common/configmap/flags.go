package configmap

import (
	"encoding"
	"reflect"

	"github.com/spf13/pflag"

	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

func MustGenerateFlags(fs *pflag.FlagSet, v any) {
	if err := GenerateFlags(fs, v); err != nil {
		panic(err)
	}
}

// GenerateFlags generates flags from the configuration structure, the current values are used as the defaults.
func GenerateFlags(fs *pflag.FlagSet, v any) error {
	fields, err := Fields(v)
	if err != nil {
		return errors.PrefixError(err, "cannot generate flags")
	}

	for _, f := range fields {
		value := f.Value

		// Types with a text representation, for example datasize.ByteSize
		if isTextType(value.Type()) {
			text, err := MarshalText(value)
			if err != nil {
				return errors.PrefixErrorf(err, `cannot generate flag "%s"`, f.FlagName)
			}
			fs.StringP(f.FlagName, f.Shorthand, text, f.Usage)
			continue
		}

		switch value.Kind() {
		case reflect.String:
			fs.StringP(f.FlagName, f.Shorthand, value.String(), f.Usage)
		case reflect.Bool:
			fs.BoolP(f.FlagName, f.Shorthand, value.Bool(), f.Usage)
		case reflect.Int:
			fs.IntP(f.FlagName, f.Shorthand, int(value.Int()), f.Usage)
		case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			fs.Int64P(f.FlagName, f.Shorthand, value.Int(), f.Usage)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			fs.Uint64P(f.FlagName, f.Shorthand, value.Uint(), f.Usage)
		case reflect.Float32, reflect.Float64:
			fs.Float64P(f.FlagName, f.Shorthand, value.Float(), f.Usage)
		default:
			return errors.Errorf(`unexpected type "%s" of the field "%s", please implement some method to convert the type to string`, value.Type().String(), f.Path)
		}
	}

	return nil
}

// MarshalText converts a value implementing encoding.TextMarshaler to a string.
func MarshalText(value reflect.Value) (string, error) {
	marshaler, ok := value.Interface().(encoding.TextMarshaler)
	if !ok && value.CanAddr() {
		marshaler, ok = value.Addr().Interface().(encoding.TextMarshaler)
	}
	if !ok {
		return "", errors.Errorf(`type "%s" is not convertible to a text`, value.Type().String())
	}
	text, err := marshaler.MarshalText()
	return string(text), err
}
