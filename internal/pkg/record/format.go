package record

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/spf13/cast"

	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

// FormatValue converts a primitive value to the canonical string representation.
// Enumerations and other types implementing fmt.Stringer are formatted by the String method.
func FormatValue(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", errors.New("cannot format null value")
	case fmt.Stringer:
		return v.String(), nil
	}

	if str, err := cast.ToStringE(v); err == nil {
		return str, nil
	}

	// Named types without the String method, for example "type Level int"
	rv := reflect.ValueOf(v)
	switch {
	case rv.Kind() == reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case rv.CanInt():
		return strconv.FormatInt(rv.Int(), 10), nil
	case rv.CanUint():
		return strconv.FormatUint(rv.Uint(), 10), nil
	case rv.Kind() == reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), nil
	case rv.Kind() == reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	case rv.Kind() == reflect.String:
		return rv.String(), nil
	default:
		return "", errors.Errorf(`cannot format value of the type "%T"`, v)
	}
}

// acceptedKind returns true for kinds of primitive values.
func acceptedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}
