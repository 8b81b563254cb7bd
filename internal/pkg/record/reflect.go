package record

import (
	"context"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/iancoleman/strcase"

	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

const (
	tagName    = "csv"
	tagSkip    = "-"
	tagOptChar = "char"
)

// ReflectIntrospector reads Go structs.
//
// Exported fields are attributes, the name is taken from the "csv" tag or it is the field name in lowerCamelCase.
// A field tagged `csv:"-"` is skipped. The "char" tag option renders an integer field as a single character, e.g. `csv:"fieldC,char"`.
// An embedded struct, or a pointer to a struct, is the parent type. At most one embedded struct is allowed.
// Pointers to primitive types are boxed primitives, nil pointer is a null value.
//
// The type ID is the short type name, for example "model.Item".
// If the name is already used by another type, the package path is added, for example "github.com/a/model.Item",
// and two types with the same package path and name, e.g. local types of two functions, are numbered "model.Item#2".
type ReflectIntrospector struct {
	lock  sync.Mutex
	types map[reflect.Type]*structType
	ids   map[string]reflect.Type
}

type structType struct {
	rt     reflect.Type
	id     string
	attrs  []Attribute
	fields []structField
	byName map[string]int
	// parent is resolved lazily, it is nil if parentIndex is -1
	parentIndex int
	parent      *structType
	// err is set if the struct contains a field which cannot be represented as an attribute
	err error
}

type structField struct {
	index int
	name  string
	char  bool
}

func NewReflectIntrospector() *ReflectIntrospector {
	return &ReflectIntrospector{types: make(map[reflect.Type]*structType), ids: make(map[string]reflect.Type)}
}

func (r *ReflectIntrospector) TypeOf(rec any) (Type, error) {
	rv, err := structValue(rec)
	if err != nil {
		return nil, err
	}
	return r.typeOf(rv.Type()), nil
}

func (r *ReflectIntrospector) Validate(_ context.Context, rec any) error {
	rv, err := structValue(rec)
	if err != nil {
		return err
	}

	errs := errors.NewMultiError()
	for t := r.typeOf(rv.Type()); t != nil; t = t.parent {
		if t.err != nil {
			errs.Append(t.err)
		}
	}
	return errs.ErrorOrNil()
}

func (r *ReflectIntrospector) Value(rec any, name string) (Value, bool, error) {
	rv, err := structValue(rec)
	if err != nil {
		return Value{}, false, err
	}

	t := r.typeOf(rv.Type())
	valid := true
	for t != nil {
		if i, ok := t.byName[name]; ok {
			if !valid {
				// Embedded pointer is nil
				return NullValue(), true, nil
			}
			field := t.fields[i]
			value, err := fieldValue(rv.Field(field.index), field.char)
			if err != nil {
				return Value{}, true, errors.PrefixErrorf(err, `cannot read attribute "%s" of the type "%s"`, name, t.id)
			}
			return value, true, nil
		}

		// Go to the parent
		if t.parent == nil {
			break
		}
		if valid {
			rv = rv.Field(t.parentIndex)
			if rv.Kind() == reflect.Pointer {
				if rv.IsNil() {
					valid = false
				} else {
					rv = rv.Elem()
				}
			}
		}
		t = t.parent
	}

	return Value{}, false, nil
}

func (r *ReflectIntrospector) typeOf(rt reflect.Type) *structType {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.typeOfLocked(rt)
}

func (r *ReflectIntrospector) typeOfLocked(rt reflect.Type) *structType {
	if t, ok := r.types[rt]; ok {
		return t
	}

	t := &structType{rt: rt, id: r.uniqueIDLocked(rt), byName: make(map[string]int), parentIndex: -1}
	r.types[rt] = t

	errs := errors.NewMultiError()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)

		// Parent type
		if field.Anonymous {
			embedded := field.Type
			if embedded.Kind() == reflect.Pointer {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				if embedded == rt {
					errs.Append(errors.Errorf(`type "%s" embeds itself`, t.id))
					continue
				}
				if t.parentIndex != -1 {
					errs.Append(errors.Errorf(`type "%s" embeds more than one struct, only a single parent type is supported`, t.id))
					continue
				}
				t.parentIndex = i
				t.parent = r.typeOfLocked(embedded)
				continue
			}
		}

		if !field.IsExported() {
			continue
		}

		name, char, skip := parseTag(field)
		if skip {
			continue
		}

		if _, found := t.byName[name]; found {
			errs.Append(errors.Errorf(`type "%s" declares attribute "%s" more than once`, t.id, name))
			continue
		}

		typeDesc := field.Type.String()
		if char {
			typeDesc = tagOptChar
		}

		valueType := field.Type
		if valueType.Kind() == reflect.Pointer {
			valueType = valueType.Elem()
		}
		if !acceptedKind(valueType.Kind()) {
			errs.Append(errors.Errorf(
				`attribute "%s" of the type "%s" has unsupported type "%s", only primitive types, enumerations and strings are supported`,
				name, t.id, field.Type.String(),
			))
		}

		t.byName[name] = len(t.fields)
		t.fields = append(t.fields, structField{index: i, name: name, char: char})
		t.attrs = append(t.attrs, Attribute{Name: name, Type: typeDesc})
	}

	t.err = errs.ErrorOrNil()
	return t
}

func (r *ReflectIntrospector) uniqueIDLocked(rt reflect.Type) string {
	id := rt.String()
	if other, found := r.ids[id]; found && other != rt && rt.PkgPath() != "" {
		id = rt.PkgPath() + "." + rt.Name()
	}
	base := id
	for n := 2; ; n++ {
		if other, found := r.ids[id]; !found || other == rt {
			break
		}
		id = base + "#" + strconv.Itoa(n)
	}
	r.ids[id] = rt
	return id
}

func (t *structType) ID() string {
	return t.id
}

func (t *structType) Attributes() []Attribute {
	return t.attrs
}

func (t *structType) Parent() (Type, bool) {
	if t.parent == nil {
		return nil, false
	}
	return t.parent, true
}

func structValue(rec any) (reflect.Value, error) {
	rv := reflect.ValueOf(rec)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, errors.New("record is nil")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, errors.Errorf(`record must be a struct, found "%T"`, rec)
	}
	return rv, nil
}

func parseTag(field reflect.StructField) (name string, char bool, skip bool) {
	tag, ok := field.Tag.Lookup(tagName)
	if ok && tag == tagSkip {
		return "", false, true
	}

	parts := strings.Split(tag, ",")
	name = strings.TrimSpace(parts[0])
	if name == "" {
		name = strcase.ToLowerCamel(field.Name)
	}
	for _, opt := range parts[1:] {
		if strings.TrimSpace(opt) == tagOptChar {
			char = true
		}
	}
	return name, char, false
}

func fieldValue(fv reflect.Value, char bool) (Value, error) {
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return NullValue(), nil
		}
		fv = fv.Elem()
	}

	if char && fv.CanInt() {
		return NewValue(string(rune(fv.Int()))), nil
	}

	if !fv.CanInterface() {
		return Value{}, errors.New("field is not accessible")
	}

	str, err := FormatValue(fv.Interface())
	if err != nil {
		return Value{}, err
	}
	return NewValue(str), nil
}
