package record

import (
	"context"
	"strconv"
	"unicode/utf8"

	"github.com/spf13/cast"

	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

// Dynamic is a record without a Go struct, its type is described by a Schema.
// A missing or nil value is null.
type Dynamic struct {
	Type   string         `json:"type"`
	Values map[string]any `json:"values"`
}

// SchemaIntrospector reads Dynamic records.
type SchemaIntrospector struct {
	types map[string]*dynamicType
}

type dynamicType struct {
	id     string
	attrs  []Attribute
	byName map[string]string
	parent *dynamicType
}

// number is implemented by json.Number and jsoniter.Number.
type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
}

func NewSchemaIntrospector(schema Schema) (*SchemaIntrospector, error) {
	r := &SchemaIntrospector{types: make(map[string]*dynamicType)}
	errs := errors.NewMultiError()

	// Register types
	for _, def := range schema.Types {
		if _, found := r.types[def.Name]; found {
			errs.Append(errors.Errorf(`type "%s" is defined more than once`, def.Name))
			continue
		}

		t := &dynamicType{id: def.Name, byName: make(map[string]string)}
		for _, attr := range def.Attributes {
			if _, found := t.byName[attr.Name]; found {
				errs.Append(errors.Errorf(`type "%s" declares attribute "%s" more than once`, def.Name, attr.Name))
				continue
			}
			t.byName[attr.Name] = attr.Type
			t.attrs = append(t.attrs, Attribute{Name: attr.Name, Type: attr.Type})
		}
		r.types[def.Name] = t
	}

	// Link parents
	for _, def := range schema.Types {
		if def.Parent == "" {
			continue
		}
		parent, found := r.types[def.Parent]
		if !found {
			errs.Append(errors.Errorf(`parent "%s" of the type "%s" is not defined`, def.Parent, def.Name))
			continue
		}
		r.types[def.Name].parent = parent
	}

	// Detect cycles
	for _, def := range schema.Types {
		visited := make(map[*dynamicType]bool)
		for t := r.types[def.Name]; t != nil; t = t.parent {
			if visited[t] {
				errs.Append(errors.Errorf(`type "%s" is its own ancestor`, def.Name))
				break
			}
			visited[t] = true
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SchemaIntrospector) TypeOf(rec any) (Type, error) {
	t, err := r.typeOf(rec)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *SchemaIntrospector) Validate(_ context.Context, rec any) error {
	d, err := dynamicRecord(rec)
	if err != nil {
		return err
	}

	t, err := r.typeOf(d)
	if err != nil {
		return err
	}

	errs := errors.NewMultiError()
	for name, value := range d.Values {
		attrType, declaredBy, found := t.lookup(name)
		if !found {
			errs.Append(errors.Errorf(`attribute "%s" is not declared by the type "%s" or its ancestors`, name, t.id))
			continue
		}
		if value == nil {
			continue
		}
		if _, err := formatDynamic(attrType, value); err != nil {
			errs.AppendWithPrefixf(err, `invalid attribute "%s" of the type "%s"`, name, declaredBy.id)
		}
	}
	return errs.ErrorOrNil()
}

func (r *SchemaIntrospector) Value(rec any, name string) (Value, bool, error) {
	d, err := dynamicRecord(rec)
	if err != nil {
		return Value{}, false, err
	}

	t, err := r.typeOf(d)
	if err != nil {
		return Value{}, false, err
	}

	attrType, declaredBy, found := t.lookup(name)
	if !found {
		return Value{}, false, nil
	}

	raw, ok := d.Values[name]
	if !ok || raw == nil {
		return NullValue(), true, nil
	}

	str, err := formatDynamic(attrType, raw)
	if err != nil {
		return Value{}, true, errors.PrefixErrorf(err, `cannot read attribute "%s" of the type "%s"`, name, declaredBy.id)
	}
	return NewValue(str), true, nil
}

func (r *SchemaIntrospector) typeOf(rec any) (*dynamicType, error) {
	d, err := dynamicRecord(rec)
	if err != nil {
		return nil, err
	}
	t, found := r.types[d.Type]
	if !found {
		return nil, errors.Errorf(`record type "%s" is not defined in the schema`, d.Type)
	}
	return t, nil
}

func (t *dynamicType) ID() string {
	return t.id
}

func (t *dynamicType) Attributes() []Attribute {
	return t.attrs
}

func (t *dynamicType) Parent() (Type, bool) {
	if t.parent == nil {
		return nil, false
	}
	return t.parent, true
}

// lookup searches the type first, then the ancestors.
func (t *dynamicType) lookup(name string) (attrType string, declaredBy *dynamicType, found bool) {
	for cur := t; cur != nil; cur = cur.parent {
		if attrType, ok := cur.byName[name]; ok {
			return attrType, cur, true
		}
	}
	return "", nil, false
}

func dynamicRecord(rec any) (*Dynamic, error) {
	switch v := rec.(type) {
	case Dynamic:
		return &v, nil
	case *Dynamic:
		if v == nil {
			return nil, errors.New("record is nil")
		}
		return v, nil
	default:
		return nil, errors.Errorf(`record must be "record.Dynamic", found "%T"`, rec)
	}
}

func formatDynamic(attrType string, value any) (string, error) {
	switch value.(type) {
	case map[string]any, []any:
		return "", errors.Errorf(`composite value "%T" is not supported, expected %s`, value, attrType)
	}

	switch attrType {
	case AttributeString, AttributeEnum:
		if str, ok := value.(string); ok {
			return str, nil
		}
	case AttributeChar:
		if str, ok := value.(string); ok && utf8.RuneCountInString(str) == 1 {
			return str, nil
		}
	case AttributeInt:
		if n, ok := value.(number); ok {
			if v, err := n.Int64(); err == nil {
				return strconv.FormatInt(v, 10), nil
			}
		} else if v, err := cast.ToInt64E(value); err == nil {
			return strconv.FormatInt(v, 10), nil
		}
	case AttributeFloat:
		if n, ok := value.(number); ok {
			if v, err := n.Float64(); err == nil {
				return strconv.FormatFloat(v, 'f', -1, 64), nil
			}
		} else if v, err := cast.ToFloat64E(value); err == nil {
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		}
	case AttributeBool:
		if v, ok := value.(bool); ok {
			return strconv.FormatBool(v), nil
		}
	default:
		return "", errors.Errorf(`unexpected attribute type "%s"`, attrType)
	}

	return "", errors.Errorf(`value "%v" is not %s`, value, articled(attrType))
}

func articled(attrType string) string {
	switch attrType {
	case AttributeInt, AttributeEnum:
		return "an " + attrType
	default:
		return "a " + attrType
	}
}
