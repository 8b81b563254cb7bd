// Package record provides introspection of the serialized records.
//
// The CSV core never touches concrete record types, it works only with the Introspector capability.
// Two implementations are provided:
//   - ReflectIntrospector for Go structs, an embedded struct is the parent type.
//   - SchemaIntrospector for Dynamic records described by an explicit Schema.
package record

import (
	"context"
)

// Attribute is declared directly on a record type.
type Attribute struct {
	Name string
	// Type is an informational descriptor of the declared value type.
	Type string
}

// Type of record, it may derive from a parent type.
type Type interface {
	// ID identifies the type, it is used as an owner of the columns.
	ID() string
	// Attributes returns attributes declared directly on the type, in the declaration order, without the ancestors.
	Attributes() []Attribute
	// Parent returns the parent type, if any.
	Parent() (Type, bool)
}

// Introspector resolves types and attribute values of records.
type Introspector interface {
	// TypeOf returns the concrete type of the record.
	TypeOf(rec any) (Type, error)
	// Validate checks that the record can be serialized, all attribute values must be of an accepted type:
	// primitive, boxed primitive, enumeration or text.
	Validate(ctx context.Context, rec any) error
	// Value resolves the attribute by name, the record type is searched first, then the ancestors.
	// The found flag is false, if no type in the chain declares the attribute.
	Value(rec any, name string) (value Value, found bool, err error)
}

// Value of an attribute, formatted to the canonical string representation.
type Value struct {
	str  string
	null bool
}

func NewValue(str string) Value {
	return Value{str: str}
}

func NullValue() Value {
	return Value{null: true}
}

func (v Value) IsNull() bool {
	return v.null
}

// String returns the canonical representation, an empty string for null.
func (v Value) String() string {
	return v.str
}

// Chain returns the type followed by all its ancestors, the most-derived type first.
func Chain(t Type) []Type {
	var out []Type
	for t != nil {
		out = append(out, t)
		parent, ok := t.Parent()
		if !ok {
			break
		}
		t = parent
	}
	return out
}

// ChainIDs returns identifiers of the type and all its ancestors, see Chain.
func ChainIDs(t Type) []string {
	chain := Chain(t)
	out := make([]string, 0, len(chain))
	for _, item := range chain {
		out = append(out, item.ID())
	}
	return out
}
