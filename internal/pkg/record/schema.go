package record

import (
	"context"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
	"github.com/keboola/recordcsv/internal/pkg/validator"
)

// Attribute types accepted in the Schema.
const (
	AttributeString = "string"
	AttributeChar   = "char"
	AttributeInt    = "int"
	AttributeFloat  = "float"
	AttributeBool   = "bool"
	AttributeEnum   = "enum"
)

// Schema explicitly describes record types of Dynamic records.
//
// Example:
//
//	types:
//	  - name: base
//	    attributes:
//	      - {name: field1, type: int}
//	  - name: derived
//	    parent: base
//	    attributes:
//	      - {name: fieldB, type: bool}
type Schema struct {
	Types []TypeDefinition `json:"types" yaml:"types" validate:"required_not_empty,dive"`
}

type TypeDefinition struct {
	Name       string                `json:"name" yaml:"name" validate:"required"`
	Parent     string                `json:"parent,omitempty" yaml:"parent,omitempty"`
	Attributes []AttributeDefinition `json:"attributes" yaml:"attributes" validate:"dive"`
}

type AttributeDefinition struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	Type string `json:"type" yaml:"type" validate:"required,oneof=string char int float bool enum"`
}

// LoadSchema reads the YAML schema from the file.
func LoadSchema(ctx context.Context, fs afero.Fs, path string) (Schema, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Schema{}, errors.PrefixErrorf(err, `cannot read schema file "%s"`, path)
	}

	schema, err := ParseSchema(ctx, data)
	if err != nil {
		return Schema{}, errors.PrefixErrorf(err, `invalid schema file "%s"`, path)
	}

	return schema, nil
}

// ParseSchema decodes and validates the YAML schema.
func ParseSchema(ctx context.Context, data []byte) (Schema, error) {
	var schema Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return Schema{}, errors.Errorf("cannot decode YAML: %w", err)
	}
	if err := validator.New().Validate(ctx, schema); err != nil {
		return Schema{}, err
	}
	return schema, nil
}
