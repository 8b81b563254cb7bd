// Package recordcsv serializes heterogeneous records to a single CSV table.
//
// The header contains attributes of all record types, in the order they were first seen.
// A child type inherits attributes of its parent, for Go structs the parent is the embedded struct.
// A cell is empty if the value is null or if the record type doesn't own the attribute.
//
// Records can be Go structs, see record.ReflectIntrospector,
// or Dynamic records described by a Schema, see NewSchemaIntrospector.
package recordcsv

import (
	"context"
	"io"

	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/keboola/recordcsv/internal/pkg/log"
	"github.com/keboola/recordcsv/internal/pkg/record"
	"github.com/keboola/recordcsv/internal/pkg/serializer"
	svcerrors "github.com/keboola/recordcsv/internal/pkg/service/common/errors"
)

type (
	Config       = serializer.Config
	Serializer   = serializer.Serializer
	Introspector = record.Introspector
	Dynamic      = record.Dynamic
	Schema       = record.Schema
)

type Option func(o *options)

type options struct {
	logger     log.Logger
	serializer []serializer.Option
}

// WithLogger sets the logger, messages are discarded by default.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = log.NewLoggerFromZap(l)
	}
}

// WithIntrospector sets how the records are read, Go structs are expected by default.
func WithIntrospector(v Introspector) Option {
	return func(o *options) {
		o.serializer = append(o.serializer, serializer.WithIntrospector(v))
	}
}

func WithTracerProvider(v trace.TracerProvider) Option {
	return func(o *options) {
		o.serializer = append(o.serializer, serializer.WithTracerProvider(v))
	}
}

// NewConfig returns the default configuration: CSV, UTF-8, "," delimiter and "\n" line terminator.
func NewConfig() Config {
	return serializer.NewConfig()
}

func New(cfg Config, opts ...Option) (*Serializer, error) {
	o := options{logger: log.NewNopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return serializer.New(o.logger, cfg, o.serializer...)
}

// Serialize writes records to the output with the default configuration.
func Serialize(ctx context.Context, out io.Writer, records []any, opts ...Option) error {
	s, err := New(NewConfig(), opts...)
	if err != nil {
		return err
	}
	return s.Serialize(ctx, out, records)
}

// WriteFile writes records to the file with the default configuration.
func WriteFile(ctx context.Context, path string, records []any, opts ...Option) error {
	s, err := New(NewConfig(), opts...)
	if err != nil {
		return err
	}
	return s.WriteFile(ctx, afero.NewOsFs(), path, records)
}

func ParseSchema(ctx context.Context, yamlData []byte) (Schema, error) {
	return record.ParseSchema(ctx, yamlData)
}

// NewSchemaIntrospector reads Dynamic records of the types defined by the schema.
func NewSchemaIntrospector(schema Schema) (Introspector, error) {
	introspector, err := record.NewSchemaIntrospector(schema)
	if err != nil {
		return nil, err
	}
	return introspector, nil
}

func IsConfigurationError(err error) bool {
	return svcerrors.IsConfigurationError(err)
}

func IsValidationError(err error) bool {
	return svcerrors.IsValidationError(err)
}

func IsIntegrityError(err error) bool {
	return svcerrors.IsIntegrityError(err)
}

func IsIOError(err error) bool {
	return svcerrors.IsIOError(err)
}
