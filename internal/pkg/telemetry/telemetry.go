// Package telemetry wraps the OpenTelemetry tracer, so a span can be ended with the operation result.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

const instrumentationName = "github.com/keboola/recordcsv"

type Tracer interface {
	Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, Span)
}

// Span is ended with a pointer to the named error result of the traced function.
type Span interface {
	End(errPtr *error, opts ...trace.SpanEndOption)
	SetAttributes(kv ...attribute.KeyValue)
}

// integrityError is implemented by the IntegrityError, the interface avoids the import cycle.
type integrityError interface {
	TypeID() string
	Attribute() string
}

type tracer struct {
	tracer trace.Tracer
}

type span struct {
	trace.Span
}

// NewTracer creates the Tracer from the provider, nil provider means no tracing.
func NewTracer(provider trace.TracerProvider) Tracer {
	if provider == nil {
		provider = noop.NewTracerProvider()
	}
	return &tracer{tracer: provider.Tracer(instrumentationName)}
}

func NewNopTracer() Tracer {
	return NewTracer(nil)
}

func (t *tracer) Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, Span) {
	ctx, s := t.tracer.Start(ctx, spanName, opts...)
	return ctx, span{Span: s}
}

func (s span) End(errPtr *error, opts ...trace.SpanEndOption) {
	var err error
	if errPtr != nil {
		err = *errPtr
	}

	switch {
	case errPtr == nil:
		// status is not known
	case err == nil:
		s.SetStatus(codes.Ok, "")
	default:
		s.RecordError(err)
		s.SetStatus(codes.Error, err.Error())
		s.SetAttributes(attribute.String("error.type", ErrorType(err)))

		var integrityErr integrityError
		if errors.As(err, &integrityErr) {
			s.SetAttributes(
				attribute.String("error.record_type", integrityErr.TypeID()),
				attribute.String("error.attribute", integrityErr.Attribute()),
			)
		}
	}

	s.Span.End(opts...)
}
