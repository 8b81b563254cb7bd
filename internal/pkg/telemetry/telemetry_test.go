package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	svcerrors "github.com/keboola/recordcsv/internal/pkg/service/common/errors"
	"github.com/keboola/recordcsv/internal/pkg/telemetry"
	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

func TestErrorType(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", telemetry.ErrorType(nil))
	assert.Equal(t, "other", telemetry.ErrorType(errors.New("some error")))
	assert.Equal(t, "context_canceled", telemetry.ErrorType(errors.Errorf(`some error: %w`, context.Canceled)))
	assert.Equal(t, "deadline_exceeded", telemetry.ErrorType(errors.Errorf(`some error: %w`, context.DeadlineExceeded)))
	assert.Equal(t, "validation", telemetry.ErrorType(svcerrors.NewValidationError(errors.New("some error"))))
	assert.Equal(t, "integrity", telemetry.ErrorType(svcerrors.NewIntegrityError("type", "attr")))
}

func TestTracer_Span(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	tracer := telemetry.NewTracer(tracesdk.NewTracerProvider(tracesdk.WithSpanProcessor(recorder)))

	// Ok
	var err error
	_, span := tracer.Start(context.Background(), "my.span")
	span.SetAttributes(attribute.Int("count", 3))
	span.End(&err)

	// Error
	err = svcerrors.NewIOError(errors.New("disk full"))
	_, span = tracer.Start(context.Background(), "my.failed.span")
	span.End(&err)

	// Integrity error
	err = errors.PrefixError(svcerrors.NewIntegrityError("Person", "age"), "cannot write record 2")
	_, span = tracer.Start(context.Background(), "my.integrity.span")
	span.End(&err)

	// Unknown result
	_, span = tracer.Start(context.Background(), "my.unknown.span")
	span.End(nil)

	spans := recorder.Ended()
	require.Len(t, spans, 4)

	assert.Equal(t, "my.span", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Equal(t, []attribute.KeyValue{attribute.Int("count", 3)}, spans[0].Attributes())

	assert.Equal(t, "my.failed.span", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "disk full", spans[1].Status().Description)
	assert.Equal(t, []attribute.KeyValue{attribute.String("error.type", "io")}, spans[1].Attributes())
	require.Len(t, spans[1].Events(), 1)
	assert.Equal(t, "exception", spans[1].Events()[0].Name)

	assert.Equal(t, "my.integrity.span", spans[2].Name())
	assert.Equal(t, codes.Error, spans[2].Status().Code)
	assert.Equal(t, []attribute.KeyValue{
		attribute.String("error.type", "integrity"),
		attribute.String("error.record_type", "Person"),
		attribute.String("error.attribute", "age"),
	}, spans[2].Attributes())

	assert.Equal(t, "my.unknown.span", spans[3].Name())
	assert.Equal(t, codes.Unset, spans[3].Status().Code)
	assert.Empty(t, spans[3].Attributes())
}

func TestNewNopTracer(t *testing.T) {
	t.Parallel()
	var err error
	_, span := telemetry.NewNopTracer().Start(context.Background(), "my.span")
	span.End(&err)
}
