// Package serializer validates records and serializes them by the configured strategy.
//
// All records must be in memory, the output columns are known only after all records are processed.
// If the validation fails, nothing is written. If the writing fails, the output is incomplete,
// the caller owns the output and must discard it.
package serializer

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/keboola/recordcsv/internal/pkg/csv/writer"
	"github.com/keboola/recordcsv/internal/pkg/encoding/charset"
	"github.com/keboola/recordcsv/internal/pkg/encoding/compression"
	"github.com/keboola/recordcsv/internal/pkg/log"
	"github.com/keboola/recordcsv/internal/pkg/record"
	svcerrors "github.com/keboola/recordcsv/internal/pkg/service/common/errors"
	"github.com/keboola/recordcsv/internal/pkg/telemetry"
	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
	"github.com/keboola/recordcsv/internal/pkg/validator"
)

const spanPrefix = "recordcsv.serializer."

// Serializer is not safe for concurrent use if the options are modified by the setters.
type Serializer struct {
	config       Config
	encoder      EncoderConfig
	logger       log.Logger
	tracer       telemetry.Tracer
	introspector record.Introspector
	factory      Factory
}

type Option func(s *Serializer)

// WithIntrospector replaces the default record.ReflectIntrospector.
func WithIntrospector(v record.Introspector) Option {
	return func(s *Serializer) {
		s.introspector = v
	}
}

func WithTracerProvider(v trace.TracerProvider) Option {
	return func(s *Serializer) {
		s.tracer = telemetry.NewTracer(v)
	}
}

// WithEncoderFactory overrides the DefaultFactory, it can be useful for tests.
func WithEncoderFactory(v Factory) Option {
	return func(s *Serializer) {
		s.factory = v
	}
}

func New(logger log.Logger, cfg Config, opts ...Option) (*Serializer, error) {
	s := &Serializer{
		logger:       logger.WithComponent("serializer"),
		tracer:       telemetry.NewNopTracer(),
		introspector: record.NewReflectIntrospector(),
		factory:      DefaultFactory{},
	}
	for _, o := range opts {
		o(s)
	}

	if err := validator.New().Validate(context.Background(), cfg); err != nil {
		return nil, svcerrors.NewConfigurationError(errors.PrefixError(err, "invalid configuration"))
	}

	errs := errors.NewMultiError()
	errs.Append(
		s.SetStrategy(string(cfg.Strategy)),
		s.SetCharset(cfg.Charset),
		s.SetLineTerminatorName(cfg.LineTerminator),
		s.SetDelimiter(cfg.Delimiter),
		s.SetLogLevel(cfg.LogLevel),
	)
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	s.config.BufferSize = cfg.BufferSize
	s.config.Compression = cfg.Compression
	return s, nil
}

// Config returns the current configuration, including changes made by the setters.
func (s *Serializer) Config() Config {
	return s.config
}

// SetStrategy fails with a ConfigurationError, if the strategy is not supported.
func (s *Serializer) SetStrategy(v string) error {
	switch Strategy(v) {
	case StrategyCSV:
		s.config.Strategy = Strategy(v)
		s.encoder.Strategy = Strategy(v)
		return nil
	default:
		return svcerrors.NewConfigurationError(errors.Errorf(`serialization strategy "%s" is not supported`, v))
	}
}

// SetCharset fails with a ConfigurationError, if the charset is unknown.
// Empty name means the default charset.
func (s *Serializer) SetCharset(name string) error {
	c, err := charset.Resolve(name)
	if err != nil {
		return svcerrors.NewConfigurationError(err)
	}
	s.config.Charset = c.Name()
	s.encoder.Charset = c
	return nil
}

// SetLineTerminator accepts only the literal values "\n" and "\r\n", otherwise it fails with a ConfigurationError.
func (s *Serializer) SetLineTerminator(v string) error {
	terminator, err := writer.ParseLineTerminator(v)
	if err != nil {
		return err
	}
	s.config.LineTerminator = terminator.Name()
	s.encoder.LineTerminator = terminator
	return nil
}

// SetLineTerminatorName accepts the names "lf" and "crlf", otherwise it fails with a ConfigurationError.
func (s *Serializer) SetLineTerminatorName(name string) error {
	terminator, err := writer.LineTerminatorFromName(name)
	if err != nil {
		return err
	}
	s.config.LineTerminator = terminator.Name()
	s.encoder.LineTerminator = terminator
	return nil
}

// SetDelimiter fails with a ConfigurationError, if the value is not a single character.
func (s *Serializer) SetDelimiter(v string) error {
	delimiter, err := writer.ParseDelimiter(v)
	if err != nil {
		return err
	}
	s.config.Delimiter = v
	s.encoder.Delimiter = delimiter
	return nil
}

// SetLogLevel sets level of the serialization progress messages.
func (s *Serializer) SetLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "error":
		s.config.LogLevel = level
		s.encoder.LogLevel = level
		return nil
	default:
		return svcerrors.NewConfigurationError(errors.Errorf(`log level "%s" is not supported, expected one of debug, info, warn, error`, level))
	}
}

// Validate checks that there is something to serialize and that all attributes have an accepted type.
// All problems are reported in one ValidationError.
func (s *Serializer) Validate(ctx context.Context, records []any) error {
	if len(records) == 0 {
		return svcerrors.NewValidationError(errors.New("nothing to serialize, no records found"))
	}

	errs := errors.NewMultiError()
	for i, rec := range records {
		if rec == nil {
			errs.Append(errors.Errorf("record %d is nil", i+1))
			continue
		}
		if err := s.introspector.Validate(ctx, rec); err != nil {
			errs.AppendWithPrefixf(err, "invalid record %d", i+1)
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return svcerrors.NewValidationError(err)
	}
	return nil
}

// Serialize validates the records and writes them to the output.
// The output is not closed, it is the caller's responsibility.
func (s *Serializer) Serialize(ctx context.Context, out io.Writer, records []any) (err error) {
	ctx, span := s.tracer.Start(ctx, spanPrefix+"Serialize")
	span.SetAttributes(attribute.Int("records", len(records)), attribute.String("strategy", string(s.config.Strategy)))
	defer span.End(&err)

	s.logger.Log(ctx, s.config.LogLevel, "Validating received records.")
	if err := s.Validate(ctx, records); err != nil {
		return err
	}

	return s.encode(ctx, span, out, records)
}

// WriteFile validates the records, replaces the file by a new one and writes the records to it.
// The file is always closed.
func (s *Serializer) WriteFile(ctx context.Context, fs afero.Fs, path string, records []any) (err error) {
	ctx, span := s.tracer.Start(ctx, spanPrefix+"WriteFile")
	span.SetAttributes(attribute.Int("records", len(records)), attribute.String("path", path))
	defer span.End(&err)

	s.logger.Log(ctx, s.config.LogLevel, "Validating received records.")
	if err := s.Validate(ctx, records); err != nil {
		return err
	}

	// Remove the old file
	if _, err := fs.Stat(path); err == nil {
		if err := fs.Remove(path); err != nil {
			return svcerrors.NewIOError(err)
		}
		s.logger.Logf(ctx, s.config.LogLevel, `Removed existing file "%s".`, path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return svcerrors.NewIOError(err)
	}

	s.logger.Logf(ctx, s.config.LogLevel, `Opening file "%s".`, path)
	file, err := fs.Create(path)
	if err != nil {
		return svcerrors.NewIOError(err)
	}

	defer func() {
		s.logger.Logf(ctx, s.config.LogLevel, `Closing file "%s".`, path)
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = svcerrors.NewIOError(closeErr)
		}
	}()

	return s.encode(ctx, span, file, records)
}

func (s *Serializer) encode(ctx context.Context, span telemetry.Span, out io.Writer, records []any) error {
	startTime := time.Now()

	s.logger.Log(ctx, s.config.LogLevel, "Building serializer.")
	encoder, err := s.factory.NewEncoder(s.encoder, s.logger, s.introspector)
	if err != nil {
		return err
	}

	// Output chain: encoder -> buffer -> compression -> out
	compressed, err := compression.NewWriter(out, s.config.Compression)
	if err != nil {
		return svcerrors.NewConfigurationError(err)
	}
	var sink io.Writer = compressed
	var buffer *bufio.Writer
	if s.config.BufferSize > 0 {
		buffer = bufio.NewWriterSize(compressed, int(s.config.BufferSize.Bytes()))
		sink = buffer
	}

	s.logger.Log(ctx, s.config.LogLevel, "Serializing records.")
	stats, err := encoder.Encode(ctx, sink, records)
	if err != nil {
		_ = compressed.Close()
		return err
	}

	if buffer != nil {
		if err := buffer.Flush(); err != nil {
			_ = compressed.Close()
			return svcerrors.NewIOError(err)
		}
	}
	if err := compressed.Close(); err != nil {
		return svcerrors.NewIOError(err)
	}

	span.SetAttributes(
		attribute.Int("columns", stats.Columns),
		attribute.Int("lines", stats.Lines),
		attribute.Int64("bytes", stats.Bytes),
	)
	s.logger.WithDuration(time.Since(startTime)).Logf(
		ctx, s.config.LogLevel,
		"Serialized %d records, %d columns, %d bytes.", len(records), stats.Columns, stats.Bytes,
	)
	return nil
}
