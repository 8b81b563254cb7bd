package serializer

import (
	"context"
	"io"

	"github.com/keboola/recordcsv/internal/pkg/csv/column"
	"github.com/keboola/recordcsv/internal/pkg/csv/writer"
	"github.com/keboola/recordcsv/internal/pkg/encoding/charset"
	"github.com/keboola/recordcsv/internal/pkg/log"
	"github.com/keboola/recordcsv/internal/pkg/record"
	svcerrors "github.com/keboola/recordcsv/internal/pkg/service/common/errors"
	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

// Encoder writes already validated records to the output.
type Encoder interface {
	Encode(ctx context.Context, out io.Writer, records []any) (Stats, error)
}

// Stats of the written output.
type Stats struct {
	Columns int
	Lines   int
	Bytes   int64
}

// EncoderConfig contains resolved options of the Serializer.
type EncoderConfig struct {
	Strategy       Strategy
	Charset        charset.Charset
	LineTerminator writer.LineTerminator
	Delimiter      rune
	LogLevel       string
}

type Factory interface {
	NewEncoder(cfg EncoderConfig, logger log.Logger, introspector record.Introspector) (Encoder, error)
}

type DefaultFactory struct{}

func (DefaultFactory) NewEncoder(cfg EncoderConfig, logger log.Logger, introspector record.Introspector) (Encoder, error) {
	switch cfg.Strategy {
	case StrategyCSV:
		return &csvEncoder{config: cfg, logger: logger, introspector: introspector}, nil
	default:
		return nil, svcerrors.NewConfigurationError(errors.Errorf(`unexpected serialization strategy "%s"`, cfg.Strategy))
	}
}

func FactoryFn(fn func(cfg EncoderConfig, logger log.Logger, introspector record.Introspector) (Encoder, error)) Factory {
	return factoryFn{Fn: fn}
}

type factoryFn struct {
	Fn func(cfg EncoderConfig, logger log.Logger, introspector record.Introspector) (Encoder, error)
}

func (f factoryFn) NewEncoder(cfg EncoderConfig, logger log.Logger, introspector record.Introspector) (Encoder, error) {
	return f.Fn(cfg, logger, introspector)
}

// csvEncoder builds the columns registry from all records first, then writes the header and the records.
type csvEncoder struct {
	config       EncoderConfig
	logger       log.Logger
	introspector record.Introspector
}

func (e *csvEncoder) Encode(ctx context.Context, out io.Writer, records []any) (Stats, error) {
	registry, err := column.Build(ctx, e.logger, e.introspector, records, column.WithLogLevel(e.config.LogLevel))
	if err != nil {
		return Stats{}, err
	}

	w := writer.New(
		out, e.logger, registry, e.introspector,
		writer.WithDelimiter(e.config.Delimiter),
		writer.WithLineTerminator(e.config.LineTerminator),
		writer.WithCharset(e.config.Charset),
		writer.WithLogLevel(e.config.LogLevel),
	)

	stats := func() Stats {
		return Stats{Columns: registry.Len(), Lines: w.Lines(), Bytes: w.Bytes()}
	}

	if err := w.WriteHeader(ctx); err != nil {
		return stats(), err
	}

	for _, rec := range records {
		if err := w.WriteRecord(ctx, rec); err != nil {
			return stats(), err
		}
	}

	return stats(), nil
}
