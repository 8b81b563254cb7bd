// Package writer emits the header and the records as delimited text, columns are defined by the column.Registry.
//
// Each line is built in a buffer and written to the output by a single Write call.
// Values are written verbatim, without quoting or escaping.
// A cell is empty if the value is null or if the record type doesn't own the column, both cases look the same.
package writer

import (
	"bytes"
	"context"
	"io"

	"go.opentelemetry.io/otel/attribute"

	"github.com/keboola/recordcsv/internal/pkg/csv/column"
	"github.com/keboola/recordcsv/internal/pkg/encoding/charset"
	"github.com/keboola/recordcsv/internal/pkg/log"
	"github.com/keboola/recordcsv/internal/pkg/record"
	svcerrors "github.com/keboola/recordcsv/internal/pkg/service/common/errors"
	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

type Writer struct {
	config       config
	out          io.Writer
	logger       log.Logger
	registry     *column.Registry
	introspector record.Introspector
	line         bytes.Buffer
	lines        int
	bytes        int64
}

type config struct {
	delimiter  rune
	terminator LineTerminator
	charset    charset.Charset
	logLevel   string
}

type Option func(c *config)

func WithDelimiter(v rune) Option {
	return func(c *config) {
		c.delimiter = v
	}
}

func WithLineTerminator(v LineTerminator) Option {
	return func(c *config) {
		c.terminator = v
	}
}

// WithCharset sets encoding of all written bytes, default is UTF-8.
func WithCharset(v charset.Charset) Option {
	return func(c *config) {
		c.charset = v
	}
}

// WithLogLevel sets the level of the progress messages, default is "debug".
func WithLogLevel(level string) Option {
	return func(c *config) {
		c.logLevel = level
	}
}

func New(out io.Writer, logger log.Logger, registry *column.Registry, introspector record.Introspector, opts ...Option) *Writer {
	cfg := config{
		delimiter:  DefaultDelimiter,
		terminator: DefaultLineTerminator,
		charset:    charset.MustResolve(charset.Default),
		logLevel:   "debug",
	}
	for _, o := range opts {
		o(&cfg)
	}

	return &Writer{
		config:       cfg,
		out:          out,
		logger:       logger.WithComponent("writer"),
		registry:     registry,
		introspector: introspector,
	}
}

// WriteHeader writes names of all columns.
func (w *Writer) WriteHeader(ctx context.Context) error {
	w.line.Reset()
	for i, key := range w.registry.Keys() {
		if i > 0 {
			w.line.WriteRune(w.config.delimiter)
		}
		w.line.WriteString(key.Name())
	}
	w.line.WriteString(string(w.config.terminator))

	if err := w.flush(); err != nil {
		return err
	}

	w.logger.With(attribute.Int("columns", w.registry.Len())).Logf(ctx, w.config.logLevel, "Header written.")
	return nil
}

// WriteRecord writes values of the record, a column not owned by the record type is empty.
func (w *Writer) WriteRecord(ctx context.Context, rec any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t, err := w.introspector.TypeOf(rec)
	if err != nil {
		return err
	}
	chain := record.ChainIDs(t)

	w.line.Reset()
	for i, key := range w.registry.Keys() {
		if i > 0 {
			w.line.WriteRune(w.config.delimiter)
		}

		if !key.OwnedByAny(chain) {
			continue
		}

		value, found, err := w.introspector.Value(rec, key.Name())
		if err != nil {
			return err
		}
		if !found {
			return svcerrors.NewIntegrityError(t.ID(), key.Name())
		}
		if !value.IsNull() {
			w.line.WriteString(value.String())
		}
	}
	w.line.WriteString(string(w.config.terminator))

	if err := w.flush(); err != nil {
		return err
	}

	w.logger.Logf(ctx, w.config.logLevel, `Written record of the type "%s".`, t.ID())
	return nil
}

// Lines returns the number of lines written, including the header.
func (w *Writer) Lines() int {
	return w.lines
}

// Bytes returns the number of bytes written to the output, after the charset encoding.
func (w *Writer) Bytes() int64 {
	return w.bytes
}

// flush writes the whole line or nothing.
func (w *Writer) flush() error {
	var out []byte
	if w.config.charset.IsUTF8() {
		out = w.line.Bytes()
	} else {
		encoded, err := w.config.charset.Encode(w.line.String())
		if err != nil {
			return svcerrors.NewIOError(err)
		}
		out = encoded
	}

	n, err := w.out.Write(out)
	w.bytes += int64(n)
	if err != nil {
		return svcerrors.NewIOError(err)
	}
	if n != len(out) {
		return svcerrors.NewIOError(errors.Wrapf(io.ErrShortWrite, "written %d of %d bytes", n, len(out)))
	}

	w.lines++
	return nil
}
