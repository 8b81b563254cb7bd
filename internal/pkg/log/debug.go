// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"bytes"
	"io"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type debugLogger struct {
	*zapLogger
	all      *syncBuffer
	debug    *syncBuffer
	info     *syncBuffer
	warn     *syncBuffer
	errorBuf *syncBuffer
	warnErr  *syncBuffer
	connect  *connectableWriter
}

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	lock sync.Mutex
	buf  bytes.Buffer
}

type connectableWriter struct {
	lock    sync.Mutex
	writers []io.Writer
}

// NewDebugLogger returns a logger which stores all messages in memory, it is intended for tests.
func NewDebugLogger() DebugLogger {
	l := &debugLogger{
		all:      &syncBuffer{},
		debug:    &syncBuffer{},
		info:     &syncBuffer{},
		warn:     &syncBuffer{},
		errorBuf: &syncBuffer{},
		warnErr:  &syncBuffer{},
		connect:  &connectableWriter{},
	}

	exactly := func(level zapcore.Level) zapcore.LevelEnabler {
		return zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l == level })
	}

	l.zapLogger = loggerFromZapCore(zapcore.NewTee(
		debugCore(l.all, DebugLevel),
		debugCore(l.connect, DebugLevel),
		debugCore(l.debug, exactly(DebugLevel)),
		debugCore(l.info, exactly(InfoLevel)),
		debugCore(l.warn, exactly(WarnLevel)),
		debugCore(l.errorBuf, exactly(ErrorLevel)),
		debugCore(l.warnErr, WarnLevel),
	))
	return l
}

func debugCore(w io.Writer, level zapcore.LevelEnabler) zapcore.Core {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "message",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: "  ",
	})
	return zapcore.NewCore(encoder, zapcore.AddSync(w), level)
}

// ConnectTo copies all next messages also to the writer, useful for debugging of a failed test.
func (l *debugLogger) ConnectTo(writer io.Writer) {
	l.connect.lock.Lock()
	defer l.connect.lock.Unlock()
	l.connect.writers = append(l.connect.writers, writer)
}

func (l *debugLogger) Truncate() {
	for _, b := range []*syncBuffer{l.all, l.debug, l.info, l.warn, l.errorBuf, l.warnErr} {
		b.Reset()
	}
}

func (l *debugLogger) AllMessages() string {
	return l.flush(l.all)
}

func (l *debugLogger) DebugMessages() string {
	return l.flush(l.debug)
}

func (l *debugLogger) InfoMessages() string {
	return l.flush(l.info)
}

func (l *debugLogger) WarnMessages() string {
	return l.flush(l.warn)
}

func (l *debugLogger) WarnAndErrorMessages() string {
	return l.flush(l.warnErr)
}

func (l *debugLogger) ErrorMessages() string {
	return l.flush(l.errorBuf)
}

func (l *debugLogger) flush(b *syncBuffer) string {
	out := b.String()
	l.Truncate()
	return out
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.buf.Reset()
}

func (w *connectableWriter) Write(p []byte) (int, error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	for _, writer := range w.writers {
		if _, err := writer.Write(p); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}
