// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/keboola/recordcsv/internal/pkg/ctxattr"
)

const componentKey = "component"

// zapLogger is default implementation of the Logger interface.
// It is wrapped zap.SugaredLogger.
type zapLogger struct {
	core      zapcore.Core
	fields    []zap.Field
	component string
	sugar     *zap.SugaredLogger
}

func loggerFromZapCore(core zapcore.Core) *zapLogger {
	return newZapLogger(core, nil, "")
}

func newZapLogger(core zapcore.Core, fields []zap.Field, component string) *zapLogger {
	all := fields
	if component != "" {
		all = append(append([]zap.Field{}, fields...), zap.String(componentKey, component))
	}
	return &zapLogger{
		core:      core,
		fields:    fields,
		component: component,
		sugar:     zap.New(core).With(all...).Sugar(),
	}
}

func (l *zapLogger) ZapCore() zapcore.Core {
	return l.core
}

func (l *zapLogger) With(attrs ...attribute.KeyValue) Logger {
	fields := append([]zap.Field{}, l.fields...)
	for _, attr := range attrs {
		fields = append(fields, zap.Any(string(attr.Key), attr.Value.AsInterface()))
	}
	return newZapLogger(l.core, fields, l.component)
}

// WithComponent appends the component to the current one, the parts are separated by a dot, for example "serializer.writer".
func (l *zapLogger) WithComponent(component string) Logger {
	if l.component != "" {
		component = strings.Join([]string{l.component, component}, ".")
	}
	return newZapLogger(l.core, l.fields, component)
}

func (l *zapLogger) WithDuration(v time.Duration) Logger {
	return l.With(attribute.String("duration", v.String()))
}

func (l *zapLogger) Debug(ctx context.Context, message string) {
	l.sugarFor(ctx).Debug(message)
}

func (l *zapLogger) Info(ctx context.Context, message string) {
	l.sugarFor(ctx).Info(message)
}

func (l *zapLogger) Warn(ctx context.Context, message string) {
	l.sugarFor(ctx).Warn(message)
}

func (l *zapLogger) Error(ctx context.Context, message string) {
	l.sugarFor(ctx).Error(message)
}

func (l *zapLogger) Log(ctx context.Context, level string, message string) {
	switch ParseLevel(level) {
	case DebugLevel:
		l.Debug(ctx, message)
	case WarnLevel:
		l.Warn(ctx, message)
	case ErrorLevel:
		l.Error(ctx, message)
	default:
		l.Info(ctx, message)
	}
}

func (l *zapLogger) Debugf(ctx context.Context, template string, args ...any) {
	l.sugarFor(ctx).Debugf(template, args...)
}

func (l *zapLogger) Infof(ctx context.Context, template string, args ...any) {
	l.sugarFor(ctx).Infof(template, args...)
}

func (l *zapLogger) Warnf(ctx context.Context, template string, args ...any) {
	l.sugarFor(ctx).Warnf(template, args...)
}

func (l *zapLogger) Errorf(ctx context.Context, template string, args ...any) {
	l.sugarFor(ctx).Errorf(template, args...)
}

func (l *zapLogger) Logf(ctx context.Context, level string, template string, args ...any) {
	l.Log(ctx, level, fmt.Sprintf(template, args...))
}

// sugarFor adds attributes from the context, see ctxattr.ContextWith.
func (l *zapLogger) sugarFor(ctx context.Context) *zap.SugaredLogger {
	set := ctxattr.Attributes(ctx)
	if set.Len() == 0 {
		return l.sugar
	}
	fields := make([]any, 0, set.Len())
	for _, kv := range set.ToSlice() {
		fields = append(fields, zap.Any(string(kv.Key), kv.Value.AsInterface()))
	}
	return l.sugar.With(fields...)
}

func (l *zapLogger) Sync() error {
	return l.sugar.Sync()
}

// NewLoggerFromZap wraps the zap logger of the application that uses the library.
func NewLoggerFromZap(l *zap.Logger) Logger {
	return loggerFromZapCore(l.Core())
}
