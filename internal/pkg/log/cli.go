// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewCliLogger creates logger for the command line interface.
//   - Info messages go to stdout, debug messages only in the verbose mode.
//   - Warnings and errors go to stderr.
//   - All messages are written to the log file, if any.
func NewCliLogger(stdout io.Writer, stderr io.Writer, logFile *File, format LogFormat, verbose bool) Logger {
	var cores []zapcore.Core

	// Log to file
	if logFile != nil {
		cores = append(cores, fileCore(logFile))
	}

	// Log to stdout
	cores = append(cores, stdoutCore(stdout, format, verbose))

	// Log to stderr
	cores = append(cores, stderrCore(stderr, format, verbose))

	// Create zapLogger
	return loggerFromZapCore(zapcore.NewTee(cores...))
}

func stdoutCore(stdout io.Writer, format LogFormat, verbose bool) zapcore.Core {
	minLevel := InfoLevel
	if verbose {
		minLevel = DebugLevel
	}
	levels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= minLevel && l < WarnLevel
	})
	return zapcore.NewCore(cliEncoder(format, verbose), zapcore.AddSync(stdout), levels)
}

func stderrCore(stderr io.Writer, format LogFormat, verbose bool) zapcore.Core {
	return zapcore.NewCore(cliEncoder(format, verbose), zapcore.AddSync(stderr), WarnLevel)
}

func cliEncoder(format LogFormat, verbose bool) zapcore.Encoder {
	if format == LogFormatJSON {
		return zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			TimeKey:     "time",
			LevelKey:    "level",
			MessageKey:  "message",
			EncodeLevel: zapcore.LowercaseLevelEncoder,
			EncodeTime:  zapcore.ISO8601TimeEncoder,
		})
	}

	// Level is printed only in the verbose mode
	cfg := zapcore.EncoderConfig{MessageKey: "message", ConsoleSeparator: "\t"}
	if verbose {
		cfg.LevelKey = "level"
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewConsoleEncoder(cfg)
}
