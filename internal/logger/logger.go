// Package logger provides the process-wide structured logger backed by zap.
package logger

import (
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var current atomic.Pointer[zap.SugaredLogger]

func init() {
	current.Store(zap.NewNop().Sugar())
}

// Initialize builds the process logger for the given level and installs it.
// Debug mode switches to the human-readable console encoder.
func Initialize(level string, debug bool) error {
	l, err := New(level, debug)
	if err != nil {
		return err
	}
	Set(l)
	return nil
}

// New builds a zap logger without installing it
func New(level string, debug bool) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	// Keep stdout clean for commands that print data.
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level, debug))

	return cfg.Build()
}

// ParseLevel maps a textual level to a zap level. Unknown values fall back to info.
func ParseLevel(level string, debug bool) zapcore.Level {
	if debug {
		return zapcore.DebugLevel
	}
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Set installs l as the process logger
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	current.Store(l.Sugar())
}

// Get returns the process logger
func Get() *zap.SugaredLogger {
	return current.Load()
}

// Sync flushes buffered log entries
func Sync() {
	_ = Get().Sync()
}

// Debugf logs a formatted message at debug level
func Debugf(template string, args ...any) { Get().Debugf(template, args...) }

// Infof logs a formatted message at info level
func Infof(template string, args ...any) { Get().Infof(template, args...) }

// Warnf logs a formatted message at warn level
func Warnf(template string, args ...any) { Get().Warnf(template, args...) }

// Errorf logs a formatted message at error level
func Errorf(template string, args ...any) { Get().Errorf(template, args...) }

// Fatalf logs a formatted message and exits
func Fatalf(template string, args ...any) { Get().Fatalf(template, args...) }

// Debug logs a message at debug level
func Debug(args ...any) { Get().Debug(args...) }

// Info logs a message at info level
func Info(args ...any) { Get().Info(args...) }

// Warn logs a message at warn level
func Warn(args ...any) { Get().Warn(args...) }

// Debugw logs a message with key/value pairs at debug level
func Debugw(msg string, keysAndValues ...any) { Get().Debugw(msg, keysAndValues...) }

// Infow logs a message with key/value pairs at info level
func Infow(msg string, keysAndValues ...any) { Get().Infow(msg, keysAndValues...) }

// Warnw logs a message with key/value pairs at warn level
func Warnw(msg string, keysAndValues ...any) { Get().Warnw(msg, keysAndValues...) }

// Errorw logs a message with key/value pairs at error level
func Errorw(msg string, keysAndValues ...any) { Get().Errorw(msg, keysAndValues...) }
