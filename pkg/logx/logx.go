package logx

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the minimum severity that gets written
type Level int8

const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

// base logs at the caller's frame. sugar skips one extra frame for the
// package-level helpers below.
var (
	mu    sync.RWMutex
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base  = build(false)
	sugar = helperSugar(base)
)

// Configure rebuilds the global logger. JSON output is meant for production.
func Configure(json bool, lvl Level) {
	mu.Lock()
	defer mu.Unlock()

	level.SetLevel(toZap(lvl))
	base = build(json)
	sugar = helperSugar(base)
}

// SetLevel changes the minimum level without rebuilding the logger
func SetLevel(lvl Level) {
	level.SetLevel(toZap(lvl))
}

// ParseLevel maps a config string to a Level, defaulting to info
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "warn", "WARN", "warning":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Use replaces the underlying logger, e.g. zap.NewNop() in tests
func Use(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()

	base = l
	sugar = helperSugar(l)
}

// L returns the structured zap logger
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithFields returns a sugared logger carrying the given fields
func WithFields(fields map[string]any) *zap.SugaredLogger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return L().Sugar().With(args...)
}

// Sync flushes buffered entries
func Sync() {
	_ = L().Sync()
}

func Debug(args ...any)                 { s().Debug(args...) }
func Debugf(format string, args ...any) { s().Debugf(format, args...) }
func Info(args ...any)                  { s().Info(args...) }
func Infof(format string, args ...any)  { s().Infof(format, args...) }
func Warn(args ...any)                  { s().Warn(args...) }
func Warnf(format string, args ...any)  { s().Warnf(format, args...) }
func Error(args ...any)                 { s().Error(args...) }
func Errorf(format string, args ...any) { s().Errorf(format, args...) }
func Fatal(args ...any)                 { s().Fatal(args...) }
func Fatalf(format string, args ...any) { s().Fatalf(format, args...) }

func s() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func build(json bool) *zap.Logger {
	encoding := "console"
	if json {
		encoding = "json"
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            level,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}

	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func helperSugar(l *zap.Logger) *zap.SugaredLogger {
	return l.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

func toZap(lvl Level) zapcore.Level {
	switch lvl {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
