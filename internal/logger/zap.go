package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
	closers []io.Closer
}

// defaultZapLevel defines the fallback log level when an unknown level string is provided.
const defaultZapLevel = zapcore.DebugLevel

const (
	defaultMaxSizeMB  = 50
	defaultMaxBackups = 3
	defaultMaxAgeDays = 28
)

// toZapLevel converts a textual level to zapcore.Level using known level constants.
func toZapLevel(levelStr string) zapcore.Level {
	switch levelStr {
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultZapLevel
	}
}

// newConsoleCore builds a zapcore.Core with a console encoder targeting w.
func newConsoleCore(w io.Writer, level zapcore.Level) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = ""
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoder := zapcore.NewConsoleEncoder(cfg)
	ws := zapcore.Lock(zapcore.AddSync(w)) // thread-safe writer
	return zapcore.NewCore(encoder, ws, zap.NewAtomicLevelAt(level))
}

// newFileCore writes JSON lines to a size-rotated file.
func newFileCore(w io.Writer, level zapcore.Level) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
}

func newRotator(cfg Config) *lumberjack.Logger {
	r := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	if r.MaxSize <= 0 {
		r.MaxSize = defaultMaxSizeMB
	}
	if r.MaxBackups <= 0 {
		r.MaxBackups = defaultMaxBackups
	}
	if r.MaxAge <= 0 {
		r.MaxAge = defaultMaxAgeDays
	}
	return r
}

// New builds a sugared logger writing to stdout and, optionally, a rotated file.
func New(cfg Config) *Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(console io.Writer, cfg Config) *Logger {
	level := toZapLevel(cfg.Level)
	cores := []zapcore.Core{newConsoleCore(console, level)}
	var closers []io.Closer
	if cfg.File != "" {
		rot := newRotator(cfg)
		cores = append(cores, newFileCore(rot, level))
		closers = append(closers, rot)
	}
	return &Logger{
		SugaredLogger: zap.New(zapcore.NewTee(cores...)).Sugar(),
		closers:       closers,
	}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// Close flushes buffered entries and releases the log file, if any.
func (l *Logger) Close() error {
	_ = l.Sync()
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
