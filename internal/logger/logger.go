package logger

import (
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Config controls where and how verbosely the hub logs.
// File is optional; when set, JSON lines are also written there and rotated.
type Config struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Init configures the process-wide logger. Only the first call has effect.
func Init(cfg Config) *Logger {
	once.Do(func() {
		globalLogger = New(cfg)
	})
	return globalLogger
}
