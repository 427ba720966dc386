package logger

import (
	"os"
	"sync"
)

// Log levels accepted in config (log.level).
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// Get returns the process-wide logger. The first call fixes the level;
// later calls ignore it.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = New(level, os.Stdout)
	})
	return globalLogger
}
