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

// Output encodings.
const (
	ConsoleEncoding = "console"
	JSONEncoding    = "json"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// Init configures the process logger once. Later calls return the first instance.
func Init(level, encoding string) *Logger {
	once.Do(func() {
		globalLogger = New(level, encoding)
	})
	return globalLogger
}

// Get returns the process logger, initializing it at info level if Init was never called.
func Get() *Logger {
	return Init(InfoLevel, ConsoleEncoding)
}
