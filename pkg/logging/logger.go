package logging

import (
	"bytes"
	"io"

	"github.com/charmbracelet/log"
)

// Prefix is shown in front of every line when debug logging is on.
const Prefix = "fis-launcher"

// Logger is a wrapper around the log.Logger from the charmbracelet/log package.
// Buffer is only set for loggers created by NewTestLogger.
type Logger struct {
	*log.Logger
	Buffer *bytes.Buffer
}

// New returns a logger writing to w. Debug logging adds caller, timestamp
// and prefix to every line.
func New(w io.Writer, debug bool) *Logger {
	if !debug {
		return &Logger{Logger: log.NewWithOptions(w, log.Options{Level: log.InfoLevel})}
	}

	baseLogger := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          Prefix,
	})
	baseLogger.SetLevel(log.DebugLevel)
	return &Logger{Logger: baseLogger}
}

// NewTestLogger returns a debug-level logger writing into an in-memory buffer.
func NewTestLogger() *Logger {
	buf := new(bytes.Buffer)
	baseLogger := log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
	return &Logger{Logger: baseLogger, Buffer: buf}
}

// GetOutput returns everything written to a test logger so far.
func (l *Logger) GetOutput() string {
	if l.Buffer == nil {
		return ""
	}
	return l.Buffer.String()
}

// With returns a child logger carrying the given key/value pairs. The
// capture buffer, if any, is shared with the parent.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{Logger: l.Logger.With(keyvals...), Buffer: l.Buffer}
}
