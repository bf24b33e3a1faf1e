package logger

import (
	"io"
	"os"
	"sync"

	"github.com/avensley/tracelog/core"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

func init() {
	l := New("root")
	// Colour resolution keys off the writer, so a piped stderr stays plain.
	_, _ = l.Add(os.Stderr)
	defaultLogger = l
}

// Default returns the process-wide default logger.
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide default logger. The previous
// default is not closed.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions delegating to the default logger.
// The logging ones call log directly so the reported call site stays
// with the caller.

// Log logs message at the named level using the default logger.
func Log(level string, message any) error {
	return Default().log(2, level, message, nil, nil)
}

// LogWith logs message at the named level with extra fields using the
// default logger.
func LogWith(level string, message any, extra map[string]any) error {
	return Default().log(2, level, message, extra, nil)
}

// LogError logs err at ERROR with the default error message using the
// default logger.
func LogError(err error) error {
	return Default().log(2, core.LevelError, DefaultErrorMessage, nil, err)
}

// Trace logs message at TRACE using the default logger.
func Trace(message any) error {
	return Default().log(2, core.LevelTrace, message, nil, nil)
}

// Debug logs message at DEBUG using the default logger.
func Debug(message any) error {
	return Default().log(2, core.LevelDebug, message, nil, nil)
}

// Info logs message at INFO using the default logger.
func Info(message any) error {
	return Default().log(2, core.LevelInfo, message, nil, nil)
}

// Success logs message at SUCCESS using the default logger.
func Success(message any) error {
	return Default().log(2, core.LevelSuccess, message, nil, nil)
}

// Warning logs message at WARNING using the default logger.
func Warning(message any) error {
	return Default().log(2, core.LevelWarning, message, nil, nil)
}

// Error logs message at ERROR using the default logger.
func Error(message any) error {
	return Default().log(2, core.LevelError, message, nil, nil)
}

// Critical logs message at CRITICAL using the default logger.
func Critical(message any) error {
	return Default().log(2, core.LevelCritical, message, nil, nil)
}

// Add registers a writer sink on the default logger.
func Add(w io.Writer, opts ...SinkOption) (int, error) {
	return Default().Add(w, opts...)
}

// AddFunc registers a function sink on the default logger.
func AddFunc(fn func(string) error, opts ...SinkOption) (int, error) {
	return Default().AddFunc(fn, opts...)
}

// AddFile registers a file sink on the default logger.
func AddFile(path string, opts ...SinkOption) (int, error) {
	return Default().AddFile(path, opts...)
}

// Remove detaches and closes a sink on the default logger.
func Remove(id int) error {
	return Default().Remove(id)
}

// Disable mutes the given scopes on the default logger, or the calling
// package's scope when none are given.
func Disable(scopes ...string) {
	if len(scopes) == 0 {
		scopes = []string{core.Capture(1).Scope}
	}
	Default().Disable(scopes...)
}

// Enable unmutes the given scopes on the default logger, or the calling
// package's scope when none are given.
func Enable(scopes ...string) {
	if len(scopes) == 0 {
		scopes = []string{core.Capture(1).Scope}
	}
	Default().Enable(scopes...)
}

// Close closes every sink registered on the default logger.
func Close() error {
	return Default().Close()
}
