// Package core's logger is the solver's one progress-reporting surface: the
// CLI, the matrix builder, and the recursive search all log through it
// rather than touching stdout/stderr directly.
//
// Levels, in increasing severity, gate what actually reaches the writer:
//   - trace: per-column-selection detail from the search (depth, column,
//     live-row count) — expensive enough that call sites should guard with
//     Enabled(LogLevelTrace) before building the field map
//   - debug: one-shot matrix-build summary (row/column totals)
//   - info: default level
//   - warn / error / fatal: as usual; fatal exits the process
//   - silent: nothing is written
//
// Environment variables, all read once at NewLogger time:
//   - SCHEDULER_SILENT=1: force silent, overriding SCHEDULER_LOG_LEVEL
//   - SCHEDULER_LOG_LEVEL=trace|debug|info|warn|error|fatal|silent
//   - SCHEDULER_LOG_FORMAT=text|json
//   - SCHEDULER_LOG_FILE=/path/to/logfile: append to a file instead of stderr
//
// WithField/WithFields attach structured context to a derived logger without
// mutating the receiver, so a call site can build one up incrementally:
//
//	logger.WithFields(map[string]interface{}{"depth": depth, "column": col}).Trace("selecting column")
package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Log levels in order of increasing severity
const (
	LogLevelTrace = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
	LogLevelSilent = 999 // Special level for silent mode
)

// String representations of log levels
const (
	LogLevelTraceString  = "trace"
	LogLevelDebugString  = "debug"
	LogLevelInfoString   = "info"
	LogLevelWarnString   = "warn"
	LogLevelErrorString  = "error"
	LogLevelFatalString  = "fatal"
	LogLevelSilentString = "silent"
)

// Environment variables for logging control
const (
	envSchedulerSilent    = "SCHEDULER_SILENT"
	envSchedulerLogLevel  = "SCHEDULER_LOG_LEVEL"
	envSchedulerLogFormat = "SCHEDULER_LOG_FORMAT"
	envSchedulerLogFile   = "SCHEDULER_LOG_FILE"
)

// LogFormat represents the output format for logs
type LogFormat int

const (
	LogFormatText LogFormat = iota
	LogFormatJSON
)

// LogEntry represents a structured log entry
type LogEntry struct {
	Time    time.Time              `json:"time"`
	Level   string                 `json:"level"`
	Message string                 `json:"message"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
	Caller  string                 `json:"caller,omitempty"`
	Prefix  string                 `json:"prefix,omitempty"`
}

// Logger writes leveled, optionally-structured log entries to a single
// writer. The zero value is not usable; construct with NewLogger or
// NewDefaultLogger.
type Logger struct {
	mu     sync.RWMutex
	writer io.Writer
	level  int
	format LogFormat
	prefix string
	fields map[string]interface{}
}

// globalLogger is the default logger instance
var globalLogger *Logger
var globalLoggerOnce sync.Once

// NewLogger creates a new logger with the specified prefix
func NewLogger(prefix string) *Logger {
	level := parseLogLevel(getLogLevelString())
	format := parseLogFormat(os.Getenv(envSchedulerLogFormat))
	writer := getLogWriter()

	return &Logger{
		writer: writer,
		level:  level,
		format: format,
		prefix: strings.TrimSpace(prefix),
		fields: make(map[string]interface{}),
	}
}

// NewDefaultLogger creates a logger with standard settings
func NewDefaultLogger() *Logger {
	globalLoggerOnce.Do(func() {
		globalLogger = NewLogger("[scheduler] ")
	})
	return globalLogger
}

// getLogWriter returns the appropriate writer for logs
func getLogWriter() io.Writer {
	if logFile := os.Getenv(envSchedulerLogFile); logFile != "" {
		if file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666); err == nil {
			return file
		}
	}
	return os.Stderr
}

// getLogLevelString gets the log level from environment variables
func getLogLevelString() string {
	// Check SCHEDULER_SILENT first for backward compatibility
	if os.Getenv(envSchedulerSilent) == "1" {
		return LogLevelSilentString
	}

	// Check SCHEDULER_LOG_LEVEL for explicit level
	level := strings.ToLower(os.Getenv(envSchedulerLogLevel))
	if level == "" {
		return LogLevelInfoString // Default to info level
	}
	return level
}

// parseLogLevel converts string level to int level
func parseLogLevel(level string) int {
	switch level {
	case LogLevelTraceString:
		return LogLevelTrace
	case LogLevelDebugString:
		return LogLevelDebug
	case LogLevelInfoString:
		return LogLevelInfo
	case LogLevelWarnString:
		return LogLevelWarn
	case LogLevelErrorString:
		return LogLevelError
	case LogLevelFatalString:
		return LogLevelFatal
	case LogLevelSilentString:
		return LogLevelSilent
	default:
		return LogLevelInfo
	}
}

// parseLogFormat converts string format to LogFormat
func parseLogFormat(format string) LogFormat {
	switch strings.ToLower(format) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatText
	}
}

// IsSilent returns true if logging is suppressed
func IsSilent() bool {
	return parseLogLevel(getLogLevelString()) == LogLevelSilent
}

// Enabled reports whether a message at level would actually be written,
// letting a call site skip building an expensive field map (e.g. per-column
// search trace data) when it would just be discarded.
func (l *Logger) Enabled(level int) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level >= l.level
}

// WithField creates a new logger with an additional field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	l.mu.RLock()
	newFields := make(map[string]interface{}, len(l.fields)+1)
	for k, v := range l.fields {
		newFields[k] = v
	}
	newFields[key] = value
	l.mu.RUnlock()

	return &Logger{
		writer: l.writer,
		level:  l.level,
		format: l.format,
		prefix: l.prefix,
		fields: newFields,
	}
}

// WithFields creates a new logger with additional fields
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	l.mu.RLock()
	newFields := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	l.mu.RUnlock()

	return &Logger{
		writer: l.writer,
		level:  l.level,
		format: l.format,
		prefix: l.prefix,
		fields: newFields,
	}
}

// log sends a log entry to the output
func (l *Logger) log(level int, levelStr string, message string, args ...interface{}) {
	if level < l.level {
		return
	}

	// Format message if needed
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}

	// Get caller information
	_, file, line, ok := runtime.Caller(2)
	caller := ""
	if ok {
		parts := strings.Split(file, "/")
		if len(parts) > 0 {
			file = parts[len(parts)-1]
		}
		caller = fmt.Sprintf("%s:%d", file, line)
	}

	entry := LogEntry{
		Time:    time.Now(),
		Level:   levelStr,
		Message: message,
		Fields:  l.fields,
		Caller:  caller,
		Prefix:  l.prefix,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var output string
	switch l.format {
	case LogFormatJSON:
		if jsonBytes, err := json.Marshal(entry); err == nil {
			output = string(jsonBytes)
		} else {
			output = fmt.Sprintf("{\"error\":\"failed to marshal log entry: %v\"}", err)
		}
	default:
		output = l.formatTextEntry(entry)
	}

	if level == LogLevelFatal {
		fmt.Fprintln(l.writer, output)
		os.Exit(1)
	} else {
		fmt.Fprintln(l.writer, output)
	}
}

// formatTextEntry formats a log entry as text
func (l *Logger) formatTextEntry(entry LogEntry) string {
	var parts []string

	// Add timestamp
	parts = append(parts, entry.Time.Format("2006/01/02 15:04:05"))

	// Add level
	levelStr := strings.ToUpper(entry.Level)
	parts = append(parts, fmt.Sprintf("[%s]", levelStr))

	// Add prefix if present
	if entry.Prefix != "" {
		parts = append(parts, entry.Prefix)
	}

	// Add message
	parts = append(parts, entry.Message)

	// Add fields
	if len(entry.Fields) > 0 {
		var fieldParts []string
		for k, v := range entry.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%v", k, v))
		}
		parts = append(parts, fmt.Sprintf("{%s}", strings.Join(fieldParts, " ")))
	}

	// Add caller if in debug/trace mode
	if l.level <= LogLevelDebug && entry.Caller != "" {
		parts = append(parts, fmt.Sprintf("(%s)", entry.Caller))
	}

	return strings.Join(parts, " ")
}

// Structured logging methods

// Trace logs a trace message
func (l *Logger) Trace(message string, args ...interface{}) {
	l.log(LogLevelTrace, LogLevelTraceString, message, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(message string, args ...interface{}) {
	l.log(LogLevelDebug, LogLevelDebugString, message, args...)
}

// Info logs an informational message
func (l *Logger) Info(message string, args ...interface{}) {
	l.log(LogLevelInfo, LogLevelInfoString, message, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, args ...interface{}) {
	l.log(LogLevelWarn, LogLevelWarnString, message, args...)
}

// Error logs an error message
func (l *Logger) Error(message string, args ...interface{}) {
	l.log(LogLevelError, LogLevelErrorString, message, args...)
}

// Fatal logs a fatal error message and exits
func (l *Logger) Fatal(message string, args ...interface{}) {
	l.log(LogLevelFatal, LogLevelFatalString, message, args...)
}
