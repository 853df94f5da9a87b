// Package logger defines the structured logging contract used across the SDK
// and provides a zerolog-backed implementation.
package logger

import "time"

// Logger is the logging contract consumed by the HTTP client and the
// marketplace services. Implementations must be safe for concurrent use.
type Logger interface {
	Debug() LogEvent
	Info() LogEvent
	Warn() LogEvent
	Error() LogEvent
	WithFields(fields map[string]any) Logger
}

// LogEvent is a single structured log entry under construction.
// Field methods return the event so calls can be chained; Msg or Msgf
// finalizes and emits the entry.
type LogEvent interface {
	Msg(msg string)
	Msgf(format string, args ...any)
	Err(err error) LogEvent
	Str(key, value string) LogEvent
	Int(key string, value int) LogEvent
	Int64(key string, value int64) LogEvent
	Bool(key string, value bool) LogEvent
	Dur(key string, d time.Duration) LogEvent
	Bytes(key string, val []byte) LogEvent
	Interface(key string, i any) LogEvent
}
