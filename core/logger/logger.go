// Package logger is a standardized event logging framework for the shell.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"time"
)

// Entry is one logged shell event.
type Entry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`
	Event           string `json:"event"`

	// Line is the raw command line, set for line-level events.
	Line string `json:"line,omitempty"`
	// Command and Kind are set for invocation events.
	Command string `json:"command,omitempty"`
	Kind    string `json:"kind,omitempty"`

	ExitCode int    `json:"exit_code,omitempty"`
	Stdout   string `json:"stdout,omitempty"`
	Stderr   string `json:"stderr,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Event names recorded by the shell.
const (
	EventLine          = "line"
	EventParseError    = "parse_error"
	EventInvocation    = "invocation"
	EventScriptOutput  = "script_output"
	EventResult        = "result"
	EventSessionClosed = "session_closed"
)

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(e *Entry) error

// Logger captures interaction events for one shell process.
type Logger struct {
	Record LogRecorder
}

// NewJSONLinesLogRecorder creates a Logger that exports events in newline
// delimited JSON object format.
func NewJSONLinesLogRecorder(w io.Writer) *Logger {
	return &Logger{
		Record: func(e *Entry) error {
			entry, err := json.Marshal(e)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// NewNopLogRecorder creates a Logger that discards every event.
func NewNopLogRecorder() *Logger {
	return &Logger{Record: func(*Entry) error { return nil }}
}

// NewSession creates a logger with an attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{logger: l, sessionID: fmt.Sprintf("%d", rand.Uint64())}
}

// SessionLogger logs events with a shared session ID.
type SessionLogger struct {
	logger    *Logger
	sessionID string
}

// Record stamps and stores one event.
func (l *SessionLogger) Record(e *Entry) error {
	e.TimestampMicros = time.Now().UnixNano() / int64(time.Microsecond)
	e.SessionID = l.sessionID
	return l.logger.Record(e)
}
