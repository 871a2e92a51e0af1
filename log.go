package sumi

import (
	"fmt"
	"strings"
)

// LogLevel classifies a diagnostic line.
type LogLevel uint8

const (
	LevelInfo LogLevel = iota
	LevelWarning
	LevelError
)

// String returns the lowercase level name.
func (l LogLevel) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

func (l LogLevel) prefix() string {
	switch l {
	case LevelWarning:
		return "WARNING: "
	case LevelError:
		return "ERROR: "
	default:
		return ""
	}
}

// Line is one diagnostic entry of a render pass.
type Line struct {
	Level   LogLevel
	Message string
}

// String returns the display form of the line: the message prefixed with
// "WARNING: " or "ERROR: " for the respective levels, bare for info.
func (ln Line) String() string {
	return ln.Level.prefix() + ln.Message
}

// LogSink receives the finished diagnostic log of one render pass. A
// pass's lines fully replace those of the previous pass.
type LogSink func(lines []Line)

// DiagnosticLog collects the ordered diagnostics of a single render
// pass. It is created fresh per pass and flushed to its sink exactly
// once, on every exit path of the pass.
type DiagnosticLog struct {
	lines   []Line
	sink    LogSink
	flushed bool
}

// NewDiagnosticLog creates an empty log that flushes to sink. A nil sink
// is allowed; Flush then only marks the log as delivered.
func NewDiagnosticLog(sink LogSink) *DiagnosticLog {
	return &DiagnosticLog{sink: sink}
}

// Infof appends an info line.
func (l *DiagnosticLog) Infof(format string, args ...any) {
	l.append(LevelInfo, format, args...)
}

// Warningf appends a warning line.
func (l *DiagnosticLog) Warningf(format string, args ...any) {
	l.append(LevelWarning, format, args...)
}

// Errorf appends an error line.
func (l *DiagnosticLog) Errorf(format string, args ...any) {
	l.append(LevelError, format, args...)
}

func (l *DiagnosticLog) append(level LogLevel, format string, args ...any) {
	l.lines = append(l.lines, Line{Level: level, Message: fmt.Sprintf(format, args...)})
}

// Len returns the number of appended lines.
func (l *DiagnosticLog) Len() int { return len(l.lines) }

// Lines returns a copy of the appended lines in order.
func (l *DiagnosticLog) Lines() []Line {
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

// Strings returns the display form of every line, in order.
func (l *DiagnosticLog) Strings() []string {
	out := make([]string, len(l.lines))
	for i, ln := range l.lines {
		out[i] = ln.String()
	}
	return out
}

// String joins all lines with newlines for display.
func (l *DiagnosticLog) String() string {
	return strings.Join(l.Strings(), "\n")
}

// Flush delivers the log to its sink. Only the first call delivers;
// repeated calls are no-ops, so a deferred Flush is safe alongside an
// explicit one.
func (l *DiagnosticLog) Flush() {
	if l.flushed {
		return
	}
	l.flushed = true
	if l.sink != nil {
		l.sink(l.Lines())
	}
}
