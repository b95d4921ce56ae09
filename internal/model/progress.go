package model

import "log/slog"

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns a lower-case name for the level.
func (l ProgressLevel) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "info"
	}
}

// SlogLevel maps the progress level onto a slog level.
func (l ProgressLevel) SlogLevel() slog.Level {
	switch l {
	case LevelVerbose:
		return slog.LevelDebug
	case LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ProgressEvent is a pipeline progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
	Attrs   []slog.Attr
}

// ProgressFunc receives progress events. Implementations must be safe for
// concurrent use: workers report from their own goroutines.
type ProgressFunc func(ProgressEvent)

// Emit calls f if it is set.
func (f ProgressFunc) Emit(level ProgressLevel, msg string, attrs ...slog.Attr) {
	if f != nil {
		f(ProgressEvent{Message: msg, Level: level, Attrs: attrs})
	}
}
