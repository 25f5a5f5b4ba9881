package logger

import (
	"io"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/sirupsen/logrus"

	"github.com/user/ffplayer/pkg/ports"
)

// Format selects the LogrusLogger output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat maps a config or flag value to a Format. Unknown values map to FormatText.
func ParseFormat(s string) Format {
	if s == string(FormatJSON) {
		return FormatJSON
	}
	return FormatText
}

// LogrusLogger writes structured log records through logrus.
// The component becomes a "component" field instead of a prefix.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrus creates a structured logger writing to stderr.
func NewLogrus(level ports.LogLevel, format Format) *LogrusLogger {
	return NewLogrusWithOutput(os.Stderr, level, format)
}

// NewLogrusWithOutput creates a structured logger writing to out.
func NewLogrusWithOutput(out io.Writer, level ports.LogLevel, format Format) *LogrusLogger {
	base := logrus.New()
	base.SetOutput(out)

	if format == FormatJSON {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	switch level {
	case ports.LevelDebug:
		base.SetLevel(logrus.DebugLevel)
	case ports.LevelWarn:
		base.SetLevel(logrus.WarnLevel)
	case ports.LevelError:
		base.SetLevel(logrus.ErrorLevel)
	case ports.LevelQuiet:
		base.SetOutput(io.Discard)
		base.SetLevel(logrus.PanicLevel)
	default:
		base.SetLevel(logrus.InfoLevel)
	}

	return &LogrusLogger{entry: logrus.NewEntry(base)}
}

// Debug logs a debug message.
func (l *LogrusLogger) Debug(msg string, args ...interface{}) {
	if l.entry.Logger.IsLevelEnabled(logrus.DebugLevel) {
		l.entry.Debug(l10n.F(msg, args...))
	}
}

// Info logs an informational message.
func (l *LogrusLogger) Info(msg string, args ...interface{}) {
	if l.entry.Logger.IsLevelEnabled(logrus.InfoLevel) {
		l.entry.Info(l10n.F(msg, args...))
	}
}

// Warn logs a warning message.
func (l *LogrusLogger) Warn(msg string, args ...interface{}) {
	if l.entry.Logger.IsLevelEnabled(logrus.WarnLevel) {
		l.entry.Warn(l10n.F(msg, args...))
	}
}

// Error logs an error message.
func (l *LogrusLogger) Error(msg string, args ...interface{}) {
	if l.entry.Logger.IsLevelEnabled(logrus.ErrorLevel) {
		l.entry.Error(l10n.F(msg, args...))
	}
}

// WithComponent returns a logger that tags every record with the component.
func (l *LogrusLogger) WithComponent(component string) ports.Logger {
	return &LogrusLogger{entry: l.entry.WithField("component", component)}
}

// WithField returns a logger that adds key to every record.
func (l *LogrusLogger) WithField(key string, value interface{}) ports.Logger {
	return &LogrusLogger{entry: l.entry.WithField(key, value)}
}

// Ensure LogrusLogger implements ports.Logger
var _ ports.Logger = (*LogrusLogger)(nil)
