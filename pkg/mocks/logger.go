package mocks

import (
	"fmt"
	"sync"

	"github.com/user/ffplayer/pkg/ports"
)

// Logger is a mock implementation of ports.Logger that records formatted messages.
type Logger struct {
	mu      *sync.Mutex
	entries *[]LogEntry

	component string
	fields    map[string]interface{}
}

// LogEntry is one recorded log line.
type LogEntry struct {
	Level     ports.LogLevel
	Component string
	Fields    map[string]interface{}
	Message   string
}

// NewLogger creates a recording logger.
func NewLogger() *Logger {
	return &Logger{mu: &sync.Mutex{}, entries: &[]LogEntry{}}
}

func (m *Logger) Debug(msg string, args ...interface{}) { m.record(ports.LevelDebug, msg, args) }
func (m *Logger) Info(msg string, args ...interface{})  { m.record(ports.LevelInfo, msg, args) }
func (m *Logger) Warn(msg string, args ...interface{})  { m.record(ports.LevelWarn, msg, args) }
func (m *Logger) Error(msg string, args ...interface{}) { m.record(ports.LevelError, msg, args) }

// WithComponent returns a logger sharing the same record.
func (m *Logger) WithComponent(component string) ports.Logger {
	return &Logger{mu: m.mu, entries: m.entries, component: component, fields: m.fields}
}

// WithField returns a logger sharing the same record with key added.
func (m *Logger) WithField(key string, value interface{}) ports.Logger {
	fields := make(map[string]interface{}, len(m.fields)+1)
	for k, v := range m.fields {
		fields[k] = v
	}
	fields[key] = value
	return &Logger{mu: m.mu, entries: m.entries, component: m.component, fields: fields}
}

func (m *Logger) record(level ports.LogLevel, msg string, args []interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.entries = append(*m.entries, LogEntry{
		Level:     level,
		Component: m.component,
		Fields:    m.fields,
		Message:   fmt.Sprintf(msg, args...),
	})
}

// Entries returns every recorded entry at or above level.
func (m *Logger) Entries(level ports.LogLevel) []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, e := range *m.entries {
		if e.Level >= level {
			out = append(out, e)
		}
	}
	return out
}

var _ ports.Logger = (*Logger)(nil)
