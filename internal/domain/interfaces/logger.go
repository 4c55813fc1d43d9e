// Package interfaces defines core domain contracts.
//
//nolint:revive // Package name 'interfaces' is intentional for domain layer
package interfaces

// Logger defines the interface for structured logging.
// Implementations must write somewhere other than the report stream.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a new Field (convenience function)
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// NoOpLogger is a logger that does nothing (useful for tests)
type NoOpLogger struct{}

// Debug does nothing (no-op implementation)
func (n *NoOpLogger) Debug(_ string, _ ...Field) {}

// Info does nothing (no-op implementation)
func (n *NoOpLogger) Info(_ string, _ ...Field) {}

// Warn does nothing (no-op implementation)
func (n *NoOpLogger) Warn(_ string, _ ...Field) {}

// Error does nothing (no-op implementation)
func (n *NoOpLogger) Error(_ string, _ ...Field) {}

// RecordingLogger keeps every entry in memory so tests can assert on them
type RecordingLogger struct {
	Entries []LogEntry
}

// LogEntry is a single recorded log call
type LogEntry struct {
	Level  string
	Msg    string
	Fields []Field
}

// Debug records a debug-level entry
func (r *RecordingLogger) Debug(msg string, fields ...Field) { r.add("DEBUG", msg, fields) }

// Info records an informational entry
func (r *RecordingLogger) Info(msg string, fields ...Field) { r.add("INFO", msg, fields) }

// Warn records a warning entry
func (r *RecordingLogger) Warn(msg string, fields ...Field) { r.add("WARN", msg, fields) }

// Error records an error entry
func (r *RecordingLogger) Error(msg string, fields ...Field) { r.add("ERROR", msg, fields) }

// Count returns how many entries were recorded at level
func (r *RecordingLogger) Count(level string) int {
	n := 0
	for _, e := range r.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

func (r *RecordingLogger) add(level, msg string, fields []Field) {
	r.Entries = append(r.Entries, LogEntry{Level: level, Msg: msg, Fields: fields})
}
