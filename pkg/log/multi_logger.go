package log

// MultiLogger fans events out to several loggers, e.g. a binary file
// capture plus console output via slog.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a logger that forwards each event to all of
// the given loggers in order. Nil entries are skipped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	out := make([]Logger, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			out = append(out, l)
		}
	}
	return &MultiLogger{loggers: out}
}

// Log forwards the event to every configured logger.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

// Compile-time interface satisfaction check.
var _ Logger = (*MultiLogger)(nil)
