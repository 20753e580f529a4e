package log

// Logger is the structured logger used across the module.
type Logger interface {
	// Debug logs low-level details such as request payload sizes.
	Debug(msg string, keysAndValues ...any)
	// Info logs routine progress, e.g. a submitted transaction.
	Info(msg string, keysAndValues ...any)
	// Warn logs unexpected but recoverable situations.
	Warn(msg string, keysAndValues ...any)
	// Error logs failures of a single operation.
	Error(msg string, keysAndValues ...any)
	// Fatal logs an unrecoverable failure; the zap implementation exits the process.
	Fatal(msg string, keysAndValues ...any)
	// WithKV returns a logger that adds key/value to every entry.
	WithKV(key string, value any) Logger
	// GetAllKV returns the key/value pairs accumulated through WithKV.
	GetAllKV() []any
	// WithName returns a logger whose name is extended with name.
	WithName(name string) Logger
	// Name returns the dotted logger name.
	Name() string
}

// Level is the minimum severity a logger emits.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)
