package intervalcache

// Fields carries the structured context of a log line: interval keys,
// sums, mutation indices and removal counts.
type Fields map[string]any

// Logger receives the cache's lifecycle and diagnostic lines. A Cache logs
// construction at Info and each computation, invalidation and reset at
// Debug; byte-backed providers report unreadable entries at Warn. The
// adapters under log/ bridge zap, logrus and slog. A nil Options.Logger
// discards everything.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

// NopLogger drops every line.
type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}
