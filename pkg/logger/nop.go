package logger

// nopLogger discards all log entries. Used as the default when no logger
// is injected, so callers never need nil checks.
type nopLogger struct{}

func (nopLogger) Debug(string, ...Fields)    {}
func (nopLogger) Info(string, ...Fields)     {}
func (nopLogger) Warn(string, ...Fields)     {}
func (nopLogger) Error(string, ...Fields)    {}
func (nopLogger) Fatal(string, ...Fields)    {}
func (n nopLogger) WithFields(Fields) Logger { return n }
func (nopLogger) SetLevel(LogLevel)          {}
func (nopLogger) Close() error               { return nil }
