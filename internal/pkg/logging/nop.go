package logging

// NopLogger — реализация Logger, которая ничего не делает.
// Используется в тестах и как безопасный fallback.
type NopLogger struct{}

// NewNopLogger создаёт новый NopLogger.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

// Debug ничего не делает.
func (n *NopLogger) Debug(msg string, args ...any) {}

// Info ничего не делает.
func (n *NopLogger) Info(msg string, args ...any) {}

// Warn ничего не делает.
func (n *NopLogger) Warn(msg string, args ...any) {}

// Error ничего не делает.
func (n *NopLogger) Error(msg string, args ...any) {}

// With возвращает тот же NopLogger.
func (n *NopLogger) With(args ...any) Logger { return n }
