package application

import "log/slog"

// ResolveLogger falls back to the default logger so services stay usable
// when wiring omits one.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
