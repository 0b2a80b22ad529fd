package logger

import "log/slog"

// NewNope returns a logger that discards everything. Used in tests and as a
// default before the application logger is configured.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
