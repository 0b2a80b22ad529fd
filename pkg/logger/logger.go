// Package logger builds the application's slog logger: JSON to stdout,
// request-scoped attributes from context, and an optional Sentry fan-out.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config holds logging settings.
type Config struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Format      string `env:"LOG_FORMAT" envDefault:"json"`
	SentryDSN   string `env:"SENTRY_DSN"`
	Environment string `env:"APP_ENV" envDefault:"production"`
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates the application logger writing to stdout.
// The returned flush function drains buffered Sentry events; it is a no-op
// without a DSN.
func New(cfg Config, extractors ...ContextExtractor) (*slog.Logger, func(context.Context) error) {
	return NewWithWriter(os.Stdout, cfg, extractors...)
}

// NewWithWriter is New with a custom destination.
func NewWithWriter(w io.Writer, cfg Config, extractors ...ContextExtractor) (*slog.Logger, func(context.Context) error) {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var out slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		out = slog.NewTextHandler(w, opts)
	} else {
		out = slog.NewJSONHandler(w, opts)
	}

	noFlush := func(context.Context) error { return nil }
	if cfg.SentryDSN == "" {
		return slog.New(NewLogHandlerDecorator(out, extractors...)), noFlush
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(out).Error("failed to initialize sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(out, extractors...)), noFlush
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	flush := func(ctx context.Context) error {
		timeout := 2 * time.Second
		if d, ok := ctx.Deadline(); ok {
			timeout = time.Until(d)
		}
		sentry.Flush(timeout)
		return nil
	}

	return slog.New(NewLogHandlerDecorator(fanout{out, sentryHandler}, extractors...)), flush
}
