package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

type Options struct {
	// Development selects text output at debug level; otherwise JSON at info.
	Development bool
	// SentryDSN enables forwarding of error records to Sentry when set.
	SentryDSN   string
	Environment string
	// Output defaults to os.Stdout.
	Output io.Writer
}

// Init installs the process-wide slog default and returns a function that
// flushes buffered Sentry events; call it before exiting.
func Init(opts Options) (flush func()) {
	logger, sentryEnabled := New(opts)
	slog.SetDefault(logger)

	if !sentryEnabled {
		return func() {}
	}
	return func() { sentry.Flush(2 * time.Second) }
}

// New builds the logger without installing it. The second result reports
// whether the Sentry handler is attached.
func New(opts Options) (*slog.Logger, bool) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var handlers []slog.Handler
	if opts.Development {
		handlers = append(handlers, slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	} else {
		handlers = append(handlers, slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	sentryEnabled := false
	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: opts.Environment,
		})
		if err == nil {
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
			sentryEnabled = true
		} else {
			slog.New(handlers[0]).Warn("sentry disabled", "error", err)
		}
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0]), sentryEnabled
	}
	return slog.New(slogmulti.Fanout(handlers...)), sentryEnabled
}
