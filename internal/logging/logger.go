// Package logging builds the loggers the webhook server and the CLI
// commands share.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates the application logger. It writes to stderr: the validate
// and graph commands print their results on stdout, and the serve command
// must keep per-callback log lines out of anything an operator pipes or
// redirects. The "error" attribute key is rewritten to "err" so log lines
// from every adapter grep the same way.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger for tests.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
