package logger

import (
	"log/slog"
	"os"
)

// Logger is the package-level default used by code that has no injected
// logger. main overrides it during startup; the init fallback keeps tests
// from hitting a nil handler.
var Logger *slog.Logger

func init() {
	if Logger == nil {
		Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{}))
	}
}
