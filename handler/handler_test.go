// ABOUTME: Shared helpers for handler package tests
// ABOUTME: Provides a discard logger so handlers stay quiet under test
package handler

import (
	"io"
	"log/slog"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
