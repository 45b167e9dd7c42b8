// ABOUTME: This file provides the slog-based unified JSON logger for the service
// ABOUTME: Emits lowercase level names and stable field names for log aggregation
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// UnifiedLogger wraps slog with the JSON output shape the log pipeline expects.
type UnifiedLogger struct {
	logger      *slog.Logger
	serviceName string
}

// NewUnifiedLogger creates a UnifiedLogger writing to stdout at info level.
func NewUnifiedLogger(serviceName string) *UnifiedLogger {
	return NewUnifiedLoggerWithLevel(os.Stdout, serviceName, "info")
}

// NewUnifiedLoggerWithLevel creates a UnifiedLogger with a specific log level.
func NewUnifiedLoggerWithLevel(output io.Writer, serviceName, level string) *UnifiedLogger {
	var slogLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn", "warning":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	options := &slog.HandlerOptions{
		Level:     slogLevel,
		AddSource: false,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{Key: "time", Value: a.Value}
			case slog.LevelKey:
				// Lowercase level names for the log forwarder.
				if level, ok := a.Value.Any().(slog.Level); ok {
					return slog.Attr{Key: "level", Value: slog.StringValue(strings.ToLower(level.String()))}
				}
				return a
			case slog.MessageKey:
				return slog.Attr{Key: "msg", Value: a.Value}
			default:
				return a
			}
		},
	}

	handler := slog.NewJSONHandler(output, options)
	logger := slog.New(handler).With("service", serviceName, "version", "1.0.0")

	return &UnifiedLogger{
		logger:      logger,
		serviceName: serviceName,
	}
}

// NewUnifiedLoggerWithOTel creates a UnifiedLogger that fans out records to
// both stdout and the OpenTelemetry log bridge when enableOTel is set.
func NewUnifiedLoggerWithOTel(serviceName, level string, enableOTel bool) *UnifiedLogger {
	base := NewUnifiedLoggerWithLevel(os.Stdout, serviceName, level)
	if !enableOTel {
		return base
	}

	multi := NewMultiHandler(base.logger.Handler(), serviceName)
	logger := slog.New(multi)

	return &UnifiedLogger{
		logger:      logger,
		serviceName: serviceName,
	}
}

// WithContext returns an slog.Logger carrying the request-scoped fields
// stored in ctx.
func (ul *UnifiedLogger) WithContext(ctx context.Context) *slog.Logger {
	var fields []any

	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		fields = append(fields, "request_id", requestID)
	}

	if operation := ctx.Value(OperationKey); operation != nil {
		fields = append(fields, "operation", operation)
	}

	if requester := ctx.Value(RequesterIDKey); requester != nil {
		fields = append(fields, "requester_id", requester)
	}

	if len(fields) > 0 {
		return ul.logger.With(fields...)
	}

	return ul.logger
}

// Info logs an info message.
func (ul *UnifiedLogger) Info(msg string, args ...any) {
	ul.logger.Info(msg, args...)
}

// Error logs an error message.
func (ul *UnifiedLogger) Error(msg string, args ...any) {
	ul.logger.Error(msg, args...)
}

// Debug logs a debug message.
func (ul *UnifiedLogger) Debug(msg string, args ...any) {
	ul.logger.Debug(msg, args...)
}

// Warn logs a warning message.
func (ul *UnifiedLogger) Warn(msg string, args ...any) {
	ul.logger.Warn(msg, args...)
}
