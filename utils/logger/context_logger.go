// ABOUTME: This file provides context-aware structured logging helpers
// ABOUTME: Supports request ID, operation and requester propagation via context keys
package logger

import (
	"context"
	"log/slog"
	"os"
)

type ContextKey string

const (
	RequestIDKey   ContextKey = "request_id"
	OperationKey   ContextKey = "operation"
	RequesterIDKey ContextKey = "requester_id"
)

// ContextLogger binds a UnifiedLogger to the context keys above.
type ContextLogger struct {
	serviceName   string
	unifiedLogger *UnifiedLogger
}

type LoggerConfig struct {
	Level       string
	ServiceName string
}

func LoadLoggerConfigFromEnv() *LoggerConfig {
	return &LoggerConfig{
		Level:       getEnvOrDefault("LOG_LEVEL", "info"),
		ServiceName: getEnvOrDefault("SERVICE_NAME", "rank-estimator"),
	}
}

// NewContextLoggerWithOTel creates a ContextLogger, optionally bridged to OTel.
func NewContextLoggerWithOTel(config *LoggerConfig, enableOTel bool) *ContextLogger {
	unifiedLogger := NewUnifiedLoggerWithOTel(config.ServiceName, config.Level, enableOTel)

	return &ContextLogger{
		serviceName:   config.ServiceName,
		unifiedLogger: unifiedLogger,
	}
}

func (cl *ContextLogger) WithContext(ctx context.Context) *slog.Logger {
	return cl.unifiedLogger.WithContext(ctx)
}

// Context helper functions.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, OperationKey, operation)
}

func WithRequesterID(ctx context.Context, requesterID string) context.Context {
	return context.WithValue(ctx, RequesterIDKey, requesterID)
}

// RequesterIDFromContext returns the requester stored in ctx, if any.
func RequesterIDFromContext(ctx context.Context) string {
	if v := ctx.Value(RequesterIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
