// ABOUTME: Structured error type with layer/component context and HTTP mapping
// ABOUTME: Produces secure client responses that never leak internal details
package errors

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
)

// AppContextError carries rich context about where and why an operation
// failed. The Cause chain stays server-side; clients only ever see the
// secure response shape.
type AppContextError struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Layer     string                 `json:"layer,omitempty"`
	Component string                 `json:"component,omitempty"`
	Operation string                 `json:"operation,omitempty"`
	Cause     error                  `json:"-"`
	Context   map[string]interface{} `json:"context,omitempty"`
	ErrorID   string                 `json:"-"`
}

// Error implements the error interface.
func (e *AppContextError) Error() string {
	var prefix string
	if e.Layer != "" && e.Component != "" && e.Operation != "" {
		prefix = fmt.Sprintf("[%s:%s:%s] ", e.Layer, e.Component, e.Operation)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s%s: %s (caused by: %v)", prefix, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s%s: %s", prefix, e.Code, e.Message)
}

// Unwrap returns the underlying error for error chain unwrapping.
func (e *AppContextError) Unwrap() error {
	return e.Cause
}

// HTTPStatusCode maps error codes to HTTP status codes.
func (e *AppContextError) HTTPStatusCode() int {
	switch e.Code {
	case "VALIDATION_ERROR":
		return http.StatusBadRequest
	case "UNAUTHORIZED_ERROR":
		return http.StatusUnauthorized
	case "NOT_FOUND_ERROR":
		return http.StatusNotFound
	case "RATE_LIMIT_ERROR":
		return http.StatusTooManyRequests
	case "EXTERNAL_API_ERROR":
		return http.StatusBadGateway
	case "TIMEOUT_ERROR":
		return http.StatusGatewayTimeout
	case "DATABASE_ERROR", "INTERNAL_ERROR", "UNKNOWN_ERROR":
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// IsRetryable reports whether the error represents a retryable condition.
func (e *AppContextError) IsRetryable() bool {
	switch e.Code {
	case "RATE_LIMIT_ERROR", "TIMEOUT_ERROR", "EXTERNAL_API_ERROR":
		return true
	default:
		return false
	}
}

// safeMessages maps error codes to user-facing, non-leaking messages.
var safeMessages = map[string]string{
	"DATABASE_ERROR":     "A temporary service error occurred. Please try again later.",
	"EXTERNAL_API_ERROR": "Unable to connect to external service. Please try again.",
	"RATE_LIMIT_ERROR":   "Too many requests. Please wait before trying again.",
	"TIMEOUT_ERROR":      "The request took too long. Please try again.",
	"INTERNAL_ERROR":     "An unexpected error occurred. Please try again later.",
	"UNKNOWN_ERROR":      "An unexpected error occurred. Please try again later.",
}

// SafeMessage returns a user-facing message that does not leak internals.
// Validation, not-found and unauthorized messages are safe by construction
// and pass through unchanged.
func (e *AppContextError) SafeMessage() string {
	if msg, ok := safeMessages[e.Code]; ok && msg != "" {
		return msg
	}
	switch e.Code {
	case "VALIDATION_ERROR", "NOT_FOUND_ERROR", "UNAUTHORIZED_ERROR":
		return e.Message
	}
	return "An error occurred."
}

// SecureHTTPResponse is the JSON error body sent to clients.
type SecureHTTPResponse struct {
	Error SecureErrorDetail `json:"error"`
}

// SecureErrorDetail contains the error details for SecureHTTPResponse.
type SecureErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	ErrorID   string `json:"error_id,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

// ToSecureHTTPResponse converts the error into its client-safe form.
func (e *AppContextError) ToSecureHTTPResponse() SecureHTTPResponse {
	return SecureHTTPResponse{
		Error: SecureErrorDetail{
			Code:      e.Code,
			Message:   e.SafeMessage(),
			ErrorID:   e.ErrorID,
			Retryable: e.IsRetryable(),
		},
	}
}

// generateErrorID generates a short unique error ID for log correlation.
func generateErrorID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "00000000"
	}
	return hex.EncodeToString(b)
}

// NewAppContextError creates a new AppContextError with full context.
func NewAppContextError(
	code, message, layer, component, operation string,
	cause error,
	context map[string]interface{},
) *AppContextError {
	if context == nil {
		context = make(map[string]interface{})
	}

	return &AppContextError{
		Code:      code,
		Message:   message,
		Layer:     layer,
		Component: component,
		Operation: operation,
		Cause:     cause,
		Context:   context,
		ErrorID:   generateErrorID(),
	}
}

// NewValidationContextError creates a validation error with context.
func NewValidationContextError(message, layer, component, operation string, context map[string]interface{}) *AppContextError {
	return NewAppContextError("VALIDATION_ERROR", message, layer, component, operation, nil, context)
}

// NewNotFoundContextError creates a not found error with context.
func NewNotFoundContextError(message, layer, component, operation string, context map[string]interface{}) *AppContextError {
	return NewAppContextError("NOT_FOUND_ERROR", message, layer, component, operation, nil, context)
}

// NewUnauthorizedContextError creates an authentication error with context.
func NewUnauthorizedContextError(message, layer, component, operation string, context map[string]interface{}) *AppContextError {
	return NewAppContextError("UNAUTHORIZED_ERROR", message, layer, component, operation, nil, context)
}

// NewInternalContextError creates an internal error with context.
func NewInternalContextError(message, layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	return NewAppContextError("INTERNAL_ERROR", message, layer, component, operation, cause, context)
}

// NewDatabaseContextError creates a database error with context.
func NewDatabaseContextError(message, layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	return NewAppContextError("DATABASE_ERROR", message, layer, component, operation, cause, context)
}

// NewExternalAPIContextError creates an external API error with context.
func NewExternalAPIContextError(message, layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	return NewAppContextError("EXTERNAL_API_ERROR", message, layer, component, operation, cause, context)
}

// NewTimeoutContextError creates a timeout error with context.
func NewTimeoutContextError(message, layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	return NewAppContextError("TIMEOUT_ERROR", message, layer, component, operation, cause, context)
}

// NewRateLimitContextError creates a rate limit error with context.
func NewRateLimitContextError(message, layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	return NewAppContextError("RATE_LIMIT_ERROR", message, layer, component, operation, cause, context)
}
