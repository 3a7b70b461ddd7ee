package slogger

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// requestIDField is the log field name carrying the request ID.
const requestIDField = "request_id"

// NewRequestID returns a fresh request identifier for one CLI invocation.
func NewRequestID() string {
	return uuid.New().String()
}

// WithRequestID returns a context carrying the given request ID. Log
// lines written with that context include it automatically.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom extracts the request ID from ctx, or "" when absent.
func RequestIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
