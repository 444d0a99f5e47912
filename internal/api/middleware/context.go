package middleware

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// RequestIDKey holds the correlation ID for the request.
const RequestIDKey contextKey = "request_id"

// GetRequestID returns the correlation ID set by RequestID, or "".
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
