package jwtauth

import "context"

// contextKey is an unexported type for context keys to prevent collisions
type contextKey string

const (
	payloadContextKey   contextKey = "github.com/Wang-tianhao/Vibrant-jwt-authenticator-go/jwtauth:payload"
	requestIDContextKey contextKey = "github.com/Wang-tianhao/Vibrant-jwt-authenticator-go/jwtauth:request_id"
)

// WithPayload stores a verified token payload in the request context.
func WithPayload(ctx context.Context, payload *Payload) context.Context {
	return context.WithValue(ctx, payloadContextKey, payload)
}

// GetPayload retrieves the verified token payload from the request context.
// Returns nil, false if no payload is present.
func GetPayload(ctx context.Context) (*Payload, bool) {
	payload, ok := ctx.Value(payloadContextKey).(*Payload)
	return payload, ok && payload != nil
}

// MustGetPayload retrieves the payload from context and panics if not present.
// Use only behind JWTAuth or UnaryServerInterceptor.
func MustGetPayload(ctx context.Context) *Payload {
	payload, ok := GetPayload(ctx)
	if !ok {
		panic("jwtauth: payload not found in context")
	}
	return payload
}

// WithRequestID stores a request ID in context for correlation
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey).(string)
	return id, ok
}
