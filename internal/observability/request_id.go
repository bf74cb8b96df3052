package observability

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

func NewRequestID() string {
	return uuid.NewString()
}

// RequestIDFromHeader returns the inbound request ID in canonical form when
// it parses as a UUID and a fresh one otherwise, so clients cannot inject
// arbitrary text into logs and span attributes.
func RequestIDFromHeader(h http.Header) string {
	id, err := uuid.Parse(h.Get(RequestIDHeader))
	if err != nil {
		return NewRequestID()
	}
	return id.String()
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
