package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// requestIDKey is an unexported type for the request id context key.
type requestIDKey struct{}

// RequestIDConfig configures the RequestID middleware behaviour.
type RequestIDConfig struct {
	// Header is the request/response header carrying the id.
	// Defaults to "X-Request-ID".
	Header string

	// TrustIncoming reuses an id supplied by the client instead of
	// generating a new one. Off by default.
	TrustIncoming bool
}

// RequestIDMiddleware returns a middleware that assigns every request a
// UUID, sets it as a response header and stores it in the request context
// for retrieval via RequestID.
func RequestIDMiddleware(cfg RequestIDConfig) Middleware {
	header := cfg.Header
	if header == "" {
		header = "X-Request-ID"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if cfg.TrustIncoming {
				id = r.Header.Get(header)
			}
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set(header, id)
			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestID returns the id assigned to the request, or an empty string when
// the middleware is not installed.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
