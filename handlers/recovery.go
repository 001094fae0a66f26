package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// RecoveryConfig configures the Recovery middleware behaviour.
type RecoveryConfig struct {
	// Logger receives a record for every recovered panic. When nil,
	// panics are still converted to 500 responses but not logged.
	Logger *zap.Logger
}

// RecoveryMiddleware returns a middleware that recovers from panics in
// downstream handlers. When a panic occurs it returns 500 Internal Server
// Error to the client. Routes already confine their own panics; this
// middleware covers everything mounted outside a route chain.
func RecoveryMiddleware(cfg RecoveryConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if cfg.Logger != nil {
						cfg.Logger.Error("panic recovered",
							zap.Any("panic", rec),
							zap.String("method", r.Method),
							zap.String("path", r.URL.Path),
						)
					}

					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
