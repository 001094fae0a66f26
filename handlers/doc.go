// Package handlers provides HTTP middleware and server bootstrap around a
// route chain: panic recovery, request IDs, structured access logging,
// Prometheus metrics, and a graceful-shutdown server with optional h2c.
//
// Middleware composes with Chain, outermost first:
//
//	h := handlers.Chain(routes,
//	    handlers.RecoveryMiddleware(handlers.RecoveryConfig{Logger: logger}),
//	    handlers.RequestIDMiddleware(handlers.RequestIDConfig{}),
//	    handlers.AccessLogMiddleware(logger),
//	)
//
// The server wraps a handler with lifecycle management:
//
//	srv := handlers.NewServer(handlers.ServerConfig{Addr: ":8080", Handler: h})
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Run blocks until the context is canceled, then shuts down gracefully.
package handlers
