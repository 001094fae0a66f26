package handlers

import "net/http"

// Middleware is a function which receives an http.Handler and returns
// another http.Handler wrapping it with additional behavior.
type Middleware func(http.Handler) http.Handler

// Chain wraps h with the given middleware. The first middleware is the
// outermost: it sees the request first and the response last.
func Chain(h http.Handler, middleware ...Middleware) http.Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}
