package route

import (
	"net/http"
	"reflect"
	"slices"
)

// Route is the externally composable dispatch unit: a partial function from
// incoming request to outgoing response. A route either handles a request
// completely, writing exactly one response, or reports that it does not
// apply so the caller can try the next candidate.
//
// Routes are immutable and hold no per-request state; they are safe to
// share across concurrently handled requests without locking.
type Route struct {
	endpoint *Endpoint
	handler  reflect.Value
}

// Endpoint returns the endpoint this route was built from.
func (r *Route) Endpoint() *Endpoint { return r.endpoint }

// Try dispatches hr against the route. It reports false when the route does
// not apply. When it reports true exactly one response has been written:
// a validation problem, a handler failure converted to 500, or the encoded
// handler result.
//
// A panic during matching or handling is confined here and converted to a
// 500; it never escapes the route boundary.
func (r *Route) Try(w http.ResponseWriter, hr *http.Request) (handled bool) {
	defer func() {
		if rec := recover(); rec != nil {
			serverError(w)
			handled = true
		}
	}()

	m := r.endpoint.request.Match(hr)
	if m == nil {
		return false
	}

	if p := m.Problem(); p != nil {
		p.Write(w)
		return true
	}

	slots, problem := m.DecodeBody(hr.Context())
	if problem != nil {
		problem.Write(w)
		return true
	}

	types := r.endpoint.request.slotTypes()
	in := make([]reflect.Value, 0, len(slots)+1)
	in = append(in, reflect.ValueOf(hr.Context()))
	for i, s := range slots {
		if s == nil {
			in = append(in, reflect.Zero(types[i]))
			continue
		}
		in = append(in, reflect.ValueOf(s))
	}

	out := r.handler.Call(in)
	if errv := out[len(out)-1]; !errv.IsNil() {
		serverError(w)
		return true
	}

	if r.endpoint.response.typ == nil {
		r.endpoint.response.write(w, nil)
		return true
	}
	r.endpoint.response.write(w, out[0].Interface())
	return true
}

// Routes is an ordered fallback chain of routes and an http.Handler.
// Dispatch tries each route in declaration order and the first one that
// applies wins; declaration order is the only priority rule. A request no
// route handles receives the not-found response.
type Routes struct {
	routes   []*Route
	notFound http.Handler
}

// NewRoutes builds a chain trying the given routes in order.
func NewRoutes(routes ...*Route) *Routes {
	return &Routes{routes: routes}
}

// Append returns a new chain with more routes after the existing ones.
func (rs *Routes) Append(routes ...*Route) *Routes {
	return &Routes{
		routes:   append(slices.Clone(rs.routes), routes...),
		notFound: rs.notFound,
	}
}

// OrElse returns a new chain trying rs first, then other. The first
// non-nil not-found handler of the two is kept.
func (rs *Routes) OrElse(other *Routes) *Routes {
	c := &Routes{
		routes:   append(slices.Clone(rs.routes), other.routes...),
		notFound: rs.notFound,
	}
	if c.notFound == nil {
		c.notFound = other.notFound
	}
	return c
}

// WithNotFound returns a chain with a custom terminal handler replacing the
// default 404 response.
func (rs *Routes) WithNotFound(h http.Handler) *Routes {
	return &Routes{routes: slices.Clone(rs.routes), notFound: h}
}

// List returns the routes in declaration order.
func (rs *Routes) List() []*Route {
	return slices.Clone(rs.routes)
}

// ServeHTTP implements http.Handler, dispatching to the first route that
// applies and falling back to the not-found handler.
func (rs *Routes) ServeHTTP(w http.ResponseWriter, hr *http.Request) {
	for _, rt := range rs.routes {
		if rt.Try(w, hr) {
			return
		}
	}
	if rs.notFound != nil {
		rs.notFound.ServeHTTP(w, hr)
		return
	}
	http.NotFound(w, hr)
}
