// Package route implements typed request matching and dispatch: given an
// incoming HTTP request, it decides whether a declared route matches,
// decodes the matched components into an ordered, typed value tuple,
// validates them, and hands the tuple to a handler that produces a typed
// response.
//
// # Building blocks
//
// A Param converts one raw value to and from a typed Go value. Built-ins
// cover strings, integers, booleans and UUIDs; NewParam defines custom
// conversions:
//
//	even := route.NewParam[int]("<even>", parseEven, strconv.Itoa)
//
// A Path is a pattern over URL path components, built from literal segments
// and typed captures:
//
//	post := route.Root().Segment("post").Capture("id", route.Int)
//
// Query parameters and headers are declared the same way:
//
//	q := route.QueryRequired("tag", route.String)
//	h := route.HeaderOptional("X-Client", route.String)
//
// A Request composes a method, a Path, query parameters, headers and an
// optional body entity; an Endpoint pairs it with a Response encoder:
//
//	ep := route.NewEndpoint(
//	    route.Get(post).WithQuery(q),
//	    route.JSON[Post](http.StatusOK),
//	)
//
// Handle attaches a handler whose signature mirrors the declaration, one
// argument per captured slot, and returns a Route:
//
//	r := ep.Handle(func(ctx context.Context, id int, tag string) (Post, error) {
//	    return lookup(id, tag)
//	})
//
// The signature is checked once, when the route is built; a mismatch panics
// at definition time and can never surface during request handling.
//
// # Dispatch
//
// Routes compose into an ordered fallback chain, which is an http.Handler:
//
//	http.ListenAndServe(":8080", route.NewRoutes(r1, r2, r3))
//
// Each request tries the routes in declaration order and the first one
// whose method and path shape match wins; declaration order is the only
// priority rule. A request no route matches receives a 404, overridable
// via WithNotFound.
//
// # Error model
//
// Three failure kinds are kept disjoint:
//
//   - Structural mismatch (wrong method, wrong path arity, literal or
//     capture mismatch): silent, the next candidate route is tried.
//   - Validation failure (missing required query parameter or header,
//     undecodable value, malformed body): a 400-class response built from
//     the failing component's name and describe tag; the handler never
//     runs.
//   - Handler failure (returned error or panic): converted to a plain 500
//     at the route boundary, never propagated and never retried.
//
// # Two-phase matching
//
// Matching is split so request bodies are only consumed for requests that
// will actually be handled. Request.Match runs the synchronous, I/O-free
// phase over method, path, query and headers. Body decoding is a method on
// its result (Match.DecodeBody), making it impossible to read a body before
// the synchronous phase has succeeded. Route.Try drives both phases; most
// callers only ever use Routes.ServeHTTP.
package route
