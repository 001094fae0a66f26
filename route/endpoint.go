package route

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// Endpoint pairs a request matcher/decoder with a response encoder, plus
// optional documentation metadata. Endpoints are immutable after
// construction; the With methods return copies.
type Endpoint struct {
	request     *Request
	response    *Response
	operationID string
	summary     string
}

// NewEndpoint pairs a request with a response.
func NewEndpoint(req *Request, resp *Response) *Endpoint {
	return &Endpoint{request: req, response: resp}
}

// WithOperationID returns a copy carrying an operation id for
// documentation.
func (e *Endpoint) WithOperationID(id string) *Endpoint {
	c := *e
	c.operationID = id
	return &c
}

// WithSummary returns a copy carrying a one-line summary for documentation.
func (e *Endpoint) WithSummary(summary string) *Endpoint {
	c := *e
	c.summary = summary
	return &c
}

// Request returns the endpoint's request declaration.
func (e *Endpoint) Request() *Request { return e.request }

// Response returns the endpoint's response encoder.
func (e *Endpoint) Response() *Response { return e.response }

// OperationID returns the documentation operation id, if set.
func (e *Endpoint) OperationID() string { return e.operationID }

// Summary returns the documentation summary, if set.
func (e *Endpoint) Summary() string { return e.summary }

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// Handle builds a Route from a handler function. The handler must have the
// form
//
//	func(ctx context.Context, slots...) (B, error)
//
// with one argument per tuple slot in the fixed order path captures, query
// slots, body value, header slots, and B the response's result type.
// Handlers for a NoContent response return only an error.
//
// The signature is validated here, once, against the endpoint declaration.
// A mismatch is a programming error in the route definition and panics; it
// can never surface during request handling.
func (e *Endpoint) Handle(handler any) *Route {
	fn := reflect.ValueOf(handler)
	if err := e.checkHandler(fn.Type()); err != nil {
		panic(err)
	}
	return &Route{endpoint: e, handler: fn}
}

func (e *Endpoint) checkHandler(t reflect.Type) error {
	where := fmt.Sprintf("%s %s", e.request.Method(), e.request.Path().Template())

	if t.Kind() != reflect.Func {
		return fmt.Errorf("route: handler for %s must be a function, got %s", where, t)
	}

	slots := e.request.slotTypes()
	if t.NumIn() != len(slots)+1 {
		return fmt.Errorf("route: handler for %s must take (context.Context%s), got %d arguments",
			where, typeList(slots), t.NumIn())
	}
	if t.In(0) != ctxType {
		return fmt.Errorf("route: handler for %s must take context.Context first, got %s", where, t.In(0))
	}
	for i, want := range slots {
		if t.In(i+1) != want {
			return fmt.Errorf("route: handler argument %d for %s must be %s, got %s",
				i+1, where, want, t.In(i+1))
		}
	}

	if e.response.typ == nil {
		if t.NumOut() != 1 || t.Out(0) != errType {
			return fmt.Errorf("route: handler for %s must return error", where)
		}
		return nil
	}
	if t.NumOut() != 2 || t.Out(0) != e.response.typ || t.Out(1) != errType {
		return fmt.Errorf("route: handler for %s must return (%s, error)", where, e.response.typ)
	}
	return nil
}

func typeList(types []reflect.Type) string {
	var b strings.Builder
	for _, t := range types {
		b.WriteString(", ")
		b.WriteString(t.String())
	}
	return b.String()
}
