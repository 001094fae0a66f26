package route

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"slices"
)

// Request composes a method, a path pattern, a query declaration, header
// extractors and an optional body entity into a single matcher/decoder.
//
// Matching is two-phase. The synchronous phase (Match) checks the method,
// matches the path, and decodes query and headers; it performs no I/O. Only
// when it succeeds may the body be decoded, via a method on its result, so
// the body of a request that will not match is never consumed.
//
// A Request is immutable; the With methods return extended copies. Added
// query parameters and headers always fold into the synchronous phase,
// never into body decoding.
type Request struct {
	method  string
	path    *Path
	query   *Query
	headers []HeaderParam
	entity  Entity
}

// NewRequest declares a request matching the given method and path pattern.
func NewRequest(method string, p *Path) *Request {
	if p == nil {
		p = Root()
	}
	return &Request{method: method, path: p}
}

// Get declares a GET request on the given path pattern.
func Get(p *Path) *Request { return NewRequest(http.MethodGet, p) }

// Post declares a POST request on the given path pattern.
func Post(p *Path) *Request { return NewRequest(http.MethodPost, p) }

// Put declares a PUT request on the given path pattern.
func Put(p *Path) *Request { return NewRequest(http.MethodPut, p) }

// Delete declares a DELETE request on the given path pattern.
func Delete(p *Path) *Request { return NewRequest(http.MethodDelete, p) }

// Patch declares a PATCH request on the given path pattern.
func Patch(p *Path) *Request { return NewRequest(http.MethodPatch, p) }

// WithQuery returns a copy with query parameters appended after any already
// declared.
func (r *Request) WithQuery(params ...QueryParam) *Request {
	c := r.clone()
	if c.query == nil {
		c.query = NewQuery(params...)
	} else {
		c.query = c.query.And(params...)
	}
	return c
}

// WithHeaders returns a copy with header extractors appended.
func (r *Request) WithHeaders(headers ...HeaderParam) *Request {
	c := r.clone()
	c.headers = append(c.headers, headers...)
	return c
}

// WithEntity returns a copy expecting the given body entity.
func (r *Request) WithEntity(e Entity) *Request {
	c := r.clone()
	c.entity = e
	return c
}

func (r *Request) clone() *Request {
	c := *r
	c.headers = slices.Clone(r.headers)
	return &c
}

// Method returns the HTTP method this request matches.
func (r *Request) Method() string { return r.method }

// Path returns the path pattern.
func (r *Request) Path() *Path { return r.path }

// Query returns the query declaration, or nil.
func (r *Request) Query() *Query { return r.query }

// Headers returns the declared header extractors in order.
func (r *Request) Headers() []HeaderParam { return slices.Clone(r.headers) }

// Entity returns the body entity, or nil.
func (r *Request) Entity() Entity { return r.entity }

// slotTypes returns the Go types of the full handler tuple: path captures,
// query slots, body value, header slots, in that fixed order.
func (r *Request) slotTypes() []reflect.Type {
	types := r.path.captureTypes()
	if r.query != nil {
		types = append(types, r.query.slotTypes()...)
	}
	if r.entity != nil {
		types = append(types, r.entity.Type())
	}
	for _, h := range r.headers {
		types = append(types, h.slotType())
	}
	return types
}

// Match runs the synchronous phase: method check, path match, query decode,
// header decode.
//
// A nil result means the request is structurally not for this route (wrong
// method or path shape) and the caller should try the next candidate. A
// non-nil Match carries either a validation Problem, in which case the
// handler must not run, or the values extracted from the URL and headers.
func (r *Request) Match(hr *http.Request) *Match {
	if hr.Method != r.method {
		return nil
	}

	urlValues, ok := r.path.Match(splitPath(hr.URL.Path))
	if !ok {
		return nil
	}

	m := &Match{request: r, httpReq: hr, url: urlValues}

	if r.query != nil {
		qs, err := r.query.decode(hr.URL.Query())
		if err != nil {
			m.problem = badRequest(err.Error())
			return m
		}
		m.url = append(m.url, qs...)
	}

	for _, h := range r.headers {
		v, err := h.decode(hr.Header)
		if err != nil {
			m.problem = badRequest(err.Error())
			return m
		}
		m.headers = append(m.headers, v)
	}

	return m
}

// Match is the product of the synchronous phase of request matching: the
// method, path, query and headers have been checked and their values
// extracted, but no body has been read. Body decoding is a method on Match
// so it cannot run before that phase has succeeded.
type Match struct {
	request *Request
	httpReq *http.Request
	url     []any
	headers []any
	problem *Problem
}

// Problem returns the validation failure produced during the synchronous
// phase, or nil when the match is clean.
func (m *Match) Problem() *Problem { return m.problem }

// DecodeBody runs the second, potentially blocking phase: reading and
// decoding the request body. On success it returns the fully assembled
// handler tuple in the fixed order path captures, query slots, body value,
// header slots.
func (m *Match) DecodeBody(ctx context.Context) ([]any, *Problem) {
	if m.problem != nil {
		return nil, m.problem
	}

	slots := slices.Clone(m.url)

	if e := m.request.entity; e != nil {
		v, err := e.Decode(ctx, m.httpReq)
		if err != nil {
			if errors.Is(err, ErrUnsupportedMediaType) {
				return nil, &Problem{Status: http.StatusUnsupportedMediaType, Detail: err.Error()}
			}
			return nil, badRequest(err.Error())
		}
		slots = append(slots, v)
	}

	return append(slots, m.headers...), nil
}
