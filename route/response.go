package route

import (
	"bytes"
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/vmihailenco/msgpack/v5"
)

// Response encodes a handler's typed result into an outgoing response:
// status code, Content-Type and entity bytes. The expected result type is
// recorded so handler signatures can be validated when a route is built.
type Response struct {
	status      int
	contentType string
	typ         reflect.Type // nil means the handler returns no body value
	encode      func(v any) ([]byte, error)
}

// NewResponse constructs a response encoding a B result with the given
// encode function.
func NewResponse[B any](status int, contentType string, encode func(B) ([]byte, error)) *Response {
	return &Response{
		status:      status,
		contentType: contentType,
		typ:         reflect.TypeOf((*B)(nil)).Elem(),
		encode:      func(v any) ([]byte, error) { return encode(v.(B)) },
	}
}

// Text responds with the handler's string result as text/plain.
func Text(status int) *Response {
	return NewResponse(status, "text/plain; charset=utf-8", func(s string) ([]byte, error) {
		return []byte(s), nil
	})
}

// JSON responds with the handler's B result encoded as JSON.
func JSON[B any](status int) *Response {
	return NewResponse(status, "application/json", func(v B) ([]byte, error) {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
}

// Msgpack responds with the handler's B result encoded as msgpack.
func Msgpack[B any](status int) *Response {
	return NewResponse(status, "application/msgpack", func(v B) ([]byte, error) {
		return msgpack.Marshal(v)
	})
}

// NoContent responds with the given status and an empty body. Handlers for
// a NoContent response return only an error.
func NoContent(status int) *Response {
	return &Response{status: status}
}

// Status returns the response status code.
func (r *Response) Status() int { return r.status }

// ContentType returns the response media type. It is empty for NoContent.
func (r *Response) ContentType() string { return r.contentType }

// Type returns the Go type of the handler result, or nil for NoContent.
func (r *Response) Type() reflect.Type { return r.typ }

// write encodes v and writes the response. An encode failure is a handler
// failure and yields a 500.
func (r *Response) write(w http.ResponseWriter, v any) {
	if r.typ == nil {
		w.WriteHeader(r.status)
		return
	}

	body, err := r.encode(v)
	if err != nil {
		serverError(w)
		return
	}

	w.Header().Set("Content-Type", r.contentType)
	w.WriteHeader(r.status)
	w.Write(body)
}
