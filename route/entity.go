package route

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"reflect"

	"github.com/vmihailenco/msgpack/v5"
)

// Entity decodes a request body into one tuple slot. Decoding runs only
// after the synchronous match phase has succeeded, so bodies of requests
// that do not match a route are never consumed. The body is read through
// the server's request, which releases it on every exit path.
type Entity interface {
	// ContentType returns the media type this entity accepts.
	ContentType() string

	// Type returns the Go type produced by Decode.
	Type() reflect.Type

	// Decode reads and decodes the request body. A wrong Content-Type is
	// reported as ErrUnsupportedMediaType; any other error means the body
	// is malformed.
	Decode(ctx context.Context, r *http.Request) (any, error)
}

// checkContentType verifies the request's media type, ignoring parameters
// such as charset.
func checkContentType(r *http.Request, want string) error {
	ct := r.Header.Get("Content-Type")
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil || mt != want {
		return fmt.Errorf("%w: want %s, got %q", ErrUnsupportedMediaType, want, ct)
	}
	return nil
}

type jsonEntity[T any] struct{}

// JSONEntity decodes an application/json body into T. Unknown fields and
// trailing data after the first value are rejected.
func JSONEntity[T any]() Entity { return jsonEntity[T]{} }

func (jsonEntity[T]) ContentType() string { return "application/json" }

func (jsonEntity[T]) Type() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

func (jsonEntity[T]) Decode(_ context.Context, r *http.Request) (any, error) {
	if err := checkContentType(r, "application/json"); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var v T
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected trailing data after JSON value")
	}

	return v, nil
}

type textEntity struct{}

// TextEntity decodes a text/plain body into a string.
func TextEntity() Entity { return textEntity{} }

func (textEntity) ContentType() string { return "text/plain" }

func (textEntity) Type() reflect.Type { return reflect.TypeOf((*string)(nil)).Elem() }

func (textEntity) Decode(_ context.Context, r *http.Request) (any, error) {
	if err := checkContentType(r, "text/plain"); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	return string(body), nil
}

type formEntity struct{}

// FormEntity decodes an application/x-www-form-urlencoded body into the raw
// url.Values mapping.
func FormEntity() Entity { return formEntity{} }

func (formEntity) ContentType() string { return "application/x-www-form-urlencoded" }

func (formEntity) Type() reflect.Type { return reflect.TypeOf((*url.Values)(nil)).Elem() }

func (formEntity) Decode(_ context.Context, r *http.Request) (any, error) {
	if err := checkContentType(r, "application/x-www-form-urlencoded"); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	return url.ParseQuery(string(body))
}

type msgpackEntity[T any] struct{}

// MsgpackEntity decodes an application/msgpack body into T.
func MsgpackEntity[T any]() Entity { return msgpackEntity[T]{} }

func (msgpackEntity[T]) ContentType() string { return "application/msgpack" }

func (msgpackEntity[T]) Type() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

func (msgpackEntity[T]) Decode(_ context.Context, r *http.Request) (any, error) {
	if err := checkContentType(r, "application/msgpack"); err != nil {
		return nil, err
	}

	var v T
	if err := msgpack.NewDecoder(r.Body).Decode(&v); err != nil {
		return nil, err
	}

	return v, nil
}
