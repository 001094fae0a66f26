package route

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type note struct {
	Title string `json:"title" msgpack:"title"`
	Body  string `json:"body" msgpack:"body"`
}

func bodyRequest(contentType, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	return req
}

func TestJSONEntity(t *testing.T) {
	e := JSONEntity[note]()

	t.Run("decodes a body", func(t *testing.T) {
		v, err := e.Decode(context.Background(), bodyRequest("application/json", `{"title":"a","body":"b"}`))
		require.NoError(t, err)
		assert.Equal(t, note{Title: "a", Body: "b"}, v)
	})

	t.Run("accepts charset parameters", func(t *testing.T) {
		_, err := e.Decode(context.Background(), bodyRequest("application/json; charset=utf-8", `{"title":"a"}`))
		assert.NoError(t, err)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		_, err := e.Decode(context.Background(), bodyRequest("application/json", `{"title":"a","oops":1}`))
		assert.Error(t, err)
	})

	t.Run("rejects trailing data", func(t *testing.T) {
		_, err := e.Decode(context.Background(), bodyRequest("application/json", `{"title":"a"}{"title":"b"}`))
		assert.Error(t, err)
	})

	t.Run("rejects malformed bodies", func(t *testing.T) {
		_, err := e.Decode(context.Background(), bodyRequest("application/json", `{`))
		assert.Error(t, err)
	})

	t.Run("rejects the wrong content type", func(t *testing.T) {
		_, err := e.Decode(context.Background(), bodyRequest("text/plain", `{"title":"a"}`))
		assert.ErrorIs(t, err, ErrUnsupportedMediaType)
	})

	t.Run("reports its media type and Go type", func(t *testing.T) {
		assert.Equal(t, "application/json", e.ContentType())
		assert.Equal(t, "route.note", e.Type().String())
	})
}

func TestTextEntity(t *testing.T) {
	e := TextEntity()

	v, err := e.Decode(context.Background(), bodyRequest("text/plain", "hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	_, err = e.Decode(context.Background(), bodyRequest("application/json", "hello"))
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)
}

func TestFormEntity(t *testing.T) {
	e := FormEntity()

	v, err := e.Decode(context.Background(), bodyRequest("application/x-www-form-urlencoded", "a=1&b=2&b=3"))
	require.NoError(t, err)
	assert.Equal(t, url.Values{"a": {"1"}, "b": {"2", "3"}}, v)

	_, err = e.Decode(context.Background(), bodyRequest("text/plain", "a=1"))
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)
}

func TestMsgpackEntity(t *testing.T) {
	e := MsgpackEntity[note]()

	t.Run("decodes a body", func(t *testing.T) {
		raw, err := msgpack.Marshal(note{Title: "a", Body: "b"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/notes", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/msgpack")

		v, err := e.Decode(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, note{Title: "a", Body: "b"}, v)
	})

	t.Run("rejects malformed bodies", func(t *testing.T) {
		_, err := e.Decode(context.Background(), bodyRequest("application/msgpack", "\x00garbage\xff"))
		assert.Error(t, err)
	})
}
