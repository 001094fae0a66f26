package route

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestMatchStructural(t *testing.T) {
	r := Get(Root().Segment("post").Capture("id", Int))

	t.Run("wrong method is a non-match", func(t *testing.T) {
		assert.Nil(t, r.Match(httptest.NewRequest(http.MethodPost, "/post/1", nil)))
	})

	t.Run("wrong path shape is a non-match", func(t *testing.T) {
		assert.Nil(t, r.Match(httptest.NewRequest(http.MethodGet, "/post", nil)))
		assert.Nil(t, r.Match(httptest.NewRequest(http.MethodGet, "/post/1/x", nil)))
		assert.Nil(t, r.Match(httptest.NewRequest(http.MethodGet, "/other/1", nil)))
	})

	t.Run("capture decode failure is a non-match", func(t *testing.T) {
		assert.Nil(t, r.Match(httptest.NewRequest(http.MethodGet, "/post/abc", nil)))
	})

	t.Run("match extracts the capture", func(t *testing.T) {
		m := r.Match(httptest.NewRequest(http.MethodGet, "/post/7", nil))
		require.NotNil(t, m)
		require.Nil(t, m.Problem())

		slots, problem := m.DecodeBody(context.Background())
		require.Nil(t, problem)
		assert.Equal(t, []any{7}, slots)
	})
}

func TestRequestMatchValidation(t *testing.T) {
	r := Get(Root().Segment("post")).WithQuery(QueryRequired("id", String))

	t.Run("missing required query is a problem, not a non-match", func(t *testing.T) {
		m := r.Match(httptest.NewRequest(http.MethodGet, "/post", nil))
		require.NotNil(t, m)
		problem := m.Problem()
		require.NotNil(t, problem)
		assert.Equal(t, http.StatusBadRequest, problem.Status)
		assert.Contains(t, problem.Detail, "id")
	})

	t.Run("header failure is a problem", func(t *testing.T) {
		withHeader := r.WithHeaders(HeaderRequired("X-Version", Int))
		m := withHeader.Match(httptest.NewRequest(http.MethodGet, "/post?id=1", nil))
		require.NotNil(t, m)
		require.NotNil(t, m.Problem())
		assert.Contains(t, m.Problem().Detail, "X-Version")
	})

	t.Run("decode body propagates the problem", func(t *testing.T) {
		m := r.Match(httptest.NewRequest(http.MethodGet, "/post", nil))
		require.NotNil(t, m)

		_, problem := m.DecodeBody(context.Background())
		require.NotNil(t, problem)
		assert.Equal(t, http.StatusBadRequest, problem.Status)
	})
}

func TestRequestTupleOrder(t *testing.T) {
	// Path captures, then query slots, then the body value, then headers.
	r := Post(Root().Segment("post").Capture("id", Int)).
		WithQuery(QueryRequired("tag", String)).
		WithEntity(TextEntity()).
		WithHeaders(HeaderRequired("X-Client", String))

	hr := httptest.NewRequest(http.MethodPost, "/post/7?tag=go", strings.NewReader("hello"))
	hr.Header.Set("Content-Type", "text/plain")
	hr.Header.Set("X-Client", "cli")

	m := r.Match(hr)
	require.NotNil(t, m)
	require.Nil(t, m.Problem())

	slots, problem := m.DecodeBody(context.Background())
	require.Nil(t, problem)
	assert.Equal(t, []any{7, "go", "hello", "cli"}, slots)
}

func TestRequestBodyProblems(t *testing.T) {
	r := Post(Root().Segment("notes")).WithEntity(JSONEntity[note]())

	t.Run("wrong content type is 415", func(t *testing.T) {
		hr := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader("x"))
		hr.Header.Set("Content-Type", "text/plain")

		m := r.Match(hr)
		require.NotNil(t, m)

		_, problem := m.DecodeBody(context.Background())
		require.NotNil(t, problem)
		assert.Equal(t, http.StatusUnsupportedMediaType, problem.Status)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		hr := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader("{"))
		hr.Header.Set("Content-Type", "application/json")

		m := r.Match(hr)
		require.NotNil(t, m)

		_, problem := m.DecodeBody(context.Background())
		require.NotNil(t, problem)
		assert.Equal(t, http.StatusBadRequest, problem.Status)
	})
}

func TestRequestImmutability(t *testing.T) {
	base := Get(Root().Segment("a"))
	withQuery := base.WithQuery(QueryRequired("q", String))
	withHeader := base.WithHeaders(HeaderRequired("X", String))

	assert.Nil(t, base.Query())
	assert.Empty(t, base.Headers())
	assert.NotNil(t, withQuery.Query())
	assert.Len(t, withHeader.Headers(), 1)
}
