package route

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointMetadata(t *testing.T) {
	base := NewEndpoint(Get(Root()), Text(http.StatusOK))
	documented := base.WithOperationID("getRoot").WithSummary("root page")

	assert.Empty(t, base.OperationID())
	assert.Equal(t, "getRoot", documented.OperationID())
	assert.Equal(t, "root page", documented.Summary())
}

func TestHandleValidatesSignatures(t *testing.T) {
	ep := NewEndpoint(
		Get(Root().Segment("post").Capture("id", Int)).WithQuery(QueryOptional("tag", String)),
		Text(http.StatusOK),
	)

	t.Run("accepts the declared signature", func(t *testing.T) {
		assert.NotPanics(t, func() {
			ep.Handle(func(_ context.Context, _ int, _ *string) (string, error) {
				return "", nil
			})
		})
	})

	t.Run("rejects non-functions", func(t *testing.T) {
		assert.Panics(t, func() { ep.Handle(42) })
	})

	t.Run("rejects a missing context argument", func(t *testing.T) {
		assert.Panics(t, func() {
			ep.Handle(func(_ int, _ *string) (string, error) { return "", nil })
		})
	})

	t.Run("rejects a wrong slot type", func(t *testing.T) {
		assert.Panics(t, func() {
			ep.Handle(func(_ context.Context, _ string, _ *string) (string, error) {
				return "", nil
			})
		})
	})

	t.Run("rejects a wrong arity", func(t *testing.T) {
		assert.Panics(t, func() {
			ep.Handle(func(_ context.Context, _ int) (string, error) { return "", nil })
		})
	})

	t.Run("rejects a wrong result type", func(t *testing.T) {
		assert.Panics(t, func() {
			ep.Handle(func(_ context.Context, _ int, _ *string) (int, error) { return 0, nil })
		})
	})
}

func TestHandleNoContentSignature(t *testing.T) {
	ep := NewEndpoint(Delete(Root().Segment("post").Capture("id", Int)), NoContent(http.StatusNoContent))

	t.Run("handler returns only error", func(t *testing.T) {
		require.NotPanics(t, func() {
			ep.Handle(func(_ context.Context, _ int) error { return nil })
		})
	})

	t.Run("rejects a value-returning handler", func(t *testing.T) {
		assert.Panics(t, func() {
			ep.Handle(func(_ context.Context, _ int) (string, error) { return "", nil })
		})
	})
}
