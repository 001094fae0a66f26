package route

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRequired(t *testing.T) {
	h := HeaderRequired("X-Client-Version", Int)

	t.Run("decodes the header value", func(t *testing.T) {
		hdr := http.Header{}
		hdr.Set("X-Client-Version", "3")

		v, err := h.decode(hdr)
		require.NoError(t, err)
		assert.Equal(t, 3, v)
	})

	t.Run("name is case-insensitive", func(t *testing.T) {
		hdr := http.Header{}
		hdr.Set("x-client-version", "3")

		v, err := h.decode(hdr)
		require.NoError(t, err)
		assert.Equal(t, 3, v)
	})

	t.Run("missing is a failure", func(t *testing.T) {
		_, err := h.decode(http.Header{})
		require.ErrorIs(t, err, ErrMissing)
		assert.Contains(t, err.Error(), "X-Client-Version")
	})

	t.Run("undecodable is a failure", func(t *testing.T) {
		hdr := http.Header{}
		hdr.Set("X-Client-Version", "abc")

		_, err := h.decode(hdr)
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestHeaderOptional(t *testing.T) {
	h := HeaderOptional("X-Trace", String)

	t.Run("absent yields nil", func(t *testing.T) {
		v, err := h.decode(http.Header{})
		require.NoError(t, err)
		assert.Nil(t, v)
		assert.IsType(t, (*string)(nil), v)
	})

	t.Run("present yields a pointer", func(t *testing.T) {
		hdr := http.Header{}
		hdr.Set("X-Trace", "abc")

		v, err := h.decode(hdr)
		require.NoError(t, err)
		require.NotNil(t, v.(*string))
		assert.Equal(t, "abc", *v.(*string))
	})
}
