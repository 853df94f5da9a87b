package httpclient

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery(t *testing.T) {
	t.Run("empty map", func(t *testing.T) {
		assert.Equal(t, "", BuildQuery(nil))
		assert.Equal(t, "", BuildQuery(map[string]any{}))
	})

	t.Run("nil values dropped", func(t *testing.T) {
		got := BuildQuery(map[string]any{"a": nil, "b": "x"})
		assert.Equal(t, "?b=x", got)
	})

	t.Run("all nil yields empty", func(t *testing.T) {
		assert.Equal(t, "", BuildQuery(map[string]any{"a": nil}))
	})

	t.Run("keys sorted", func(t *testing.T) {
		got := BuildQuery(map[string]any{"z": 1, "a": 2, "m": 3})
		assert.Equal(t, "?a=2&m=3&z=1", got)
	})

	t.Run("slice expands preserving order", func(t *testing.T) {
		got := BuildQuery(map[string]any{"tags": []string{"new", "hot"}})
		assert.Equal(t, "?tags=new&tags=hot", got)
	})

	t.Run("mixed scalars", func(t *testing.T) {
		got := BuildQuery(map[string]any{"page": 2, "active": true, "q": "spa day"})
		assert.Equal(t, "?active=true&page=2&q=spa+day", got)
	})

	t.Run("reserved characters round-trip", func(t *testing.T) {
		in := map[string]any{"key&=?": "value #1/2"}
		got := BuildQuery(in)
		values, err := url.ParseQuery(got[1:])
		require.NoError(t, err)
		assert.Equal(t, "value #1/2", values.Get("key&=?"))
	})

	t.Run("idempotent", func(t *testing.T) {
		in := map[string]any{"category": "spa", "limit": 20, "page": 1}
		assert.Equal(t, BuildQuery(in), BuildQuery(in))
	})
}
