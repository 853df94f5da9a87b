package httpclient

import (
	"fmt"
	nethttp "net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorMessageDefaults(t *testing.T) {
	t.Run("message from body", func(t *testing.T) {
		err := NewError(400, map[string]any{"message": "deal expired"}, "")
		assert.Equal(t, "deal expired", err.Message)
		assert.Equal(t, "HTTP 400: deal expired", err.Error())
	})

	t.Run("fallback message", func(t *testing.T) {
		err := NewError(500, nil, "")
		assert.Equal(t, "HTTP 500", err.Message)
	})

	t.Run("explicit message wins", func(t *testing.T) {
		err := NewError(404, map[string]any{"message": "ignored"}, "not found")
		assert.Equal(t, "not found", err.Message)
	})
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		status    int
		clientErr bool
		serverErr bool
	}{
		{400, true, false},
		{401, true, false},
		{499, true, false},
		{500, false, true},
		{503, false, true},
		{599, false, true},
		{0, false, false},
		{204, false, false},
		{302, false, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			err := NewError(tt.status, nil, "")
			assert.Equal(t, tt.clientErr, err.IsClientError())
			assert.Equal(t, tt.serverErr, err.IsServerError())
		})
	}
}

func TestNewErrorFromResponse(t *testing.T) {
	t.Run("json body parsed", func(t *testing.T) {
		resp := &RawResponse{
			StatusCode: 422,
			Headers:    nethttp.Header{"Content-Type": []string{"application/json; charset=utf-8"}},
			Body:       []byte(`{"message":"invalid deal","field":"title"}`),
		}
		err := NewErrorFromResponse(resp)
		assert.Equal(t, 422, err.Status)
		assert.Equal(t, "invalid deal", err.Message)
		body, ok := err.Body.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "title", body["field"])
	})

	t.Run("malformed json yields nil body", func(t *testing.T) {
		resp := &RawResponse{
			StatusCode: 500,
			Headers:    nethttp.Header{"Content-Type": []string{"application/json"}},
			Body:       []byte(`{{{not json`),
		}
		err := NewErrorFromResponse(resp)
		assert.Nil(t, err.Body)
		assert.Equal(t, "HTTP 500", err.Message)
	})

	t.Run("text body kept as string", func(t *testing.T) {
		resp := &RawResponse{
			StatusCode: 502,
			Headers:    nethttp.Header{"Content-Type": []string{"text/html"}},
			Body:       []byte("<h1>Bad Gateway</h1>"),
		}
		err := NewErrorFromResponse(resp)
		assert.Equal(t, "<h1>Bad Gateway</h1>", err.Body)
	})

	t.Run("empty body", func(t *testing.T) {
		resp := &RawResponse{StatusCode: 404, Headers: nethttp.Header{}}
		err := NewErrorFromResponse(resp)
		assert.Nil(t, err.Body)
	})
}

func TestAsErrorAndIsStatus(t *testing.T) {
	base := NewError(404, nil, "")
	wrapped := fmt.Errorf("fetching deal: %w", base)

	got, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, 404, got.Status)
	assert.True(t, IsStatus(wrapped, 404))
	assert.False(t, IsStatus(wrapped, 500))

	_, ok = AsError(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestIsJSONContentType(t *testing.T) {
	assert.True(t, isJSONContentType("application/json"))
	assert.True(t, isJSONContentType("application/json; charset=utf-8"))
	assert.True(t, isJSONContentType("application/problem+json"))
	assert.False(t, isJSONContentType("text/plain"))
	assert.False(t, isJSONContentType(""))
}
