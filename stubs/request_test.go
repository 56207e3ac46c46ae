package stubs

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestCapturesAndRestoresBody(t *testing.T) {
	req, err := http.NewRequest("POST", "https://example.com/users?x=1", strings.NewReader("hello"))
	require.NoError(t, err)
	req.Header["lower-case"] = []string{"v"}

	captured, err := NewRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "POST", captured.Method)
	assert.Equal(t, "https://example.com/users?x=1", captured.URL.String())
	assert.Equal(t, []byte("hello"), captured.Body)
	assert.Equal(t, []string{"v"}, captured.Header["lower-case"])
	assert.False(t, captured.Time.IsZero())

	rest, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(rest))
}

func TestNewRequestWithoutBody(t *testing.T) {
	req, err := http.NewRequest("GET", "https://example.com", nil)
	require.NoError(t, err)
	captured, err := NewRequest(req)
	require.NoError(t, err)
	assert.False(t, captured.HasBody())

}

func TestNewRequestWithEmptyBody(t *testing.T) {
	req, err := http.NewRequest("POST", "https://example.com", strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, http.NoBody, req.Body)

	captured, err := NewRequest(req)
	require.NoError(t, err)
	assert.True(t, captured.HasBody())
	assert.Equal(t, []byte{}, captured.Body)
	assert.Equal(t, http.NoBody, req.Body)
}

func TestCurlCommand(t *testing.T) {
	req := &Request{
		Method: "POST",
		URL:    mustParseURL(t, "https://example.com/users?a=1&b=2"),
		Header: http.Header{"X-B": {"two"}, "Content-Type": {"application/json"}},
		Body:   []byte(`{"name":"it's"}`),
	}
	assert.Equal(t,
		`curl -X POST -H 'Content-Type: application/json' -H 'X-B: two' --data-binary '{"name":"it'"'"'s"}' 'https://example.com/users?a=1&b=2'`,
		req.CurlCommand())
	assert.Equal(t, "POST https://example.com/users?a=1&b=2", req.String())
}
