package stubtests

import (
	"github.com/launchdarkly/go-http-stubs/charset"
	"github.com/launchdarkly/go-http-stubs/stubs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoRegistrationTests(t *T) {
	t.Run("duplicate endpoint is rejected", func(t *T) {
		t.RequireStub("GET", "https://example.com/posts?a=1&b=2", 200, "")

		_, err := t.Stubs().Stub("GET", "https://example.com/posts?b=2&a=1", 404, nil)
		assert.ErrorIs(t, err, stubs.ErrEndpointAlreadyStubbed)
		_, err = t.Stubs().Stub("get", "https://example.com/posts?a=1&b=2", 404, nil)
		assert.ErrorIs(t, err, stubs.ErrEndpointAlreadyStubbed)
		assert.Len(t, t.Stubs().Stubs(), 1)
	})

	t.Run("same URL with another method is a separate stub", func(t *T) {
		t.RequireStub("GET", "https://example.com/users", 200, "")
		t.RequireStub("POST", "https://example.com/users", 201, "")
		assert.Len(t, t.Stubs().Stubs(), 2)
	})

	t.Run("unusable URL or method is rejected", func(t *T) {
		_, err := t.Stubs().Stub("GET", "://missing-scheme", 200, nil)
		assert.ErrorIs(t, err, stubs.ErrInvalidEndpointURL)
		_, err = t.Stubs().Stub("", "https://example.com/", 200, nil)
		assert.ErrorIs(t, err, stubs.ErrInvalidMethod)
		assert.Empty(t, t.Stubs().Stubs())
	})

	t.Run("text body that the encoding cannot represent", func(t *T) {
		_, err := t.Stubs().StubString("GET", "https://example.com/sweets", 200, "Süßigkeiten", charset.ASCII)
		assert.ErrorIs(t, err, stubs.ErrInvalidBody)
		assert.Empty(t, t.Stubs().Stubs())
	})

	t.Run("text body is encoded", func(t *T) {
		_, err := t.Stubs().StubString("GET", "https://example.com/sweets", 200, "Süß", charset.Latin1)
		require.NoError(t, err)

		resp, body := requireGet(t, "https://example.com/sweets")
		assert.Equal(t, []byte{'S', 0xfc, 0xdf}, body)
		assert.Equal(t, "text/plain; charset=ISO-8859-1", resp.Header.Get("Content-Type"))
	})

	t.Run("JSON body", func(t *T) {
		value := ldvalue.ArrayOf(ldvalue.String("a"), ldvalue.Int(1))
		_, err := t.Stubs().StubJSON("GET", "https://example.com/list", 200, value)
		require.NoError(t, err)

		resp, body := requireGet(t, "https://example.com/list")
		assert.Equal(t, `["a",1]`, string(body))
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	})
}
