package stubtests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoMatchingTests(t *T) {
	t.Run("query parameter order is ignored", func(t *T) {
		s := t.RequireStub("GET", "https://example.com/search?a=1&b=2&c=3", 200, "[]")

		for _, rawURL := range []string{
			"https://example.com/search?a=1&b=2&c=3",
			"https://example.com/search?c=3&a=1&b=2",
			"https://example.com/search?b=2&c=3&a=1",
		} {
			_, body := requireGet(t, rawURL)
			assert.Equal(t, "[]", string(body))
		}
		s.AssertRequestedCount(3)
		t.ExpectNoFailures()
	})

	t.Run("repeated query parameters are counted", func(t *T) {
		s := t.RequireStub("GET", "https://example.com/tags?k=1&k=2&k=1", 200, "")

		_, err := t.Client().Get("https://example.com/tags?k=2&k=1&k=1")
		require.NoError(t, err)
		_, err = t.Client().Get("https://example.com/tags?k=1&k=2")
		assert.Error(t, err)

		s.AssertRequestedOnce()
		t.ExpectFailures("unexpected request: GET https://example.com/tags?k=1&k=2")
	})

	t.Run("empty value differs from missing value", func(t *T) {
		t.RequireStub("GET", "https://example.com/flags?all", 200, "")

		assert.NotNil(t, t.Stubs().FindMatch("GET", mustParseURL(t, "https://example.com/flags?all")))
		assert.Nil(t, t.Stubs().FindMatch("GET", mustParseURL(t, "https://example.com/flags?all=")))
	})

	t.Run("method is case-insensitive", func(t *T) {
		s := t.RequireStub("POST", "https://example.com/events", 202, "")
		assert.Same(t, s, t.Stubs().FindMatch("post", mustParseURL(t, "https://example.com/events")))
	})

	t.Run("other components must match exactly", func(t *T) {
		const base = "https://user@example.com:8443/a/b#top"
		t.RequireStub("GET", base, 200, "")
		require.NotNil(t, t.Stubs().FindMatch("GET", mustParseURL(t, base)))

		for name, rawURL := range map[string]string{
			"scheme":    "http://user@example.com:8443/a/b#top",
			"user info": "https://other@example.com:8443/a/b#top",
			"host":      "https://user@example.org:8443/a/b#top",
			"port":      "https://user@example.com/a/b#top",
			"path":      "https://user@example.com:8443/a/b/#top",
			"fragment":  "https://user@example.com:8443/a/b#bottom",
			"query":     "https://user@example.com:8443/a/b?x=1#top",
		} {
			resp := t.Stubs().Resolve("GET", mustParseURL(t, rawURL))
			assert.True(t, resp.IsError(), "differing %s should not match", name)
		}
		t.ExpectFailures(
			"unexpected request", "unexpected request", "unexpected request", "unexpected request",
			"unexpected request", "unexpected request", "unexpected request",
		)
	})
}
