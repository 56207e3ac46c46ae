package stubtests

import (
	"net/http"
	"strings"

	"github.com/launchdarkly/go-http-stubs/charset"
	"github.com/launchdarkly/go-http-stubs/stubs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoVerificationTests(t *T) {
	t.Run("requested once, then twice", func(t *T) {
		s := t.RequireStub("GET", "https://example.com/posts?search=foo", 200, "[]")

		resp, body := requireGet(t, "https://example.com/posts?search=foo")
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "[]", string(body))
		s.AssertRequestedOnce()
		t.ExpectNoFailures()

		requireGet(t, "https://example.com/posts?search=foo")
		s.AssertRequestedCount(2)
		t.ExpectNoFailures()

		s.AssertRequestedOnce()
		t.ExpectFailures("to be requested once, but it was requested 2 times")
	})

	t.Run("not requested is idempotent", func(t *T) {
		s := t.RequireStub("GET", "https://example.com/posts", 200, "")
		for i := 0; i < 3; i++ {
			assert.True(t, s.AssertNotRequested())
		}
		t.ExpectNoFailures()
	})

	t.Run("request with another method", func(t *T) {
		s := t.RequireStub("GET", "https://example.com/users", 200, "")

		_, err := t.Client().Post("https://example.com/users", "application/json", strings.NewReader("{}"))
		assert.ErrorIs(t, err, stubs.ErrNoStubbedResponse)

		assert.True(t, s.AssertNotRequested())
		assert.False(t, s.AssertRequestedOnce())
		t.ExpectFailures(
			"unexpected request: POST https://example.com/users",
			"to be requested once, but it was requested 0 times",
		)
	})

	t.Run("unregistered URL", func(t *T) {
		resp, err := t.Client().Get("https://example.com/unregistered")
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, stubs.ErrNoStubbedResponse)
		t.ExpectFailures("unexpected request: GET https://example.com/unregistered matches no stub")
	})

	t.Run("request details", func(t *T) {
		s := t.RequireStub("POST", "https://example.com/users", 201, "")

		req, err := http.NewRequest("POST", "https://example.com/users", strings.NewReader(`{"name": "x", "admin": false}`))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "token")
		resp, err := t.Client().Do(req)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)

		s.AssertRequestedOnce(func(r *stubs.Request) {
			t.Debug("recorded: %s", r.CurlCommand())
			stubs.AssertHeaderEqual(t.Reporter(), r, "Content-Type", "application/json")
			stubs.AssertHeaderEqual(t.Reporter(), r, "Authorization", "token")
			stubs.AssertJSONBodyEqual(t.Reporter(), r,
				ldvalue.ObjectBuild().Set("admin", ldvalue.Bool(false)).Set("name", ldvalue.String("x")).Build())
			stubs.AssertHeaderEqual(t.Reporter(), r, "X-Missing", "")
			stubs.AssertBodyEqual(t.Reporter(), r, "{}", charset.UTF8)
		})
		t.ExpectFailures(`expected header "X-Missing"`, `to be "{}"`)
	})

	t.Run("inspector sees every request", func(t *T) {
		s := t.RequireStub("GET", "https://example.com/page?n=1", 200, "")
		requireGet(t, "https://example.com/page?n=1")

		var count int
		s.AssertRequestedCount(3, func(requests []*stubs.Request) {
			count = len(requests)
		})
		assert.Equal(t, 1, count)
		t.ExpectFailures("to be requested 3 times, but it was requested once")
	})

	t.Run("every stub requested", func(t *T) {
		t.RequireStub("GET", "https://example.com/a", 200, "")
		t.RequireStub("GET", "https://example.com/b", 200, "")
		requireGet(t, "https://example.com/a")

		assert.False(t, t.Stubs().AssertAllRequested())
		t.ExpectFailures("expected GET https://example.com/b to be requested, but it never was")
	})
}
