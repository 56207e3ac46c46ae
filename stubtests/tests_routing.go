package stubtests

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/launchdarkly/go-http-stubs/stubs"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoRoutingTests(t *T) {
	t.Run("wrapped router decides the endpoint", func(t *T) {
		s := t.RequireStub("GET", "https://api.example.com/v2/flags", 200, "{}")
		original := stubs.RouterFunc(func(req *http.Request) stubs.Endpoint {
			ep := stubs.DefaultRouter.Route(req)
			ep.URL.Scheme = "https"
			ep.URL.Host = "api.example.com"
			ep.URL.Path = "/v2" + ep.URL.Path
			ep.Header.Set("Authorization", "key")
			return ep
		})

		ep := t.Stubs().Router(original).Route(httptest.NewRequest("GET", "http://placeholder/flags", nil))
		assert.Equal(t, "https://api.example.com/v2/flags", ep.URL.String())
		assert.Equal(t, []byte("{}"), ep.Response.Body)

		client := &http.Client{Transport: t.Stubs().Transport(original)}
		resp, err := client.Get("http://placeholder/flags")
		require.NoError(t, err)
		resp.Body.Close()
		s.AssertRequestedOnce(func(r *stubs.Request) {
			stubs.AssertHeaderEqual(t.Reporter(), r, "Authorization", "key")
		})
		t.ExpectNoFailures()
	})

	t.Run("router reports unmatched endpoint", func(t *T) {
		ep := t.Stubs().Router(nil).Route(httptest.NewRequest("DELETE", "http://example.com/x", nil))
		assert.True(t, ep.Response.IsError())
		assert.ErrorIs(t, ep.Response.Err, stubs.ErrNoStubbedResponse)
		t.ExpectFailures("unexpected request: DELETE http://example.com/x")
	})

	t.Run("observation hook records directly", func(t *T) {
		s := t.RequireStub("PUT", "https://example.com/items/1", 204, "")
		t.Stubs().ObserveRequest(&stubs.Request{
			Method: "PUT",
			URL:    mustParseURL(t, "https://example.com/items/1"),
			Body:   []byte("x"),
			Time:   time.Now(),
		})
		t.Stubs().ObserveRequest(&stubs.Request{Method: "PUT", URL: mustParseURL(t, "https://example.com/items/2")})

		s.AssertRequestedOnce()
		t.ExpectFailures("unexpected request: PUT https://example.com/items/2")
	})

	t.Run("simulated network error", func(t *T) {
		refused := errors.New("connection refused")
		s, err := t.Stubs().StubError("GET", "https://example.com/down", refused)
		require.NoError(t, err)

		_, err = t.Client().Get("https://example.com/down")
		assert.ErrorIs(t, err, refused)
		s.AssertRequestedOnce()
		t.ExpectNoFailures()
	})

	t.Run("records what a real handler would receive", func(t *T) {
		handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(202))
		s := t.RequireStub("POST", "http://localhost/bulk?b=2&a=1", 202, "")

		send := func(client *http.Client) {
			req, err := http.NewRequest("POST", "http://localhost/bulk?a=1&b=2", bytes.NewBufferString("payload"))
			require.NoError(t, err)
			req.Header.Set("User-Agent", "stubtests")
			resp, err := client.Do(req)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, 202, resp.StatusCode)
		}
		send(httphelpers.ClientFromHandler(handler))
		send(t.Client())

		require.Len(t, requestsCh, 1)
		served := <-requestsCh
		s.AssertRequestedOnce(func(r *stubs.Request) {
			assert.Equal(t, served.Request.Method, r.Method)
			assert.Equal(t, served.Request.URL.Query(), r.URL.Query())
			assert.Equal(t, string(served.Body), string(r.Body))
			stubs.AssertHeaderEqual(t.Reporter(), r, "User-Agent", served.Request.Header.Get("User-Agent"))
		})
		t.ExpectNoFailures()
	})
}
