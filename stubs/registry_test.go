package stubs

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/launchdarkly/go-http-stubs/charset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlogtest"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func newCapturingRegistry() (*Registry, *CapturingReporter) {
	reporter := &CapturingReporter{}
	return New(Config{Reporter: reporter}), reporter
}

func mustParseURL(t *testing.T, rawURL string) *url.URL {
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u
}

func TestRegisterReturnsStub(t *testing.T) {
	r, _ := newCapturingRegistry()
	s, err := r.Stub("get", "https://example.com/posts?search=foo", 200, []byte("[]"))
	require.NoError(t, err)

	assert.Equal(t, "GET", s.Method())
	assert.Equal(t, "https://example.com/posts?search=foo", s.URL())
	assert.Equal(t, 200, s.Response().StatusCode)
	assert.Equal(t, []byte("[]"), s.Response().Body)
	assert.Equal(t, []*Stub{s}, r.Stubs())
}

func TestRegisterRejectsDuplicateEndpoint(t *testing.T) {
	r, _ := newCapturingRegistry()
	_, err := r.Stub("GET", "https://example.com/posts?a=1&b=2", 200, nil)
	require.NoError(t, err)

	for _, dup := range []struct{ method, url string }{
		{"GET", "https://example.com/posts?a=1&b=2"},
		{"get", "https://example.com/posts?a=1&b=2"},
		{"GET", "https://example.com/posts?b=2&a=1"},
	} {
		_, err := r.Stub(dup.method, dup.url, 404, nil)
		assert.ErrorIs(t, err, ErrEndpointAlreadyStubbed, "%s %s", dup.method, dup.url)
	}
	assert.Len(t, r.Stubs(), 1)
}

func TestRegisterAllowsDistinctEndpoints(t *testing.T) {
	r, _ := newCapturingRegistry()
	for _, ep := range []struct{ method, url string }{
		{"GET", "https://example.com/posts"},
		{"POST", "https://example.com/posts"},
		{"GET", "https://example.com/posts/"},
		{"GET", "https://example.com/posts?a=1"},
		{"GET", "http://example.com/posts"},
		{"GET", "https://example.com:8443/posts"},
	} {
		_, err := r.Stub(ep.method, ep.url, 200, nil)
		assert.NoError(t, err, "%s %s", ep.method, ep.url)
	}
	assert.Len(t, r.Stubs(), 6)
}

func TestRegisterInvalidURL(t *testing.T) {
	r, _ := newCapturingRegistry()
	_, err := r.Stub("GET", "", 200, nil)
	assert.ErrorIs(t, err, ErrInvalidEndpointURL)

	_, err = r.Stub("GET", "http://[::1", 200, nil)
	assert.ErrorIs(t, err, ErrInvalidEndpointURL)
	assert.Empty(t, r.Stubs())
}

func TestRegisterInvalidMethod(t *testing.T) {
	r, _ := newCapturingRegistry()
	for _, m := range []string{"", " ", "GET POST"} {
		_, err := r.Stub(m, "https://example.com", 200, nil)
		assert.ErrorIs(t, err, ErrInvalidMethod, "%q", m)
	}
}

func TestStubStringRejectsUnencodableText(t *testing.T) {
	r, _ := newCapturingRegistry()
	_, err := r.StubString("GET", "https://example.com/sweets", 200, "Süßigkeiten", charset.ASCII)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidBody)
	assert.Empty(t, r.Stubs())
}

func TestStubStringEncodesBody(t *testing.T) {
	r, _ := newCapturingRegistry()
	s, err := r.StubString("GET", "https://example.com/sweets", 200, "Süßigkeiten", charset.Latin1)
	require.NoError(t, err)
	assert.Equal(t, []byte{'S', 0xfc, 0xdf, 'i', 'g', 'k', 'e', 'i', 't', 'e', 'n'}, s.Response().Body)
	assert.Equal(t, "text/plain; charset=ISO-8859-1", s.Response().Header.Get("Content-Type"))

	s, err = r.StubString("GET", "https://example.com/default", 200, "[]", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), s.Response().Body)
}

func TestStubJSON(t *testing.T) {
	r, _ := newCapturingRegistry()
	s, err := r.StubJSON("GET", "https://example.com/items", 200,
		ldvalue.ArrayOf(ldvalue.String("a"), ldvalue.Int(1)))
	require.NoError(t, err)
	assert.Equal(t, `["a",1]`, string(s.Response().Body))
	assert.Equal(t, "application/json", s.Response().Header.Get("Content-Type"))
}

func TestStubError(t *testing.T) {
	r, _ := newCapturingRegistry()
	refused := errors.New("connection refused")
	s, err := r.StubError("GET", "https://example.com/down", refused)
	require.NoError(t, err)
	assert.True(t, s.Response().IsError())
	assert.Equal(t, refused, s.Response().Err)

	s, err = r.StubError("GET", "https://example.com/default-error", nil)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Response().Err, ErrNoStubbedResponse)
}

func TestCannedResponseIsImmutable(t *testing.T) {
	r, _ := newCapturingRegistry()
	body := []byte("abc")
	s, err := r.Stub("GET", "https://example.com", 200, body)
	require.NoError(t, err)

	body[0] = 'x'
	resp := s.Response()
	resp.Body[1] = 'y'
	assert.Equal(t, []byte("abc"), s.Response().Body)
}

func TestFindMatch(t *testing.T) {
	r, _ := newCapturingRegistry()
	posts, _ := r.Stub("GET", "https://example.com/posts?search=foo&page=2", 200, nil)
	users, _ := r.Stub("GET", "https://example.com/users", 200, nil)

	assert.Equal(t, posts, r.FindMatch("GET", mustParseURL(t, "https://example.com/posts?page=2&search=foo")))
	assert.Equal(t, users, r.FindMatch("get", mustParseURL(t, "https://example.com/users")))
	assert.Nil(t, r.FindMatch("POST", mustParseURL(t, "https://example.com/users")))
	assert.Nil(t, r.FindMatch("GET", mustParseURL(t, "https://example.com/posts?search=foo")))
	assert.Nil(t, r.FindMatch("GET", mustParseURL(t, "https://example.com/nothing")))
}

func TestResolve(t *testing.T) {
	r, reporter := newCapturingRegistry()
	_, err := r.Stub("GET", "https://example.com/posts?search=foo", 200, []byte("[]"))
	require.NoError(t, err)

	resp := r.Resolve("GET", mustParseURL(t, "https://example.com/posts?search=foo"))
	require.False(t, resp.IsError())
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, []byte("[]"), resp.Body)
	assert.Empty(t, reporter.Failures())

	resp = r.Resolve("GET", mustParseURL(t, "https://example.com/unknown"))
	assert.ErrorIs(t, resp.Err, ErrNoStubbedResponse)
	require.Len(t, reporter.Failures(), 1)
	f := reporter.Failures()[0]
	assert.Contains(t, f.Message, "GET https://example.com/unknown")
	assert.Contains(t, f.Location.File, "registry_test.go")
}

func TestCustomFallbackError(t *testing.T) {
	offline := errors.New("offline")
	r := New(Config{Reporter: &CapturingReporter{}, FallbackError: offline})
	resp := r.Resolve("GET", mustParseURL(t, "https://example.com"))
	assert.ErrorIs(t, resp.Err, offline)
}

func TestObserveRequestRecordsAgainstMatchingStub(t *testing.T) {
	r, reporter := newCapturingRegistry()
	s, _ := r.Stub("POST", "https://example.com/users", 201, nil)
	req := &Request{Method: "POST", URL: mustParseURL(t, "https://example.com/users"), Body: []byte("{}")}

	r.ObserveRequest(req)
	r.ObserveRequest(req)

	assert.Equal(t, []*Request{req, req}, s.Requests())
	assert.Empty(t, reporter.Failures())
}

func TestObserveRequestReportsUnexpectedRequest(t *testing.T) {
	r, reporter := newCapturingRegistry()
	s, _ := r.Stub("GET", "https://example.com/users", 200, nil)

	r.ObserveRequest(&Request{Method: "POST", URL: mustParseURL(t, "https://example.com/users")})
	r.ObserveRequest(&Request{Method: "GET", URL: mustParseURL(t, "https://example.com/other")})

	assert.Empty(t, s.Requests())
	msgs := reporter.Messages()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "POST https://example.com/users")
	assert.Contains(t, msgs[1], "GET https://example.com/other")
}

func TestAssertAllRequested(t *testing.T) {
	r, reporter := newCapturingRegistry()
	called, _ := r.Stub("GET", "https://example.com/a", 200, nil)
	_, _ = r.Stub("GET", "https://example.com/b", 200, nil)
	called.Record(&Request{Method: "GET", URL: mustParseURL(t, "https://example.com/a")})

	assert.False(t, r.AssertAllRequested())
	require.Len(t, reporter.Messages(), 1)
	assert.Contains(t, reporter.Messages()[0], "GET https://example.com/b")
}

func TestRegistryLogging(t *testing.T) {
	mockLog := ldlogtest.NewMockLog()
	mockLog.Loggers.SetMinLevel(ldlog.Debug)
	r := New(Config{Reporter: &CapturingReporter{}, Loggers: &mockLog.Loggers})

	_, err := r.Stub("GET", "https://example.com/a", 200, nil)
	require.NoError(t, err)
	r.ObserveRequest(&Request{Method: "GET", URL: mustParseURL(t, "https://example.com/a"), Header: http.Header{}})
	r.ObserveRequest(&Request{Method: "GET", URL: mustParseURL(t, "https://example.com/b")})

	assert.True(t, mockLog.HasMessageMatch(ldlog.Debug, "Registered stub GET https://example.com/a"))
	assert.True(t, mockLog.HasMessageMatch(ldlog.Debug, "Recorded request for stub GET https://example.com/a"))
	assert.True(t, mockLog.HasMessageMatch(ldlog.Warn, "unexpected request: GET https://example.com/b"))
}

func TestNilReporterLogsFailures(t *testing.T) {
	mockLog := ldlogtest.NewMockLog()
	r := New(Config{Loggers: &mockLog.Loggers})
	r.ObserveRequest(&Request{Method: "GET", URL: mustParseURL(t, "https://example.com/b")})
	assert.True(t, mockLog.HasMessageMatch(ldlog.Error, "unexpected request: GET https://example.com/b"))
}

type fakeT struct {
	errors  []string
	helpers int
}

func (f *fakeT) Errorf(format string, args ...interface{}) {
	f.errors = append(f.errors, format)
	_ = args
}

func (f *fakeT) Helper() { f.helpers++ }

func TestNewForTest(t *testing.T) {
	ft := &fakeT{}
	r := NewForTest(ft)
	s, _ := r.Stub("GET", "https://example.com", 200, nil)
	s.AssertRequestedOnce()
	assert.Len(t, ft.errors, 1)
	assert.Equal(t, 1, ft.helpers)
}
