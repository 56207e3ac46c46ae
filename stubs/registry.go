package stubs

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"unicode"

	"github.com/launchdarkly/go-http-stubs/charset"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Config contains options for New.
type Config struct {
	// Reporter receives verification failures and unexpected requests. If nil, failures are
	// logged at Error level instead.
	Reporter FailureReporter

	// Loggers receives debug output about registrations and recorded requests. If nil,
	// logging is disabled.
	Loggers *ldlog.Loggers

	// FallbackError is the transport error returned for requests that match no stub, and
	// for StubError with a nil error. Defaults to ErrNoStubbedResponse.
	FallbackError error
}

// Registry holds the stubs for one test case. Create a new one for every test; stubs are
// never removed individually.
type Registry struct {
	reporter FailureReporter
	loggers  ldlog.Loggers
	fallback error
	stubs    []*Stub
	lock     sync.Mutex
}

// New creates an empty Registry.
func New(config Config) *Registry {
	r := &Registry{
		reporter: config.Reporter,
		fallback: config.FallbackError,
	}
	if config.Loggers != nil {
		r.loggers = *config.Loggers
	} else {
		r.loggers = ldlog.NewDisabledLoggers()
	}
	if r.fallback == nil {
		r.fallback = ErrNoStubbedResponse
	}
	if r.reporter == nil {
		r.reporter = ReporterFunc(func(message string, loc Location) {
			r.loggers.Errorf("%s (at %s)", message, loc)
		})
	}
	return r
}

// NewForTest creates an empty Registry that reports failures to t.
func NewForTest(t TestingT) *Registry {
	return New(Config{Reporter: TestReporter(t)})
}

// Reporter returns the FailureReporter the registry reports to.
func (r *Registry) Reporter() FailureReporter {
	return r.reporter
}

// Register adds a stub for method and rawURL that answers with resp.
//
// It returns ErrInvalidMethod or ErrInvalidEndpointURL if the method or URL is unusable, and
// ErrEndpointAlreadyStubbed if an existing stub would already match the same requests.
func (r *Registry) Register(method, rawURL string, resp Response) (*Stub, error) {
	if strings.TrimSpace(method) == "" || strings.IndexFunc(method, unicode.IsSpace) >= 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}
	endpoint, err := parseEndpointURL(rawURL)
	if err != nil {
		return nil, err
	}
	s := &Stub{
		owner:    r,
		method:   strings.ToUpper(method),
		rawURL:   rawURL,
		endpoint: endpoint,
		response: resp.clone(),
	}

	r.lock.Lock()
	for _, existing := range r.stubs {
		if existing.matches(s.method, s.endpoint) {
			r.lock.Unlock()
			return nil, fmt.Errorf("%w: %s (already registered as %s)", ErrEndpointAlreadyStubbed, s, existing)
		}
	}
	r.stubs = append(r.stubs, s)
	r.lock.Unlock()

	r.loggers.Debugf("Registered stub %s -> %s", s, resp)
	return s, nil
}

// Stub registers a stub that answers with statusCode and body.
func (r *Registry) Stub(method, rawURL string, statusCode int, body []byte) (*Stub, error) {
	return r.Register(method, rawURL, StatusResponse(statusCode, body))
}

// StubString registers a stub whose body is text encoded with enc (UTF-8 if enc is nil). It
// returns ErrInvalidBody if enc cannot represent the text.
func (r *Registry) StubString(method, rawURL string, statusCode int, body string, enc charset.Encoding) (*Stub, error) {
	enc = charset.OrDefault(enc)
	data, err := enc.Encode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBody, err)
	}
	resp := StatusResponse(statusCode, data)
	resp.Header = http.Header{"Content-Type": {"text/plain; charset=" + enc.Name()}}
	return r.Register(method, rawURL, resp)
}

// StubJSON registers a stub whose body is the JSON representation of value.
func (r *Registry) StubJSON(method, rawURL string, statusCode int, value ldvalue.Value) (*Stub, error) {
	resp := StatusResponse(statusCode, []byte(value.JSONString()))
	resp.Header = http.Header{"Content-Type": {"application/json"}}
	return r.Register(method, rawURL, resp)
}

// StubError registers a stub that fails at the transport level with err. A nil err means the
// registry's fallback error.
func (r *Registry) StubError(method, rawURL string, err error) (*Stub, error) {
	if err == nil {
		err = r.fallback
	}
	return r.Register(method, rawURL, ErrorResponse(err))
}

// Stubs returns the registered stubs in registration order.
func (r *Registry) Stubs() []*Stub {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]*Stub(nil), r.stubs...)
}

// FindMatch returns the first stub that matches method and u, or nil.
func (r *Registry) FindMatch(method string, u *url.URL) *Stub {
	return r.findMatch(method, newEndpointURL(u))
}

func (r *Registry) findMatch(method string, e endpointURL) *Stub {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, s := range r.stubs {
		if s.matches(method, e) {
			return s
		}
	}
	return nil
}

// Resolve returns the canned response for a request about to be sent. If no stub matches,
// it reports an unexpected request and returns the fallback transport error.
func (r *Registry) Resolve(method string, u *url.URL) Response {
	resp, ok := r.lookup(method, u)
	if !ok {
		r.reportUnexpected(callerLocation(), method, u)
	}
	return resp
}

func (r *Registry) lookup(method string, u *url.URL) (Response, bool) {
	if s := r.FindMatch(method, u); s != nil {
		return s.Response(), true
	}
	return ErrorResponse(fmt.Errorf("%w: %s %s", r.fallback, methodOrDefault(method), u)), false
}

// ObserveRequest records a dispatched request against the stub it matches. A request that
// matches no stub is reported as a failure; execution continues either way.
func (r *Registry) ObserveRequest(req *Request) {
	s := r.FindMatch(req.Method, req.URL)
	if s == nil {
		r.reportUnexpected(callerLocation(), req.Method, req.URL)
		return
	}
	r.loggers.Debugf("Recorded request for stub %s: %s", s, req.CurlCommand())
	s.Record(req)
}

// AssertAllRequested reports a failure for every stub that has no recorded requests.
func (r *Registry) AssertAllRequested() bool {
	loc := callerLocation()
	ok := true
	for _, s := range r.Stubs() {
		if len(s.Requests()) == 0 {
			r.report(loc, fmt.Sprintf("expected %s to be requested, but it never was", s))
			ok = false
		}
	}
	return ok
}

func (r *Registry) reportUnexpected(loc Location, method string, u *url.URL) {
	message := fmt.Sprintf("unexpected request: %s %s matches no stub", methodOrDefault(method), u)
	r.loggers.Warn(message)
	r.report(loc, message)
}

func (r *Registry) report(loc Location, message string) {
	r.reporter.Report(message, loc)
}
