package stubs

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// Stub is one registered expectation: a method and URL, the canned response to return for
// matching requests, and the requests that have been recorded against it.
//
// The canned response never changes after registration. Recorded requests are only ever
// appended, in the order they were observed.
type Stub struct {
	owner    *Registry
	method   string
	rawURL   string
	endpoint endpointURL
	response Response
	requests []*Request
	lock     sync.Mutex
}

// Method returns the stubbed HTTP method, upper-cased.
func (s *Stub) Method() string { return s.method }

// URL returns the URL string the stub was registered with.
func (s *Stub) URL() string { return s.rawURL }

// Response returns a copy of the canned response.
func (s *Stub) Response() Response { return s.response.clone() }

func (s *Stub) String() string {
	return s.method + " " + s.rawURL
}

// Matches returns true if a request with this method and URL would be answered by the stub.
func (s *Stub) Matches(method string, u *url.URL) bool {
	return s.matches(method, newEndpointURL(u))
}

func (s *Stub) matches(method string, e endpointURL) bool {
	return strings.EqualFold(s.method, method) && s.endpoint.equal(e)
}

// Record appends a request to the stub's recorded requests.
func (s *Stub) Record(req *Request) {
	s.lock.Lock()
	s.requests = append(s.requests, req)
	s.lock.Unlock()
}

// Requests returns the recorded requests in arrival order.
func (s *Stub) Requests() []*Request {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]*Request(nil), s.requests...)
}

// AssertRequestedOnce reports a failure unless exactly one request was recorded. If it was,
// each inspector is called with that request.
func (s *Stub) AssertRequestedOnce(inspect ...func(*Request)) bool {
	requests := s.Requests()
	if len(requests) != 1 {
		s.fail(callerLocation(), s.countMessage(1, requests))
		return false
	}
	for _, fn := range inspect {
		fn(requests[0])
	}
	return true
}

// AssertRequestedCount reports a failure unless exactly n requests were recorded. The
// inspectors are called with all recorded requests whether or not the count matched.
func (s *Stub) AssertRequestedCount(n int, inspect ...func([]*Request)) bool {
	requests := s.Requests()
	ok := len(requests) == n
	if !ok {
		s.fail(callerLocation(), s.countMessage(n, requests))
	}
	for _, fn := range inspect {
		fn(requests)
	}
	return ok
}

// AssertNotRequested reports a failure if any request was recorded.
func (s *Stub) AssertNotRequested() bool {
	requests := s.Requests()
	if len(requests) != 0 {
		s.fail(callerLocation(), s.countMessage(0, requests))
		return false
	}
	return true
}

func (s *Stub) countMessage(expected int, requests []*Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "expected %s to be requested %s, but it was requested %s",
		s, times(expected), times(len(requests)))
	for i, r := range requests {
		fmt.Fprintf(&b, "\n  request %d: %s", i+1, r.CurlCommand())
	}
	return b.String()
}

func times(n int) string {
	switch n {
	case 0:
		return "0 times"
	case 1:
		return "once"
	default:
		return fmt.Sprintf("%d times", n)
	}
}

func (s *Stub) fail(loc Location, message string) {
	s.owner.report(loc, message)
}
