package stubs

import (
	"net/http"
	"net/url"
)

// Endpoint is the resolved target of an outgoing request: where it goes, how, and the
// response the client should return instead of performing network I/O.
type Endpoint struct {
	Method   string
	URL      *url.URL
	Header   http.Header
	Response Response
}

// Router is the routing hook. Before a request is dispatched, the client asks the router for
// the Endpoint it should use.
type Router interface {
	Route(req *http.Request) Endpoint
}

// RouterFunc adapts a function to Router.
type RouterFunc func(req *http.Request) Endpoint

func (f RouterFunc) Route(req *http.Request) Endpoint {
	return f(req)
}

// DefaultRouter passes the request's method, URL and headers through unchanged, with an empty
// response.
var DefaultRouter Router = RouterFunc(defaultRoute)

func defaultRoute(req *http.Request) Endpoint {
	u := *req.URL
	return Endpoint{
		Method: methodOrDefault(req.Method),
		URL:    &u,
		Header: copyHeader(req.Header),
	}
}

// Router returns a routing hook layered on top of original (DefaultRouter if nil). The
// original router runs first; only the Response of its Endpoint is replaced, with the canned
// response of the matching stub. An unmatched endpoint gets the fallback transport error and
// is reported as an unexpected request.
func (r *Registry) Router(original Router) Router {
	return &stubRouter{owner: r, original: routerOrDefault(original), reportUnmatched: true}
}

func routerOrDefault(router Router) Router {
	if router == nil {
		return DefaultRouter
	}
	return router
}

type stubRouter struct {
	owner           *Registry
	original        Router
	reportUnmatched bool
}

func (s *stubRouter) Route(req *http.Request) Endpoint {
	ep := s.original.Route(req)
	ep.Method = methodOrDefault(ep.Method)
	resp, ok := s.owner.lookup(ep.Method, ep.URL)
	if !ok && s.reportUnmatched {
		s.owner.reportUnexpected(callerLocation(), ep.Method, ep.URL)
	}
	ep.Response = resp
	return ep
}
