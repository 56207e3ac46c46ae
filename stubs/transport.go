package stubs

import (
	"fmt"
	"net/http"
	"time"
)

// Transport is an http.RoundTripper that never touches the network. For each request it asks
// its router for the Endpoint, hands the concrete outgoing request to the registry's
// observation hook, and returns the endpoint's canned response.
//
// A request that matches no stub is reported once, by the observation hook, and fails with
// the registry's fallback error.
type Transport struct {
	router *stubRouter
}

// Transport returns a Transport for the registry, layered on top of original (DefaultRouter
// if nil).
func (r *Registry) Transport(original Router) *Transport {
	return &Transport{router: &stubRouter{owner: r, original: routerOrDefault(original)}}
}

// Client returns an *http.Client that uses a Transport with the default router.
func (r *Registry) Client() *http.Client {
	return &http.Client{Transport: r.Transport(nil)}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ep := t.router.Route(req)
	body, err := readBody(req)
	if err != nil {
		return nil, err
	}
	if ep.URL == nil {
		return nil, fmt.Errorf("router returned no URL for %s %s", req.Method, req.URL)
	}
	outgoing := &Request{
		Method: methodOrDefault(ep.Method),
		URL:    ep.URL,
		Header: copyHeader(ep.Header),
		Body:   body,
		Time:   time.Now(),
	}
	t.router.owner.ObserveRequest(outgoing)

	if ep.Response.Err != nil {
		return nil, ep.Response.Err
	}
	return ep.Response.httpResponse(req), nil
}

var _ http.RoundTripper = (*Transport)(nil)
