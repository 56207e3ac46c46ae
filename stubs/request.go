package stubs

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/alessio/shellescape"
)

// Request is an outgoing request as it was actually dispatched by the client, captured at
// observation time so that tests can inspect it later.
type Request struct {
	Method string
	URL    *url.URL

	// Header holds the headers exactly as the client stored them. Keys are not
	// canonicalized again.
	Header http.Header

	// Body is nil if the request had no body, and empty if it had a zero-length one, which
	// is how http.NewRequest represents an empty reader (http.NoBody).
	Body []byte

	Time time.Time
}

// NewRequest captures an outgoing *http.Request. The request body, if any, is read in full
// and replaced with an equivalent reader so that the request can still be sent.
func NewRequest(req *http.Request) (*Request, error) {
	body, err := readBody(req)
	if err != nil {
		return nil, err
	}
	if body != nil && req.Body != http.NoBody {
		req.Body = io.NopCloser(bytes.NewReader(body))
	}
	u := *req.URL
	return &Request{
		Method: methodOrDefault(req.Method),
		URL:    &u,
		Header: copyHeader(req.Header),
		Body:   body,
		Time:   time.Now(),
	}, nil
}

func readBody(req *http.Request) ([]byte, error) {
	if req.Body == nil {
		return nil, nil
	}
	if req.Body == http.NoBody {
		return []byte{}, nil
	}
	data, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("error reading request body: %w", err)
	}
	return data, nil
}

func methodOrDefault(method string) string {
	if method == "" {
		return http.MethodGet
	}
	return method
}

func copyHeader(h http.Header) http.Header {
	ret := make(http.Header, len(h))
	for k, vv := range h {
		ret[k] = append([]string(nil), vv...)
	}
	return ret
}

// HasBody returns true if the request was sent with a body, even an empty one.
func (r *Request) HasBody() bool {
	return r.Body != nil
}

func (r *Request) String() string {
	return r.Method + " " + r.URL.String()
}

// CurlCommand renders the request as an equivalent curl command line, with every argument
// shell-escaped. Headers are emitted in sorted order.
func (r *Request) CurlCommand() string {
	var cmd commandBuilder
	cmd.add("curl", "-X", r.Method)
	keys := make([]string, 0, len(r.Header))
	for k := range r.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range r.Header[k] {
			cmd.add("-H", k+": "+v)
		}
	}
	if r.Body != nil {
		cmd.add("--data-binary", string(r.Body))
	}
	cmd.add(r.URL.String())
	return cmd.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
