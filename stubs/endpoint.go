package stubs

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// endpointURL holds the parsed components of a URL that take part in matching.
type endpointURL struct {
	scheme   string
	user     *url.Userinfo
	host     string
	port     string
	path     string
	fragment string
	query    querySet
}

func parseEndpointURL(rawURL string) (endpointURL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return endpointURL{}, fmt.Errorf("%w: URL is blank", ErrInvalidEndpointURL)
	}
	if i := strings.IndexFunc(rawURL, unicode.IsSpace); i >= 0 {
		return endpointURL{}, fmt.Errorf("%w: %q contains whitespace at offset %d", ErrInvalidEndpointURL, rawURL, i)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return endpointURL{}, fmt.Errorf("%w: %s", ErrInvalidEndpointURL, err)
	}
	return newEndpointURL(u), nil
}

func newEndpointURL(u *url.URL) endpointURL {
	if u == nil {
		return endpointURL{}
	}
	return endpointURL{
		scheme:   u.Scheme,
		user:     u.User,
		host:     u.Hostname(),
		port:     u.Port(),
		path:     endpointPath(u),
		fragment: u.Fragment,
		query:    parseQuery(u.RawQuery),
	}
}

// endpointPath is the path as it appears on the wire, so "/a%2Fb" and "/a/b" differ. For an
// opaque URL such as "localhost:8080/users" the opaque part stands in for the path.
func endpointPath(u *url.URL) string {
	if u.Opaque != "" {
		return u.Opaque
	}
	return u.EscapedPath()
}

// equal compares every component in a fixed order and stops at the first difference. Path
// and fragment must match exactly; query parameters are compared as a multiset.
func (e endpointURL) equal(o endpointURL) bool {
	switch {
	case e.scheme != o.scheme:
		return false
	case !userEqual(e.user, o.user):
		return false
	case e.host != o.host:
		return false
	case e.port != o.port:
		return false
	case e.path != o.path:
		return false
	case e.fragment != o.fragment:
		return false
	}
	return e.query.equal(o.query)
}

func userEqual(a, b *url.Userinfo) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.String() == b.String()
}

// queryPair is one query parameter. "k" and "k=" are different pairs.
type queryPair struct {
	key      string
	value    string
	hasValue bool
}

func (p queryPair) String() string {
	if !p.hasValue {
		return p.key
	}
	return p.key + "=" + p.value
}

// querySet counts each distinct pair, so duplicates are kept and order is ignored.
type querySet map[queryPair]int

func parseQuery(rawQuery string) querySet {
	ret := make(querySet)
	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}
		var p queryPair
		if i := strings.Index(part, "="); i >= 0 {
			p = queryPair{key: unescapeQuery(part[:i]), value: unescapeQuery(part[i+1:]), hasValue: true}
		} else {
			p = queryPair{key: unescapeQuery(part)}
		}
		ret[p]++
	}
	return ret
}

func unescapeQuery(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}

func (q querySet) equal(o querySet) bool {
	if len(q) != len(o) {
		return false
	}
	for p, n := range q {
		if o[p] != n {
			return false
		}
	}
	return true
}
