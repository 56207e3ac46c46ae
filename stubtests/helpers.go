package stubtests

import (
	"io"
	"net/http"
	"net/url"

	"github.com/stretchr/testify/require"
)

func mustParseURL(t *T, rawURL string) *url.URL {
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u
}

func requireGet(t *T, rawURL string) (*http.Response, []byte) {
	resp, err := t.Client().Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}
