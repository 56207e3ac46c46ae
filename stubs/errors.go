package stubs

import "errors"

var (
	// ErrEndpointAlreadyStubbed is returned by registration when an existing stub would match
	// the same requests as the new one.
	ErrEndpointAlreadyStubbed = errors.New("endpoint already stubbed")

	// ErrInvalidEndpointURL is returned by registration when the URL is blank or cannot be
	// parsed.
	ErrInvalidEndpointURL = errors.New("invalid endpoint URL")

	// ErrInvalidMethod is returned by registration when the HTTP method is blank or is not a
	// single token.
	ErrInvalidMethod = errors.New("invalid HTTP method")

	// ErrInvalidBody is returned by text-body registration when the text cannot be encoded
	// with the requested character encoding.
	ErrInvalidBody = errors.New("invalid stub body")

	// ErrNoStubbedResponse is the default transport error returned for a request that no stub
	// matches.
	ErrNoStubbedResponse = errors.New("no stubbed response for request")
)
