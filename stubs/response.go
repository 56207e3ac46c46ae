package stubs

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// Response is the canned response of a stub: either an HTTP status with a body, or a
// simulated transport-level error (Err is non-nil).
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Err        error
}

// StatusResponse returns a successful canned response with the given status code and body.
func StatusResponse(statusCode int, body []byte) Response {
	return Response{StatusCode: statusCode, Body: body}
}

// ErrorResponse returns a canned response that fails at the transport level with err.
func ErrorResponse(err error) Response {
	return Response{Err: err}
}

// IsError returns true if the response simulates a transport error.
func (r Response) IsError() bool {
	return r.Err != nil
}

func (r Response) String() string {
	if r.Err != nil {
		return "error: " + r.Err.Error()
	}
	return fmt.Sprintf("%d (%d bytes)", r.StatusCode, len(r.Body))
}

func (r Response) clone() Response {
	ret := r
	if r.Header != nil {
		ret.Header = r.Header.Clone()
	}
	if r.Body != nil {
		ret.Body = append([]byte(nil), r.Body...)
	}
	return ret
}

func (r Response) httpResponse(req *http.Request) *http.Response {
	header := make(http.Header)
	for k, vv := range r.Header {
		header[k] = append([]string(nil), vv...)
	}
	if header.Get("Content-Length") == "" {
		header.Set("Content-Length", strconv.Itoa(len(r.Body)))
	}
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", r.StatusCode, http.StatusText(r.StatusCode)),
		StatusCode:    r.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(append([]byte(nil), r.Body...))),
		ContentLength: int64(len(r.Body)),
		Request:       req,
	}
}
