package stubs

import (
	"fmt"
	"strings"

	"github.com/launchdarkly/go-http-stubs/charset"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// AssertHeaderEqual reports a failure if req has no header stored under exactly key, or if
// its value differs from value. Multiple values are compared joined with ", ".
func AssertHeaderEqual(r FailureReporter, req *Request, key, value string) bool {
	values, ok := req.Header[key]
	if !ok {
		r.Report(fmt.Sprintf("expected header %q on %s, but it was not present", key, req), callerLocation())
		return false
	}
	actual := strings.Join(values, ", ")
	if actual != value {
		r.Report(fmt.Sprintf("expected header %q on %s to be %q, but it was %q", key, req, value, actual),
			callerLocation())
		return false
	}
	return true
}

// AssertBodyEqual reports a failure if req has no body, if the body cannot be decoded with
// enc (UTF-8 if nil), or if the decoded text differs from expected.
func AssertBodyEqual(r FailureReporter, req *Request, expected string, enc charset.Encoding) bool {
	if !req.HasBody() {
		r.Report(fmt.Sprintf("expected %s to have a body, but it had none", req), callerLocation())
		return false
	}
	enc = charset.OrDefault(enc)
	actual, err := enc.Decode(req.Body)
	if err != nil {
		r.Report(fmt.Sprintf("body of %s could not be decoded as %s: %s", req, enc.Name(), err), callerLocation())
		return false
	}
	if actual != expected {
		r.Report(fmt.Sprintf("expected body of %s to be %q, but it was %q", req, expected, actual), callerLocation())
		return false
	}
	return true
}

// AssertJSONBodyEqual reports a failure if req has no body, if the body is not valid JSON, or
// if it is not semantically equal to expected. Property order and whitespace are ignored.
func AssertJSONBodyEqual(r FailureReporter, req *Request, expected ldvalue.Value) bool {
	if !req.HasBody() {
		r.Report(fmt.Sprintf("expected %s to have a JSON body, but it had none", req), callerLocation())
		return false
	}
	var actual ldvalue.Value
	if err := actual.UnmarshalJSON(req.Body); err != nil {
		r.Report(fmt.Sprintf("body of %s is not valid JSON: %s", req, err), callerLocation())
		return false
	}
	if !actual.Equal(expected) {
		r.Report(fmt.Sprintf("expected JSON body of %s to be %s, but it was %s", req, expected.JSONString(), actual.JSONString()),
			callerLocation())
		return false
	}
	return true
}
