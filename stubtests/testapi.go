package stubtests

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/launchdarkly/go-http-stubs/framework"
	"github.com/launchdarkly/go-http-stubs/stubs"

	"github.com/stretchr/testify/require"
)

// T represents a scenario or group of scenarios in the stub test suite.
//
// It implements the same basic functionality as Go's testing.T, so the assert and require
// packages accept it. Every T also owns an empty stubs.Registry, whose debug output is
// captured with the rest of the scenario's debug output.
type T struct {
	context  *framework.Context
	reporter *stubs.CapturingReporter
	registry *stubs.Registry
}

func newTestScope(c *framework.Context) *T {
	loggers := c.DebugLoggers()
	t := &T{
		context:  c,
		reporter: &stubs.CapturingReporter{},
	}
	t.registry = stubs.New(stubs.Config{Reporter: t.reporter, Loggers: &loggers})
	c.Defer(t.close)
	return t
}

// close fails the scenario for every verification failure nobody claimed.
func (t *T) close() {
	for _, f := range t.reporter.Failures() {
		t.context.Report(f.Message, f.Location)
	}
	t.reporter.Reset()
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest, with its own registry.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Stubs returns this scenario's registry.
func (t *T) Stubs() *stubs.Registry {
	return t.registry
}

// Reporter returns the reporter this scenario's registry reports to, for passing to the
// request assertion helpers.
func (t *T) Reporter() stubs.FailureReporter {
	return t.reporter
}

// Client returns an HTTP client whose transport is this scenario's registry.
func (t *T) Client() *http.Client {
	return t.registry.Client()
}

// RequireStub registers a stub with a plain body, failing the scenario immediately if
// registration fails.
func (t *T) RequireStub(method, rawURL string, statusCode int, body string) *stubs.Stub {
	s, err := t.registry.Stub(method, rawURL, statusCode, []byte(body))
	require.NoError(t, err)
	return s
}

// ExpectFailures claims the verification failures reported so far. There must be exactly one
// failure per substring, each containing its substring, in order.
func (t *T) ExpectFailures(substrings ...string) {
	messages := t.reporter.Messages()
	t.reporter.Reset()
	if len(messages) != len(substrings) {
		t.Errorf("expected %d verification failure(s), got %d:%s", len(substrings), len(messages), bulleted(messages))
		return
	}
	for i, m := range messages {
		if !strings.Contains(m, substrings[i]) {
			t.Errorf("expected verification failure %d to contain %q, but it was %q", i+1, substrings[i], m)
		}
	}
}

// ExpectNoFailures asserts that nothing has been reported so far.
func (t *T) ExpectNoFailures() {
	t.ExpectFailures()
}

func bulleted(lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		fmt.Fprintf(&b, "\n  - %s", line)
	}
	return b.String()
}
