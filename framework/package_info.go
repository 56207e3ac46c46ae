// Package framework contains a small test runner for stub scenarios that can run outside of
// the Go test runner, for instance when a harness embeds the stub scenarios in its own suite.
//
// The general model is:
//
// 1. Run creates a root Context; Context.Run starts named subtests, which can be selected or
// excluded with RegexFilters.
//
// 2. A Context is similar to Go's *testing.T: it implements require.TestingT for testify
// assertions, and stubs.FailureReporter so that a stubs.Registry can report unexpected
// requests and failed verifications to it.
//
// 3. Results and debug output are passed to a TestLogger as the run progresses.
package framework
