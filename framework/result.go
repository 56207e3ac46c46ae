package framework

import (
	"fmt"
	"strings"

	"github.com/launchdarkly/go-http-stubs/stubs"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// LocatedError is a failure reported by a stub verification, with the location in the
// scenario code it was attributed to.
type LocatedError struct {
	Message  string
	Location stubs.Location
}

func (e LocatedError) Error() string {
	if !e.Location.IsKnown() {
		return e.Message
	}
	return fmt.Sprintf("%s (at %s)", e.Message, e.Location)
}
