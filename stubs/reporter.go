package stubs

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"sync"
)

// Location identifies the place in test code that a failure is attributed to.
type Location struct {
	File     string
	Line     int
	Function string
}

// IsKnown returns true if the location could be determined.
func (l Location) IsKnown() bool {
	return l.File != ""
}

func (l Location) String() string {
	if !l.IsKnown() {
		return "unknown location"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(l.File), l.Line)
}

// FailureReporter receives verification failures. Reporting a failure never stops the test,
// so several assertions in one test can each report independently.
type FailureReporter interface {
	Report(message string, loc Location)
}

// ReporterFunc adapts a function to FailureReporter.
type ReporterFunc func(message string, loc Location)

func (f ReporterFunc) Report(message string, loc Location) {
	f(message, loc)
}

// TestingT is the subset of *testing.T used to report failures. framework.Context and the
// T types built on it satisfy it too.
type TestingT interface {
	Errorf(format string, args ...interface{})
}

type tHelper interface {
	Helper()
}

// TestReporter returns a FailureReporter that calls t.Errorf for every failure.
func TestReporter(t TestingT) FailureReporter {
	return testingReporter{t: t}
}

type testingReporter struct {
	t TestingT
}

func (r testingReporter) Report(message string, loc Location) {
	if h, ok := r.t.(tHelper); ok {
		h.Helper()
	}
	if loc.IsKnown() {
		r.t.Errorf("%s\n\tat %s", message, loc)
		return
	}
	r.t.Errorf("%s", message)
}

// Failure is one failure captured by a CapturingReporter.
type Failure struct {
	Message  string
	Location Location
}

// CapturingReporter records failures instead of failing a test. It is used when the
// assertions themselves are under test.
type CapturingReporter struct {
	failures []Failure
	lock     sync.Mutex
}

func (c *CapturingReporter) Report(message string, loc Location) {
	c.lock.Lock()
	c.failures = append(c.failures, Failure{Message: message, Location: loc})
	c.lock.Unlock()
}

// Failures returns a copy of the failures reported so far.
func (c *CapturingReporter) Failures() []Failure {
	c.lock.Lock()
	ret := append([]Failure(nil), c.failures...)
	c.lock.Unlock()
	return ret
}

// Messages returns the messages of the failures reported so far.
func (c *CapturingReporter) Messages() []string {
	var ret []string
	for _, f := range c.Failures() {
		ret = append(ret, f.Message)
	}
	return ret
}

// Reset discards captured failures.
func (c *CapturingReporter) Reset() {
	c.lock.Lock()
	c.failures = nil
	c.lock.Unlock()
}

var packagePrefix = reflect.TypeOf(Registry{}).PkgPath() + "."

const maxCallerDepth = 64

// callerLocation finds the frame a failure should be attributed to: the innermost frame in
// a _test.go file, or else the innermost frame outside this package and net/http.
func callerLocation() Location {
	pcs := make([]uintptr, maxCallerDepth)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	var fallback Location
	for {
		frame, more := frames.Next()
		if strings.HasSuffix(frame.File, "_test.go") {
			return Location{File: frame.File, Line: frame.Line, Function: frame.Function}
		}
		if !fallback.IsKnown() && frame.File != "" && !isInternalFrame(frame.Function) {
			fallback = Location{File: frame.File, Line: frame.Line, Function: frame.Function}
		}
		if !more {
			break
		}
	}
	return fallback
}

func isInternalFrame(function string) bool {
	return strings.HasPrefix(function, packagePrefix) ||
		strings.HasPrefix(function, "net/http.") ||
		strings.HasPrefix(function, "runtime.")
}
