package framework

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/launchdarkly/go-http-stubs/stubs"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is similar to Go's *testing.T, for running stub scenarios outside of the Go test
// runner. It implements require.TestingT and stubs.FailureReporter, so both testify assertions
// and stub verifications can fail it.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	cleanups    []func()
}

func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if c.skipped {
				c.runCleanups()
				return
			}
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.addError(addError)
			}
		}
		c.runCleanups()
		result := TestResult{TestID: c.id, Errors: c.errors}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

func (c *Context) runCleanups() {
	for i := len(c.cleanups) - 1; i >= 0; i-- {
		c.cleanups[i]()
	}
	c.cleanups = nil
}

func (c *Context) ID() TestID {
	return c.id
}

func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

func (c *Context) addError(err error) {
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	c.addError(fmt.Errorf(format, args...))
}

// Report records a stub verification failure, keeping the location it was attributed to.
func (c *Context) Report(message string, loc stubs.Location) {
	c.failed = true
	c.addError(LocatedError{Message: message, Location: loc})
}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Failed() bool {
	return c.failed
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Defer schedules a function to run when the test finishes, in reverse order of scheduling.
func (c *Context) Defer(fn func()) {
	c.cleanups = append(c.cleanups, fn)
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

// DebugLoggers returns ldlog loggers, enabled at Debug level, whose output is captured with
// the rest of this test's debug output.
func (c *Context) DebugLoggers() ldlog.Loggers {
	loggers := ldlog.Loggers{}
	loggers.SetBaseLogger(&c.debugLogger)
	loggers.SetMinLevel(ldlog.Debug)
	return loggers
}

var _ stubs.FailureReporter = (*Context)(nil)
