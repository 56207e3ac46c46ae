package framework

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ConsoleTestLogger writes test progress and failures to Output, highlighting failures and
// skips with color when Output is a terminal.
type ConsoleTestLogger struct {
	Output               io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

var (
	failedColor  = color.New(color.FgRed, color.Bold)
	errorColor   = color.New(color.FgRed)
	skippedColor = color.New(color.FgYellow)
)

func (c *ConsoleTestLogger) TestStarted(id TestID) {
	fmt.Fprintf(c.Output, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		errorColor.Fprintf(c.Output, "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	if failed {
		failedColor.Fprintf(c.Output, "  FAILED: %s\n", id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Output, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	if reason == "" {
		skippedColor.Fprintf(c.Output, "  SKIPPED: %s\n", id)
	} else {
		skippedColor.Fprintf(c.Output, "  SKIPPED: %s (%s)\n", id, reason)
	}
}

// PrintResults writes a summary of the run.
func PrintResults(w io.Writer, results Results) {
	if results.OK() {
		fmt.Fprintf(w, "All %d scenarios passed\n", len(results.Tests))
		return
	}
	failedColor.Fprintf(w, "%d of %d scenarios failed:\n", len(results.Failures), len(results.Tests))
	for _, f := range results.Failures {
		fmt.Fprintf(w, "  %s\n", f.TestID)
	}
}
