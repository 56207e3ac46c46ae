package main

import (
	"fmt"
	"os"

	"github.com/launchdarkly/go-http-stubs/framework"
	"github.com/launchdarkly/go-http-stubs/stubtests"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	framework.DescribeFilters(os.Stdout, params.filters)

	fmt.Println("Running stub scenarios")

	var testLogger framework.TestLogger = &framework.ConsoleTestLogger{
		Output:               os.Stdout,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	if params.quiet {
		testLogger = nil
	}

	results := stubtests.RunTestSuite(params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		os.Exit(1)
	}
}
