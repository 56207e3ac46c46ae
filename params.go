package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/launchdarkly/go-http-stubs/framework"
)

type commandParams struct {
	filters  framework.RegexFilters
	debug    bool
	debugAll bool
	quiet    bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select scenarios to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select scenarios not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed scenarios")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all scenarios")
	fs.BoolVar(&c.quiet, "quiet", false, "only print the summary")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return false
	}
	return true
}
