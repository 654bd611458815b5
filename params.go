package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/esg-insight/qa-contract-tests/framework"
)

type commandParams struct {
	serviceURL string
	aimlURL    string
	configPath string
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.serviceURL, "url", "", "base URL of the QA service (overrides config)")
	fs.StringVar(&c.aimlURL, "aiml-url", "", "base URL of the answer service (overrides config)")
	fs.StringVar(&c.configPath, "config", "", "path to a YAML config file")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunPattern turns a failed test's path into an anchored -run pattern that
// selects exactly that test.
func rerunPattern(id framework.TestID) string {
	return "^" + regexp.QuoteMeta(id.String()) + "$"
}

// printRerunHint prints a command line that reruns exactly the tests that
// failed, by turning each failed test's path into an anchored -run pattern.
func printRerunHint(params commandParams, results framework.Results) {
	var b commandBuilder
	b.add(os.Args[0])
	if params.serviceURL != "" {
		b.add("-url", params.serviceURL)
	}
	if params.aimlURL != "" {
		b.add("-aiml-url", params.aimlURL)
	}
	if params.configPath != "" {
		b.add("-config", params.configPath)
	}
	b.add("-debug")
	for _, f := range results.Failures {
		b.add("-run", rerunPattern(f.TestID))
	}
	fmt.Printf("\nTo rerun only the failed tests:\n  %s\n", b)
}
