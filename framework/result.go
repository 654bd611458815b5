package framework

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Results is the accumulated outcome of a test run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

// TestResult is the outcome of one test or subtest.
type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

// OK returns true if no test failed.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// SkippedCount returns the number of tests that were skipped, either by a
// filter or by the test itself.
func (r Results) SkippedCount() int {
	n := 0
	for _, t := range r.Tests {
		if t.Skipped {
			n++
		}
	}
	return n
}

// TestID identifies a test by the path of Run names leading to it.
type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

var (
	passSummaryColor = color.New(color.FgGreen, color.Bold)
	failSummaryColor = color.New(color.FgRed, color.Bold)
	skipSummaryColor = color.New(color.FgYellow)
)

// PrintResults prints a summary of the test run to standard output.
func PrintResults(results Results) {
	ran := len(results.Tests) - results.SkippedCount()
	if results.OK() {
		passSummaryColor.Printf("All tests passed")
		fmt.Printf(" (%d run", ran)
		if n := results.SkippedCount(); n > 0 {
			fmt.Printf(", %d skipped", n)
		}
		fmt.Println(")")
		return
	}

	failSummaryColor.Printf("FAILED TESTS (%d):\n", len(results.Failures))
	for _, f := range results.Failures {
		fmt.Printf("  * %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Printf("      %s\n", line)
			}
		}
	}
	fmt.Printf("\n%d of %d tests failed", len(results.Failures), ran)
	if n := results.SkippedCount(); n > 0 {
		skipSummaryColor.Printf(" (%d skipped)", n)
	}
	fmt.Println()
}
