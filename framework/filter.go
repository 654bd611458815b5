package framework

import (
	"fmt"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters holds the -run and -skip patterns from the command line.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

// AsFilter is the Filter implementation for the combined patterns. A -run
// pattern is split on "/" and matched element by element against the test
// path, the way "go test -run" does it, so a pattern naming a subtest still
// lets the harness descend through the enclosing groups. A -skip pattern
// matches against the full slash-joined name.
func (r RegexFilters) AsFilter(id TestID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatchPath(id.Path)) &&
		!r.MustNotMatch.AnyMatch(id.String())
}

type regexPattern struct {
	full     *regexp.Regexp
	elements []*regexp.Regexp
}

func (p regexPattern) matchPath(path []string) bool {
	n := len(p.elements)
	if len(path) < n {
		n = len(path)
	}
	for i := 0; i < n; i++ {
		if !p.elements[i].MatchString(path[i]) {
			return false
		}
	}
	return true
}

// RegexList is a list of regular expressions that can be appended to with
// repeated command-line flags; it implements flag.Value.
type RegexList struct {
	patterns []regexPattern
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.full.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser.
func (r *RegexList) Set(value string) error {
	full, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	p := regexPattern{full: full}
	for _, part := range splitPathPattern(value) {
		rx, err := regexp.Compile(part)
		if err != nil {
			// A "/" inside some construct the splitter does not understand;
			// fall back to matching the whole pattern as one element.
			p.elements = []*regexp.Regexp{full}
			break
		}
		p.elements = append(p.elements, rx)
	}
	r.patterns = append(r.patterns, p)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

// AnyMatch reports whether any pattern matches the full slash-joined name.
func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.full.MatchString(s) {
			return true
		}
	}
	return false
}

// AnyMatchPath reports whether any pattern matches the test path element by
// element. A path with fewer elements than the pattern matches if the
// elements it does have match, so that a group still runs when a subtest
// under it could match the rest of the pattern.
func (r RegexList) AnyMatchPath(path []string) bool {
	for _, p := range r.patterns {
		if p.matchPath(path) {
			return true
		}
	}
	return false
}

// splitPathPattern splits a -run pattern on the "/" separators between test
// path elements, leaving alone any "/" inside brackets, groups, or escapes.
func splitPathPattern(s string) []string {
	var parts []string
	var parens, brackets int
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[':
			brackets++
		case ']':
			if brackets > 0 {
				brackets--
			}
		case '(':
			if brackets == 0 {
				parens++
			}
		case ')':
			if brackets == 0 && parens > 0 {
				parens--
			}
		case '/':
			if brackets == 0 && parens == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// PrintFilterDescription explains on standard output which tests will be
// skipped because of the filter criteria for this run.
func PrintFilterDescription(filters RegexFilters) {
	if !filters.MustMatch.IsDefined() && !filters.MustNotMatch.IsDefined() {
		return
	}
	fmt.Println("Some tests will be skipped based on the filter criteria for this test run:")
	if filters.MustMatch.IsDefined() {
		fmt.Printf("  skip any not matching %s\n", filters.MustMatch)
	}
	if filters.MustNotMatch.IsDefined() {
		fmt.Printf("  skip any matching %s\n", filters.MustNotMatch)
	}
	fmt.Println()
}
