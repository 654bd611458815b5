package framework

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeID(path ...string) TestID { return TestID{Path: path} }

func TestRegexFiltersWithNoPatternsRunEverything(t *testing.T) {
	var f RegexFilters
	assert.True(t, f.AsFilter(makeID("anything", "at all")))
}

func TestRegexFiltersMustMatch(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("auth"))

	assert.True(t, f.AsFilter(makeID("authentication", "valid login")))
	assert.False(t, f.AsFilter(makeID("performance", "submission")))
}

func TestRegexFiltersMustNotMatch(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustNotMatch.Set("performance"))

	assert.True(t, f.AsFilter(makeID("authentication", "valid login")))
	assert.False(t, f.AsFilter(makeID("performance", "submission")))
}

func TestRegexFiltersCombined(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("job"))
	require.NoError(t, f.MustNotMatch.Set("backward"))

	assert.True(t, f.AsFilter(makeID("job lifecycle", "completed job carries a result")))
	assert.False(t, f.AsFilter(makeID("job lifecycle", "status never moves backward")))
	assert.False(t, f.AsFilter(makeID("authentication", "valid login")))
}

func TestAnchoredFullPathPatternKeepsGroupsRunnable(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set(
		"^"+regexp.QuoteMeta("authentication/invalid credentials are rejected")+"$"))

	assert.True(t, f.AsFilter(makeID("authentication")),
		"the enclosing group must run for the subtest to be reachable")
	assert.True(t, f.AsFilter(makeID("authentication", "invalid credentials are rejected")))
	assert.False(t, f.AsFilter(makeID("authentication", "valid login returns a token")))
	assert.False(t, f.AsFilter(makeID("performance")))
}

func TestDeepPatternSelectsExactlyOneSubtest(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("^group/deep test$"))

	var ran []string
	results := Run(f.AsFilter, nil, func(c *Context) {
		c.Run("group", func(c *Context) {
			c.Run("deep test", func(c *Context) { ran = append(ran, c.ID().String()) })
			c.Run("other test", func(c *Context) { ran = append(ran, c.ID().String()) })
		})
		c.Run("unrelated", func(c *Context) { ran = append(ran, c.ID().String()) })
	})

	assert.Equal(t, []string{"group/deep test"}, ran)
	assert.True(t, results.OK())
}

func TestSlashInsideBracketsIsNotAPathSeparator(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("a[/]b"))
	assert.True(t, f.AsFilter(makeID("a/b")))
	assert.False(t, f.AsFilter(makeID("a", "b")))
}

func TestRegexListRejectsInvalidPattern(t *testing.T) {
	var l RegexList
	assert.Error(t, l.Set("(unclosed"))
}

func TestTestIDStringJoinsPath(t *testing.T) {
	assert.Equal(t, "a/b/c", makeID("a", "b", "c").String())
}
