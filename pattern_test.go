package rcparsing

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPatternRegistryAssignsStableIDs(t *testing.T) {
	r := NewPatternRegistry()
	a := r.Literal("a", "a", false)
	b := r.Literal("b", "b", false)
	require.Equal(t, 0, a.ID)
	require.Equal(t, 1, b.ID)
	require.Same(t, a, r.ByID(0))

	found, ok := r.ByAlias("b")
	require.True(t, ok)
	require.Same(t, b, found)
}

func TestCharClassContains(t *testing.T) {
	c := &CharClass{Ranges: [][2]uint16{{'a', 'z'}, {'0', '9'}}}
	require.True(t, c.Contains('m'))
	require.True(t, c.Contains('5'))
	require.False(t, c.Contains('_'))
}

func TestRegexPatternRequiresItsOwnAnchor(t *testing.T) {
	r := NewPatternRegistry()
	p := r.RegexPattern("num", regexp.MustCompile(`\A[0-9]+`))
	require.Equal(t, PatternRegex, p.Kind)
	require.True(t, p.Regex.MatchString("42"))
}
