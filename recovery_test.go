package rcparsing

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecoverySkipUntilAfterAnchorResyncsOnSemicolon(t *testing.T) {
	g := NewGrammar()
	digits := g.Patterns.RegexPattern("digits", regexp.MustCompile(`\A[0-9]+`))
	semi := g.Rules.Define("semi", Seq(TokenRef(g.Patterns.Literal(";", ";", false).ID)))
	item := g.Rules.Define("item", Seq(TokenRef(digits.ID)))
	item.WithRecovery(ErrorRecovery{Strategy: RecoverySkipUntilAfterAnchor, AnchorRule: semi.ID, StopRule: -1})
	g.SetStartRule(item.ID)
	require.NoError(t, g.Compile())

	p, err := NewParser(g, noopBarriers)
	require.NoError(t, err)

	result, err := p.Parse(context.Background(), "x;5")
	require.NoError(t, err)
	require.NotNil(t, result.AST, "recovery synthesizes a success spanning up through the anchor")
	require.EqualValues(t, 0, result.AST.StartIndex)
	require.EqualValues(t, 2, result.AST.End())
	require.NotEmpty(t, result.RecoveryIndices)
	require.True(t, result.Errors[result.RecoveryIndices[0]].Recovered)
	require.Equal(t, RecoveryTriggered, result.Errors[result.RecoveryIndices[0]].Kind)
}

func TestRecoverySkipUntilAnchorStopsBeforeAnchor(t *testing.T) {
	g := NewGrammar()
	digits := g.Patterns.RegexPattern("digits", regexp.MustCompile(`\A[0-9]+`))
	semi := g.Rules.Define("semi", Seq(TokenRef(g.Patterns.Literal(";", ";", false).ID)))
	item := g.Rules.Define("item", Seq(TokenRef(digits.ID)))
	item.WithRecovery(ErrorRecovery{Strategy: RecoverySkipUntilAnchor, AnchorRule: semi.ID, StopRule: -1})
	g.SetStartRule(item.ID)
	require.NoError(t, g.Compile())

	p, err := NewParser(g, noopBarriers)
	require.NoError(t, err)

	result, err := p.Parse(context.Background(), "xy;5")
	require.NoError(t, err)
	require.NotNil(t, result.AST)
	require.EqualValues(t, 0, result.AST.StartIndex)
	require.EqualValues(t, 2, result.AST.End(), "SkipUntilAnchor stops right at the anchor's start, not past it")
}

func TestRecoverySkipAndRetryAdvancesOneUnitAtATime(t *testing.T) {
	g := NewGrammar()
	digits := g.Patterns.RegexPattern("digits", regexp.MustCompile(`\A[0-9]+`))
	item := g.Rules.Define("item", Seq(TokenRef(digits.ID)))
	item.WithRecovery(ErrorRecovery{Strategy: RecoverySkipAndRetry, AnchorRule: -1, StopRule: -1})
	g.SetStartRule(item.ID)
	require.NoError(t, g.Compile())

	p, err := NewParser(g, noopBarriers)
	require.NoError(t, err)

	result, err := p.Parse(context.Background(), "x5")
	require.NoError(t, err)
	require.NotNil(t, result.AST)
	require.EqualValues(t, 0, result.AST.StartIndex)
	require.EqualValues(t, 2, result.AST.End())
}

func TestRecoveryGivesUpWhenAnchorNeverMatches(t *testing.T) {
	g := NewGrammar()
	digits := g.Patterns.RegexPattern("digits", regexp.MustCompile(`\A[0-9]+`))
	semi := g.Rules.Define("semi", Seq(TokenRef(g.Patterns.Literal(";", ";", false).ID)))
	item := g.Rules.Define("item", Seq(TokenRef(digits.ID)))
	item.WithRecovery(ErrorRecovery{Strategy: RecoverySkipUntilAfterAnchor, AnchorRule: semi.ID, StopRule: -1})
	g.SetStartRule(item.ID)
	require.NoError(t, g.Compile())

	p, err := NewParser(g, noopBarriers)
	require.NoError(t, err)

	result, err := p.Parse(context.Background(), "xyz")
	require.NoError(t, err)
	require.Nil(t, result.AST)
}
