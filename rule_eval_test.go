package rcparsing

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildABGrammar compiles a minimal smoke-test grammar: S := 'a' 'b'.
func buildABGrammar(t *testing.T) *Grammar {
	t.Helper()
	g := NewGrammar()
	a := g.Patterns.Literal("a", "a", false)
	b := g.Patterns.Literal("b", "b", false)
	s := g.Rules.Define("S", Seq(TokenRef(a.ID), TokenRef(b.ID)))
	g.SetStartRule(s.ID)
	require.NoError(t, g.Compile())
	return g
}

func TestParseSequenceOfTwoLiterals(t *testing.T) {
	g := buildABGrammar(t)
	p, err := NewParser(g, noopBarriers)
	require.NoError(t, err)

	result, err := p.Parse(context.Background(), "ab")
	require.NoError(t, err)
	require.NotNil(t, result.AST)
	require.Empty(t, result.Errors)
	require.Len(t, result.AST.Children, 2)
	require.EqualValues(t, 0, result.AST.Children[0].StartIndex)
	require.EqualValues(t, 1, result.AST.Children[1].StartIndex)
}

func TestParseFailureRecordsFarthestExpectation(t *testing.T) {
	g := buildABGrammar(t)
	p, err := NewParser(g, noopBarriers)
	require.NoError(t, err)

	result, err := p.Parse(context.Background(), "ac")
	require.NoError(t, err)
	require.Nil(t, result.AST)
	require.NotEmpty(t, result.Errors)
	require.EqualValues(t, 1, result.Errors[0].Position)
}

func TestLeftRecursionCutsToFail(t *testing.T) {
	g := NewGrammar()
	num := g.Patterns.RegexPattern("num", regexp.MustCompile(`\A[0-9]+`))
	plus := g.Patterns.Literal("+", "+", false)

	// expr := expr '+' num | num -- direct left recursion; the memo cache's
	// Pending->Fail seed guard must prevent infinite recursion and still let
	// the num-only alternative succeed.
	expr := g.Rules.Define("expr", nil)
	expr.SetBody(Choice(
		Seq(RuleRef(expr.ID), TokenRef(plus.ID), TokenRef(num.ID)),
		TokenRef(num.ID),
	))
	g.SetStartRule(expr.ID)
	require.NoError(t, g.Compile())

	p, err := NewParser(g, noopBarriers)
	require.NoError(t, err)

	result, err := p.Parse(context.Background(), "42")
	require.NoError(t, err)
	require.NotNil(t, result.AST)
}

func TestOrderedChoiceFirstMatchWins(t *testing.T) {
	g := NewGrammar()
	ab := g.Patterns.Literal("ab", "ab", false)
	a := g.Patterns.Literal("a", "a", false)
	s := g.Rules.Define("S", Choice(TokenRef(ab.ID), TokenRef(a.ID)))
	g.SetStartRule(s.ID)
	require.NoError(t, g.Compile())

	p, err := NewParser(g, noopBarriers)
	require.NoError(t, err)
	result, err := p.Parse(context.Background(), "ab")
	require.NoError(t, err)
	require.NotNil(t, result.AST)
	require.EqualValues(t, 2, result.AST.Length)
}

func noopBarriers(text []uint16) (*BarrierList, error) {
	return NewBarrierList(NewBarrierTokenRegistry(), nil)
}
