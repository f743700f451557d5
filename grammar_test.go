package rcparsing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileRejectsMissingStartRule(t *testing.T) {
	g := NewGrammar()
	require.Error(t, g.Compile())
}

func TestCompileRejectsDanglingTokenRef(t *testing.T) {
	g := NewGrammar()
	s := g.Rules.Define("S", Seq(TokenRef(99)))
	g.SetStartRule(s.ID)
	require.Error(t, g.Compile())
}

func TestCompileRejectsDanglingRuleRef(t *testing.T) {
	g := NewGrammar()
	s := g.Rules.Define("S", Seq(RuleRef(99)))
	g.SetStartRule(s.ID)
	require.Error(t, g.Compile())
}

func TestCompileAcceptsLeftRecursionWithEscape(t *testing.T) {
	g := NewGrammar()
	num := g.Patterns.Literal("num", "1", false)
	plus := g.Patterns.Literal("+", "+", false)
	expr := g.Rules.Define("expr", nil)
	expr.SetBody(Choice(
		Seq(RuleRef(expr.ID), TokenRef(plus.ID), TokenRef(num.ID)),
		TokenRef(num.ID),
	))
	g.SetStartRule(expr.ID)
	require.NoError(t, g.Compile(), "a choice with a non-recursive alternative is a guarded cycle, not an error")
}

func TestCompileRejectsPureLeftRecursionWithNoEscape(t *testing.T) {
	g := NewGrammar()
	plus := g.Patterns.Literal("+", "+", false)
	expr := g.Rules.Define("expr", nil)
	expr.SetBody(Seq(RuleRef(expr.ID), TokenRef(plus.ID)))
	g.SetStartRule(expr.ID)
	require.Error(t, g.Compile(), "every path through the cycle recurses first, so the Pending->Fail guard could never let it succeed")
}

func TestCompileRejectsDanglingRecoveryAnchor(t *testing.T) {
	g := NewGrammar()
	a := g.Patterns.Literal("a", "a", false)
	s := g.Rules.Define("S", Seq(TokenRef(a.ID)))
	s.WithRecovery(ErrorRecovery{Strategy: RecoverySkipUntilAnchor, AnchorRule: 99, StopRule: -1})
	g.SetStartRule(s.ID)
	require.Error(t, g.Compile())
}
