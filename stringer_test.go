package rcparsing

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestStringifyRuleRendersEBNFShape(t *testing.T) {
	g := buildABGrammar(t)
	require.Equal(t, "a b", StringifyRule(g.Rules, g.Patterns, g.StartRule))
}

func TestDumpRuleProducesStructuralDump(t *testing.T) {
	g := buildABGrammar(t)
	dump := DumpRule(g.Rules, g.StartRule)
	require.True(t, strings.Contains(dump, "RuleExpr"))
}

// astShape strips IntermediateValue down to a comparable scalar summary, so
// go-cmp can diff tree structure without needing an Exporter for the
// internal/value.Value tagged union's unexported fields -- the same
// structural-diff role participle's own parser_test.go uses go-cmp for
// against its bound struct trees.
type astShape struct {
	ElementID int
	Start     Position
	Length    int
	Children  []astShape
}

func shapeOf(n *ASTNode) astShape {
	if n == nil {
		return astShape{}
	}
	s := astShape{ElementID: n.ElementID, Start: n.StartIndex, Length: n.Length}
	for _, c := range n.Children {
		s.Children = append(s.Children, shapeOf(c))
	}
	return s
}

func TestParseSequenceASTShapeMatchesExpected(t *testing.T) {
	g := buildABGrammar(t)
	p, err := NewParser(g, noopBarriers)
	require.NoError(t, err)

	result, err := p.Parse(context.Background(), "ab")
	require.NoError(t, err)
	require.NotNil(t, result.AST)

	want := astShape{
		ElementID: g.StartRule,
		Start:     0,
		Length:    2,
		Children: []astShape{
			{ElementID: 0, Start: 0, Length: 1},
			{ElementID: 1, Start: 1, Length: 1},
		},
	}
	if diff := cmp.Diff(want, shapeOf(result.AST)); diff != "" {
		t.Fatalf("AST shape mismatch (-want +got):\n%s", diff)
	}
}
