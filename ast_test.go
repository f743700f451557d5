package rcparsing

import (
	"testing"

	"github.com/romecore/rcparsing/internal/value"
	"github.com/stretchr/testify/require"
)

func TestBuildASTSplicesExcludedWrapper(t *testing.T) {
	leafA := Succeed(1, 0, 1, value.Nil)
	leafB := Succeed(2, 1, 1, value.Nil)
	wrapper := SucceedNode(3, 0, 2, value.Nil, []ParsedElement{leafA, leafB})
	wrapper.ExcludeFromAST = true
	root := SucceedNode(4, 0, 2, value.Nil, []ParsedElement{wrapper})

	ast := BuildAST(root)
	require.NotNil(t, ast)
	require.Equal(t, 4, ast.ElementID)
	require.Len(t, ast.Children, 2, "the excluded wrapper's children are promoted in its place")
	require.Equal(t, 1, ast.Children[0].ElementID)
	require.Equal(t, 2, ast.Children[1].ElementID)
}

func TestBuildASTDropsFailedElements(t *testing.T) {
	ok := Succeed(1, 0, 1, value.Nil)
	failed := Fail(2)
	root := SucceedNode(3, 0, 1, value.Nil, []ParsedElement{ok, failed})

	ast := BuildAST(root)
	require.Len(t, ast.Children, 1)
	require.Equal(t, 1, ast.Children[0].ElementID)
}

func TestCountNodesMatchesIncludedElementCount(t *testing.T) {
	leafA := Succeed(1, 0, 1, value.Nil)
	leafB := Succeed(2, 1, 1, value.Nil)
	root := SucceedNode(3, 0, 2, value.Nil, []ParsedElement{leafA, leafB})

	ast := BuildAST(root)
	require.Equal(t, 3, CountNodes(ast))
}

func TestCountNodesNilTree(t *testing.T) {
	require.Equal(t, 0, CountNodes(nil))
}
