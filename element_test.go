package rcparsing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/romecore/rcparsing/internal/value"
)

func TestFailElementInvariant(t *testing.T) {
	el := Fail(7)
	require.False(t, el.Success)
	require.Equal(t, 7, el.ElementID)
	require.EqualValues(t, -1, el.StartIndex)
	require.Equal(t, 0, el.Length)
}

func TestSucceedSpanAndEnd(t *testing.T) {
	el := Succeed(3, 10, 5, value.OfString("hello"))
	require.True(t, el.Success)
	require.Equal(t, Span{Start: 10, Length: 5}, el.Span())
	require.EqualValues(t, 15, el.End())
}

func TestSucceedNodeCarriesChildren(t *testing.T) {
	a := Succeed(1, 0, 1, value.OfString("a"))
	b := Succeed(2, 1, 1, value.OfString("b"))
	el := SucceedNode(3, 0, 2, value.OfList([]value.Value{a.IntermediateValue, b.IntermediateValue}), []ParsedElement{a, b})
	require.Len(t, el.Children, 2)
	require.Equal(t, a, el.Children[0])
}
