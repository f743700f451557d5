package rcparsing

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"
)

func TestSpanIntersectsAndContains(t *testing.T) {
	a := Span{Start: 0, Length: 5}
	b := Span{Start: 3, Length: 2}
	c := Span{Start: 5, Length: 1}
	require.True(t, a.Intersects(b))
	require.False(t, a.Intersects(c))
	require.True(t, a.Contains(4))
	require.False(t, a.Contains(5))
}

func TestPositionIndexLineCol(t *testing.T) {
	text := utf16.Encode([]rune("ab\ncd\n"))
	idx := NewPositionIndex(text)
	require.Equal(t, LineCol{Line: 1, Column: 1}, idx.LineCol(0))
	require.Equal(t, LineCol{Line: 1, Column: 3}, idx.LineCol(2))
	require.Equal(t, LineCol{Line: 2, Column: 1}, idx.LineCol(3))
	require.Equal(t, LineCol{Line: 3, Column: 1}, idx.LineCol(6))
}
