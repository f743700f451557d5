package rcparsing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBarrierListRejectsOverlap(t *testing.T) {
	reg := NewBarrierTokenRegistry()
	_, err := NewBarrierList(reg, []BarrierToken{
		{StartIndex: 0, Length: 3, TokenAlias: "INDENT"},
		{StartIndex: 2, Length: 1, TokenAlias: "NEWLINE"},
	})
	require.Error(t, err)
}

func TestBarrierCursorTryConsumeAndBlocking(t *testing.T) {
	reg := NewBarrierTokenRegistry()
	indentID := reg.Define("INDENT")
	newlineID := reg.Define("NEWLINE")

	list, err := NewBarrierList(reg, []BarrierToken{
		{StartIndex: 5, Length: 0, TokenAlias: "INDENT"},
		{StartIndex: 10, Length: 1, TokenAlias: "NEWLINE"},
	})
	require.NoError(t, err)

	// Wrong token type at the right position is "blocking", not simply absent.
	_, blocking := list.Blocking(0, newlineID, 5)
	require.True(t, blocking)

	cursor, length, ok := list.TryConsume(0, indentID, 5)
	require.True(t, ok)
	require.Equal(t, 0, length)
	require.Equal(t, BarrierCursor(1), cursor)

	_, _, ok = list.TryConsume(cursor, newlineID, 9)
	require.False(t, ok, "a position before the next barrier must not match")

	cursor2, length2, ok2 := list.TryConsume(cursor, newlineID, 10)
	require.True(t, ok2)
	require.Equal(t, 1, length2)
	require.Equal(t, BarrierCursor(2), cursor2)
}
