package rcparsing

import (
	"context"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"
)

func TestApplyTextChangeInvalidatesEditedSpan(t *testing.T) {
	text := utf16.Encode([]rune("aaaa bbbb"))
	opts := defaultOptions()
	barriers, err := NewBarrierList(NewBarrierTokenRegistry(), nil)
	require.NoError(t, err)
	ctx := newParserContext(context.Background(), NewGrammar(), text, barriers, Default, opts)

	el := Succeed(1, 5, 4, ParsedElement{}.IntermediateValue)
	ctx.memo.store(1, 5, 0, el, 0) // caches the "bbbb" match
	other := Succeed(2, 0, 4, ParsedElement{}.IntermediateValue)
	ctx.memo.store(2, 0, 0, other, 0) // caches the "aaaa" match, untouched by the edit

	st := &incrementalState{ctx: ctx, text: text}
	newText := utf16.Encode([]rune("aaaa cccccc"))
	change := TextChange{StartIndex: 5, OldLength: 4, NewLength: 6, ResultingText: newText}

	newSt, err := applyTextChange(st, change, noopBarriers)
	require.NoError(t, err)
	require.Nil(t, newSt.ctx.memo.lookup(1, 5, 0), "the edit's own span must be invalidated")
	require.NotNil(t, newSt.ctx.memo.lookup(2, 0, 0), "an entry entirely before the edit survives untouched")
	require.Equal(t, newText, newSt.text)
}

func TestApplyTextChangeRejectsInvalidChange(t *testing.T) {
	opts := defaultOptions()
	barriers, err := NewBarrierList(NewBarrierTokenRegistry(), nil)
	require.NoError(t, err)
	ctx := newParserContext(context.Background(), NewGrammar(), nil, barriers, Default, opts)
	st := &incrementalState{ctx: ctx, text: nil}

	_, err = applyTextChange(st, TextChange{StartIndex: -1}, noopBarriers)
	require.Error(t, err)
}
