package rcparsing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextChangeShiftAndOldEnd(t *testing.T) {
	c := TextChange{StartIndex: 5, OldLength: 2, NewLength: 4, ResultingText: make([]uint16, 20)}
	require.Equal(t, 2, c.Shift())
	require.EqualValues(t, 7, c.OldEnd())
}

func TestTextChangeValidateRejectsNegativeFields(t *testing.T) {
	c := TextChange{StartIndex: -1, OldLength: 0, NewLength: 0, ResultingText: nil}
	require.Error(t, c.validate())
}

func TestTextChangeValidateRejectsShortResultingText(t *testing.T) {
	c := TextChange{StartIndex: 0, OldLength: 0, NewLength: 5, ResultingText: make([]uint16, 3)}
	require.Error(t, c.validate())
}

func TestTextChangeValidateAcceptsExactFit(t *testing.T) {
	c := TextChange{StartIndex: 2, OldLength: 1, NewLength: 3, ResultingText: make([]uint16, 5)}
	require.NoError(t, c.validate())
}
