package rcparsing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoCachePendingGuard(t *testing.T) {
	c := newMemoCache()
	c.seedPending(1, 5, 0)
	slot := c.lookup(1, 5, 0)
	require.NotNil(t, slot)
	require.Equal(t, slotPending, slot.state)
}

func TestMemoCacheStoreAndLookup(t *testing.T) {
	c := newMemoCache()
	el := Succeed(1, 5, 3, ParsedElement{}.IntermediateValue)
	c.store(1, 5, 0, el, 2)
	slot := c.lookup(1, 5, 0)
	require.NotNil(t, slot)
	require.Equal(t, slotResult, slot.state)
	require.Equal(t, 2, slot.consumedBarriers)
	require.Equal(t, el, slot.element)
}

func TestMemoCacheInvalidateRange(t *testing.T) {
	c := newMemoCache()
	el := Succeed(1, 5, 3, ParsedElement{}.IntermediateValue)
	c.store(1, 5, 0, el, 0)
	c.store(2, 20, 0, el, 0)

	c.invalidateRange(4, 5) // [4,9) intersects the span [5,8)
	require.Nil(t, c.lookup(1, 5, 0))
	require.NotNil(t, c.lookup(2, 20, 0))
}

func TestMemoCacheShiftPositions(t *testing.T) {
	c := newMemoCache()
	el := Succeed(1, 20, 3, ParsedElement{}.IntermediateValue)
	c.store(1, 20, 0, el, 0)

	c.shiftPositions(10, 5)
	require.Nil(t, c.lookup(1, 20, 0))
	slot := c.lookup(1, 25, 0)
	require.NotNil(t, slot)
}

func TestMemoCacheShiftLeavesEarlierEntriesUnchanged(t *testing.T) {
	c := newMemoCache()
	el := Succeed(1, 2, 1, ParsedElement{}.IntermediateValue)
	c.store(1, 2, 0, el, 0)

	c.shiftPositions(10, 5)
	require.NotNil(t, c.lookup(1, 2, 0))
}
