package rcparsing

import "golang.org/x/exp/slices"

type memoKey struct {
	ruleID   int
	position Position
	cursor   BarrierCursor
}

type slotState int

const (
	slotAbsent slotState = iota
	slotPending
	slotResult
)

// cacheSlot is the memoization cache's value type : either
// Pending (seeded during active evaluation, for the left-recursion cut),
// Result(element, delta), or absent.
type cacheSlot struct {
	state            slotState
	element          ParsedElement
	consumedBarriers int // cursor delta, needed to replay the advance on a hit
}

// memoCache is the (ruleId, position, barrierCursor) -> CacheSlot map that
// makes evaluation packrat-linear. No eviction happens during a single
// parse; the incremental driver invalidates ranges between parses.
type memoCache struct {
	slots map[memoKey]*cacheSlot
}

func newMemoCache() *memoCache {
	return &memoCache{slots: map[memoKey]*cacheSlot{}}
}

// lookup returns the slot for key, or nil if absent.
func (m *memoCache) lookup(ruleID int, pos Position, cursor BarrierCursor) *cacheSlot {
	return m.slots[memoKey{ruleID, pos, cursor}]
}

// seedPending marks key as Pending, the left-recursion guard of : a
// lookup against a Pending slot immediately returns Fail.
func (m *memoCache) seedPending(ruleID int, pos Position, cursor BarrierCursor) {
	m.slots[memoKey{ruleID, pos, cursor}] = &cacheSlot{state: slotPending}
}

// store records a final result, overwriting any Pending seed.
func (m *memoCache) store(ruleID int, pos Position, cursor BarrierCursor, element ParsedElement, consumedBarriers int) {
	m.slots[memoKey{ruleID, pos, cursor}] = &cacheSlot{
		state:            slotResult,
		element:          element,
		consumedBarriers: consumedBarriers,
	}
}

// invalidateRange drops every memoized entry whose span intersects
// [start, start+oldLength) step 2.
func (m *memoCache) invalidateRange(start Position, oldLength int) {
	changed := Span{Start: start, Length: oldLength}
	for k, slot := range m.slots {
		if slot.state != slotResult {
			delete(m.slots, k)
			continue
		}
		span := Span{Start: k.position, Length: slot.element.Length}
		if span.Intersects(changed) || k.position >= changed.Start && k.position < changed.End() {
			delete(m.slots, k)
		}
	}
}

// shiftPositions re-keys every surviving entry at or after boundary by delta:
// entries whose position is >= the change's old end get delta added, entries
// before it are left unchanged.
func (m *memoCache) shiftPositions(boundary Position, delta int) {
	type move struct {
		old, new memoKey
		slot     *cacheSlot
	}
	var moves []move
	for k, slot := range m.slots {
		if k.position >= boundary {
			moves = append(moves, move{old: k, new: memoKey{k.ruleID, k.position + Position(delta), k.cursor}, slot: slot})
		}
	}
	// Sort so that when delta is negative (text shrank), we move
	// lower-positioned keys first and never clobber a not-yet-moved entry
	// at the destination key.
	slices.SortFunc(moves, func(a, b move) int { return int(a.old.position - b.old.position) })
	for _, mv := range moves {
		delete(m.slots, mv.old)
	}
	for _, mv := range moves {
		m.slots[mv.new] = mv.slot
	}
}

// Len reports the number of live entries, for tests and diagnostics.
func (m *memoCache) Len() int { return len(m.slots) }
