package rcparsing

import "fmt"

// incrementalState is the cache the caller threads between ParseIncremental
// calls: the previous context (holding the memo cache and barrier list) plus
// the text it was computed against.
type incrementalState struct {
	ctx  *ParserContext
	text []uint16
}

// applyTextChange runs the shift/invalidate/re-key/recompute-barriers steps
// against st, returning the new context and text the driver should re-parse
// against; re-driving the start rule is left to ParseIncremental.
func applyTextChange(st *incrementalState, change TextChange, barrierProducer BarrierProducer) (*incrementalState, error) {
	if err := change.validate(); err != nil {
		return nil, err
	}

	// Step 1: shift.
	delta := change.Shift()

	// Step 2: invalidate every cache entry intersecting the replaced span.
	st.ctx.memo.invalidateRange(change.StartIndex, change.OldLength)

	// Step 3: re-key surviving entries at or after the edit's old end.
	st.ctx.memo.shiftPositions(change.OldEnd(), delta)

	// Step 4: recompute the barrier list over the whole resulting text. The
	// barrier lexer is whole-text by contract ( step 4), so we simply
	// re-run it; a lexer implementation that detects stability outside the
	// change region internally is free to renumber cheaply, but the
	// driver's contract does not assume that.
	newBarriers, err := barrierProducer(change.ResultingText)
	if err != nil {
		return nil, fmt.Errorf("rcparsing: recomputing barrier list: %w", err)
	}

	newCtx := &ParserContext{
		Text:                change.ResultingText,
		Grammar:             st.ctx.Grammar,
		Barriers:            newBarriers,
		memo:                st.ctx.memo,
		recorder:            NewErrorRecorder(st.ctx.mode),
		mode:                st.ctx.mode,
		goCtx:               st.ctx.goCtx,
		stackDepthLimit:     st.ctx.stackDepthLimit,
		traceWriter:         st.ctx.traceWriter,
		maxRecoveryAttempts: st.ctx.maxRecoveryAttempts,
	}
	return &incrementalState{ctx: newCtx, text: change.ResultingText}, nil
}

// BarrierProducer turns a full text buffer into its barrier list, the
// pluggable seam incremental reparse calls on step 4. lexer.BarrierLexer
// satisfies this signature.
type BarrierProducer func(text []uint16) (*BarrierList, error)
