package rcparsing

import "github.com/romecore/rcparsing/internal/value"

// runRecovery applies rule.Recovery after rule's ordinary body match has
// failed at pos/cursor. On success it returns a synthetic element spanning
// from pos through the recovered point, with a RecoveryTriggered marker
// recorded at its index into the error list. Grounded in participle's own
// recovery.go RecoveryStrategy.Recover contract (ctx, err, parent) ->
// (recovered, values, newErr), generalized from reflect.Value results to
// ParsedElement/value.Value and from an open strategy interface to a closed
// five-case enum.
func (e *ruleEvaluator) runRecovery(ctx *ParserContext, rule *Rule, pos Position, cursor BarrierCursor) (ParsedElement, BarrierCursor, *thrownSignal) {
	rec := rule.Recovery
	if ctx.recoveryAttempts >= ctx.maxRecoveryAttempts {
		return Fail(rule.ID), cursor, nil
	}

	switch rec.Strategy {
	case RecoverySkipUntilAnchor, RecoverySkipUntilAfterAnchor:
		return e.recoverSkipUntilAnchor(ctx, rule, pos, cursor, rec.Strategy == RecoverySkipUntilAfterAnchor)
	case RecoverySkipAndRetry:
		return e.recoverSkipAndRetry(ctx, rule, pos, cursor)
	case RecoveryPanicMode:
		return e.recoverPanicMode(ctx, rule, pos, cursor)
	default:
		return Fail(rule.ID), cursor, nil
	}
}

// recoverSkipUntilAnchor scans forward from pos for the first position at
// which rec.AnchorRule succeeds, provided that happens strictly before the
// first position where rec.StopRule would succeed (at a position where both
// match, the stop rule wins and recovery fails). afterAnchor controls whether
// the recovered span extends through the anchor match (SkipUntilAfterAnchor)
// or stops right at its start (SkipUntilAnchor).
func (e *ruleEvaluator) recoverSkipUntilAnchor(ctx *ParserContext, rule *Rule, pos Position, cursor BarrierCursor, afterAnchor bool) (ParsedElement, BarrierCursor, *thrownSignal) {
	rec := rule.Recovery
	end := Position(len(ctx.Text))
	for scan := pos; scan <= end; scan++ {
		if ctx.Cancelled() {
			return Fail(rule.ID), cursor, nil
		}
		if rec.StopRule >= 0 {
			if stopEl, _, signal := e.probeAt(ctx, rec.StopRule, scan, cursor); signal != nil {
				return Fail(rule.ID), cursor, signal
			} else if stopEl.Success {
				return Fail(rule.ID), cursor, nil
			}
		}
		anchorEl, newCursor, signal := e.probeAt(ctx, rec.AnchorRule, scan, cursor)
		if signal != nil {
			return Fail(rule.ID), cursor, signal
		}
		if anchorEl.Success {
			recoveredEnd := scan
			resumeCursor := cursor
			if afterAnchor {
				recoveredEnd = scan + Position(anchorEl.Length)
				resumeCursor = newCursor
			}
			return e.finishRecovery(ctx, rule, pos, recoveredEnd, resumeCursor)
		}
	}
	return Fail(rule.ID), cursor, nil
}

// recoverSkipAndRetry skips one code unit at a time and re-attempts rule's
// own body, bounded by maxRecoveryAttempts and by rec.StopRule matching.
func (e *ruleEvaluator) recoverSkipAndRetry(ctx *ParserContext, rule *Rule, pos Position, cursor BarrierCursor) (ParsedElement, BarrierCursor, *thrownSignal) {
	rec := rule.Recovery
	end := Position(len(ctx.Text))
	for scan := pos + 1; scan <= end; scan++ {
		if ctx.Cancelled() || ctx.recoveryAttempts >= ctx.maxRecoveryAttempts {
			return Fail(rule.ID), cursor, nil
		}
		ctx.recoveryAttempts++
		if rec.StopRule >= 0 {
			if stopEl, _, signal := e.probeAt(ctx, rec.StopRule, scan, cursor); signal != nil {
				return Fail(rule.ID), cursor, signal
			} else if stopEl.Success {
				return Fail(rule.ID), cursor, nil
			}
		}
		el, newCursor, signal := e.evalExpr(ctx, rule.Body, scan, cursor)
		if signal != nil {
			return Fail(rule.ID), cursor, signal
		}
		if el.Success {
			return e.finishRecovery(ctx, rule, pos, scan+Position(el.Length), newCursor)
		}
	}
	return Fail(rule.ID), cursor, nil
}

// recoverPanicMode scans forward discarding input until any rule in the
// grammar's ambient sync set (the rules named by rec.AnchorRule, treated
// here as the sole sync-set member per grammar construction -- a caller
// wanting a multi-rule sync set wraps them in a Choice and points
// AnchorRule at that wrapper) matches.
func (e *ruleEvaluator) recoverPanicMode(ctx *ParserContext, rule *Rule, pos Position, cursor BarrierCursor) (ParsedElement, BarrierCursor, *thrownSignal) {
	return e.recoverSkipUntilAnchor(ctx, rule, pos, cursor, false)
}

// probeAt runs candidateRuleID at pos in NoRecord mode, so its failures are
// not recorded, the same discipline lookahead evaluation uses. A recovery
// policy on the probed rule (or on rules it calls) still runs, and a
// recovery it performs is recorded as usual.
func (e *ruleEvaluator) probeAt(ctx *ParserContext, candidateRuleID int, pos Position, cursor BarrierCursor) (ParsedElement, BarrierCursor, *thrownSignal) {
	savedMode := ctx.mode
	ctx.mode = NoRecord
	el, newCursor, signal := e.evalRule(ctx, candidateRuleID, pos, cursor)
	ctx.mode = savedMode
	return el, newCursor, signal
}

// finishRecovery builds the synthetic success element spanning
// [from,recoveredEnd) and records the RecoveryTriggered marker through
// RecordRecovery, which keeps the marker's index for RecoveryIndices.
func (e *ruleEvaluator) finishRecovery(ctx *ParserContext, rule *Rule, from, recoveredEnd Position, resumeCursor BarrierCursor) (ParsedElement, BarrierCursor, *thrownSignal) {
	marker := &ParsingError{
		Position:  from,
		Kind:      RecoveryTriggered,
		RuleStack: ctx.RuleStack(),
	}
	ctx.recorder.RecordRecovery(marker)
	el := SucceedNode(rule.ID, from, int(recoveredEnd-from), value.Nil, nil)
	return el, resumeCursor, nil
}
