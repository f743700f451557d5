package rcparsing

import (
	"github.com/romecore/rcparsing/internal/value"
)

// ruleEvaluator drives memoized recursive-descent evaluation of the rule
// algebra (sequence, choice, repeat, optional, lookahead, token-ref,
// rule-ref), generalizing participle's node tree evaluation (nodes.go) onto
// numeric rule/token ids instead of reflect.Type-driven struct fields.
type ruleEvaluator struct {
	rules    *RuleRegistry
	patterns *PatternRegistry
	tokens   *tokenEvaluator
}

func newRuleEvaluator(g *Grammar) *ruleEvaluator {
	return &ruleEvaluator{
		rules:    g.Rules,
		patterns: g.Patterns,
		tokens:   newTokenEvaluator(g.Patterns),
	}
}

// evalRule evaluates rule ruleID at pos/cursor, consulting and populating the
// memo cache, applying the left-recursion Pending->Fail guard, and running
// the rule's value projection (if any) on success.
func (e *ruleEvaluator) evalRule(ctx *ParserContext, ruleID int, pos Position, cursor BarrierCursor) (ParsedElement, BarrierCursor, *thrownSignal) {
	if ctx.Cancelled() {
		return Fail(ruleID), cursor, nil
	}

	if slot := ctx.memo.lookup(ruleID, pos, cursor); slot != nil {
		switch slot.state {
		case slotPending:
			// Left recursion detected: the seed-growing iteration some
			// packrat parsers use to grow a left-recursive match is not
			// implemented here; we cut the recursion to Fail and let a
			// cycle's escape alternative (see visit.go) win instead.
			return Fail(ruleID), cursor, nil
		case slotResult:
			if !slot.element.Success {
				return slot.element, cursor, nil
			}
			return slot.element, cursor + BarrierCursor(slot.consumedBarriers), nil
		}
	}

	rule := e.rules.ByID(ruleID)
	if rule == nil {
		return Fail(ruleID), cursor, nil
	}

	leave, err := ctx.EnterRule(ruleID)
	if err != nil {
		signal := ctx.recordFailure(pos, InternalLimitExceeded, err.Error())
		return Fail(ruleID), cursor, signal
	}
	defer leave()

	ctx.memo.seedPending(ruleID, pos, cursor)
	ctx.Tracef("enter rule %s @%d", rule.Alias, pos)

	el, newCursor, signal := e.evalExpr(ctx, rule.Body, pos, cursor)
	if signal != nil {
		return Fail(ruleID), cursor, signal
	}

	if el.Success {
		el.ElementID = ruleID
		el.ExcludeFromAST = rule.ExcludeFromAST
		if rule.Project != nil {
			projected := rule.Project(el, childValues(el.Children))
			el.IntermediateValue = projected
		}
	} else if rule.Recovery != nil && rule.Recovery.Strategy != RecoveryNone {
		recovered, recCursor, recSignal := e.runRecovery(ctx, rule, pos, cursor)
		if recSignal != nil {
			return Fail(ruleID), cursor, recSignal
		}
		if recovered.Success {
			recovered.ElementID = ruleID
			ctx.memo.store(ruleID, pos, cursor, recovered, int(recCursor-cursor))
			ctx.Tracef("leave rule %s @%d (recovered)", rule.Alias, pos)
			return recovered, recCursor, nil
		}
	}

	consumedBarriers := 0
	if el.Success {
		consumedBarriers = int(newCursor - cursor)
	}
	ctx.memo.store(ruleID, pos, cursor, el, consumedBarriers)
	ctx.Tracef("leave rule %s @%d success=%v", rule.Alias, pos, el.Success)

	if !el.Success {
		return el, cursor, nil
	}
	return el, newCursor, nil
}

func childValues(children []ParsedElement) []value.Value {
	if len(children) == 0 {
		return nil
	}
	vals := make([]value.Value, len(children))
	for i, c := range children {
		vals[i] = c.IntermediateValue
	}
	return vals
}

// evalExpr evaluates one node of a rule's body tree.
func (e *ruleEvaluator) evalExpr(ctx *ParserContext, expr *RuleExpr, pos Position, cursor BarrierCursor) (ParsedElement, BarrierCursor, *thrownSignal) {
	switch expr.Kind {
	case RuleTokenRef:
		p := e.patterns.ByID(expr.TokenID)
		return e.tokens.tryMatch(p, pos, cursor, ctx)
	case RuleRuleRef:
		return e.evalRule(ctx, expr.RefRuleID, pos, cursor)
	case RuleSequence:
		return e.evalSequence(ctx, expr, pos, cursor)
	case RuleChoice:
		return e.evalChoice(ctx, expr, pos, cursor)
	case RuleRepeat:
		return e.evalRepeat(ctx, expr, pos, cursor)
	case RuleOptional:
		return e.evalOptional(ctx, expr, pos, cursor)
	case RuleLookaheadPositive:
		return e.evalLookahead(ctx, expr, pos, cursor, true)
	case RuleLookaheadNegative:
		return e.evalLookahead(ctx, expr, pos, cursor, false)
	default:
		return Fail(-1), cursor, nil
	}
}

func (e *ruleEvaluator) evalSequence(ctx *ParserContext, expr *RuleExpr, pos Position, cursor BarrierCursor) (ParsedElement, BarrierCursor, *thrownSignal) {
	if ctx.Cancelled() {
		return Fail(-1), cursor, nil
	}
	cur := pos
	curCursor := cursor
	children := make([]ParsedElement, 0, len(expr.Children))
	for _, child := range expr.Children {
		el, newCursor, signal := e.evalExpr(ctx, child, cur, curCursor)
		if signal != nil {
			return Fail(-1), cursor, signal
		}
		if !el.Success {
			return Fail(-1), cursor, nil
		}
		children = append(children, el)
		cur += Position(el.Length)
		curCursor = newCursor
	}
	return SucceedNode(-1, pos, int(cur-pos), value.OfList(childValues(children)), children), curCursor, nil
}

func (e *ruleEvaluator) evalChoice(ctx *ParserContext, expr *RuleExpr, pos Position, cursor BarrierCursor) (ParsedElement, BarrierCursor, *thrownSignal) {
	for _, child := range expr.Children {
		if ctx.Cancelled() {
			return Fail(-1), cursor, nil
		}
		el, newCursor, signal := e.evalExpr(ctx, child, pos, cursor)
		if signal != nil {
			return Fail(-1), cursor, signal
		}
		if el.Success {
			return SucceedNode(-1, el.StartIndex, el.Length, el.IntermediateValue, []ParsedElement{el}), newCursor, nil
		}
	}
	return Fail(-1), cursor, nil
}

func (e *ruleEvaluator) evalRepeat(ctx *ParserContext, expr *RuleExpr, pos Position, cursor BarrierCursor) (ParsedElement, BarrierCursor, *thrownSignal) {
	cur := pos
	curCursor := cursor
	children := make([]ParsedElement, 0, 4)
	count := 0
	for expr.Max < 0 || count < expr.Max {
		if ctx.Cancelled() {
			return Fail(-1), cursor, nil
		}
		if expr.Separator != nil && count > 0 {
			sepEl, sepCursor, signal := e.evalExpr(ctx, expr.Separator, cur, curCursor)
			if signal != nil {
				return Fail(-1), cursor, signal
			}
			if !sepEl.Success {
				break
			}
			el, newCursor, signal := e.evalExpr(ctx, expr.Inner, cur+Position(sepEl.Length), sepCursor)
			if signal != nil {
				return Fail(-1), cursor, signal
			}
			if !el.Success {
				break
			}
			children = append(children, el)
			cur += Position(sepEl.Length + el.Length)
			curCursor = newCursor
			count++
			continue
		}
		el, newCursor, signal := e.evalExpr(ctx, expr.Inner, cur, curCursor)
		if signal != nil {
			return Fail(-1), cursor, signal
		}
		if !el.Success {
			break
		}
		children = append(children, el)
		cur += Position(el.Length)
		curCursor = newCursor
		count++
		if el.Length == 0 {
			break
		}
	}
	if count < expr.Min {
		return Fail(-1), cursor, nil
	}
	return SucceedNode(-1, pos, int(cur-pos), value.OfList(childValues(children)), children), curCursor, nil
}

func (e *ruleEvaluator) evalOptional(ctx *ParserContext, expr *RuleExpr, pos Position, cursor BarrierCursor) (ParsedElement, BarrierCursor, *thrownSignal) {
	el, newCursor, signal := e.evalExpr(ctx, expr.Inner, pos, cursor)
	if signal != nil {
		return Fail(-1), cursor, signal
	}
	if !el.Success {
		return SucceedNode(-1, pos, 0, value.Nil, nil), cursor, nil
	}
	return SucceedNode(-1, el.StartIndex, el.Length, el.IntermediateValue, []ParsedElement{el}), newCursor, nil
}

// evalLookahead evaluates expr.Inner without consuming input or advancing the
// barrier cursor, succeeding iff the inner match's success matches `want`.
func (e *ruleEvaluator) evalLookahead(ctx *ParserContext, expr *RuleExpr, pos Position, cursor BarrierCursor, want bool) (ParsedElement, BarrierCursor, *thrownSignal) {
	// Lookahead never records failures of its probe: a negative lookahead
	// failing to find its inner pattern is not itself a diagnostic-worthy
	// event, so we run the probe in NoRecord mode.
	savedMode, savedRecorder := ctx.mode, ctx.recorder
	ctx.mode = NoRecord
	el, _, signal := e.evalExpr(ctx, expr.Inner, pos, cursor)
	ctx.mode, ctx.recorder = savedMode, savedRecorder
	if signal != nil && want {
		// A Throw from inside a probe we ran in NoRecord mode cannot happen
		// (NoRecord.Record always returns nil), but guard defensively.
		return Fail(-1), cursor, nil
	}
	if el.Success == want {
		return SucceedNode(-1, pos, 0, value.Nil, nil), cursor, nil
	}
	el2, sig := e.fail(ctx, pos)
	return el2, cursor, sig
}

func (e *ruleEvaluator) fail(ctx *ParserContext, pos Position) (ParsedElement, *thrownSignal) {
	signal := ctx.recordFailure(pos, ExpectedRule)
	return Fail(-1), signal
}
