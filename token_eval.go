package rcparsing

import (
	"unicode/utf16"

	"github.com/romecore/rcparsing/internal/value"
)

// tokenEvaluator matches leaf/composite token patterns at an offset. Its
// contract, tryMatch(tokenId, position, context) -> ParsedElement, is
// generalized here to additionally thread the barrier cursor explicitly
// (rather than mutating shared context state), the same way participle's
// node.Parse(lex lexer.Lexer, ...) threads a *lexer.PeekingLexer that every
// node either consumes from or leaves untouched on failure.
type tokenEvaluator struct {
	reg *PatternRegistry
}

func newTokenEvaluator(reg *PatternRegistry) *tokenEvaluator {
	return &tokenEvaluator{reg: reg}
}

// tryMatch matches pattern p at pos with the given barrier cursor. It
// returns the resulting element and the barrier cursor after any barrier
// consumption. Side effects are limited to (a) the returned element's
// IntermediateValue and (b) recording a farthest-failure error into ctx
// unless the error-handling mode suppresses it.
func (e *tokenEvaluator) tryMatch(p *TokenPattern, pos Position, cursor BarrierCursor, ctx *ParserContext) (ParsedElement, BarrierCursor, *thrownSignal) {
	var el ParsedElement
	var newCursor BarrierCursor
	var signal *thrownSignal
	switch p.Kind {
	case PatternLiteral, PatternCharClass, PatternRegex, PatternUserLeaf:
		// Character-level input may not step over an unconsumed barrier
		// sitting at pos; only a BarrierRef can consume it.
		if ctx.Barriers != nil {
			if blocker, blocked := ctx.Barriers.Blocking(cursor, -1, pos); blocked {
				u := UnexpectedBarrierToken{Barrier: blocker, Wanted: p}
				return Fail(p.ID), cursor, ctx.record(u.toParsingError(ctx.RuleStack()))
			}
		}
	}
	switch p.Kind {
	case PatternLiteral:
		el, newCursor, signal = e.matchLiteral(p, pos, cursor, ctx)
	case PatternCharClass:
		el, newCursor, signal = e.matchCharClass(p, pos, cursor, ctx)
	case PatternRegex:
		el, newCursor, signal = e.matchRegex(p, pos, cursor, ctx)
	case PatternSequence:
		el, newCursor, signal = e.matchSequence(p, pos, cursor, ctx)
	case PatternChoice:
		el, newCursor, signal = e.matchChoice(p, pos, cursor, ctx)
	case PatternRepeat:
		el, newCursor, signal = e.matchRepeat(p, pos, cursor, ctx)
	case PatternOptional:
		el, newCursor, signal = e.matchOptional(p, pos, cursor, ctx)
	case PatternBarrierRef:
		el, newCursor, signal = e.matchBarrierRef(p, pos, cursor, ctx)
	case PatternUserLeaf:
		el, newCursor, signal = e.matchUserLeaf(p, pos, cursor, ctx)
	default:
		return Fail(p.ID), cursor, nil
	}
	if el.Success {
		el.ExcludeFromAST = p.ExcludeFromAST
	}
	return el, newCursor, signal
}

func (e *tokenEvaluator) fail(p *TokenPattern, pos Position, ctx *ParserContext) (ParsedElement, *thrownSignal) {
	signal := ctx.recordFailure(pos, ExpectedToken, p.String())
	el := Fail(p.ID)
	return el, signal
}

func (e *tokenEvaluator) matchLiteral(p *TokenPattern, pos Position, cursor BarrierCursor, ctx *ParserContext) (ParsedElement, BarrierCursor, *thrownSignal) {
	lit := utf16.Encode([]rune(p.Literal))
	end := int(pos) + len(lit)
	if end > len(ctx.Text) {
		el, signal := e.fail(p, pos, ctx)
		return el, cursor, signal
	}
	for i, u := range lit {
		got := ctx.Text[int(pos)+i]
		if got != u && !(p.CaseInsensitive && foldEqual(got, u)) {
			el, signal := e.fail(p, pos, ctx)
			return el, cursor, signal
		}
	}
	return Succeed(p.ID, pos, len(lit), value.OfString(p.Literal)), cursor, nil
}

func foldEqual(a, b uint16) bool {
	return toUpperUnit(a) == toUpperUnit(b)
}

func toUpperUnit(u uint16) uint16 {
	if u >= 'a' && u <= 'z' {
		return u - ('a' - 'A')
	}
	return u
}

func (e *tokenEvaluator) matchCharClass(p *TokenPattern, pos Position, cursor BarrierCursor, ctx *ParserContext) (ParsedElement, BarrierCursor, *thrownSignal) {
	if int(pos) >= len(ctx.Text) || !p.Class.Contains(ctx.Text[pos]) {
		el, signal := e.fail(p, pos, ctx)
		return el, cursor, signal
	}
	return Succeed(p.ID, pos, 1, value.OfString(string(rune(ctx.Text[pos])))), cursor, nil
}

func (e *tokenEvaluator) matchRegex(p *TokenPattern, pos Position, cursor BarrierCursor, ctx *ParserContext) (ParsedElement, BarrierCursor, *thrownSignal) {
	if int(pos) > len(ctx.Text) {
		el, signal := e.fail(p, pos, ctx)
		return el, cursor, signal
	}
	s := utf16ToString(ctx.Text[pos:])
	loc := p.Regex.FindStringSubmatchIndex(s)
	if loc == nil || loc[0] != 0 {
		el, signal := e.fail(p, pos, ctx)
		return el, cursor, signal
	}
	matchedUTF16Len := len(utf16.Encode([]rune(s[loc[0]:loc[1]])))
	submatches := p.Regex.FindStringSubmatch(s)
	return Succeed(p.ID, pos, matchedUTF16Len, value.OfRegexMatch(submatches)), cursor, nil
}

func utf16ToString(units []uint16) string {
	return string(utf16.Decode(units))
}

func (e *tokenEvaluator) matchSequence(p *TokenPattern, pos Position, cursor BarrierCursor, ctx *ParserContext) (ParsedElement, BarrierCursor, *thrownSignal) {
	cur := pos
	curCursor := cursor
	vals := make([]value.Value, 0, len(p.Children))
	for _, child := range p.Children {
		el, newCursor, signal := e.tryMatch(child, cur, curCursor, ctx)
		if signal != nil {
			return Fail(p.ID), cursor, signal
		}
		if !el.Success {
			return Fail(p.ID), cursor, nil
		}
		vals = append(vals, el.IntermediateValue)
		cur += Position(el.Length)
		curCursor = newCursor
	}
	return Succeed(p.ID, pos, int(cur-pos), value.OfList(vals)), curCursor, nil
}

func (e *tokenEvaluator) matchChoice(p *TokenPattern, pos Position, cursor BarrierCursor, ctx *ParserContext) (ParsedElement, BarrierCursor, *thrownSignal) {
	for _, child := range p.Children {
		el, newCursor, signal := e.tryMatch(child, pos, cursor, ctx)
		if signal != nil {
			return Fail(p.ID), cursor, signal
		}
		if el.Success {
			return Succeed(p.ID, el.StartIndex, el.Length, el.IntermediateValue), newCursor, nil
		}
	}
	// All alternatives failed: the farthest-failure error already recorded
	// by each child attempt is the union the recorder keeps.
	return Fail(p.ID), cursor, nil
}

func (e *tokenEvaluator) matchRepeat(p *TokenPattern, pos Position, cursor BarrierCursor, ctx *ParserContext) (ParsedElement, BarrierCursor, *thrownSignal) {
	cur := pos
	curCursor := cursor
	vals := make([]value.Value, 0, 4)
	count := 0
	for p.Max < 0 || count < p.Max {
		if p.Separator != nil && count > 0 {
			sepEl, sepCursor, signal := e.tryMatch(p.Separator, cur, curCursor, ctx)
			if signal != nil {
				return Fail(p.ID), cursor, signal
			}
			if !sepEl.Success {
				break // separator failure after the last element is absorbed
			}
			el, newCursor, signal := e.tryMatch(p.Inner, cur+Position(sepEl.Length), sepCursor, ctx)
			if signal != nil {
				return Fail(p.ID), cursor, signal
			}
			if !el.Success {
				break // absorbed: the dangling separator is not consumed
			}
			vals = append(vals, el.IntermediateValue)
			cur += Position(sepEl.Length + el.Length)
			curCursor = newCursor
			count++
			continue
		}
		el, newCursor, signal := e.tryMatch(p.Inner, cur, curCursor, ctx)
		if signal != nil {
			return Fail(p.ID), cursor, signal
		}
		if !el.Success {
			break
		}
		vals = append(vals, el.IntermediateValue)
		cur += Position(el.Length)
		curCursor = newCursor
		count++
		if el.Length == 0 {
			// Avoid an infinite loop on a zero-width inner match.
			break
		}
	}
	if count < p.Min {
		el, signal := e.fail(p, cur, ctx)
		return el, cursor, signal
	}
	return Succeed(p.ID, pos, int(cur-pos), value.OfList(vals)), curCursor, nil
}

func (e *tokenEvaluator) matchOptional(p *TokenPattern, pos Position, cursor BarrierCursor, ctx *ParserContext) (ParsedElement, BarrierCursor, *thrownSignal) {
	el, newCursor, signal := e.tryMatch(p.Inner, pos, cursor, ctx)
	if signal != nil {
		return Fail(p.ID), cursor, signal
	}
	if !el.Success {
		// An optional that fails to match still succeeds, with length=0
		// and intermediateValue=null.
		return Succeed(p.ID, pos, 0, value.Nil), cursor, nil
	}
	return Succeed(p.ID, el.StartIndex, el.Length, el.IntermediateValue), newCursor, nil
}

func (e *tokenEvaluator) matchBarrierRef(p *TokenPattern, pos Position, cursor BarrierCursor, ctx *ParserContext) (ParsedElement, BarrierCursor, *thrownSignal) {
	newCursor, length, ok := ctx.Barriers.TryConsume(cursor, p.BarrierTokenID, pos)
	if !ok {
		if blocker, blocked := ctx.Barriers.Blocking(cursor, p.BarrierTokenID, pos); blocked {
			u := UnexpectedBarrierToken{Barrier: blocker, Wanted: p}
			signal := ctx.record(u.toParsingError(ctx.RuleStack()))
			return Fail(p.ID), cursor, signal
		}
		el, signal := e.fail(p, pos, ctx)
		return el, cursor, signal
	}
	return Succeed(p.ID, pos, length, value.OfString(p.MainAlias)), newCursor, nil
}

func (e *tokenEvaluator) matchUserLeaf(p *TokenPattern, pos Position, cursor BarrierCursor, ctx *ParserContext) (ParsedElement, BarrierCursor, *thrownSignal) {
	consumed, iv := p.Leaf(ctx.Text, int(pos))
	if consumed < 0 {
		el, signal := e.fail(p, pos, ctx)
		return el, cursor, signal
	}
	return Succeed(p.ID, pos, consumed, value.Of(iv)), cursor, nil
}
