package rcparsing

import (
	"context"
	"fmt"
	"unicode/utf16"
)

// ParseResult is the outcome of a top-level parse : an AST (nil on
// total failure), the retained diagnostics, and the indices into Errors that
// were recovered rather than fatal.
type ParseResult struct {
	AST             *ASTNode
	Errors          []ParsingError
	RecoveryIndices []int
}

// Parser is the immutable, concurrency-safe facade over a compiled Grammar,
// mirroring participle's own *Parser: build once via NewParser (which plays
// the role of participle.Build), then call Parse/TryParse/ParseIncremental
// from as many goroutines as you like, each against its own *ParserContext.
type Parser struct {
	grammar         *Grammar
	opts            *parserOptions
	barrierProducer BarrierProducer
}

// NewParser compiles grammar and returns a reusable Parser, failing if
// Grammar.Compile reports a structural problem.
func NewParser(grammar *Grammar, barrierProducer BarrierProducer, opts ...Option) (*Parser, error) {
	if !grammar.compiled {
		if err := grammar.Compile(); err != nil {
			return nil, err
		}
	}
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return &Parser{grammar: grammar, opts: o, barrierProducer: barrierProducer}, nil
}

func (p *Parser) newContext(goCtx context.Context, text []uint16, barriers *BarrierList) *ParserContext {
	return newParserContext(goCtx, p.grammar, text, barriers, p.opts.errorMode, p.opts)
}

func (p *Parser) resolveStartRule(startRule []int) (int, error) {
	if len(startRule) > 0 {
		if p.grammar.Rules.ByID(startRule[0]) == nil {
			return 0, fmt.Errorf("rcparsing: start rule id %d does not exist", startRule[0])
		}
		return startRule[0], nil
	}
	return p.grammar.StartRule, nil
}

// Parse matches text against startRule (or the grammar's default start
// rule), building an AST from whatever the top-level rule's ParsedElement
// tree produced `parse(text, startRule?) -> ParseResult`.
func (p *Parser) Parse(goCtx context.Context, text string, startRule ...int) (*ParseResult, error) {
	el, pctx, err := p.parseRaw(goCtx, text, startRule...)
	if err != nil {
		return nil, err
	}
	result := &ParseResult{
		Errors:          pctx.recorder.Errors(),
		RecoveryIndices: pctx.recorder.RecoveryIndices(),
	}
	if el.Success {
		result.AST = BuildAST(el)
	}
	return result, nil
}

// TryParse runs the same match as Parse but returns the raw ParsedElement
// without building an AST or collecting the recorder's output // `tryParse(text, startRule?) -> element`.
func (p *Parser) TryParse(goCtx context.Context, text string, startRule ...int) (ParsedElement, error) {
	el, _, err := p.parseRaw(goCtx, text, startRule...)
	return el, err
}

func (p *Parser) parseRaw(goCtx context.Context, text string, startRule ...int) (ParsedElement, *ParserContext, error) {
	ruleID, err := p.resolveStartRule(startRule)
	if err != nil {
		return FailElement, nil, err
	}
	units := utf16.Encode([]rune(text))
	barriers, err := p.barrierProducer(units)
	if err != nil {
		return FailElement, nil, fmt.Errorf("rcparsing: computing barrier list: %w", err)
	}
	pctx := p.newContext(goCtx, units, barriers)
	eval := newRuleEvaluator(p.grammar)
	el, _, signal := eval.evalRule(pctx, ruleID, 0, 0)
	if signal != nil {
		pctx.recorder.Record(signal.err)
	}
	return el, pctx, nil
}

// ParseIncremental re-parses prevState's text with changes applied, short-
// circuiting unchanged regions via the memo cache // `parseIncremental(previousResult, changes[]) -> ParseResult`. prevState
// comes from a previous call's (or NewIncrementalState's) returned
// *incrementalState, threaded by the caller alongside its ParseResult, since
// the public ParseResult itself is intentionally cache-free data
// shape.
func (p *Parser) ParseIncremental(goCtx context.Context, prevState *incrementalState, changes []TextChange, startRule ...int) (*ParseResult, *incrementalState, error) {
	st := prevState
	for _, change := range changes {
		next, err := applyTextChange(st, change, p.barrierProducer)
		if err != nil {
			return nil, nil, err
		}
		st = next
	}
	st.ctx.goCtx = goCtx

	ruleID, err := p.resolveStartRule(startRule)
	if err != nil {
		return nil, nil, err
	}
	eval := newRuleEvaluator(p.grammar)
	el, _, signal := eval.evalRule(st.ctx, ruleID, 0, 0)
	if signal != nil {
		st.ctx.recorder.Record(signal.err)
	}

	result := &ParseResult{
		Errors:          st.ctx.recorder.Errors(),
		RecoveryIndices: st.ctx.recorder.RecoveryIndices(),
	}
	if el.Success {
		result.AST = BuildAST(el)
	}
	return result, st, nil
}

// NewIncrementalState seeds the state ParseIncremental needs from a from-
// scratch parse, so callers don't have to reach into Parser internals.
func (p *Parser) NewIncrementalState(goCtx context.Context, text string) (*ParseResult, *incrementalState, error) {
	units := utf16.Encode([]rune(text))
	barriers, err := p.barrierProducer(units)
	if err != nil {
		return nil, nil, fmt.Errorf("rcparsing: computing barrier list: %w", err)
	}
	pctx := p.newContext(goCtx, units, barriers)
	eval := newRuleEvaluator(p.grammar)
	el, _, signal := eval.evalRule(pctx, p.grammar.StartRule, 0, 0)
	if signal != nil {
		pctx.recorder.Record(signal.err)
	}
	result := &ParseResult{
		Errors:          pctx.recorder.Errors(),
		RecoveryIndices: pctx.recorder.RecoveryIndices(),
	}
	if el.Success {
		result.AST = BuildAST(el)
	}
	return result, &incrementalState{ctx: pctx, text: units}, nil
}
