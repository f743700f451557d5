package rcparsing

import (
	"context"
	"fmt"
	"io"
)

// ParserContext is the ambient state threaded through every evaluation of a
// single parse: the text, the barrier cursor, the grammar reference, the
// memo cache, the error recorder, the error-handling mode, and per-rule
// recovery settings. It is never shared between concurrent parses -- each
// parse owns its context exclusively -- generalizing participle's
// parseContext (context.go), which plays the same role around a
// *lexer.PeekingLexer.
type ParserContext struct {
	Text     []uint16
	Grammar  *Grammar
	Barriers *BarrierList

	memo     *memoCache
	recorder *ErrorRecorder
	mode     ParserErrorHandlingMode

	ruleStack []int

	goCtx           context.Context
	depth           int
	stackDepthLimit int

	traceWriter io.Writer
	traceIndent int

	recoveryAttempts    int
	maxRecoveryAttempts int
}

// newParserContext builds a fresh context for a top-level parse.
func newParserContext(goCtx context.Context, g *Grammar, text []uint16, barriers *BarrierList, mode ParserErrorHandlingMode, opts *parserOptions) *ParserContext {
	return &ParserContext{
		Text:                text,
		Grammar:             g,
		Barriers:            barriers,
		memo:                newMemoCache(),
		recorder:            NewErrorRecorder(mode),
		mode:                mode,
		goCtx:               goCtx,
		stackDepthLimit:     opts.stackDepthLimit,
		traceWriter:         opts.traceWriter,
		maxRecoveryAttempts: opts.maxRecoveryAttempts,
	}
}

// Cancelled reports whether the ambient context.Context has been cancelled,
// the idiomatic-Go substitute for a cancellation flag checked at each rule
// entry and each repetition iteration.
func (c *ParserContext) Cancelled() bool {
	return c.goCtx != nil && c.goCtx.Err() != nil
}

// EnterRule pushes ruleID onto the rule stack (for error reporting) and
// increments the recursion depth, returning a cleanup func and an error if
// the configured stack depth limit is exceeded.
func (c *ParserContext) EnterRule(ruleID int) (func(), error) {
	c.depth++
	if c.stackDepthLimit > 0 && c.depth > c.stackDepthLimit {
		c.depth--
		return func() {}, fmt.Errorf("rcparsing: stack depth limit %d exceeded entering rule %d", c.stackDepthLimit, ruleID)
	}
	c.ruleStack = append(c.ruleStack, ruleID)
	return func() {
		c.ruleStack = c.ruleStack[:len(c.ruleStack)-1]
		c.depth--
	}, nil
}

// RuleStack returns a snapshot of the current enclosing-rule chain.
func (c *ParserContext) RuleStack() []int {
	return append([]int(nil), c.ruleStack...)
}

// Tracef writes a trace line, prefixed by traceIndent spaces (nothing in this
// package changes traceIndent from 0), if tracing is enabled.
func (c *ParserContext) Tracef(format string, args ...interface{}) {
	if c.traceWriter == nil {
		return
	}
	indent := ""
	for i := 0; i < c.traceIndent; i++ {
		indent += " "
	}
	fmt.Fprintf(c.traceWriter, indent+format+"\n", args...)
}

// recordFailure funnels a failure into the recorder, returning a non-nil
// *thrownSignal when the recorder is in Throw mode, which the caller must
// propagate upward immediately.
func (c *ParserContext) recordFailure(pos Position, kind ParsingErrorKind, expected ...string) *thrownSignal {
	e := &ParsingError{Position: pos, Kind: kind, RuleStack: c.RuleStack()}
	for _, d := range expected {
		e.Expected.Add(d)
	}
	return c.record(e)
}

// record hands e to the recorder, or drops it while the context is in
// NoRecord mode (as probes and lookaheads set it).
func (c *ParserContext) record(e *ParsingError) *thrownSignal {
	if c.mode == NoRecord {
		return nil
	}
	return c.recorder.Record(e)
}

// ParserContextReference is a stable, cheaply-copyable handle to a
// ParserContext, passed to user callbacks (value projections, user leaves)
// so they never need to know whether they're holding the "real" context or
// a wrapper around it. Per design note, the source's distinct
// context/context-reference types collapse in Go to borrowing the same
// pointer; ParserContextReference exists purely so callback signatures read
// as "you get a reference, not ownership", matching how participle passes
// *parseContext by pointer into every node's Parse method without an extra
// allocation per call.
type ParserContextReference struct {
	ctx *ParserContext
}

// Ref wraps a ParserContext as a ParserContextReference.
func Ref(ctx *ParserContext) ParserContextReference { return ParserContextReference{ctx: ctx} }

// Text returns the full input text as UTF-16 code units.
func (r ParserContextReference) Text() []uint16 { return r.ctx.Text }

// RuleStack returns a snapshot of the enclosing-rule chain.
func (r ParserContextReference) RuleStack() []int { return r.ctx.RuleStack() }
