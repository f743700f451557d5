package rcparsing

import "io"

// parserOptions collects the tunables a Parser carries across every parse it
// runs, generalizing participle's options.go (which configures a *Parser's
// lexer, lookahead tables, and case-insensitive token set) onto this
// engine's own knobs: recursion depth guard, tracing, and recovery budget.
type parserOptions struct {
	stackDepthLimit     int
	traceWriter         io.Writer
	maxRecoveryAttempts int
	errorMode           ParserErrorHandlingMode
}

func defaultOptions() *parserOptions {
	return &parserOptions{
		stackDepthLimit:     4096,
		maxRecoveryAttempts: 64,
		errorMode:           Default,
	}
}

// Option configures a Parser at construction time, mirroring participle's
// own `type Option func(p *Parser) error` functional-options idiom.
type Option func(o *parserOptions) error

// WithStackDepthLimit bounds rule recursion depth as a guard against stack
// overflow on deeply nested or runaway grammars. A limit of 0 disables the
// guard.
func WithStackDepthLimit(limit int) Option {
	return func(o *parserOptions) error {
		o.stackDepthLimit = limit
		return nil
	}
}

// WithTrace mirrors participle's Trace(w) option, writing one line to w per
// rule entry and exit.
func WithTrace(w io.Writer) Option {
	return func(o *parserOptions) error {
		o.traceWriter = w
		return nil
	}
}

// WithMaxRecoveryAttempts bounds how many SkipAndRetry re-attempts a single
// parse may make in total, preventing a pathological grammar from looping
// recovery forever. Once the bound is reached, no rule recovers by any
// strategy for the rest of that parse; SkipUntilAnchor, SkipUntilAfterAnchor
// and PanicMode recoveries do not count toward it.
func WithMaxRecoveryAttempts(n int) Option {
	return func(o *parserOptions) error {
		o.maxRecoveryAttempts = n
		return nil
	}
}

// WithErrorHandlingMode selects the recorder policy a Parser's top-level
// Parse/TryParse calls run under by default.
func WithErrorHandlingMode(mode ParserErrorHandlingMode) Option {
	return func(o *parserOptions) error {
		o.errorMode = mode
		return nil
	}
}
