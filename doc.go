// Package rcparsing is a general-purpose text parsing engine: given a
// grammar of token patterns and parser rules built up programmatically, it
// consumes an input string and produces either an AST plus intermediate
// values, or a set of diagnostic errors with farthest-failure reporting and
// optional per-rule recovery.
//
// A grammar is built from a Grammar, a PatternRegistry for leaf/composite
// token patterns, and a RuleRegistry for named rule compositions over those
// patterns and other rules:
//
//	g := rcparsing.NewGrammar()
//
//	ident := g.Patterns.RegexPattern("ident", regexp.MustCompile(`\A[A-Za-z_][A-Za-z0-9_]*`))
//	openParen := g.Patterns.Literal("(", "(", false)
//	closeParen := g.Patterns.Literal(")", ")", false)
//
//	call := g.Rules.Define("call", rcparsing.Seq(
//		rcparsing.TokenRef(ident.ID),
//		rcparsing.TokenRef(openParen.ID),
//		rcparsing.TokenRef(closeParen.ID),
//	))
//	g.SetStartRule(call.ID)
//
//	if err := g.Compile(); err != nil {
//		panic(err)
//	}
//
//	p, err := rcparsing.NewParser(g, lexer.NewBarrierLexer("").Produce)
//	result, err := p.Parse(context.Background(), "foo()")
//
// Rules may reference each other (including themselves) by id, so
// mutually- and self-recursive grammars are expressed directly; the rule
// evaluator's memoization cache guards against runaway left recursion by
// failing a rule that re-enters itself at the same input position before
// consuming anything.
package rcparsing
