package lexer

import (
	"fmt"
	"regexp"

	"github.com/romecore/rcparsing"
)

// CompileRegexPattern is a small convenience wrapper around
// PatternRegistry.RegexPattern that anchors the supplied expression at the
// start, since the token evaluator always matches regex patterns at a fixed
// offset rather than searching. Grounded in participle's lexer/regexp.go,
// which likewise wraps a raw `*regexp.Regexp` with the anchoring and
// named-group bookkeeping its stateful lexer needs before handing matches to
// the parser.
func CompileRegexPattern(reg *rcparsing.PatternRegistry, alias, expr string) (*rcparsing.TokenPattern, error) {
	re, err := regexp.Compile(`\A(?:` + expr + `)`)
	if err != nil {
		return nil, fmt.Errorf("rcparsing/lexer: compiling regex pattern %q: %w", alias, err)
	}
	return reg.RegexPattern(alias, re), nil
}

// CharRange builds a single-range rcparsing.CharClass, the common case the
// participle's regexp-backed stateful lexer handles via a one-off character
// class regex (e.g. `[a-z]`) compiled once per rule.
func CharRange(lo, hi rune) *rcparsing.CharClass {
	return &rcparsing.CharClass{Ranges: [][2]uint16{{uint16(lo), uint16(hi)}}}
}

// CharUnion merges several char classes into one.
func CharUnion(classes ...*rcparsing.CharClass) *rcparsing.CharClass {
	out := &rcparsing.CharClass{}
	for _, c := range classes {
		out.Ranges = append(out.Ranges, c.Ranges...)
	}
	return out
}
