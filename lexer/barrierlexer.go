// Package lexer supplies barrier-token producers: the pre-lexing step that
// turns raw text into the BarrierToken list rcparsing.BarrierList wraps,
// before any grammar rule runs. Grounded in participle's
// lexer/indenter/indenting.go, which wraps an underlying lexer and injects
// synthetic INDENT/DEDENT/NEWLINE tokens from a stack of indentation levels;
// BarrierLexer keeps that same indentation-stack algorithm but produces
// rcparsing.BarrierToken values by scanning raw text directly, since this
// engine pre-lexes barriers whole-text rather than wrapping a token stream.
package lexer

import (
	"unicode/utf16"

	"github.com/romecore/rcparsing"
)

// BarrierLexer scans text for NEWLINE/INDENT/DEDENT-shaped structure,
// mirroring participle's indentLexer: a line-start indentation stack that
// emits INDENT when the current line's leading whitespace run is longer
// than the stack's top, DEDENT (possibly several) when it's shorter, and
// NEWLINE for every line break encountered in between.
type BarrierLexer struct {
	// IndentUnit is the string (e.g. "    " or "\t") one indentation level
	// consists of; a line's leading whitespace is measured in units of this
	// length, truncating any remainder to the nearest unit (mirrors the
	// participle's indentLexer accepting a configurable indent string).
	IndentUnit string
}

// NewBarrierLexer returns a BarrierLexer using unit as its indent string.
// An empty unit defaults to a single tab, participle's own default.
func NewBarrierLexer(unit string) *BarrierLexer {
	if unit == "" {
		unit = "\t"
	}
	return &BarrierLexer{IndentUnit: unit}
}

// Produce implements rcparsing.BarrierProducer.
func (l *BarrierLexer) Produce(text []uint16) (*rcparsing.BarrierList, error) {
	reg := rcparsing.NewBarrierTokenRegistry()
	newlineID := reg.Define("NEWLINE")
	indentID := reg.Define("INDENT")
	dedentID := reg.Define("DEDENT")

	unit := utf16.Encode([]rune(l.IndentUnit))
	var tokens []rcparsing.BarrierToken
	stack := []int{0}

	pos := 0
	atLineStart := true
	for pos < len(text) {
		if atLineStart {
			levelStart := pos
			level := 0
			for matchesUnit(text, pos, unit) {
				pos += len(unit)
				level++
			}
			// Skip any leftover non-newline whitespace that doesn't form a
			// full unit, so it never participates in indentation decisions.
			for pos < len(text) && isHorizontalSpace(text[pos]) {
				pos++
			}
			if pos < len(text) && text[pos] != '\n' && text[pos] != '\r' {
				top := stack[len(stack)-1]
				switch {
				case level > top:
					stack = append(stack, level)
					tokens = append(tokens, rcparsing.BarrierToken{StartIndex: rcparsing.Position(levelStart), Length: 0, TokenAlias: "INDENT"})
				case level < top:
					for len(stack) > 1 && stack[len(stack)-1] > level {
						stack = stack[:len(stack)-1]
						tokens = append(tokens, rcparsing.BarrierToken{StartIndex: rcparsing.Position(levelStart), Length: 0, TokenAlias: "DEDENT"})
					}
				}
			}
			atLineStart = false
			continue
		}
		if text[pos] == '\n' {
			tokens = append(tokens, rcparsing.BarrierToken{StartIndex: rcparsing.Position(pos), Length: 1, TokenAlias: "NEWLINE"})
			pos++
			atLineStart = true
			continue
		}
		pos++
	}
	for len(stack) > 1 {
		stack = stack[:len(stack)-1]
		tokens = append(tokens, rcparsing.BarrierToken{StartIndex: rcparsing.Position(len(text)), Length: 0, TokenAlias: "DEDENT"})
	}

	_ = newlineID
	_ = indentID
	_ = dedentID
	return rcparsing.NewBarrierList(reg, tokens)
}

func matchesUnit(text []uint16, pos int, unit []uint16) bool {
	if len(unit) == 0 || pos+len(unit) > len(text) {
		return false
	}
	for i, u := range unit {
		if text[pos+i] != u {
			return false
		}
	}
	return true
}

func isHorizontalSpace(u uint16) bool { return u == ' ' || u == '\t' }
