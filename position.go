package rcparsing

import "fmt"

// Position is a 0-based UTF-16 code-unit offset into the parsed text.
//
// The engine addresses text purely by code-unit offset; line and column are
// derived on demand from a PositionIndex rather than carried on every
// ParsedElement, mirroring participle's lexer.Position (github.com/
// alecthomas/participle/lexer) which is likewise a flat, cheaply-copied
// value stamped onto tokens.
type Position int

// Span is a half-open [Start, Start+Length) run of code units.
type Span struct {
	Start  Position
	Length int
}

// End returns the code unit offset one past the span.
func (s Span) End() Position { return s.Start + Position(s.Length) }

// Contains reports whether pos falls within the span.
func (s Span) Contains(pos Position) bool {
	return pos >= s.Start && pos < s.End()
}

// Intersects reports whether the two spans share any code unit.
func (s Span) Intersects(o Span) bool {
	return s.Start < o.End() && o.Start < s.End()
}

// LineCol is a 1-based line/column pair, derived from a PositionIndex.
type LineCol struct {
	Line   int
	Column int
}

func (lc LineCol) String() string {
	return fmt.Sprintf("%d:%d", lc.Line, lc.Column)
}

// PositionIndex is an immutable line/column lookup service over a text
// buffer's UTF-16 code units. NewPositionIndex builds it over a whole text
// and it is read-only thereafter, the same "build once, query many" shape as
// participle's text_scanner.go uses for line tracking. The parser itself
// does not build one; callers build it when they need line/column output.
type PositionIndex struct {
	// lineStarts[i] is the code-unit offset of the first unit of line i+1.
	lineStarts []int
}

// NewPositionIndex scans text and records the offset of every line start.
func NewPositionIndex(text []uint16) *PositionIndex {
	starts := make([]int, 1, 64)
	starts[0] = 0
	for i, u := range text {
		if u == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &PositionIndex{lineStarts: starts}
}

// LineCol converts a code-unit offset to a 1-based line/column pair.
func (p *PositionIndex) LineCol(pos Position) LineCol {
	off := int(pos)
	// Binary search for the last line start <= off.
	lo, hi := 0, len(p.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if p.lineStarts[mid] <= off {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return LineCol{Line: lo + 1, Column: off - p.lineStarts[lo] + 1}
}
